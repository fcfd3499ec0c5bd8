package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/memento/internal/models"
	"github.com/terraincognita07/memento/internal/services"
)

func (handler *Handler) GetGoals(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	goals, err := handler.goalService.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load goals")
	}

	payload := make([]fiber.Map, 0, len(goals))
	for _, goal := range goals {
		payload = append(payload, goalPayload(goal))
	}
	return c.JSON(payload)
}

type goalCreateInput struct {
	Text    string `json:"text"`
	YearIdx *int   `json:"year_idx"`
	WeekIdx *int   `json:"week_idx"`
}

func (handler *Handler) CreateGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input goalCreateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(input.Text) == "" {
		return apiError(c, fiber.StatusBadRequest, "goal text is required")
	}

	goal, err := handler.goalService.CreateGoal(user.ID, input.Text, input.YearIdx, input.WeekIdx)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create goal")
	}
	return c.JSON(goalPayload(goal))
}

type goalUpdateInput struct {
	Text        *string `json:"text"`
	Completed   *bool   `json:"completed"`
	CompletedAt *string `json:"completed_at"`
	YearIdx     *int    `json:"year_idx"`
	WeekIdx     *int    `json:"week_idx"`
}

func (handler *Handler) UpdateGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	goalID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "goal not found")
	}

	var input goalUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	update := services.GoalUpdate{
		Text:      input.Text,
		Completed: input.Completed,
		YearIdx:   input.YearIdx,
		WeekIdx:   input.WeekIdx,
	}
	if input.CompletedAt != nil {
		completedAt, err := services.ParseISODate(strings.TrimSpace(*input.CompletedAt))
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date format")
		}
		update.CompletedAt = &completedAt
	}

	goal, err := handler.goalService.UpdateGoal(goalID, user.ID, update)
	if err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			return apiError(c, fiber.StatusNotFound, "goal not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update goal")
	}
	return c.JSON(goalPayload(goal))
}

func (handler *Handler) DeleteGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	goalID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "goal not found")
	}

	if err := handler.goalService.DeleteGoal(goalID, user.ID); err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			return apiError(c, fiber.StatusNotFound, "goal not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete goal")
	}
	return apiMessage(c, "goal deleted")
}

func goalPayload(goal models.Goal) fiber.Map {
	var completedAt any
	if goal.CompletedAt != nil {
		completedAt = goal.CompletedAt.Format(services.ISODateLayout)
	}
	return fiber.Map{
		"id":           goal.ID,
		"text":         goal.Text,
		"completed":    goal.Completed,
		"completed_at": completedAt,
		"year_idx":     goal.YearIdx,
		"week_idx":     goal.WeekIdx,
	}
}
