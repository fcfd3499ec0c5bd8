package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/memento/internal/models"
	"github.com/terraincognita07/memento/internal/services"
)

const defaultUpcomingWindowDays = 7

func (handler *Handler) GetSpecialDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	days, err := handler.specialDayService.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load special days")
	}

	payload := make([]fiber.Map, 0, len(days))
	for _, day := range days {
		payload = append(payload, specialDayPayload(day))
	}
	return c.JSON(payload)
}

type specialDayCreateInput struct {
	Title            string `json:"title"`
	Date             string `json:"date"`
	Type             string `json:"type"`
	RepeatYearly     *bool  `json:"repeat_yearly"`
	NotifyDaysBefore int    `json:"notify_days_before"`
}

func (handler *Handler) CreateSpecialDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input specialDayCreateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(input.Title) == "" {
		return apiError(c, fiber.StatusBadRequest, "title is required")
	}

	date, err := services.ParseISODate(strings.TrimSpace(input.Date))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date format")
	}

	repeatYearly := true
	if input.RepeatYearly != nil {
		repeatYearly = *input.RepeatYearly
	}

	day, err := handler.specialDayService.CreateSpecialDay(user.ID, input.Title, date, input.Type, repeatYearly, input.NotifyDaysBefore)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create special day")
	}
	return c.JSON(specialDayPayload(day))
}

type specialDayUpdateInput struct {
	Title            *string `json:"title"`
	Date             *string `json:"date"`
	Type             *string `json:"type"`
	RepeatYearly     *bool   `json:"repeat_yearly"`
	NotifyDaysBefore *int    `json:"notify_days_before"`
}

func (handler *Handler) UpdateSpecialDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "special day not found")
	}

	var input specialDayUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	update := services.SpecialDayUpdate{
		Title:            input.Title,
		Type:             input.Type,
		RepeatYearly:     input.RepeatYearly,
		NotifyDaysBefore: input.NotifyDaysBefore,
	}
	if input.Date != nil {
		date, err := services.ParseISODate(strings.TrimSpace(*input.Date))
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date format")
		}
		update.Date = &date
	}

	day, err := handler.specialDayService.UpdateSpecialDay(dayID, user.ID, update)
	if err != nil {
		if errors.Is(err, services.ErrSpecialDayNotFound) {
			return apiError(c, fiber.StatusNotFound, "special day not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update special day")
	}
	return c.JSON(specialDayPayload(day))
}

func (handler *Handler) DeleteSpecialDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "special day not found")
	}

	if err := handler.specialDayService.DeleteSpecialDay(dayID, user.ID); err != nil {
		if errors.Is(err, services.ErrSpecialDayNotFound) {
			return apiError(c, fiber.StatusNotFound, "special day not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete special day")
	}
	return apiMessage(c, "special day deleted")
}

// GetUpcomingSpecialDays returns the derived recurrence view for the
// next N days (default 7), sorted ascending by occurrence.
func (handler *Handler) GetUpcomingSpecialDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	windowDays := defaultUpcomingWindowDays
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return apiError(c, fiber.StatusBadRequest, "invalid days value")
		}
		windowDays = parsed
	}

	upcoming, err := handler.specialDayService.Upcoming(user.ID, time.Now(), windowDays)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load upcoming special days")
	}

	payload := make([]fiber.Map, 0, len(upcoming))
	for _, item := range upcoming {
		entry := specialDayPayload(item.SpecialDay)
		entry["date"] = item.Occurrence.Format(services.ISODateLayout)
		entry["days_until"] = item.DaysUntil
		entry["original_date"] = item.SpecialDay.Date.Format(services.ISODateLayout)
		payload = append(payload, entry)
	}
	return c.JSON(payload)
}

func specialDayPayload(day models.SpecialDay) fiber.Map {
	return fiber.Map{
		"id":                 day.ID,
		"title":              day.Title,
		"date":               day.Date.Format(services.ISODateLayout),
		"type":               day.Type,
		"repeat_yearly":      day.RepeatYearly,
		"notify_days_before": day.NotifyDaysBefore,
		"created_at":         day.CreatedAt.Format(services.ISODateLayout),
	}
}
