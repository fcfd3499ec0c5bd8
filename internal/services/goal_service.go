package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/memento/internal/models"
	"gorm.io/gorm"
)

var ErrGoalNotFound = errors.New("goal not found")

// GoalUpdate applies a partial update; nil fields stay untouched.
type GoalUpdate struct {
	Text        *string
	Completed   *bool
	CompletedAt *time.Time
	YearIdx     *int
	WeekIdx     *int
}

type GoalRepository interface {
	ListByUser(userID uint) ([]models.Goal, error)
	FindByIDForUser(goalID uint, userID uint) (models.Goal, error)
	Create(goal *models.Goal) error
	Save(goal *models.Goal) error
	DeleteByIDForUser(goalID uint, userID uint) (int64, error)
}

type GoalService struct {
	goals GoalRepository
	now   func() time.Time
}

func NewGoalService(goals GoalRepository) *GoalService {
	return &GoalService{goals: goals, now: time.Now}
}

func (service *GoalService) ListForUser(userID uint) ([]models.Goal, error) {
	return service.goals.ListByUser(userID)
}

func (service *GoalService) CreateGoal(userID uint, text string, yearIdx *int, weekIdx *int) (models.Goal, error) {
	goal := models.Goal{
		UserID:  userID,
		Text:    text,
		YearIdx: yearIdx,
		WeekIdx: weekIdx,
	}
	if err := service.goals.Create(&goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

// UpdateGoal applies a partial update with completion-toggle rules:
// switching to completed without a stored completion date stamps
// today; switching to not-completed clears the date unconditionally,
// overriding any completed_at supplied in the same request.
func (service *GoalService) UpdateGoal(goalID uint, userID uint, update GoalUpdate) (models.Goal, error) {
	goal, err := service.goals.FindByIDForUser(goalID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Goal{}, ErrGoalNotFound
		}
		return models.Goal{}, err
	}

	if update.Text != nil {
		goal.Text = *update.Text
	}
	if update.CompletedAt != nil {
		completedAt := DateOnly(*update.CompletedAt)
		goal.CompletedAt = &completedAt
	}
	if update.YearIdx != nil {
		goal.YearIdx = update.YearIdx
	}
	if update.WeekIdx != nil {
		goal.WeekIdx = update.WeekIdx
	}

	if update.Completed != nil {
		goal.Completed = *update.Completed
		if goal.Completed {
			if goal.CompletedAt == nil {
				today := DateOnly(service.now())
				goal.CompletedAt = &today
			}
		} else {
			goal.CompletedAt = nil
		}
	}

	if err := service.goals.Save(&goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

func (service *GoalService) DeleteGoal(goalID uint, userID uint) error {
	deleted, err := service.goals.DeleteByIDForUser(goalID, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrGoalNotFound
	}
	return nil
}
