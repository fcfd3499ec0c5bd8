package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/memento/internal/models"
	"gorm.io/gorm"
)

var ErrSpecialDayNotFound = errors.New("special day not found")

// SpecialDayUpdate applies a partial update; nil fields stay untouched.
type SpecialDayUpdate struct {
	Title            *string
	Date             *time.Time
	Type             *string
	RepeatYearly     *bool
	NotifyDaysBefore *int
}

type SpecialDayRepository interface {
	ListByUser(userID uint) ([]models.SpecialDay, error)
	FindByIDForUser(dayID uint, userID uint) (models.SpecialDay, error)
	Create(day *models.SpecialDay) error
	Save(day *models.SpecialDay) error
	DeleteByIDForUser(dayID uint, userID uint) (int64, error)
}

type SpecialDayService struct {
	days SpecialDayRepository
}

func NewSpecialDayService(days SpecialDayRepository) *SpecialDayService {
	return &SpecialDayService{days: days}
}

func (service *SpecialDayService) ListForUser(userID uint) ([]models.SpecialDay, error) {
	return service.days.ListByUser(userID)
}

func (service *SpecialDayService) CreateSpecialDay(userID uint, title string, date time.Time, dayType string, repeatYearly bool, notifyDaysBefore int) (models.SpecialDay, error) {
	if dayType == "" {
		dayType = models.SpecialDayAnniversary
	}
	day := models.SpecialDay{
		UserID:           userID,
		Title:            title,
		Date:             DateOnly(date),
		Type:             dayType,
		RepeatYearly:     repeatYearly,
		NotifyDaysBefore: notifyDaysBefore,
	}
	if err := service.days.Create(&day); err != nil {
		return models.SpecialDay{}, err
	}
	return day, nil
}

func (service *SpecialDayService) UpdateSpecialDay(dayID uint, userID uint, update SpecialDayUpdate) (models.SpecialDay, error) {
	day, err := service.days.FindByIDForUser(dayID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SpecialDay{}, ErrSpecialDayNotFound
		}
		return models.SpecialDay{}, err
	}

	if update.Title != nil {
		day.Title = *update.Title
	}
	if update.Date != nil {
		day.Date = DateOnly(*update.Date)
	}
	if update.Type != nil {
		day.Type = *update.Type
	}
	if update.RepeatYearly != nil {
		day.RepeatYearly = *update.RepeatYearly
	}
	if update.NotifyDaysBefore != nil {
		day.NotifyDaysBefore = *update.NotifyDaysBefore
	}

	if err := service.days.Save(&day); err != nil {
		return models.SpecialDay{}, err
	}
	return day, nil
}

func (service *SpecialDayService) DeleteSpecialDay(dayID uint, userID uint) error {
	deleted, err := service.days.DeleteByIDForUser(dayID, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrSpecialDayNotFound
	}
	return nil
}

// Upcoming derives the recurrence view for the inclusive lookahead
// window without persisting anything.
func (service *SpecialDayService) Upcoming(userID uint, today time.Time, windowDays int) ([]UpcomingSpecialDay, error) {
	days, err := service.days.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return UpcomingSpecialDays(days, today, windowDays), nil
}
