package db

import (
	"github.com/terraincognita07/memento/internal/models"
	"gorm.io/gorm"
)

type SpecialDayRepository struct {
	database *gorm.DB
}

func NewSpecialDayRepository(database *gorm.DB) *SpecialDayRepository {
	return &SpecialDayRepository{database: database}
}

func (repo *SpecialDayRepository) ListByUser(userID uint) ([]models.SpecialDay, error) {
	days := make([]models.SpecialDay, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *SpecialDayRepository) FindByIDForUser(dayID uint, userID uint) (models.SpecialDay, error) {
	var day models.SpecialDay
	if err := repo.database.
		Where("id = ? AND user_id = ?", dayID, userID).
		First(&day).Error; err != nil {
		return models.SpecialDay{}, err
	}
	return day, nil
}

func (repo *SpecialDayRepository) Create(day *models.SpecialDay) error {
	return repo.database.Create(day).Error
}

func (repo *SpecialDayRepository) Save(day *models.SpecialDay) error {
	return repo.database.Save(day).Error
}

func (repo *SpecialDayRepository) DeleteByIDForUser(dayID uint, userID uint) (int64, error) {
	result := repo.database.
		Where("id = ? AND user_id = ?", dayID, userID).
		Delete(&models.SpecialDay{})
	return result.RowsAffected, result.Error
}
