package db

import (
	"time"

	"github.com/terraincognita07/memento/internal/models"
	"gorm.io/gorm"
)

type EntryRepository struct {
	database *gorm.DB
}

func NewEntryRepository(database *gorm.DB) *EntryRepository {
	return &EntryRepository{database: database}
}

func (repo *EntryRepository) ListByUser(userID uint) ([]models.Entry, error) {
	entries := make([]models.Entry, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *EntryRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.Entry, bool, error) {
	entry := models.Entry{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.Entry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Entry{}, false, nil
	}
	return entry, true, nil
}

func (repo *EntryRepository) Create(entry *models.Entry) error {
	return repo.database.Create(entry).Error
}

func (repo *EntryRepository) Save(entry *models.Entry) error {
	return repo.database.Save(entry).Error
}
