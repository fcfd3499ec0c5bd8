package db

import (
	"github.com/terraincognita07/memento/internal/models"
	"gorm.io/gorm"
)

type GoalRepository struct {
	database *gorm.DB
}

func NewGoalRepository(database *gorm.DB) *GoalRepository {
	return &GoalRepository{database: database}
}

func (repo *GoalRepository) ListByUser(userID uint) ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// FindByIDForUser scopes the lookup to the owning user so a foreign id
// is indistinguishable from a missing one.
func (repo *GoalRepository) FindByIDForUser(goalID uint, userID uint) (models.Goal, error) {
	var goal models.Goal
	if err := repo.database.
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error; err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

func (repo *GoalRepository) Create(goal *models.Goal) error {
	return repo.database.Create(goal).Error
}

func (repo *GoalRepository) Save(goal *models.Goal) error {
	return repo.database.Save(goal).Error
}

func (repo *GoalRepository) DeleteByIDForUser(goalID uint, userID uint) (int64, error) {
	result := repo.database.
		Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&models.Goal{})
	return result.RowsAffected, result.Error
}
