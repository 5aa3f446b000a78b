package db

import (
	"github.com/fogmarch/habitgrid/internal/models"
	"gorm.io/gorm"
)

type CompletionRepository struct {
	database *gorm.DB
}

func NewCompletionRepository(database *gorm.DB) *CompletionRepository {
	return &CompletionRepository{database: database}
}

func (repo *CompletionRepository) ListByHabitIDsInRange(habitIDs []string, startDate string, endDate string) ([]models.Completion, error) {
	completions := make([]models.Completion, 0)
	if len(habitIDs) == 0 {
		return completions, nil
	}
	if err := repo.database.
		Where("habit_id IN ? AND completed_date >= ? AND completed_date <= ?", habitIDs, startDate, endDate).
		Order("completed_date ASC").
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

func (repo *CompletionRepository) FindByHabitAndDate(habitID string, date string) (models.Completion, bool, error) {
	completion := models.Completion{}
	result := repo.database.
		Where("habit_id = ? AND completed_date = ?", habitID, date).
		Limit(1).
		Find(&completion)
	if result.Error != nil {
		return models.Completion{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Completion{}, false, nil
	}
	return completion, true, nil
}

func (repo *CompletionRepository) Create(completion *models.Completion) error {
	return repo.database.Create(completion).Error
}

func (repo *CompletionRepository) DeleteByID(completionID string) error {
	return repo.database.Delete(&models.Completion{}, "id = ?", completionID).Error
}

func (repo *CompletionRepository) CountByHabitAndDate(habitID string, date string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Completion{}).
		Where("habit_id = ? AND completed_date = ?", habitID, date).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
