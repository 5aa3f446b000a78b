package db

import (
	"time"

	"github.com/fogmarch/habitgrid/internal/models"
	"gorm.io/gorm"
)

type HabitRepository struct {
	database *gorm.DB
}

func NewHabitRepository(database *gorm.DB) *HabitRepository {
	return &HabitRepository{database: database}
}

func (repo *HabitRepository) ListActiveByUser(userID uint) ([]models.Habit, error) {
	habits := make([]models.Habit, 0)
	if err := repo.database.
		Where("user_id = ? AND is_archived = ?", userID, false).
		Order("sort_order ASC, created_at ASC").
		Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

func (repo *HabitRepository) FindByIDForUser(habitID string, userID uint) (models.Habit, bool, error) {
	habit := models.Habit{}
	result := repo.database.
		Where("id = ? AND user_id = ?", habitID, userID).
		Limit(1).
		Find(&habit)
	if result.Error != nil {
		return models.Habit{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Habit{}, false, nil
	}
	return habit, true, nil
}

func (repo *HabitRepository) Create(habit *models.Habit) error {
	return repo.database.Create(habit).Error
}

func (repo *HabitRepository) Save(habit *models.Habit) error {
	return repo.database.Save(habit).Error
}

func (repo *HabitRepository) NextSortOrder(userID uint) (int, error) {
	var next int
	if err := repo.database.Model(&models.Habit{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(sort_order) + 1, 0)").
		Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

func (repo *HabitRepository) CountActiveByUserAndIDs(userID uint, habitIDs []string) (int64, error) {
	if len(habitIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := repo.database.Model(&models.Habit{}).
		Where("user_id = ? AND is_archived = ? AND id IN ?", userID, false, habitIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Reorder assigns sort_order = position for every listed habit in one
// transaction so a concurrent reader never observes a partial renumbering.
// Habits omitted from orderedIDs keep their prior sort_order.
func (repo *HabitRepository) Reorder(userID uint, orderedIDs []string) error {
	now := time.Now()
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for position, habitID := range orderedIDs {
			if err := tx.Model(&models.Habit{}).
				Where("id = ? AND user_id = ?", habitID, userID).
				Updates(map[string]any{
					"sort_order": position,
					"updated_at": now,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *HabitRepository) Archive(habitID string, userID uint) error {
	return repo.database.Model(&models.Habit{}).
		Where("id = ? AND user_id = ?", habitID, userID).
		Updates(map[string]any{
			"is_archived": true,
			"updated_at":  time.Now(),
		}).Error
}
