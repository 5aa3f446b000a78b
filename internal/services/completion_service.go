package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fogmarch/habitgrid/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompletionStore interface {
	FindByHabitAndDate(habitID string, date string) (models.Completion, bool, error)
	Create(completion *models.Completion) error
	DeleteByID(completionID string) error
}

type CompletionHabitStore interface {
	FindByIDForUser(habitID string, userID uint) (models.Habit, bool, error)
}

type CompletionService struct {
	habits      CompletionHabitStore
	completions CompletionStore
}

func NewCompletionService(habits CompletionHabitStore, completions CompletionStore) *CompletionService {
	return &CompletionService{habits: habits, completions: completions}
}

// Toggle flips the completion state of one (habit, date) cell and returns
// the resulting state. It deliberately does not consult the due rule: the
// grid disables non-due cells, the server trusts its callers here.
func (service *CompletionService) Toggle(userID uint, habitID string, date string) (bool, error) {
	if _, err := ParseDate(date); err != nil {
		return false, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	_, found, err := service.habits.FindByIDForUser(habitID, userID)
	if err != nil {
		return false, err
	}
	if !found {
		return false, ErrHabitNotFound
	}

	existing, found, err := service.completions.FindByHabitAndDate(habitID, date)
	if err != nil {
		return false, err
	}
	if found {
		if err := service.completions.DeleteByID(existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}

	completion := models.Completion{
		ID:            uuid.NewString(),
		HabitID:       habitID,
		CompletedDate: date,
	}
	if err := service.completions.Create(&completion); err != nil {
		// A concurrent toggle won the insert race. The unique index is the
		// arbiter; both callers converge on completed=true.
		if isDuplicateKeyError(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
