package services

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/fogmarch/habitgrid/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrInvalidInput rejects malformed habit fields before any storage
	// access.
	ErrInvalidInput = errors.New("invalid input")
	// ErrHabitNotFound covers both missing and foreign-owned habits so the
	// response never leaks whether another user's habit exists.
	ErrHabitNotFound = errors.New("habit not found or unauthorized")
	// ErrInvalidReference rejects a reorder naming an unowned or archived
	// habit.
	ErrInvalidReference = errors.New("invalid habit reference")
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type HabitInput struct {
	Name            string
	Description     string
	Category        string
	ColorHex        string
	Icon            string
	Frequency       string
	FrequencyConfig *models.FrequencyConfig
}

type HabitStore interface {
	ListActiveByUser(userID uint) ([]models.Habit, error)
	FindByIDForUser(habitID string, userID uint) (models.Habit, bool, error)
	Create(habit *models.Habit) error
	Save(habit *models.Habit) error
	NextSortOrder(userID uint) (int, error)
	CountActiveByUserAndIDs(userID uint, habitIDs []string) (int64, error)
	Reorder(userID uint, orderedIDs []string) error
	Archive(habitID string, userID uint) error
}

type HabitService struct {
	habits HabitStore
}

func NewHabitService(habits HabitStore) *HabitService {
	return &HabitService{habits: habits}
}

func (service *HabitService) Create(userID uint, input HabitInput) (models.Habit, error) {
	normalized, err := normalizeHabitInput(input)
	if err != nil {
		return models.Habit{}, err
	}

	sortOrder, err := service.habits.NextSortOrder(userID)
	if err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		ID:              uuid.NewString(),
		UserID:          userID,
		Name:            normalized.Name,
		Description:     normalized.Description,
		Category:        normalized.Category,
		ColorHex:        normalized.ColorHex,
		Icon:            normalized.Icon,
		Frequency:       normalized.Frequency,
		FrequencyConfig: normalized.FrequencyConfig,
		SortOrder:       sortOrder,
	}
	if err := service.habits.Create(&habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// Update mutates the editable fields only. Owner, archive flag and sort
// order are never touched through this path.
func (service *HabitService) Update(userID uint, habitID string, input HabitInput) (models.Habit, error) {
	normalized, err := normalizeHabitInput(input)
	if err != nil {
		return models.Habit{}, err
	}

	habit, found, err := service.habits.FindByIDForUser(habitID, userID)
	if err != nil {
		return models.Habit{}, err
	}
	if !found {
		return models.Habit{}, ErrHabitNotFound
	}

	habit.Name = normalized.Name
	habit.Description = normalized.Description
	habit.Category = normalized.Category
	habit.ColorHex = normalized.ColorHex
	habit.Icon = normalized.Icon
	habit.Frequency = normalized.Frequency
	habit.FrequencyConfig = normalized.FrequencyConfig
	if err := service.habits.Save(&habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// Archive soft-deletes a habit. Archiving an already-archived habit is
// idempotent success.
func (service *HabitService) Archive(userID uint, habitID string) error {
	_, found, err := service.habits.FindByIDForUser(habitID, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrHabitNotFound
	}
	return service.habits.Archive(habitID, userID)
}

// Reorder assigns sort positions by index in orderedIDs. Every listed id
// must reference an active habit owned by the caller; habits not listed
// keep their prior order.
func (service *HabitService) Reorder(userID uint, orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return nil
	}

	unique := make(map[string]struct{}, len(orderedIDs))
	for _, habitID := range orderedIDs {
		if strings.TrimSpace(habitID) == "" {
			return ErrInvalidReference
		}
		if _, duplicated := unique[habitID]; duplicated {
			return ErrInvalidReference
		}
		unique[habitID] = struct{}{}
	}

	owned, err := service.habits.CountActiveByUserAndIDs(userID, orderedIDs)
	if err != nil {
		return err
	}
	if owned != int64(len(orderedIDs)) {
		return ErrInvalidReference
	}

	return service.habits.Reorder(userID, orderedIDs)
}

func normalizeHabitInput(input HabitInput) (HabitInput, error) {
	normalized := input
	normalized.Name = strings.TrimSpace(input.Name)
	normalized.Description = strings.TrimSpace(input.Description)
	normalized.Category = strings.TrimSpace(input.Category)
	normalized.ColorHex = strings.TrimSpace(input.ColorHex)
	normalized.Icon = strings.TrimSpace(input.Icon)
	normalized.Frequency = strings.TrimSpace(input.Frequency)

	if normalized.Name == "" {
		return HabitInput{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if normalized.ColorHex == "" {
		normalized.ColorHex = models.DefaultColorHex
	} else if !hexColorPattern.MatchString(normalized.ColorHex) {
		return HabitInput{}, fmt.Errorf("%w: color must be a #RRGGBB value", ErrInvalidInput)
	}
	if normalized.Icon == "" {
		normalized.Icon = models.DefaultIcon
	}
	if normalized.Frequency == "" {
		normalized.Frequency = models.FrequencyDaily
	}

	switch normalized.Frequency {
	case models.FrequencyDaily:
		if normalized.FrequencyConfig != nil {
			return HabitInput{}, fmt.Errorf("%w: daily habits carry no frequency config", ErrInvalidInput)
		}
	case models.FrequencyCustom:
		config, err := normalizeFrequencyConfig(normalized.FrequencyConfig)
		if err != nil {
			return HabitInput{}, err
		}
		normalized.FrequencyConfig = config
	default:
		return HabitInput{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, normalized.Frequency)
	}

	return normalized, nil
}

func normalizeFrequencyConfig(config *models.FrequencyConfig) (*models.FrequencyConfig, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: custom habits require a frequency config", ErrInvalidInput)
	}

	switch config.Type {
	case models.ConfigWeeklyCount:
		if config.Count < 1 || config.Count > 7 {
			return nil, fmt.Errorf("%w: weekly count must be between 1 and 7", ErrInvalidInput)
		}
		return &models.FrequencyConfig{Type: models.ConfigWeeklyCount, Count: config.Count}, nil
	case models.ConfigSpecificDays:
		if len(config.Days) == 0 {
			return nil, fmt.Errorf("%w: at least one weekday is required", ErrInvalidInput)
		}
		seen := make(map[int]struct{}, len(config.Days))
		days := make([]int, 0, len(config.Days))
		for _, day := range config.Days {
			if day < 0 || day > 6 {
				return nil, fmt.Errorf("%w: weekday %d out of range", ErrInvalidInput, day)
			}
			if _, duplicated := seen[day]; duplicated {
				continue
			}
			seen[day] = struct{}{}
			days = append(days, day)
		}
		sort.Ints(days)
		return &models.FrequencyConfig{Type: models.ConfigSpecificDays, Days: days}, nil
	}

	return nil, fmt.Errorf("%w: unknown frequency config type %q", ErrInvalidInput, config.Type)
}
