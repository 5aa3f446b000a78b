package services

import (
	"fmt"

	"github.com/fogmarch/habitgrid/internal/models"
)

type WeekHabitStore interface {
	ListActiveByUser(userID uint) ([]models.Habit, error)
}

type WeekCompletionStore interface {
	ListByHabitIDsInRange(habitIDs []string, startDate string, endDate string) ([]models.Completion, error)
}

// WeekView is the composed payload behind the weekly grid: every active
// habit in display order plus its completion dates within the window.
// Every listed habit is keyed in Completions, possibly with an empty set.
type WeekView struct {
	Habits      []models.Habit      `json:"habits"`
	Completions map[string][]string `json:"completions"`
}

type WeekService struct {
	habits      WeekHabitStore
	completions WeekCompletionStore
}

func NewWeekService(habits WeekHabitStore, completions WeekCompletionStore) *WeekService {
	return &WeekService{habits: habits, completions: completions}
}

// GetWeek returns all active habits regardless of due-ness on any day in
// range; due filtering is a presentation concern evaluated per cell.
func (service *WeekService) GetWeek(userID uint, startDate string, endDate string) (WeekView, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return WeekView{}, fmt.Errorf("%w: start date must be YYYY-MM-DD", ErrInvalidInput)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return WeekView{}, fmt.Errorf("%w: end date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if end.Before(start) {
		return WeekView{}, fmt.Errorf("%w: end date precedes start date", ErrInvalidInput)
	}

	habits, err := service.habits.ListActiveByUser(userID)
	if err != nil {
		return WeekView{}, err
	}

	view := WeekView{
		Habits:      habits,
		Completions: make(map[string][]string, len(habits)),
	}
	if len(habits) == 0 {
		return view, nil
	}

	habitIDs := make([]string, 0, len(habits))
	for _, habit := range habits {
		habitIDs = append(habitIDs, habit.ID)
		view.Completions[habit.ID] = []string{}
	}

	completions, err := service.completions.ListByHabitIDsInRange(habitIDs, startDate, endDate)
	if err != nil {
		return WeekView{}, err
	}
	for _, completion := range completions {
		view.Completions[completion.HabitID] = append(view.Completions[completion.HabitID], completion.CompletedDate)
	}

	return view, nil
}
