package client

import (
	"github.com/fogmarch/habitgrid/internal/models"
	"github.com/fogmarch/habitgrid/internal/services"
)

// Cell is one habit-by-date slot in the weekly grid. Due mirrors the
// frequency rule so the UI disables completion controls on non-due cells;
// the server accepts toggles on any date regardless.
type Cell struct {
	Date      string
	Due       bool
	Completed bool
}

// GridRow pairs a habit with its cells across the requested window.
type GridRow struct {
	Habit models.Habit
	Cells []Cell
}

// BuildGrid expands a week view into per-cell render state, one row per
// habit in display order.
func BuildGrid(view services.WeekView, startDate string, endDate string) ([]GridRow, error) {
	days, err := services.DaysBetween(startDate, endDate)
	if err != nil {
		return nil, err
	}

	rows := make([]GridRow, 0, len(view.Habits))
	for _, habit := range view.Habits {
		completed := make(map[string]struct{}, len(view.Completions[habit.ID]))
		for _, date := range view.Completions[habit.ID] {
			completed[date] = struct{}{}
		}

		cells := make([]Cell, 0, len(days))
		for _, day := range days {
			date := services.FormatDate(day)
			_, done := completed[date]
			cells = append(cells, Cell{
				Date:      date,
				Due:       services.IsDueOn(habit, day),
				Completed: done,
			})
		}
		rows = append(rows, GridRow{Habit: habit, Cells: cells})
	}
	return rows, nil
}
