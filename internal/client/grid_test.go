package client

import (
	"testing"

	"github.com/fogmarch/habitgrid/internal/models"
	"github.com/fogmarch/habitgrid/internal/services"
)

func TestBuildGridMarksDueAndCompletedCells(t *testing.T) {
	view := services.WeekView{
		Habits: []models.Habit{
			{
				ID:        "yoga",
				Name:      "Yoga",
				Frequency: models.FrequencyCustom,
				FrequencyConfig: &models.FrequencyConfig{
					Type: models.ConfigSpecificDays,
					Days: []int{1, 3, 5},
				},
			},
			{ID: "read", Name: "Read", Frequency: models.FrequencyDaily},
		},
		Completions: map[string][]string{
			"yoga": {"2026-01-05"},
			"read": {},
		},
	}

	rows, err := BuildGrid(view, "2026-01-05", "2026-01-11")
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	yoga := rows[0]
	if yoga.Habit.ID != "yoga" || len(yoga.Cells) != 7 {
		t.Fatalf("unexpected yoga row: %+v", yoga)
	}

	// Monday through Sunday window, due on Mon/Wed/Fri only.
	wantDue := []bool{true, false, true, false, true, false, false}
	for index, cell := range yoga.Cells {
		if cell.Due != wantDue[index] {
			t.Fatalf("cell %s: due = %v, want %v", cell.Date, cell.Due, wantDue[index])
		}
	}
	if !yoga.Cells[0].Completed {
		t.Fatal("expected completed monday cell")
	}
	for _, cell := range yoga.Cells[1:] {
		if cell.Completed {
			t.Fatalf("cell %s must not be completed", cell.Date)
		}
	}

	read := rows[1]
	for _, cell := range read.Cells {
		if !cell.Due {
			t.Fatalf("daily habit must be due on %s", cell.Date)
		}
		if cell.Completed {
			t.Fatalf("cell %s must not be completed", cell.Date)
		}
	}
}

func TestBuildGridRejectsMalformedWindow(t *testing.T) {
	if _, err := BuildGrid(services.WeekView{}, "05.01.2026", "2026-01-11"); err == nil {
		t.Fatal("expected error for malformed start date")
	}
}
