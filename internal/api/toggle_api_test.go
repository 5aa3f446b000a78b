package api

import (
	"net/http"
	"testing"

	"github.com/fogmarch/habitgrid/internal/models"
	"github.com/gofiber/fiber/v2"
)

type toggleResult struct {
	Completed bool `json:"completed"`
}

type weekViewResult struct {
	Habits      []models.Habit      `json:"habits"`
	Completions map[string][]string `json:"completions"`
}

func toggleCompletion(t *testing.T, app *fiber.App, authCookie string, habitID string, date string) toggleResult {
	t.Helper()

	response := postJSON(t, app, authCookie, "/api/habits/"+habitID+"/toggle", map[string]any{"date": date})
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected toggle status 200, got %d", response.StatusCode)
	}
	return decodeBody[toggleResult](t, response)
}

func TestToggleCompletionRoundTrip(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerAndExtractAuthCookie(t, app, "toggle@example.com", "StrongPass1")
	habit := createTestHabit(t, app, authCookie, map[string]any{"name": "Yoga"})
	habitID := habit["id"].(string)

	first := toggleCompletion(t, app, authCookie, habitID, "2026-01-05")
	if !first.Completed {
		t.Fatal("first toggle must report completed=true")
	}

	second := toggleCompletion(t, app, authCookie, habitID, "2026-01-05")
	if second.Completed {
		t.Fatal("second toggle must report completed=false")
	}

	week := getJSON(t, app, authCookie, "/api/habits?start=2026-01-05&end=2026-01-11")
	defer week.Body.Close()
	view := decodeBody[weekViewResult](t, week)

	if len(view.Completions[habitID]) != 0 {
		t.Fatalf("expected no completions after paired toggles, got %v", view.Completions[habitID])
	}
}

func TestToggleRejectsMalformedDate(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerAndExtractAuthCookie(t, app, "baddate@example.com", "StrongPass1")
	habit := createTestHabit(t, app, authCookie, map[string]any{"name": "Yoga"})

	response := postJSON(t, app, authCookie, "/api/habits/"+habit["id"].(string)+"/toggle", map[string]any{"date": "05.01.2026"})
	defer response.Body.Close()

	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
}

func TestWeeklyGridFlow(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerAndExtractAuthCookie(t, app, "grid@example.com", "StrongPass1")

	habit := createTestHabit(t, app, authCookie, map[string]any{
		"name":      "Yoga",
		"frequency": "custom",
		"frequency_config": map[string]any{
			"type": "specific_days",
			"days": []int{1, 3, 5},
		},
	})
	habitID := habit["id"].(string)

	if result := toggleCompletion(t, app, authCookie, habitID, "2026-01-05"); !result.Completed {
		t.Fatal("toggle must complete the monday cell")
	}

	week := getJSON(t, app, authCookie, "/api/habits?start=2026-01-05&end=2026-01-11")
	defer week.Body.Close()
	view := decodeBody[weekViewResult](t, week)

	if len(view.Habits) != 1 || view.Habits[0].ID != habitID {
		t.Fatalf("expected single habit %s in week view, got %v", habitID, view.Habits)
	}
	config := view.Habits[0].FrequencyConfig
	if config == nil || config.Type != models.ConfigSpecificDays || len(config.Days) != 3 {
		t.Fatalf("expected persisted specific_days config, got %+v", config)
	}

	dates := view.Completions[habitID]
	if len(dates) != 1 || dates[0] != "2026-01-05" {
		t.Fatalf("expected completion on 2026-01-05, got %v", dates)
	}

	// Completions outside the requested window stay out of the payload.
	nextWeek := getJSON(t, app, authCookie, "/api/habits?start=2026-01-12&end=2026-01-18")
	defer nextWeek.Body.Close()
	nextView := decodeBody[weekViewResult](t, nextWeek)
	if len(nextView.Completions[habitID]) != 0 {
		t.Fatalf("expected empty completion set for next week, got %v", nextView.Completions[habitID])
	}
}

func TestWeekViewValidatesRange(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerAndExtractAuthCookie(t, app, "range@example.com", "StrongPass1")

	tests := []struct {
		name string
		path string
	}{
		{name: "missing params", path: "/api/habits"},
		{name: "malformed start", path: "/api/habits?start=05.01.2026&end=2026-01-11"},
		{name: "end before start", path: "/api/habits?start=2026-01-11&end=2026-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := getJSON(t, app, authCookie, tt.path)
			defer response.Body.Close()

			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", response.StatusCode)
			}
		})
	}
}
