package db

import (
	"sync"
	"testing"
	"time"

	"github.com/fogmarch/habitgrid/internal/models"
	"github.com/fogmarch/habitgrid/internal/services"
)

// Two concurrent toggles of the same empty cell must both report
// completed=true and leave exactly one row; the unique index is the
// arbiter, not application state.
func TestConcurrentTogglesConvergeOnSingleCompletion(t *testing.T) {
	database := openTestDatabase(t)
	repositories := NewRepositories(database)

	user := models.User{Email: "race@habitgrid.local", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	habit := models.Habit{ID: "habit-race", UserID: user.ID, Name: "Run", Frequency: models.FrequencyDaily}
	if err := database.Create(&habit).Error; err != nil {
		t.Fatalf("create habit: %v", err)
	}

	service := services.NewCompletionService(repositories.Habits, repositories.Completions)

	const date = "2026-01-05"
	var waitGroup sync.WaitGroup
	results := make([]bool, 2)
	failures := make([]error, 2)

	for index := 0; index < 2; index++ {
		waitGroup.Add(1)
		go func(slot int) {
			defer waitGroup.Done()
			completed, err := service.Toggle(user.ID, habit.ID, date)
			results[slot] = completed
			failures[slot] = err
		}(index)
	}
	waitGroup.Wait()

	for slot, err := range failures {
		if err != nil {
			t.Fatalf("toggle %d failed: %v", slot, err)
		}
	}
	for slot, completed := range results {
		if !completed {
			t.Fatalf("toggle %d must converge to completed=true", slot)
		}
	}

	count, err := repositories.Completions.CountByHabitAndDate(habit.ID, date)
	if err != nil {
		t.Fatalf("count completions: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one completion row, got %d", count)
	}
}

func TestReorderRepositoryIsTransactionalPerCall(t *testing.T) {
	database := openTestDatabase(t)
	repositories := NewRepositories(database)

	user := models.User{Email: "order@habitgrid.local", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	for _, habit := range []models.Habit{
		{ID: "a", UserID: user.ID, Name: "A", Frequency: models.FrequencyDaily, SortOrder: 0},
		{ID: "b", UserID: user.ID, Name: "B", Frequency: models.FrequencyDaily, SortOrder: 1},
		{ID: "c", UserID: user.ID, Name: "C", Frequency: models.FrequencyDaily, SortOrder: 2},
	} {
		if err := database.Create(&habit).Error; err != nil {
			t.Fatalf("create habit %s: %v", habit.ID, err)
		}
	}

	if err := repositories.Habits.Reorder(user.ID, []string{"c", "a", "b"}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	habits, err := repositories.Habits.ListActiveByUser(user.ID)
	if err != nil {
		t.Fatalf("list habits: %v", err)
	}
	wantOrder := []string{"c", "a", "b"}
	for index, habit := range habits {
		if habit.ID != wantOrder[index] {
			t.Fatalf("expected order %v, got position %d = %s", wantOrder, index, habit.ID)
		}
	}
}
