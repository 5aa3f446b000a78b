package client

import (
	"sync"

	"github.com/fogmarch/habitgrid/internal/models"
	"github.com/fogmarch/habitgrid/internal/services"
)

const habitsScope = "habits"

// ViewKey identifies one cached server view by its query parameters.
type ViewKey struct {
	Scope string
	Start string
	End   string
}

func WeekKey(startDate string, endDate string) ViewKey {
	return ViewKey{Scope: habitsScope, Start: startDate, End: endDate}
}

// QueryCache is the single shared store behind the grid UI. All reads and
// optimistic writes go through it; a view with outstanding mutations
// suppresses background refetch overwrites until the mutations settle.
type QueryCache struct {
	mu      sync.Mutex
	views   map[ViewKey]services.WeekView
	pending map[ViewKey]int
}

func NewQueryCache() *QueryCache {
	return &QueryCache{
		views:   make(map[ViewKey]services.WeekView),
		pending: make(map[ViewKey]int),
	}
}

func (cache *QueryCache) Get(key ViewKey) (services.WeekView, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	view, ok := cache.views[key]
	if !ok {
		return services.WeekView{}, false
	}
	return cloneView(view), true
}

// Set stores an authoritative server response. It is dropped while a
// mutation against the view is outstanding so a stale fetch can never
// overwrite optimistic state.
func (cache *QueryCache) Set(key ViewKey, view services.WeekView) bool {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.pending[key] > 0 {
		return false
	}
	cache.views[key] = cloneView(view)
	return true
}

func (cache *QueryCache) Invalidate(key ViewKey) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	delete(cache.views, key)
}

// ScopeKeys lists every cached view in a scope; optimistic mutations apply
// to all of them, mirroring a prefix-keyed cache update.
func (cache *QueryCache) ScopeKeys(scope string) []ViewKey {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	keys := make([]ViewKey, 0, len(cache.views))
	for key := range cache.views {
		if key.Scope == scope {
			keys = append(keys, key)
		}
	}
	return keys
}

func (cache *QueryCache) BeginMutation(key ViewKey) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.pending[key]++
}

// EndMutation reports whether the view has settled (no further mutations
// outstanding), in which case the caller runs its reconciliation refetch.
func (cache *QueryCache) EndMutation(key ViewKey) bool {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.pending[key] > 0 {
		cache.pending[key]--
	}
	if cache.pending[key] == 0 {
		delete(cache.pending, key)
		return true
	}
	return false
}

// CompletionDates returns a copy of one habit's cached completion set.
func (cache *QueryCache) CompletionDates(key ViewKey, habitID string) ([]string, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	view, ok := cache.views[key]
	if !ok {
		return nil, false
	}
	dates, ok := view.Completions[habitID]
	if !ok {
		return nil, false
	}
	return append([]string(nil), dates...), true
}

// SetCompletionDates restores one habit's completion set, leaving every
// other habit's optimistic state untouched.
func (cache *QueryCache) SetCompletionDates(key ViewKey, habitID string, dates []string) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	view, ok := cache.views[key]
	if !ok {
		return
	}
	view.Completions[habitID] = append([]string(nil), dates...)
	cache.views[key] = view
}

// ToggleCompletionDate flips membership of date in the habit's cached set.
func (cache *QueryCache) ToggleCompletionDate(key ViewKey, habitID string, date string) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	view, ok := cache.views[key]
	if !ok {
		return
	}

	existing := view.Completions[habitID]
	flipped := make([]string, 0, len(existing)+1)
	removed := false
	for _, value := range existing {
		if value == date {
			removed = true
			continue
		}
		flipped = append(flipped, value)
	}
	if !removed {
		flipped = append(flipped, date)
	}
	view.Completions[habitID] = flipped
	cache.views[key] = view
}

// Habits returns a copy of the cached habit sequence for a view.
func (cache *QueryCache) Habits(key ViewKey) ([]models.Habit, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	view, ok := cache.views[key]
	if !ok {
		return nil, false
	}
	return append([]models.Habit(nil), view.Habits...), true
}

// SetHabits replaces the cached habit sequence, leaving completions alone.
func (cache *QueryCache) SetHabits(key ViewKey, habits []models.Habit) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	view, ok := cache.views[key]
	if !ok {
		return
	}
	view.Habits = append([]models.Habit(nil), habits...)
	cache.views[key] = view
}

// ReorderHabits reindexes the cached habit sequence to the proposed order.
// Habits not listed keep their relative order after the listed ones.
func (cache *QueryCache) ReorderHabits(key ViewKey, orderedIDs []string) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	view, ok := cache.views[key]
	if !ok {
		return
	}

	byID := make(map[string]models.Habit, len(view.Habits))
	for _, habit := range view.Habits {
		byID[habit.ID] = habit
	}

	listed := make(map[string]struct{}, len(orderedIDs))
	reordered := make([]models.Habit, 0, len(view.Habits))
	for _, habitID := range orderedIDs {
		habit, ok := byID[habitID]
		if !ok {
			continue
		}
		listed[habitID] = struct{}{}
		reordered = append(reordered, habit)
	}
	for _, habit := range view.Habits {
		if _, ok := listed[habit.ID]; !ok {
			reordered = append(reordered, habit)
		}
	}

	view.Habits = reordered
	cache.views[key] = view
}

func cloneView(view services.WeekView) services.WeekView {
	cloned := services.WeekView{
		Habits:      append([]models.Habit(nil), view.Habits...),
		Completions: make(map[string][]string, len(view.Completions)),
	}
	for habitID, dates := range view.Completions {
		cloned.Completions[habitID] = append([]string(nil), dates...)
	}
	return cloned
}
