package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fogmarch/habitgrid/internal/models"
	"github.com/fogmarch/habitgrid/internal/services"
)

// ErrMutationFailed wraps any transport or server failure during a
// mutation. The caller sees it only after the optimistic state has been
// rolled back; the client never auto-retries.
var ErrMutationFailed = errors.New("mutation failed")

// Doer issues HTTP requests. *http.Client satisfies it; tests inject
// failing fakes.
type Doer interface {
	Do(request *http.Request) (*http.Response, error)
}

// Client drives the server API with optimistic cache updates. Every
// mutation follows the same protocol: snapshot, optimistic apply, send,
// rollback on failure, settle with an authoritative refetch.
type Client struct {
	baseURL string
	http    Doer
	cache   *QueryCache
	notify  func(message string)
}

func New(baseURL string, doer Doer, notify func(message string)) *Client {
	if notify == nil {
		notify = func(string) {}
	}
	return &Client{
		baseURL: baseURL,
		http:    doer,
		cache:   NewQueryCache(),
		notify:  notify,
	}
}

func (client *Client) Cache() *QueryCache {
	return client.cache
}

// FetchWeek loads the weekly grid view for a window and caches it. The
// cache drops the result if a mutation against the view is in flight.
func (client *Client) FetchWeek(ctx context.Context, startDate string, endDate string) (services.WeekView, error) {
	query := url.Values{}
	query.Set("start", startDate)
	query.Set("end", endDate)

	view := services.WeekView{}
	if err := client.doJSON(ctx, http.MethodGet, "/api/habits?"+query.Encode(), nil, &view); err != nil {
		return services.WeekView{}, err
	}

	client.cache.Set(WeekKey(startDate, endDate), view)
	return view, nil
}

// ToggleCompletion optimistically flips one grid cell across every cached
// habit view, then reconciles with the server.
func (client *Client) ToggleCompletion(ctx context.Context, habitID string, date string) (bool, error) {
	keys := client.cache.ScopeKeys(habitsScope)

	// Snapshot only the mutated habit's sets so concurrent toggles on
	// other cells are never clobbered by this rollback.
	snapshots := make(map[ViewKey][]string, len(keys))
	for _, key := range keys {
		client.cache.BeginMutation(key)
		if dates, ok := client.cache.CompletionDates(key, habitID); ok {
			snapshots[key] = dates
		}
		client.cache.ToggleCompletionDate(key, habitID, date)
	}
	defer client.settle(ctx, keys)

	result := struct {
		Completed bool `json:"completed"`
	}{}
	payload := map[string]string{"date": date}
	if err := client.doJSON(ctx, http.MethodPost, "/api/habits/"+habitID+"/toggle", payload, &result); err != nil {
		for _, key := range keys {
			if dates, ok := snapshots[key]; ok {
				client.cache.SetCompletionDates(key, habitID, dates)
			}
		}
		client.notify("Failed to update completion")
		return false, fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}

	return result.Completed, nil
}

// ReorderHabits optimistically reindexes every cached habit view to the
// proposed order.
func (client *Client) ReorderHabits(ctx context.Context, orderedIDs []string) error {
	keys := client.cache.ScopeKeys(habitsScope)

	snapshots := make(map[ViewKey][]models.Habit, len(keys))
	for _, key := range keys {
		client.cache.BeginMutation(key)
		if habits, ok := client.cache.Habits(key); ok {
			snapshots[key] = habits
		}
		client.cache.ReorderHabits(key, orderedIDs)
	}
	defer client.settle(ctx, keys)

	payload := map[string][]string{"ordered_ids": orderedIDs}
	if err := client.doJSON(ctx, http.MethodPost, "/api/habits/reorder", payload, nil); err != nil {
		for _, key := range keys {
			if habits, ok := snapshots[key]; ok {
				client.cache.SetHabits(key, habits)
			}
		}
		client.notify("Failed to reorder habits")
		return fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}

	return nil
}

// CreateHabit is not optimistic; the server assigns id and sort order, so
// the affected views are invalidated and refetched on success.
func (client *Client) CreateHabit(ctx context.Context, input services.HabitInput) (models.Habit, error) {
	habit := models.Habit{}
	if err := client.doJSON(ctx, http.MethodPost, "/api/habits", habitRequestBody(input), &habit); err != nil {
		client.notify("Failed to create habit")
		return models.Habit{}, fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}
	client.refetchScope(ctx, habitsScope)
	return habit, nil
}

func (client *Client) UpdateHabit(ctx context.Context, habitID string, input services.HabitInput) (models.Habit, error) {
	habit := models.Habit{}
	if err := client.doJSON(ctx, http.MethodPut, "/api/habits/"+habitID, habitRequestBody(input), &habit); err != nil {
		client.notify("Failed to update habit")
		return models.Habit{}, fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}
	client.refetchScope(ctx, habitsScope)
	return habit, nil
}

func (client *Client) ArchiveHabit(ctx context.Context, habitID string) error {
	if err := client.doJSON(ctx, http.MethodPost, "/api/habits/"+habitID+"/archive", nil, nil); err != nil {
		client.notify("Failed to archive habit")
		return fmt.Errorf("%w: %v", ErrMutationFailed, err)
	}
	client.refetchScope(ctx, habitsScope)
	return nil
}

// settle ends the mutation on every touched view and, once a view has no
// further mutations outstanding, refetches it so optimistic drift is
// reconciled against server truth regardless of outcome.
func (client *Client) settle(ctx context.Context, keys []ViewKey) {
	for _, key := range keys {
		if !client.cache.EndMutation(key) {
			continue
		}
		if _, err := client.FetchWeek(ctx, key.Start, key.End); err != nil {
			client.cache.Invalidate(key)
		}
	}
}

func (client *Client) refetchScope(ctx context.Context, scope string) {
	for _, key := range client.cache.ScopeKeys(scope) {
		if _, err := client.FetchWeek(ctx, key.Start, key.End); err != nil {
			client.cache.Invalidate(key)
		}
	}
}

func habitRequestBody(input services.HabitInput) map[string]any {
	body := map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"category":    input.Category,
		"color_hex":   input.ColorHex,
		"icon":        input.Icon,
		"frequency":   input.Frequency,
	}
	if input.FrequencyConfig != nil {
		body["frequency_config"] = input.FrequencyConfig
	}
	return body
}

func (client *Client) doJSON(ctx context.Context, method string, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.http.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		failure := struct {
			Error string `json:"error"`
		}{}
		_ = json.NewDecoder(response.Body).Decode(&failure)
		if failure.Error == "" {
			failure.Error = response.Status
		}
		return errors.New(failure.Error)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(out)
}
