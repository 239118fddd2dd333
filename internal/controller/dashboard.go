// Package controller holds the query controllers behind the TUI views:
// filter state, pagination, caches, and the fetch discipline around
// them. Controllers are safe for use from bubbletea command goroutines;
// views call mutators synchronously and run loads inside tea.Cmd.
package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akovalenko/fitterm/internal/api"
	"github.com/akovalenko/fitterm/internal/domain"
)

// DebounceDelay is how long free-text filter edits settle before a
// fetch is issued. Discrete toggles bypass it.
const DebounceDelay = 400 * time.Millisecond

// defaultPageSize matches the dashboard's card grid.
const defaultPageSize = 6

// PlanAPI is the slice of the API surface the dashboard needs.
// *api.PlanService satisfies it.
type PlanAPI interface {
	List(ctx context.Context, q api.PlanListQuery) (*api.PlanPage, error)
	Create(ctx context.Context, req api.CreatePlanRequest) (*domain.WorkoutPlan, error)
	Delete(ctx context.Context, id string) error
	RescheduleItem(ctx context.Context, id, oldDate, newDate string) error
	CheckAllMissed(ctx context.Context) error
	CreateByAI(ctx context.Context, prompt string) (*domain.WorkoutPlan, error)
}

// DashboardFilters is the dashboard's filter set. Page is managed by
// the controller, not the caller.
type DashboardFilters struct {
	Search       string
	NumExercises *int
	StartDate    string // YYYY-MM-DD
	EndDate      string // YYYY-MM-DD
	TodayOnly    bool
}

// Dashboard owns the paginated, filtered list of workout plans.
//
// Every filter mutation bumps an internal generation counter and
// resets the page to 1; a load snapshots the generation before the
// network call and discards its result if a newer mutation has since
// been made, so out-of-order responses never overwrite newer state.
type Dashboard struct {
	plans PlanAPI
	log   logrus.FieldLogger

	mu         sync.Mutex
	filters    DashboardFilters
	page       int
	limit      int
	totalPages int
	items      []domain.WorkoutPlan
	loading    bool
	appending  bool
	gen        uint64

	sweepOnce sync.Once
}

// NewDashboard creates a dashboard controller with default filters.
func NewDashboard(plans PlanAPI, log logrus.FieldLogger) *Dashboard {
	return &Dashboard{
		plans: plans,
		log:   log,
		page:  1,
		limit: defaultPageSize,
	}
}

// SetSearch updates the search text. Resets the page.
func (d *Dashboard) SetSearch(s string) {
	d.mutate(func() { d.filters.Search = s })
}

// SetNumExercises updates the exercise-count filter; nil clears it.
func (d *Dashboard) SetNumExercises(n *int) {
	d.mutate(func() { d.filters.NumExercises = n })
}

// SetDateRange updates the date-range filter; empty strings clear it.
func (d *Dashboard) SetDateRange(start, end string) {
	d.mutate(func() {
		d.filters.StartDate = start
		d.filters.EndDate = end
	})
}

// ToggleToday flips the today-only filter. Resets the page like every
// other filter change; the caller applies it without debounce.
func (d *Dashboard) ToggleToday() {
	d.mutate(func() { d.filters.TodayOnly = !d.filters.TodayOnly })
}

// mutate applies a filter change under the invariants: page back to 1,
// generation bumped so in-flight loads discard themselves.
func (d *Dashboard) mutate(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
	d.page = 1
	d.gen++
}

// Filters returns a snapshot of the current filter set.
func (d *Dashboard) Filters() DashboardFilters {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filters
}

// Plans returns the current result list.
func (d *Dashboard) Plans() []domain.WorkoutPlan {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.WorkoutPlan, len(d.items))
	copy(out, d.items)
	return out
}

// Loading reports whether a replacing load is in flight.
func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Appending reports whether a load-more fetch is in flight.
func (d *Dashboard) Appending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.appending
}

// HasMore reports whether another page is available.
func (d *Dashboard) HasMore() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.page < d.totalPages
}

// Load fetches page 1 of the current filters, replacing the result
// list. Before the very first load it asks the server to sweep overdue
// schedule items to missed; a sweep failure is logged and ignored, the
// list load proceeds regardless.
func (d *Dashboard) Load(ctx context.Context) error {
	d.sweepOnce.Do(func() {
		if err := d.plans.CheckAllMissed(ctx); err != nil {
			d.log.WithError(err).Warn("missed-session sweep failed, loading anyway")
		}
	})

	d.mu.Lock()
	d.page = 1
	d.gen++ // supersede any in-flight load
	gen := d.gen
	q := d.query()
	d.loading = true
	d.mu.Unlock()

	page, err := d.plans.List(ctx, q)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		return err
	}
	if gen != d.gen {
		// A newer filter edit superseded this response.
		return nil
	}
	d.items = page.Data
	d.totalPages = page.TotalPages
	return nil
}

// LoadMore fetches the next page and appends it. No-op when the last
// page is already loaded. The page counter only advances on success.
func (d *Dashboard) LoadMore(ctx context.Context) error {
	d.mu.Lock()
	if d.page >= d.totalPages {
		d.mu.Unlock()
		return nil
	}
	gen := d.gen
	q := d.query()
	q.Page = d.page + 1
	d.appending = true
	d.mu.Unlock()

	page, err := d.plans.List(ctx, q)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.appending = false
	if err != nil {
		return err
	}
	if gen != d.gen {
		return nil
	}
	d.page = q.Page
	d.items = append(d.items, page.Data...)
	d.totalPages = page.TotalPages
	return nil
}

// Delete removes the plan server-side and, on success, drops it from
// the local list without a reload. On failure the list is untouched.
func (d *Dashboard) Delete(ctx context.Context, id string) error {
	if err := d.plans.Delete(ctx, id); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.items {
		if d.items[i].ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			break
		}
	}
	return nil
}

// Create validates the request client-side, creates the plan, then
// reloads the list so it appears with server-derived fields.
func (d *Dashboard) Create(ctx context.Context, req api.CreatePlanRequest, now time.Time) (*domain.WorkoutPlan, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if err := domain.ValidateDaysOfWeek(req.DaysOfWeek); err != nil {
		return nil, err
	}
	end, err := time.Parse(domain.DateLayout, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", req.EndDate, err)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if end.Before(today) {
		return nil, fmt.Errorf("end date %s is in the past", req.EndDate)
	}

	plan, err := d.plans.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := d.Load(ctx); err != nil {
		d.log.WithError(err).Warn("reload after plan create failed")
	}
	return plan, nil
}

// CreateByAI drafts a plan from a prompt server-side, then reloads.
func (d *Dashboard) CreateByAI(ctx context.Context, prompt string) (*domain.WorkoutPlan, error) {
	if prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}
	plan, err := d.plans.CreateByAI(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if err := d.Load(ctx); err != nil {
		d.log.WithError(err).Warn("reload after AI plan create failed")
	}
	return plan, nil
}

// Reschedule moves a schedule item and waits for the write before
// reloading the list. Both dates are required; a missing date is a
// client-side validation error and no call is issued.
func (d *Dashboard) Reschedule(ctx context.Context, planID, oldDate, newDate string) error {
	if oldDate == "" || newDate == "" {
		return fmt.Errorf("both the current and the new date are required")
	}
	if err := d.plans.RescheduleItem(ctx, planID, oldDate, newDate); err != nil {
		return err
	}
	return d.Load(ctx)
}

// query builds the list query from the current state. Caller holds mu.
func (d *Dashboard) query() api.PlanListQuery {
	return api.PlanListQuery{
		Search:       d.filters.Search,
		NumExercises: d.filters.NumExercises,
		StartDate:    d.filters.StartDate,
		EndDate:      d.filters.EndDate,
		TodayOnly:    d.filters.TodayOnly,
		Page:         d.page,
		Limit:        d.limit,
	}
}
