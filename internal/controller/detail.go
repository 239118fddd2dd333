package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/akovalenko/fitterm/internal/api"
	"github.com/akovalenko/fitterm/internal/domain"
)

// DetailPlanAPI is the plan-scoped slice of the API surface the detail
// controller needs. *api.PlanService satisfies it.
type DetailPlanAPI interface {
	Exercises(ctx context.Context, id string, q api.ExerciseQuery) (*domain.PlanDetail, error)
	UpdateItemStatus(ctx context.Context, id, date string, status domain.ScheduleStatus) error
}

// ExerciseAPI covers exercise mutations. *api.ExerciseService satisfies it.
type ExerciseAPI interface {
	Create(ctx context.Context, workoutID string, p api.ExercisePayload) (*domain.Exercise, error)
	Update(ctx context.Context, id string, p api.ExercisePayload) (*domain.Exercise, error)
	Delete(ctx context.Context, id string) error
	UploadMedia(ctx context.Context, id, filePath string, mediaType domain.MediaType) error
}

// StepAPI covers step reads and writes. *api.StepService satisfies it.
type StepAPI interface {
	ByExercise(ctx context.Context, exerciseID string) ([]domain.Step, error)
	SaveMany(ctx context.Context, exerciseID string, steps []domain.Step) error
	Delete(ctx context.Context, id string) error
}

// DetailFilters is the exercise filter set, independent of the
// dashboard's.
type DetailFilters struct {
	Search      string
	MuscleGroup string
	Duration    *int // seconds
}

// CompleteOutcome is the result of a complete-today attempt.
type CompleteOutcome int

const (
	// NoScheduleToday means the plan has no item on the local calendar
	// date; nothing was changed.
	NoScheduleToday CompleteOutcome = iota
	// AlreadyCompleted means today's item was already done; success as
	// a no-op.
	AlreadyCompleted
	// Completed means the item was marked completed and the plan
	// reloaded.
	Completed
)

// MediaUploadError reports the partial outcome of creating an exercise
// whose media upload then failed: the exercise exists without its
// media. The caller can retry the upload against Exercise.ID.
type MediaUploadError struct {
	Exercise *domain.Exercise
	Err      error
}

func (e *MediaUploadError) Error() string {
	return fmt.Sprintf("exercise %q created but media upload failed: %v", e.Exercise.Name, e.Err)
}

func (e *MediaUploadError) Unwrap() error { return e.Err }

// Detail owns one plan's exercise view: an independent filter set with
// the same generation discipline as the dashboard, and a lazy
// per-exercise steps cache with at most one in-flight fetch per id.
type Detail struct {
	plans     DetailPlanAPI
	exercises ExerciseAPI
	stepsAPI  StepAPI
	log       logrus.FieldLogger

	mu      sync.Mutex
	planID  string
	filters DetailFilters
	detail  *domain.PlanDetail
	loading bool
	gen     uint64

	steps      map[string][]domain.Step
	stepsGroup singleflight.Group
}

// NewDetail creates a detail controller scoped to planID.
func NewDetail(planID string, plans DetailPlanAPI, exercises ExerciseAPI, steps StepAPI, log logrus.FieldLogger) *Detail {
	return &Detail{
		plans:     plans,
		exercises: exercises,
		stepsAPI:  steps,
		log:       log,
		planID:    planID,
		steps:     make(map[string][]domain.Step),
	}
}

// SetPlan switches the controller to another plan. All local state —
// filters, results, steps cache — is dropped so nothing leaks across
// plans. Same id is a no-op.
func (d *Detail) SetPlan(planID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if planID == d.planID {
		return
	}
	d.planID = planID
	d.filters = DetailFilters{}
	d.detail = nil
	d.steps = make(map[string][]domain.Step)
	d.gen++
}

// PlanID returns the plan this controller is scoped to.
func (d *Detail) PlanID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.planID
}

// SetSearch updates the exercise search text.
func (d *Detail) SetSearch(s string) {
	d.mutate(func() { d.filters.Search = s })
}

// SetMuscleGroup updates the muscle-group filter; empty clears it.
func (d *Detail) SetMuscleGroup(g string) {
	d.mutate(func() { d.filters.MuscleGroup = g })
}

// SetDuration updates the duration filter; nil clears it.
func (d *Detail) SetDuration(seconds *int) {
	d.mutate(func() { d.filters.Duration = seconds })
}

func (d *Detail) mutate(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
	d.gen++
}

// Filters returns a snapshot of the current filter set.
func (d *Detail) Filters() DetailFilters {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filters
}

// Plan returns the loaded plan detail, or nil before the first load.
func (d *Detail) Plan() *domain.PlanDetail {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detail
}

// Loading reports whether a detail load is in flight.
func (d *Detail) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Load fetches the plan with its filtered exercise list. Stale
// responses (superseded by a filter edit or plan switch) are
// discarded; previous data stays visible on failure.
func (d *Detail) Load(ctx context.Context) error {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	id := d.planID
	q := api.ExerciseQuery{
		Search:      d.filters.Search,
		MuscleGroup: d.filters.MuscleGroup,
		Duration:    d.filters.Duration,
	}
	d.loading = true
	d.mu.Unlock()

	detail, err := d.plans.Exercises(ctx, id, q)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		return err
	}
	if gen != d.gen {
		return nil
	}
	d.detail = detail
	return nil
}

// Steps returns the exercise's step list, fetching it on first use.
// Concurrent calls for the same exercise share one network fetch;
// fetch errors are not cached, so the next expand retries.
func (d *Detail) Steps(ctx context.Context, exerciseID string) ([]domain.Step, error) {
	d.mu.Lock()
	if cached, ok := d.steps[exerciseID]; ok {
		d.mu.Unlock()
		return cached, nil
	}
	d.mu.Unlock()

	v, err, _ := d.stepsGroup.Do(exerciseID, func() (any, error) {
		steps, err := d.stepsAPI.ByExercise(ctx, exerciseID)
		if err != nil {
			return nil, err
		}
		d.mu.Lock()
		d.steps[exerciseID] = steps
		d.mu.Unlock()
		return steps, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Step), nil
}

// StepsCached returns the cached step list without fetching.
func (d *Detail) StepsCached(exerciseID string) ([]domain.Step, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	steps, ok := d.steps[exerciseID]
	return steps, ok
}

// InvalidateSteps evicts one exercise's cache entry. Called when the
// step editor closes so the read-only panel refetches fresh data.
func (d *Detail) InvalidateSteps(exerciseID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.steps, exerciseID)
}

// SaveSteps replaces the exercise's ordered step list and evicts the
// cache entry; the caller refetches if its panel is open.
func (d *Detail) SaveSteps(ctx context.Context, exerciseID string, steps []domain.Step) error {
	if err := d.stepsAPI.SaveMany(ctx, exerciseID, steps); err != nil {
		return err
	}
	d.InvalidateSteps(exerciseID)
	return nil
}

// DeleteStep removes one step and evicts the owner's cache entry.
func (d *Detail) DeleteStep(ctx context.Context, exerciseID, stepID string) error {
	if err := d.stepsAPI.Delete(ctx, stepID); err != nil {
		return err
	}
	d.InvalidateSteps(exerciseID)
	return nil
}

// CompleteToday marks the schedule item falling on now's calendar date
// (observed in loc) as completed, then reloads the plan. Matching is
// by local calendar date, never raw timestamp equality.
func (d *Detail) CompleteToday(ctx context.Context, now time.Time, loc *time.Location) (CompleteOutcome, error) {
	d.mu.Lock()
	detail := d.detail
	id := d.planID
	d.mu.Unlock()
	if detail == nil {
		return NoScheduleToday, fmt.Errorf("plan not loaded")
	}

	item := detail.ItemOn(now, loc)
	if item == nil {
		return NoScheduleToday, nil
	}
	if item.Status == domain.ScheduleCompleted {
		return AlreadyCompleted, nil
	}

	date := item.Date.In(loc).Format(domain.DateLayout)
	if err := d.plans.UpdateItemStatus(ctx, id, date, domain.ScheduleCompleted); err != nil {
		return NoScheduleToday, err
	}
	if err := d.Load(ctx); err != nil {
		d.log.WithError(err).Warn("reload after completing today failed")
	}
	return Completed, nil
}

// CreateExercise creates the exercise and, when mediaPath is set,
// uploads its media as a second phase. When only the upload fails the
// returned error is a *MediaUploadError carrying the created exercise,
// so the caller can retry the upload alone. The plan reloads after the
// create either way.
func (d *Detail) CreateExercise(ctx context.Context, p api.ExercisePayload, mediaPath string, mediaType domain.MediaType) (*domain.Exercise, error) {
	d.mu.Lock()
	id := d.planID
	d.mu.Unlock()

	ex, err := d.exercises.Create(ctx, id, p)
	if err != nil {
		return nil, err
	}

	var uploadErr error
	if mediaPath != "" {
		if err := d.exercises.UploadMedia(ctx, ex.ID, mediaPath, mediaType); err != nil {
			uploadErr = &MediaUploadError{Exercise: ex, Err: err}
		}
	}

	if err := d.Load(ctx); err != nil {
		d.log.WithError(err).Warn("reload after exercise create failed")
	}
	if uploadErr != nil {
		return ex, uploadErr
	}
	return ex, nil
}

// RetryMediaUpload retries the upload phase for an already-created
// exercise, then reloads.
func (d *Detail) RetryMediaUpload(ctx context.Context, exerciseID, mediaPath string, mediaType domain.MediaType) error {
	if err := d.exercises.UploadMedia(ctx, exerciseID, mediaPath, mediaType); err != nil {
		return err
	}
	return d.Load(ctx)
}

// UpdateExercise patches an exercise and reloads; the server owns
// derived counts and media state, so there is no local patching here.
func (d *Detail) UpdateExercise(ctx context.Context, exerciseID string, p api.ExercisePayload) error {
	if _, err := d.exercises.Update(ctx, exerciseID, p); err != nil {
		return err
	}
	return d.Load(ctx)
}

// DeleteExercise removes an exercise and reloads. The confirmation
// step lives in the view; by the time this runs the user has agreed.
func (d *Detail) DeleteExercise(ctx context.Context, exerciseID string) error {
	if err := d.exercises.Delete(ctx, exerciseID); err != nil {
		return err
	}
	d.InvalidateSteps(exerciseID)
	return d.Load(ctx)
}
