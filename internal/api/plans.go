package api

import (
	"context"
	"net/http"

	"github.com/akovalenko/fitterm/internal/domain"
)

// PlanService wraps the v1/workoutplans endpoints.
type PlanService struct {
	c *Client
}

// PlanListQuery is the filter set accepted by the plan list endpoint.
// Empty string and nil fields are omitted from the request.
type PlanListQuery struct {
	Search       string
	NumExercises *int
	StartDate    string // YYYY-MM-DD
	EndDate      string // YYYY-MM-DD
	TodayOnly    bool
	Page         int
	Limit        int
}

// PlanPage is the pagination envelope the list endpoint returns.
type PlanPage struct {
	Data       []domain.WorkoutPlan `json:"data"`
	TotalPages int                  `json:"totalPages"`
}

// ExerciseQuery is the filter set for one plan's exercise list.
type ExerciseQuery struct {
	Search      string
	MuscleGroup string
	Duration    *int // seconds
}

// CreatePlanRequest is the create/update body.
type CreatePlanRequest struct {
	Name       string `json:"name"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	DaysOfWeek []int  `json:"daysOfWeek"`
}

func (s *PlanService) List(ctx context.Context, q PlanListQuery) (*PlanPage, error) {
	params := NewParams().
		Str("search", q.Search).
		IntPtr("numExercises", q.NumExercises).
		Str("startDate", q.StartDate).
		Str("endDate", q.EndDate).
		Flag("today", q.TodayOnly).
		Int("page", q.Page).
		Int("limit", q.Limit)

	var out PlanPage
	if err := s.c.do(ctx, http.MethodGet, "v1/workoutplans", params.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PlanService) Get(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	var out domain.WorkoutPlan
	if err := s.c.do(ctx, http.MethodGet, "v1/workoutplans/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PlanService) Create(ctx context.Context, req CreatePlanRequest) (*domain.WorkoutPlan, error) {
	var out domain.WorkoutPlan
	if err := s.c.do(ctx, http.MethodPost, "v1/workoutplans", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PlanService) Update(ctx context.Context, id string, req CreatePlanRequest) (*domain.WorkoutPlan, error) {
	var out domain.WorkoutPlan
	if err := s.c.do(ctx, http.MethodPatch, "v1/workoutplans/"+id, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PlanService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "v1/workoutplans/"+id, nil, nil, nil)
}

// Exercises returns the plan with its exercise list filtered by q.
func (s *PlanService) Exercises(ctx context.Context, id string, q ExerciseQuery) (*domain.PlanDetail, error) {
	params := NewParams().
		Str("search", q.Search).
		Str("muscleGroup", q.MuscleGroup).
		IntPtr("duration", q.Duration)

	var out domain.PlanDetail
	if err := s.c.do(ctx, http.MethodGet, "v1/workoutplans/"+id+"/exercises", params.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateItemStatus moves one schedule item to status; date identifies the
// item. The caller reloads afterwards, the server owns derived state.
func (s *PlanService) UpdateItemStatus(ctx context.Context, id, date string, status domain.ScheduleStatus) error {
	body := map[string]string{"date": date, "status": string(status)}
	return s.c.do(ctx, http.MethodPatch, "v1/workoutplans/"+id+"/item-status", nil, body, nil)
}

// RescheduleItem moves the item on oldDate to newDate.
func (s *PlanService) RescheduleItem(ctx context.Context, id, oldDate, newDate string) error {
	body := map[string]string{"oldDate": oldDate, "newDate": newDate}
	return s.c.do(ctx, http.MethodPatch, "v1/workoutplans/"+id+"/reschedule-item", nil, body, nil)
}

// CheckAllMissed asks the server to flag every overdue planned item as
// missed. Idempotent; safe to call on every dashboard bootstrap.
func (s *PlanService) CheckAllMissed(ctx context.Context) error {
	return s.c.do(ctx, http.MethodPatch, "v1/workoutplans/check-missed-all", nil, nil, nil)
}

// CreateByAI sends a free-text prompt and lets the backend draft a plan.
func (s *PlanService) CreateByAI(ctx context.Context, prompt string) (*domain.WorkoutPlan, error) {
	body := map[string]string{"message": prompt}
	var out domain.WorkoutPlan
	if err := s.c.do(ctx, http.MethodPost, "v1/workoutplans/ai", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
