// Package testutil builds randomized domain fixtures for tests.
package testutil

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/akovalenko/fitterm/internal/domain"
)

// PlanOption mutates a generated plan.
type PlanOption func(*domain.WorkoutPlan)

// WithPlanName pins the plan's name.
func WithPlanName(name string) PlanOption {
	return func(p *domain.WorkoutPlan) { p.Name = name }
}

// WithScheduleToday adds a planned schedule item on today's date.
func WithScheduleToday() PlanOption {
	return func(p *domain.WorkoutPlan) {
		p.ScheduleItems = append(p.ScheduleItems, domain.ScheduleItem{
			Date:   time.Now(),
			Status: domain.SchedulePlanned,
		})
	}
}

// NewPlan generates a workout plan with a plausible name, a four-week
// range and three training days.
func NewPlan(opts ...PlanOption) domain.WorkoutPlan {
	start := time.Now()
	p := domain.WorkoutPlan{
		ID:           uuid.New().String(),
		Name:         gofakeit.AdjectiveDescriptive() + " " + gofakeit.Noun(),
		StartDate:    domain.Date{Time: start},
		EndDate:      domain.Date{Time: start.AddDate(0, 0, 28)},
		DaysOfWeek:   []int{1, 3, 5},
		NumExercises: gofakeit.Number(3, 8),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NewPlans generates n plans.
func NewPlans(n int) []domain.WorkoutPlan {
	out := make([]domain.WorkoutPlan, n)
	for i := range out {
		out[i] = NewPlan()
	}
	return out
}

// NewExercise generates an exercise for the given muscle group.
func NewExercise(muscleGroup string) domain.Exercise {
	return domain.Exercise{
		ID:           uuid.New().String(),
		Name:         gofakeit.VerbAction() + " " + gofakeit.Noun(),
		MuscleGroup:  muscleGroup,
		NumberOfSets: gofakeit.Number(2, 5),
		Repetitions:  gofakeit.Number(5, 15),
		RestTime:     gofakeit.Number(30, 180),
	}
}

// NewSteps generates an ordered step list of length n.
func NewSteps(n int) []domain.Step {
	out := make([]domain.Step, n)
	for i := range out {
		out[i] = domain.Step{
			ID:          uuid.New().String(),
			Order:       i + 1,
			Description: gofakeit.Sentence(6),
		}
	}
	return out
}
