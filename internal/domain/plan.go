package domain

import (
	"fmt"
	"sort"
	"time"
)

// ScheduleStatus is the lifecycle state of a single schedule item.
// Transitions: planned → completed (user action) or planned → missed
// (server-side sweep). Both are one-way from the client's point of view.
type ScheduleStatus string

const (
	SchedulePlanned   ScheduleStatus = "planned"
	ScheduleCompleted ScheduleStatus = "completed"
	ScheduleMissed    ScheduleStatus = "missed"
)

// ScheduleItem is one concrete calendar occurrence of a workout plan.
type ScheduleItem struct {
	Date   time.Time      `json:"date"`
	Status ScheduleStatus `json:"status"`
}

// WorkoutPlan is a named workout program with a date range and recurring
// weekdays. NumExercises is a denormalized count maintained by the backend
// and never recomputed client-side.
type WorkoutPlan struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	StartDate     Date           `json:"startDate"`
	EndDate       Date           `json:"endDate"`
	DaysOfWeek    []int          `json:"daysOfWeek"`
	Status        string         `json:"status,omitempty"`
	NumExercises  int            `json:"numExercises"`
	ScheduleItems []ScheduleItem `json:"scheduleItems,omitempty"`
}

// PlanDetail is a plan with its (filtered) exercise list, as returned by
// the list-exercises endpoint.
type PlanDetail struct {
	WorkoutPlan
	Exercises []Exercise `json:"exercises"`
}

// Missed reports whether the whole plan has been flagged missed by the server.
func (p *WorkoutPlan) Missed() bool { return p.Status == string(ScheduleMissed) }

// ItemOn returns the schedule item falling on the same calendar date as at,
// observed in loc, or nil if the plan has no occurrence that day.
func (p *WorkoutPlan) ItemOn(at time.Time, loc *time.Location) *ScheduleItem {
	for i := range p.ScheduleItems {
		if SameCalendarDay(p.ScheduleItems[i].Date, at, loc) {
			return &p.ScheduleItems[i]
		}
	}
	return nil
}

// NextScheduled returns the date of the earliest schedule item on or after
// the calendar date of now, or nil when the plan has run out.
func (p *WorkoutPlan) NextScheduled(now time.Time, loc *time.Location) *time.Time {
	nl := now.In(loc)
	today := time.Date(nl.Year(), nl.Month(), nl.Day(), 0, 0, 0, 0, loc)

	var candidates []time.Time
	for _, item := range p.ScheduleItems {
		if !item.Date.In(loc).Before(today) {
			candidates = append(candidates, item.Date)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Before(candidates[j]) })
	return &candidates[0]
}

// Progress returns completed and total schedule item counts.
func (p *WorkoutPlan) Progress() (completed, total int) {
	for _, item := range p.ScheduleItems {
		if item.Status == ScheduleCompleted {
			completed++
		}
	}
	return completed, len(p.ScheduleItems)
}

// ValidateDaysOfWeek checks that weekday values are unique and in [0,6]
// (0 = Sunday).
func ValidateDaysOfWeek(days []int) error {
	if len(days) == 0 {
		return fmt.Errorf("at least one weekday is required")
	}
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return fmt.Errorf("weekday %d out of range [0,6]", d)
		}
		if seen[d] {
			return fmt.Errorf("weekday %d listed twice", d)
		}
		seen[d] = true
	}
	return nil
}
