package api

import (
	"context"
	"net/http"

	"github.com/akovalenko/fitterm/internal/domain"
)

// TrackingService wraps the per-exercise set tracking endpoints.
type TrackingService struct {
	c *Client
}

// LogSetRequest records one performed set.
type LogSetRequest struct {
	Weight float64  `json:"weight"`
	Reps   int      `json:"reps"`
	RPE    *float64 `json:"rpe,omitempty"`
}

func (s *TrackingService) LogSet(ctx context.Context, exerciseID string, req LogSetRequest) error {
	return s.c.do(ctx, http.MethodPost, "tracking/"+exerciseID+"/set", nil, req, nil)
}

func (s *TrackingService) Stats(ctx context.Context, exerciseID string) (*domain.ExerciseStats, error) {
	var out domain.ExerciseStats
	if err := s.c.do(ctx, http.MethodGet, "tracking/stats/"+exerciseID, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TrackingService) History(ctx context.Context, exerciseID string) ([]domain.SetEntry, error) {
	var out []domain.SetEntry
	if err := s.c.do(ctx, http.MethodGet, "tracking/"+exerciseID+"/progress", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Timeline returns day-aggregated history between two dates.
func (s *TrackingService) Timeline(ctx context.Context, exerciseID, startDate, endDate string) ([]domain.TimelinePoint, error) {
	params := NewParams().
		Str("startDate", startDate).
		Str("endDate", endDate)

	var out []domain.TimelinePoint
	if err := s.c.do(ctx, http.MethodGet, "tracking/"+exerciseID+"/timeline", params.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
