package api

import (
	"context"
	"net/http"

	"github.com/akovalenko/fitterm/internal/domain"
)

// MeasurementService wraps the body-measurements endpoints.
type MeasurementService struct {
	c *Client
}

func (s *MeasurementService) Create(ctx context.Context, m domain.Measurement) error {
	return s.c.do(ctx, http.MethodPost, "body-measurements", nil, m, nil)
}

// ChartData returns the measurement series for key between two dates
// (either date may be empty for an open range).
func (s *MeasurementService) ChartData(ctx context.Context, key, startDate, endDate string) ([]domain.ChartPoint, error) {
	params := NewParams().
		Str("key", key).
		Str("startDate", startDate).
		Str("endDate", endDate)

	var out []domain.ChartPoint
	if err := s.c.do(ctx, http.MethodGet, "body-measurements/chart", params.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MeasurementService) LatestProgress(ctx context.Context, key string) (*domain.MeasurementProgress, error) {
	params := NewParams().Str("key", key)
	var out domain.MeasurementProgress
	if err := s.c.do(ctx, http.MethodGet, "body-measurements/progress", params.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
