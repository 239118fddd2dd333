package api

import (
	"context"
	"net/http"

	"github.com/akovalenko/fitterm/internal/domain"
)

// NutritionService wraps the nutrition endpoints. Meal text is parsed
// into macros server-side; the client only ships the raw description.
type NutritionService struct {
	c *Client
}

// DailySummary returns the summary for date (YYYY-MM-DD), or for the
// server's notion of today when date is empty.
func (s *NutritionService) DailySummary(ctx context.Context, date string) (*domain.DailySummary, error) {
	params := NewParams().Str("date", date)
	var out domain.DailySummary
	if err := s.c.do(ctx, http.MethodGet, "nutrition/daily-summary", params.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LogMeal submits a free-text meal description for AI parsing.
func (s *NutritionService) LogMeal(ctx context.Context, mealText string) (*domain.MealEntry, error) {
	body := map[string]string{"meal": mealText}
	var out domain.MealEntry
	if err := s.c.do(ctx, http.MethodPost, "nutrition/log", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
