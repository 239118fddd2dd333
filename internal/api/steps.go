package api

import (
	"context"
	"net/http"

	"github.com/akovalenko/fitterm/internal/domain"
)

// StepService wraps the steps-of-exercise endpoints.
type StepService struct {
	c *Client
}

func (s *StepService) ByExercise(ctx context.Context, exerciseID string) ([]domain.Step, error) {
	var out []domain.Step
	if err := s.c.do(ctx, http.MethodGet, "steps-of-exercise/exercise/"+exerciseID, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveMany replaces the exercise's entire ordered step list. Order values
// are renumbered 1..n before sending so the server never sees gaps.
func (s *StepService) SaveMany(ctx context.Context, exerciseID string, steps []domain.Step) error {
	domain.NormalizeOrder(steps)
	body := map[string][]domain.Step{"steps": steps}
	return s.c.do(ctx, http.MethodPatch, "steps-of-exercise/exercise/"+exerciseID+"/steps", nil, body, nil)
}

func (s *StepService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "steps-of-exercise/"+id, nil, nil, nil)
}
