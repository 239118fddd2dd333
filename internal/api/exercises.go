package api

import (
	"context"
	"net/http"

	"github.com/akovalenko/fitterm/internal/domain"
)

// ExerciseService wraps the v1/exercises endpoints.
type ExerciseService struct {
	c *Client
}

// ExercisePayload is the create/update body for an exercise.
type ExercisePayload struct {
	Name         string `json:"name"`
	MuscleGroup  string `json:"muscleGroup"`
	NumberOfSets int    `json:"numberOfSets"`
	Repetitions  int    `json:"repetitions"`
	RestTime     int    `json:"restTime"`
	Duration     int    `json:"duration"`
	Note         string `json:"note,omitempty"`
}

func (s *ExerciseService) Create(ctx context.Context, workoutID string, p ExercisePayload) (*domain.Exercise, error) {
	var out domain.Exercise
	if err := s.c.do(ctx, http.MethodPost, "v1/exercises/"+workoutID, nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ExerciseService) Update(ctx context.Context, id string, p ExercisePayload) (*domain.Exercise, error) {
	var out domain.Exercise
	if err := s.c.do(ctx, http.MethodPatch, "v1/exercises/"+id, nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ExerciseService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "v1/exercises/"+id, nil, nil, nil)
}

// UploadMedia attaches the file at filePath to the exercise as mediaType
// (video or thumbnail). Multipart, unlike every other call.
func (s *ExerciseService) UploadMedia(ctx context.Context, id, filePath string, mediaType domain.MediaType) error {
	fields := map[string]string{"fileType": string(mediaType)}
	return s.c.upload(ctx, "v1/exercises/"+id+"/upload", filePath, fields, nil)
}
