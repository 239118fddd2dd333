package domain

// MuscleGroups is the fixed set offered by the exercise forms and the
// detail view's muscle-group filter.
var MuscleGroups = []string{"Chest", "Back", "Shoulders", "Arms", "Legs", "Glutes", "Core"}

// MediaType distinguishes the two kinds of instructional media an
// exercise can carry.
type MediaType string

const (
	MediaVideo     MediaType = "video"
	MediaThumbnail MediaType = "thumbnail"
)

// Exercise is a single movement definition belonging to a workout plan,
// with prescribed sets/reps/rest and optional instructional media.
type Exercise struct {
	ID           string `json:"id"`
	WorkoutID    string `json:"workoutId,omitempty"`
	Name         string `json:"name"`
	MuscleGroup  string `json:"muscleGroup"`
	NumberOfSets int    `json:"numberOfSets"`
	Repetitions  int    `json:"repetitions"`
	RestTime     int    `json:"restTime"` // seconds
	Duration     int    `json:"duration"` // seconds
	Note         string `json:"note,omitempty"`
	VideoURL     string `json:"videoUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// HasMedia reports whether the exercise carries any instructional media.
func (e *Exercise) HasMedia() bool {
	return e.VideoURL != "" || e.ThumbnailURL != ""
}
