package domain

import "time"

// SetEntry is one logged exercise set.
type SetEntry struct {
	ID        string    `json:"id"`
	Weight    float64   `json:"weight"`
	Reps      int       `json:"reps"`
	RPE       float64   `json:"rpe,omitempty"`
	Volume    float64   `json:"volume"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExerciseStats summarizes an exercise's logged history.
type ExerciseStats struct {
	PersonalRecord1RM float64 `json:"personalRecord1RM"`
	TotalVolume       float64 `json:"totalVolume"`
}

// TimelinePoint is one day of aggregated tracking history.
type TimelinePoint struct {
	Date           Date    `json:"date"`
	Max1RM         float64 `json:"max1RM"`
	TotalVolume    float64 `json:"totalVolume"`
	PersonalRecord float64 `json:"personalRecord"`
}
