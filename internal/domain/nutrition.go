package domain

import "time"

// MealEntry is one logged meal with macros parsed server-side from the
// free-text description. The client never parses nutrition text itself.
type MealEntry struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Calories    float64   `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fat         float64   `json:"fat"`
	LoggedAt    time.Time `json:"loggedAt"`
}

// DailySummary aggregates one day's logged meals.
type DailySummary struct {
	Date     Date        `json:"date"`
	Calories float64     `json:"calories"`
	Protein  float64     `json:"protein"`
	Carbs    float64     `json:"carbs"`
	Fat      float64     `json:"fat"`
	Meals    []MealEntry `json:"meals"`
}
