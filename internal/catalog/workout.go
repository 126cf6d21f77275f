package catalog

import "errors"

var ErrWorkoutNotFound = errors.New("workout not found")

// Workout is the read-only view of a catalog workout, with the display
// fields schedule entries are enriched with.
type Workout struct {
	ID              string `json:"id"`
	SportID         string `json:"sport_id,omitempty"`
	SportName       string `json:"sport_name,omitempty"`
	Name            string `json:"name"`
	WorkoutType     string `json:"workout_type,omitempty"`
	Difficulty      string `json:"difficulty,omitempty"`
	Intensity       string `json:"intensity,omitempty"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
}
