package profiles

import (
	"errors"
	"time"

	"github.com/2beens/fitcoach/internal/progression/benchmarks"
)

var (
	ErrProfileNotFound  = errors.New("sport profile not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidSportID   = errors.New("invalid sport id")
	ErrMissingBenchmark = errors.New("benchmark name is required")
)

// BenchmarkEntry is the latest attempt on one benchmark.
type BenchmarkEntry struct {
	WorkoutID string            `json:"workout_id"`
	Result    benchmarks.Result `json:"result"`
	Date      time.Time         `json:"date"`
}

// BenchmarkResults maps a benchmark display name to its latest attempt.
type BenchmarkResults map[string]BenchmarkEntry

func (br BenchmarkResults) clone() BenchmarkResults {
	c := make(BenchmarkResults, len(br)+1)
	for name, entry := range br {
		c[name] = entry
	}
	return c
}

// SportProfile is the per (user, sport) progression aggregate.
type SportProfile struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	SportID          string           `json:"sport_id"`
	SportLevel       benchmarks.Level `json:"sport_level"`
	BenchmarkResults BenchmarkResults `json:"benchmark_results"`
	IsPrimarySport   bool             `json:"is_primary_sport"`
	IsActive         bool             `json:"is_active"`
	LastActivityAt   *time.Time       `json:"last_activity_at"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type Submission struct {
	UserID        string
	SportID       string
	WorkoutID     string
	BenchmarkName string
	Result        benchmarks.Result
}

type SubmissionResult struct {
	Success          bool             `json:"success"`
	Level            benchmarks.Level `json:"level"`
	BenchmarkResults BenchmarkResults `json:"benchmark_results"`
}

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}
