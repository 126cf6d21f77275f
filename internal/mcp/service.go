package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitcoach/internal/progression/benchmarks"
	"github.com/2beens/fitcoach/internal/schedule"
)

var ErrUnknownBenchmark = errors.New("no standard for benchmark")

// scheduleLister reads a user's schedule page (for dependency injection and testing).
type scheduleLister interface {
	List(ctx context.Context, params schedule.ListParams) ([]schedule.Entry, int, error)
}

// coachService is what the tool handlers need. Used by Handler for testability.
type coachService interface {
	Standards(name string) ([]benchmarks.Standard, error)
	Classify(name string, result benchmarks.Result, currentLevel string) Classification
	ListSchedule(ctx context.Context, params schedule.ListParams) (*SchedulePage, error)
}

// Classification explains how a result was judged.
type Classification struct {
	Benchmark string            `json:"benchmark"`
	Level     benchmarks.Level  `json:"level"`
	Known     bool              `json:"known"`
	Metric    benchmarks.Metric `json:"metric,omitempty"`
	Value     *float64          `json:"value,omitempty"`
}

type SchedulePage struct {
	Rows  []schedule.Entry `json:"rows"`
	Count int              `json:"count"`
}

// CoachService implements the coach context lookups.
type CoachService struct {
	schedule scheduleLister
}

func NewCoachService(scheduleLister scheduleLister) *CoachService {
	return &CoachService{
		schedule: scheduleLister,
	}
}

// Standards returns the standard for name, or every standard when name is empty.
func (s *CoachService) Standards(name string) ([]benchmarks.Standard, error) {
	if name == "" {
		return benchmarks.All(), nil
	}
	std, ok := benchmarks.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownBenchmark, name)
	}
	return []benchmarks.Standard{std}, nil
}

// Classify runs the level classifier and reports the measurement it used.
func (s *CoachService) Classify(name string, result benchmarks.Result, currentLevel string) Classification {
	c := Classification{
		Benchmark: name,
		Level:     benchmarks.Classify(name, result, currentLevel),
	}
	std, ok := benchmarks.Lookup(name)
	if !ok {
		return c
	}
	c.Known = true
	c.Metric = std.Metric
	if m, ok := benchmarks.MeasurementFor(std, result); ok {
		c.Value = &m.Value
	}
	return c
}

func (s *CoachService) ListSchedule(ctx context.Context, params schedule.ListParams) (*SchedulePage, error) {
	rows, count, err := s.schedule.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []schedule.Entry{}
	}
	return &SchedulePage{
		Rows:  rows,
		Count: count,
	}, nil
}
