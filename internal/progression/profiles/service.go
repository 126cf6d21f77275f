package profiles

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitcoach/internal/progression/benchmarks"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=profiles

type profileRepo interface {
	Get(ctx context.Context, userID, sportID string) (*SportProfile, error)
	Mutate(ctx context.Context, userID, sportID string, mutate MutateFunc) (*SportProfile, error)
}

type Service struct {
	repo           profileRepo
	metricsManager *metrics.Manager

	nowFunc   func() time.Time
	newIDFunc func() string
}

func NewService(repo profileRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		nowFunc:        time.Now,
		newIDFunc:      func() string { return uuid.NewString() },
	}
}

// SubmitBenchmarkResult records the latest attempt on a benchmark, reclassifies
// the sport level and returns the level with the full results map.
// The profile is created on the first submission for the (user, sport) pair.
func (s *Service) SubmitBenchmarkResult(ctx context.Context, sub Submission) (_ *SubmissionResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profiles.submit")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("sport.id", sub.SportID),
		attribute.String("benchmark", sub.BenchmarkName),
	)

	if sub.BenchmarkName == "" {
		return nil, ErrMissingBenchmark
	}
	if _, err := uuid.Parse(sub.SportID); err != nil {
		return nil, ErrInvalidSportID
	}

	now := s.nowFunc()
	var previousLevel benchmarks.Level
	saved, err := s.repo.Mutate(ctx, sub.UserID, sub.SportID, func(current *SportProfile) *SportProfile {
		next := applySubmission(current, sub, now)
		if current == nil {
			next.ID = s.newIDFunc()
			previousLevel = benchmarks.LevelBeginner
		} else {
			previousLevel = current.SportLevel
		}
		return next
	})
	if err != nil {
		return nil, err
	}

	s.countSubmission(sub.BenchmarkName, previousLevel, saved.SportLevel)
	log.Debugf(
		"benchmark [%s] submitted by user %s for sport %s, level: %s -> %s",
		sub.BenchmarkName, sub.UserID, sub.SportID, previousLevel, saved.SportLevel,
	)

	return &SubmissionResult{
		Success:          true,
		Level:            saved.SportLevel,
		BenchmarkResults: saved.BenchmarkResults,
	}, nil
}

// applySubmission returns a copy of current (or a fresh profile when nil)
// with the submission merged in. current is left untouched.
func applySubmission(current *SportProfile, sub Submission, now time.Time) *SportProfile {
	var next SportProfile
	if current != nil {
		next = *current
		next.BenchmarkResults = current.BenchmarkResults.clone()
	} else {
		next = SportProfile{
			UserID:           sub.UserID,
			SportID:          sub.SportID,
			SportLevel:       benchmarks.LevelBeginner,
			BenchmarkResults: make(BenchmarkResults, 1),
			IsPrimarySport:   false,
			IsActive:         true,
			CreatedAt:        now,
		}
	}

	// only the latest attempt per benchmark is kept
	next.BenchmarkResults[sub.BenchmarkName] = BenchmarkEntry{
		WorkoutID: sub.WorkoutID,
		Result:    sub.Result,
		Date:      now,
	}
	next.SportLevel = benchmarks.Classify(sub.BenchmarkName, sub.Result, string(next.SportLevel))
	next.LastActivityAt = timePtr(now)
	next.UpdatedAt = now

	return &next
}

func (s *Service) GetProfile(ctx context.Context, userID, sportID string) (_ *SportProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profiles.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return s.repo.Get(ctx, userID, sportID)
}

// SportLevel returns the user's level in the sport, beginner when there is no profile yet.
func (s *Service) SportLevel(ctx context.Context, userID, sportID string) (benchmarks.Level, error) {
	profile, err := s.GetProfile(ctx, userID, sportID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return benchmarks.LevelBeginner, nil
		}
		return "", err
	}
	return benchmarks.ValidateLevel(string(profile.SportLevel)), nil
}

func (s *Service) countSubmission(benchmarkName string, from, to benchmarks.Level) {
	if s.metricsManager == nil {
		return
	}
	catalogLabel := "unknown"
	if _, ok := benchmarks.Lookup(benchmarkName); ok {
		catalogLabel = "known"
	}
	s.metricsManager.CounterBenchmarkSubmissions.WithLabelValues(catalogLabel).Inc()
	if from != to {
		s.metricsManager.CounterLevelChanges.WithLabelValues(string(from), string(to)).Inc()
	}
}
