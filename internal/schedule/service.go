package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitcoach/internal/catalog"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
)

// scheduleRepo is faked in memory in tests (repo_mock_test.go) rather than
// generated with mockgen, so the fake can enforce the one entry per date constraint.
type scheduleRepo interface {
	Add(ctx context.Context, entry Entry) (*Entry, error)
	Get(ctx context.Context, id, userID string) (*Entry, error)
	GetByDate(ctx context.Context, userID string, date Date) (*Entry, error)
	ExistsOnDate(ctx context.Context, userID string, date Date, excludeID string) (bool, error)
	Update(ctx context.Context, id, userID string, patch Patch, updatedAt time.Time) error
	Delete(ctx context.Context, id, userID string) error
	List(ctx context.Context, params ListParams) ([]Entry, error)
	Count(ctx context.Context, params FilterParams) (int, error)
	CountByStatus(ctx context.Context, userID string) (map[Status]int, error)
}

type workoutLookup interface {
	GetWorkout(ctx context.Context, id string) (*catalog.Workout, error)
}

type PageConfig struct {
	DefaultSize int
	MaxSize     int
}

type CreateParams struct {
	WorkoutID     string
	ScheduledDate Date
	Notes         *string
}

type Service struct {
	repo           scheduleRepo
	workouts       workoutLookup
	metricsManager *metrics.Manager
	pageConfig     PageConfig

	nowFunc   func() time.Time
	newIDFunc func() string
}

func NewService(
	repo scheduleRepo,
	workouts workoutLookup,
	metricsManager *metrics.Manager,
	pageConfig PageConfig,
) *Service {
	if pageConfig.MaxSize <= 0 {
		pageConfig.MaxSize = 500
	}
	if pageConfig.DefaultSize <= 0 || pageConfig.DefaultSize > pageConfig.MaxSize {
		pageConfig.DefaultSize = min(50, pageConfig.MaxSize)
	}
	return &Service{
		repo:           repo,
		workouts:       workouts,
		metricsManager: metricsManager,
		pageConfig:     pageConfig,
		nowFunc:        time.Now,
		newIDFunc:      func() string { return uuid.NewString() },
	}
}

// Create schedules a workout for the user. The workout must exist in the
// catalog and the date must be free.
func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.schedule.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.String("workout.id", params.WorkoutID),
		attribute.String("date", params.ScheduledDate.String()),
	)

	if _, err := s.workouts.GetWorkout(ctx, params.WorkoutID); err != nil {
		return nil, fmt.Errorf("resolve workout %s: %w", params.WorkoutID, err)
	}

	taken, err := s.repo.ExistsOnDate(ctx, userID, params.ScheduledDate, "")
	if err != nil {
		return nil, err
	}
	if taken {
		s.countConflict()
		return nil, ErrScheduleConflict
	}

	now := s.nowFunc()
	added, err := s.repo.Add(ctx, Entry{
		ID:            s.newIDFunc(),
		UserID:        userID,
		WorkoutID:     params.WorkoutID,
		ScheduledDate: params.ScheduledDate,
		Status:        StatusScheduled,
		Notes:         params.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		if errors.Is(err, ErrScheduleConflict) {
			s.countConflict()
		}
		return nil, err
	}
	s.countTransition(StatusScheduled)

	// re-read to get the workout display fields
	return s.repo.Get(ctx, added.ID, userID)
}

func (s *Service) Get(ctx context.Context, id, userID string) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.schedule.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return s.repo.Get(ctx, id, userID)
}

// FindByDate returns the user's entry on date, or nil when the date is free.
func (s *Service) FindByDate(ctx context.Context, userID string, date Date) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.schedule.findbydate")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	entry, err := s.repo.GetByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, ErrScheduleEntryNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// List returns one page of the user's entries ordered by date, plus the
// number of entries matching the filters across all pages.
func (s *Service) List(ctx context.Context, params ListParams) (_ []Entry, count int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.schedule.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	params.Limit, params.Offset = s.normalizePage(params.Limit, params.Offset)

	entries, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	count, err = s.repo.Count(ctx, params.FilterParams)
	if err != nil {
		return nil, 0, err
	}

	return entries, count, nil
}

func (s *Service) normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = s.pageConfig.DefaultSize
	}
	if limit > s.pageConfig.MaxSize {
		limit = s.pageConfig.MaxSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Update applies the patch to the user's entry. A date change must land on a free date.
func (s *Service) Update(ctx context.Context, id, userID string, patch Patch) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.schedule.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("id", id))

	if patch.Status != nil && !patch.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *patch.Status)
	}
	if patch.CompletedSessionID != nil {
		if _, err := uuid.Parse(*patch.CompletedSessionID); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, *patch.CompletedSessionID)
		}
	}

	existing, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if patch.ScheduledDate != nil && !patch.ScheduledDate.Equal(existing.ScheduledDate) {
		taken, err := s.repo.ExistsOnDate(ctx, userID, *patch.ScheduledDate, id)
		if err != nil {
			return nil, err
		}
		if taken {
			s.countConflict()
			return nil, ErrScheduleConflict
		}
	}

	if err := s.repo.Update(ctx, id, userID, patch, s.nowFunc()); err != nil {
		if errors.Is(err, ErrScheduleConflict) {
			s.countConflict()
		}
		return nil, err
	}

	if patch.Status != nil && *patch.Status != existing.Status {
		log.Debugf("schedule entry %s: %s -> %s", id, existing.Status, *patch.Status)
		s.countTransition(*patch.Status)
	}

	return s.repo.Get(ctx, id, userID)
}

// MarkCompleted completes the entry. A nil sessionID keeps the stored session reference.
func (s *Service) MarkCompleted(ctx context.Context, id, userID string, sessionID *string) (*Entry, error) {
	completed := StatusCompleted
	return s.Update(ctx, id, userID, Patch{
		Status:             &completed,
		CompletedSessionID: sessionID,
	})
}

func (s *Service) MarkSkipped(ctx context.Context, id, userID string) (*Entry, error) {
	skipped := StatusSkipped
	return s.Update(ctx, id, userID, Patch{
		Status: &skipped,
	})
}

// Reschedule moves the entry to newDate and marks it rescheduled.
// Moving an entry to the date it already has is rejected.
func (s *Service) Reschedule(ctx context.Context, id, userID string, newDate Date) (*Entry, error) {
	current, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if current.ScheduledDate.Equal(newDate) {
		return nil, ErrRescheduleSameDate
	}

	rescheduled := StatusRescheduled
	return s.Update(ctx, id, userID, Patch{
		ScheduledDate: &newDate,
		Status:        &rescheduled,
	})
}

func (s *Service) Delete(ctx context.Context, id, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.schedule.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return s.repo.Delete(ctx, id, userID)
}

func (s *Service) Stats(ctx context.Context, userID string) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.schedule.stats")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	byStatus, err := s.repo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		ByStatus: make(map[Status]int, len(Statuses)),
	}
	for _, status := range Statuses {
		stats.ByStatus[status] = byStatus[status]
		stats.Total += byStatus[status]
	}
	return stats, nil
}

func (s *Service) countConflict() {
	if s.metricsManager != nil {
		s.metricsManager.CounterScheduleConflicts.Inc()
	}
}

func (s *Service) countTransition(status Status) {
	if s.metricsManager != nil {
		s.metricsManager.CounterScheduleTransitions.WithLabelValues(string(status)).Inc()
	}
}
