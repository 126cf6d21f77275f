package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitcoach/internal/telemetry/tracing"
)

// Repo reads workouts owned by the catalog service. It never writes.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetWorkout(ctx context.Context, id string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.workout.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("workout.id", id))

	if _, parseErr := uuid.Parse(id); parseErr != nil {
		return nil, ErrWorkoutNotFound
	}

	var (
		w           Workout
		sportID     *string
		sportName   *string
		workoutType *string
		difficulty  *string
		intensity   *string
	)
	err = r.db.QueryRow(ctx, `
		SELECT w.id::text, w.sport_id::text, s.name, w.name,
		       w.workout_type, w.difficulty, w.intensity, w.duration_minutes
		FROM workout w
		LEFT JOIN sport s ON s.id = w.sport_id
		WHERE w.id = $1
	`, id).Scan(
		&w.ID, &sportID, &sportName, &w.Name,
		&workoutType, &difficulty, &intensity, &w.DurationMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("get workout: %w", err)
	}

	w.SportID = deref(sportID)
	w.SportName = deref(sportName)
	w.WorkoutType = deref(workoutType)
	w.Difficulty = deref(difficulty)
	w.Intensity = deref(intensity)

	return &w, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
