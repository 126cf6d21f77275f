package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitcoach/internal/catalog"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"
)

const selectEntryColumns = `
	SELECT ws.id::text, ws.user_id::text, ws.workout_id::text, ws.scheduled_date, ws.status,
	       ws.completed_session_id::text, ws.notes, ws.created_at, ws.updated_at,
	       COALESCE(w.name, ''), COALESCE(w.workout_type, ''), COALESCE(w.difficulty, ''),
	       COALESCE(w.intensity, ''), w.duration_minutes, COALESCE(s.name, '')
	FROM workout_schedule ws
	LEFT JOIN workout w ON w.id = ws.workout_id
	LEFT JOIN sport s ON s.id = w.sport_id
`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func dateArg(d *Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

func statusArg(s *Status) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

func stringArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var (
		e             Entry
		scheduledDate time.Time
		status        string
	)
	if err := row.Scan(
		&e.ID, &e.UserID, &e.WorkoutID, &scheduledDate, &status,
		&e.CompletedSessionID, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
		&e.WorkoutName, &e.WorkoutType, &e.Difficulty,
		&e.Intensity, &e.DurationMinutes, &e.SportName,
	); err != nil {
		return nil, err
	}
	e.ScheduledDate = DateOf(scheduledDate)
	e.Status = Status(status)
	return &e, nil
}

func (r *Repo) Add(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	_, err = r.db.Exec(ctx, `
		INSERT INTO workout_schedule (
			id, user_id, workout_id, scheduled_date, status,
			completed_session_id, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		entry.ID, entry.UserID, entry.WorkoutID, entry.ScheduledDate.Time, string(entry.Status),
		stringArg(entry.CompletedSessionID), stringArg(entry.Notes), entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrScheduleConflict
		}
		if pkg.IsForeignKeyViolationError(err) {
			return nil, catalog.ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("insert schedule entry: %w", err)
	}

	return &entry, nil
}

// Get returns the entry only when it belongs to userID.
func (r *Repo) Get(ctx context.Context, id, userID string) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("id", id))

	if !isUUID(id) || !isUUID(userID) {
		return nil, ErrScheduleEntryNotFound
	}

	entry, err := scanEntry(r.db.QueryRow(ctx,
		selectEntryColumns+`WHERE ws.id = $1 AND ws.user_id = $2`,
		id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScheduleEntryNotFound
		}
		return nil, fmt.Errorf("get schedule entry: %w", err)
	}
	return entry, nil
}

func (r *Repo) GetByDate(ctx context.Context, userID string, date Date) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.getbydate")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("date", date.String()))

	if !isUUID(userID) {
		return nil, ErrScheduleEntryNotFound
	}

	entry, err := scanEntry(r.db.QueryRow(ctx,
		selectEntryColumns+`WHERE ws.user_id = $1 AND ws.scheduled_date = $2`,
		userID, date.Time,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScheduleEntryNotFound
		}
		return nil, fmt.Errorf("get schedule entry by date: %w", err)
	}
	return entry, nil
}

// ExistsOnDate reports whether userID has an entry on date, other than excludeID.
func (r *Repo) ExistsOnDate(ctx context.Context, userID string, date Date, excludeID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.existsondate")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if !isUUID(userID) {
		return false, nil
	}
	var excludeArg any
	if isUUID(excludeID) {
		excludeArg = excludeID
	}

	var exists bool
	err = r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM workout_schedule
			WHERE user_id = $1
			  AND scheduled_date = $2
			  AND ($3::uuid IS NULL OR id <> $3)
		)
	`, userID, date.Time, excludeArg).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check schedule date: %w", err)
	}
	return exists, nil
}

func (r *Repo) Update(ctx context.Context, id, userID string, patch Patch, updatedAt time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("id", id))

	if !isUUID(id) || !isUUID(userID) {
		return ErrScheduleEntryNotFound
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE workout_schedule
		SET scheduled_date       = COALESCE($3::date, scheduled_date),
		    status               = COALESCE($4::varchar, status),
		    completed_session_id = COALESCE($5::uuid, completed_session_id),
		    notes                = COALESCE($6::text, notes),
		    updated_at           = $7
		WHERE id = $1 AND user_id = $2
	`,
		id, userID,
		dateArg(patch.ScheduledDate),
		statusArg(patch.Status),
		stringArg(patch.CompletedSessionID),
		stringArg(patch.Notes),
		updatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrScheduleConflict
		}
		return fmt.Errorf("update schedule entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleEntryNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("id", id))

	if !isUUID(id) || !isUUID(userID) {
		return ErrScheduleEntryNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_schedule WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete schedule entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleEntryNotFound
	}
	return nil
}

const filterWhere = `
	WHERE ws.user_id = $1
	  AND ($2::date IS NULL OR ws.scheduled_date >= $2)
	  AND ($3::date IS NULL OR ws.scheduled_date <= $3)
	  AND ($4::varchar IS NULL OR ws.status = $4)
	  AND ($5::uuid IS NULL OR ws.workout_id = $5)
`

// unmatchable reports filters that cannot match any row, such as malformed ids.
func unmatchable(params FilterParams) bool {
	if !isUUID(params.UserID) {
		return true
	}
	return params.WorkoutID != nil && !isUUID(*params.WorkoutID)
}

func filterArgs(params FilterParams) []any {
	return []any{
		params.UserID,
		dateArg(params.StartDate),
		dateArg(params.EndDate),
		statusArg(params.Status),
		stringArg(params.WorkoutID),
	}
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(
		attribute.Int("limit", params.Limit),
		attribute.Int("offset", params.Offset),
	)
	if params.Status != nil {
		span.SetAttributes(attribute.String("status", string(*params.Status)))
	}

	entries := make([]Entry, 0)
	if unmatchable(params.FilterParams) {
		return entries, nil
	}

	args := append(filterArgs(params.FilterParams), params.Limit, params.Offset)
	rows, err := r.db.Query(ctx,
		selectEntryColumns+filterWhere+`
		ORDER BY ws.scheduled_date ASC
		LIMIT $6 OFFSET $7
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedule entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Count returns the number of entries matching params, regardless of paging.
func (r *Repo) Count(ctx context.Context, params FilterParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.count")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if unmatchable(params) {
		return 0, nil
	}

	var count int
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM workout_schedule ws`+filterWhere,
		filterArgs(params)...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count schedule entries: %w", err)
	}
	return count, nil
}

func (r *Repo) CountByStatus(ctx context.Context, userID string) (_ map[Status]int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.countbystatus")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	counts := make(map[Status]int)
	if !isUUID(userID) {
		return counts, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*)
		FROM workout_schedule
		WHERE user_id = $1
		GROUP BY status
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("count schedule entries by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[Status(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
