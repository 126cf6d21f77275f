package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitcoach/internal/progression/benchmarks"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
)

const selectProfileColumns = `
	SELECT id::text, user_id::text, sport_id::text, sport_level, benchmark_results,
	       is_primary_sport, is_active, last_activity_at, created_at, updated_at
	FROM user_sport_profile
`

// MutateFunc gets the stored profile, or nil when the pair has none yet,
// and returns the profile to store.
type MutateFunc func(current *SportProfile) *SportProfile

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func validIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}

func scanProfile(row pgx.Row) (*SportProfile, error) {
	var (
		p           SportProfile
		level       string
		resultsJson []byte
	)
	if err := row.Scan(
		&p.ID, &p.UserID, &p.SportID, &level, &resultsJson,
		&p.IsPrimarySport, &p.IsActive, &p.LastActivityAt, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.SportLevel = benchmarks.ValidateLevel(level)
	p.BenchmarkResults = make(BenchmarkResults)
	if len(resultsJson) > 0 {
		if err := json.Unmarshal(resultsJson, &p.BenchmarkResults); err != nil {
			return nil, fmt.Errorf("unmarshal benchmark results of profile %s: %w", p.ID, err)
		}
	}
	return &p, nil
}

func (r *Repo) Get(ctx context.Context, userID, sportID string) (_ *SportProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("sport.id", sportID))

	if !validIDs(userID, sportID) {
		return nil, ErrProfileNotFound
	}

	profile, err := scanProfile(r.db.QueryRow(ctx,
		selectProfileColumns+`WHERE user_id = $1 AND sport_id = $2`,
		userID, sportID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get sport profile: %w", err)
	}
	return profile, nil
}

// Mutate runs a read-modify-write of the (user, sport) profile in one transaction.
// An existing row is locked while mutate runs. A missing one is inserted; when a
// concurrent insert wins the race, the committed row is locked and mutate runs
// again on it, so mutate must not have side effects beyond its return value.
func (r *Repo) Mutate(ctx context.Context, userID, sportID string, mutate MutateFunc) (_ *SportProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.mutate")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("sport.id", sportID))

	if !validIDs(userID, sportID) {
		return nil, ErrInvalidSportID
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Errorf("rollback sport profile mutation: %s", rbErr)
			}
		}
	}()

	current, err := lockProfile(ctx, tx, userID, sportID)
	if err != nil {
		return nil, err
	}

	var saved *SportProfile
	if current == nil {
		saved, err = insertProfile(ctx, tx, userID, sportID, mutate(nil))
		if err != nil {
			return nil, err
		}
		if saved == nil {
			span.AddEvent("insert lost race, retrying on committed row")
			current, err = lockProfile(ctx, tx, userID, sportID)
			if err != nil {
				return nil, err
			}
			if current == nil {
				return nil, fmt.Errorf("sport profile for user %s, sport %s vanished after insert conflict", userID, sportID)
			}
		}
	}
	if current != nil {
		saved, err = updateProfile(ctx, tx, current.ID, mutate(current))
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit sport profile: %w", err)
	}
	return saved, nil
}

// lockProfile returns the locked profile row, or nil when there is none.
func lockProfile(ctx context.Context, tx pgx.Tx, userID, sportID string) (*SportProfile, error) {
	profile, err := scanProfile(tx.QueryRow(ctx,
		selectProfileColumns+`WHERE user_id = $1 AND sport_id = $2 FOR UPDATE`,
		userID, sportID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock sport profile: %w", err)
	}
	return profile, nil
}

// insertProfile returns nil, nil when a concurrent transaction already
// created the (user, sport) row.
func insertProfile(ctx context.Context, tx pgx.Tx, userID, sportID string, next *SportProfile) (*SportProfile, error) {
	resultsJson, err := json.Marshal(next.BenchmarkResults)
	if err != nil {
		return nil, fmt.Errorf("marshal benchmark results: %w", err)
	}

	saved, err := scanProfile(tx.QueryRow(ctx, `
		INSERT INTO user_sport_profile (
			id, user_id, sport_id, sport_level, benchmark_results,
			is_primary_sport, is_active, last_activity_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, sport_id) DO NOTHING
		RETURNING id::text, user_id::text, sport_id::text, sport_level, benchmark_results,
		          is_primary_sport, is_active, last_activity_at, created_at, updated_at
	`,
		next.ID, userID, sportID, string(next.SportLevel), string(resultsJson),
		next.IsPrimarySport, next.IsActive, next.LastActivityAt, next.CreatedAt, next.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("insert sport profile: %w", err)
	}
	return saved, nil
}

func updateProfile(ctx context.Context, tx pgx.Tx, id string, next *SportProfile) (*SportProfile, error) {
	resultsJson, err := json.Marshal(next.BenchmarkResults)
	if err != nil {
		return nil, fmt.Errorf("marshal benchmark results: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE user_sport_profile
		SET sport_level = $2, benchmark_results = $3::jsonb, last_activity_at = $4, updated_at = $5
		WHERE id = $1
	`, id, string(next.SportLevel), string(resultsJson), next.LastActivityAt, next.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update sport profile: %w", err)
	}
	return next, nil
}

// UserRepo reads users owned by the accounts service.
type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

func (r *UserRepo) Get(ctx context.Context, id string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if !validIDs(id) {
		return nil, ErrUserNotFound
	}

	var u User
	err = r.db.QueryRow(ctx, `
		SELECT id::text, email, display_name, created_at
		FROM app_user
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.DisplayName, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
