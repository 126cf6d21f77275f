package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=cached_lookup_mocks_test.go -package=catalog

type workoutSource interface {
	GetWorkout(ctx context.Context, id string) (*Workout, error)
}

// CachedLookup keeps recently resolved workouts in memory. Misses are not
// cached, so a workout added to the catalog is visible right away.
type CachedLookup struct {
	source         workoutSource
	cache          *freecache.Cache
	ttlSeconds     int
	metricsManager *metrics.Manager
}

func NewCachedLookup(
	source workoutSource,
	cacheSizeMB int,
	ttl time.Duration,
	metricsManager *metrics.Manager,
) *CachedLookup {
	megabyte := 1024 * 1024
	return &CachedLookup{
		source:         source,
		cache:          freecache.NewCache(cacheSizeMB * megabyte),
		ttlSeconds:     int(ttl.Seconds()),
		metricsManager: metricsManager,
	}
}

func (c *CachedLookup) GetWorkout(ctx context.Context, id string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.cached.workout.get")
	defer func() {
		if errors.Is(err, ErrWorkoutNotFound) {
			span.End()
			return
		}
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := []byte("workout::" + id)
	if workoutBytes, cacheErr := c.cache.Get(cacheKey); cacheErr == nil {
		var w Workout
		if err := json.Unmarshal(workoutBytes, &w); err == nil {
			c.countLookup("hit")
			return &w, nil
		} else {
			log.Errorf("failed to unmarshal workout %s from cache: %s", id, err)
		}
	}
	c.countLookup("miss")

	w, err := c.source.GetWorkout(ctx, id)
	if err != nil {
		return nil, err
	}

	if workoutBytes, err := json.Marshal(w); err != nil {
		log.Errorf("failed to marshal workout %s for cache: %s", id, err)
	} else if err := c.cache.Set(cacheKey, workoutBytes, c.ttlSeconds); err != nil {
		log.Errorf("failed to write workout cache for %s: %s", id, err)
	}

	return w, nil
}

func (c *CachedLookup) countLookup(result string) {
	if c.metricsManager != nil {
		c.metricsManager.CounterWorkoutCacheLookups.WithLabelValues(result).Inc()
	}
}
