package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/2beens/fitcoach/internal/catalog"
)

// repoMock mimics the postgres repo, including the (user, date) unique constraint.
type repoMock struct {
	mutex    sync.Mutex
	entries  map[string]Entry
	workouts map[string]catalog.Workout
}

func newRepoMock(workouts ...catalog.Workout) *repoMock {
	r := &repoMock{
		entries:  make(map[string]Entry),
		workouts: make(map[string]catalog.Workout),
	}
	for _, w := range workouts {
		r.workouts[w.ID] = w
	}
	return r
}

func (r *repoMock) enrich(e Entry) Entry {
	if w, ok := r.workouts[e.WorkoutID]; ok {
		e.WorkoutInfo = WorkoutInfo{
			WorkoutName:     w.Name,
			WorkoutType:     w.WorkoutType,
			Difficulty:      w.Difficulty,
			Intensity:       w.Intensity,
			DurationMinutes: w.DurationMinutes,
			SportName:       w.SportName,
		}
	}
	return e
}

func (r *repoMock) dateTaken(userID string, date Date, excludeID string) bool {
	for _, e := range r.entries {
		if e.UserID == userID && e.ScheduledDate.Equal(date) && e.ID != excludeID {
			return true
		}
	}
	return false
}

func (r *repoMock) Add(_ context.Context, entry Entry) (*Entry, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.dateTaken(entry.UserID, entry.ScheduledDate, "") {
		return nil, ErrScheduleConflict
	}
	r.entries[entry.ID] = entry
	return &entry, nil
}

func (r *repoMock) Get(_ context.Context, id, userID string) (*Entry, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return nil, ErrScheduleEntryNotFound
	}
	e = r.enrich(e)
	return &e, nil
}

func (r *repoMock) GetByDate(_ context.Context, userID string, date Date) (*Entry, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for _, e := range r.entries {
		if e.UserID == userID && e.ScheduledDate.Equal(date) {
			e = r.enrich(e)
			return &e, nil
		}
	}
	return nil, ErrScheduleEntryNotFound
}

func (r *repoMock) ExistsOnDate(_ context.Context, userID string, date Date, excludeID string) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.dateTaken(userID, date, excludeID), nil
}

func (r *repoMock) Update(_ context.Context, id, userID string, patch Patch, updatedAt time.Time) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return ErrScheduleEntryNotFound
	}
	if patch.ScheduledDate != nil {
		if r.dateTaken(userID, *patch.ScheduledDate, id) {
			return ErrScheduleConflict
		}
		e.ScheduledDate = *patch.ScheduledDate
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	if patch.CompletedSessionID != nil {
		e.CompletedSessionID = patch.CompletedSessionID
	}
	if patch.Notes != nil {
		e.Notes = patch.Notes
	}
	e.UpdatedAt = updatedAt
	r.entries[id] = e
	return nil
}

func (r *repoMock) Delete(_ context.Context, id, userID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return ErrScheduleEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *repoMock) filter(params FilterParams) []Entry {
	var matching []Entry
	for _, e := range r.entries {
		if e.UserID != params.UserID {
			continue
		}
		if params.StartDate != nil && e.ScheduledDate.Before(params.StartDate.Time) {
			continue
		}
		if params.EndDate != nil && e.ScheduledDate.After(params.EndDate.Time) {
			continue
		}
		if params.Status != nil && e.Status != *params.Status {
			continue
		}
		if params.WorkoutID != nil && e.WorkoutID != *params.WorkoutID {
			continue
		}
		matching = append(matching, r.enrich(e))
	}
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].ScheduledDate.Before(matching[j].ScheduledDate.Time)
	})
	return matching
}

func (r *repoMock) List(_ context.Context, params ListParams) ([]Entry, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	matching := r.filter(params.FilterParams)
	page := make([]Entry, 0)
	for i := params.Offset; i < len(matching) && len(page) < params.Limit; i++ {
		page = append(page, matching[i])
	}
	return page, nil
}

func (r *repoMock) Count(_ context.Context, params FilterParams) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.filter(params)), nil
}

func (r *repoMock) CountByStatus(_ context.Context, userID string) (map[Status]int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	counts := make(map[Status]int)
	for _, e := range r.entries {
		if e.UserID == userID {
			counts[e.Status]++
		}
	}
	return counts, nil
}

type workoutLookupMock struct {
	workouts map[string]catalog.Workout
}

func (m *workoutLookupMock) GetWorkout(_ context.Context, id string) (*catalog.Workout, error) {
	w, ok := m.workouts[id]
	if !ok {
		return nil, catalog.ErrWorkoutNotFound
	}
	return &w, nil
}
