package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrScheduleEntryNotFound = errors.New("schedule entry not found")
	ErrScheduleConflict      = errors.New("a workout is already scheduled for this date")
	ErrInvalidStatus         = errors.New("invalid schedule status")
	ErrInvalidSessionID      = errors.New("invalid session id")
	ErrRescheduleSameDate    = errors.New("entry is already scheduled for this date")
)

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusCompleted   Status = "completed"
	StatusSkipped     Status = "skipped"
	StatusRescheduled Status = "rescheduled"
)

var Statuses = []Status{
	StatusScheduled,
	StatusCompleted,
	StatusSkipped,
	StatusRescheduled,
}

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusSkipped, StatusRescheduled:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

const DateLayout = "2006-01-02"

// Date is a calendar date without time of day, always held as UTC midnight.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time of day of t, keeping its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date [%s], expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// WorkoutInfo holds the catalog display fields a schedule entry is listed with.
type WorkoutInfo struct {
	WorkoutName     string `json:"workout_name,omitempty"`
	WorkoutType     string `json:"workout_type,omitempty"`
	Difficulty      string `json:"difficulty,omitempty"`
	Intensity       string `json:"intensity,omitempty"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
	SportName       string `json:"sport_name,omitempty"`
}

// Entry is one planned workout for one user on one calendar date.
type Entry struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	WorkoutID          string    `json:"workout_id"`
	ScheduledDate      Date      `json:"scheduled_date"`
	Status             Status    `json:"status"`
	CompletedSessionID *string   `json:"completed_session_id"`
	Notes              *string   `json:"notes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	WorkoutInfo
}

// Patch lists the fields an update changes; nil fields keep their value.
type Patch struct {
	ScheduledDate      *Date
	Status             *Status
	CompletedSessionID *string
	Notes              *string
}

func (p Patch) IsEmpty() bool {
	return p.ScheduledDate == nil &&
		p.Status == nil &&
		p.CompletedSessionID == nil &&
		p.Notes == nil
}

type FilterParams struct {
	UserID    string
	StartDate *Date
	EndDate   *Date
	Status    *Status
	WorkoutID *string
}

type ListParams struct {
	FilterParams
	Limit  int
	Offset int
}

// Stats counts a user's schedule entries.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"by_status"`
}
