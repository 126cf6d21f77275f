//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitcoach/internal/schedule"
)

func (s *IntegrationTestSuite) TestWorkoutSchedule_Lifecycle() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	day := schedule.NewDate(2031, time.March, 3)
	notes := "easy pace"

	status, body := s.doRequest(ctx, "POST", "/workout-schedule", schedule.CreateRequest{
		WorkoutID:     testWorkoutID,
		ScheduledDate: &day,
		Notes:         &notes,
	})
	require.Equal(s.T(), http.StatusCreated, status, string(body))

	var created schedule.Entry
	s.decode(body, &created)
	assert.Equal(s.T(), testUserID, created.UserID)
	assert.Equal(s.T(), schedule.StatusScheduled, created.Status)
	assert.Equal(s.T(), "Fran", created.WorkoutName)
	assert.Equal(s.T(), "CrossFit", created.SportName)
	require.NotNil(s.T(), created.Notes)
	assert.Equal(s.T(), notes, *created.Notes)

	// one workout per day
	status, body = s.doRequest(ctx, "POST", "/workout-schedule", schedule.CreateRequest{
		WorkoutID:     testWorkoutID,
		ScheduledDate: &day,
	})
	assert.Equal(s.T(), http.StatusConflict, status, string(body))

	status, body = s.doRequest(ctx, "GET", "/workout-schedule/by-date/"+day.String(), nil)
	require.Equal(s.T(), http.StatusOK, status)
	var byDate schedule.Entry
	s.decode(body, &byDate)
	assert.Equal(s.T(), created.ID, byDate.ID)

	sessionID := uuid.NewString()
	status, body = s.doRequest(ctx, "PATCH", "/workout-schedule/"+created.ID+"/complete", schedule.CompleteRequest{
		SessionID: &sessionID,
	})
	require.Equal(s.T(), http.StatusOK, status, string(body))
	var completed schedule.Entry
	s.decode(body, &completed)
	assert.Equal(s.T(), schedule.StatusCompleted, completed.Status)
	require.NotNil(s.T(), completed.CompletedSessionID)
	assert.Equal(s.T(), sessionID, *completed.CompletedSessionID)

	newDay := schedule.NewDate(2031, time.March, 5)
	status, body = s.doRequest(ctx, "PATCH", "/workout-schedule/"+created.ID+"/reschedule", schedule.RescheduleRequest{
		ScheduledDate: &newDay,
	})
	require.Equal(s.T(), http.StatusOK, status, string(body))
	var rescheduled schedule.Entry
	s.decode(body, &rescheduled)
	assert.Equal(s.T(), schedule.StatusRescheduled, rescheduled.Status)
	assert.True(s.T(), newDay.Equal(rescheduled.ScheduledDate))

	status, body = s.doRequest(ctx, "PATCH", "/workout-schedule/"+created.ID+"/reschedule", schedule.RescheduleRequest{
		ScheduledDate: &newDay,
	})
	assert.Equal(s.T(), http.StatusBadRequest, status, string(body))

	// the old date is free again
	status, body = s.doRequest(ctx, "GET", "/workout-schedule/by-date/"+day.String(), nil)
	require.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), "null", string(body))

	status, body = s.doRequest(ctx, "DELETE", "/workout-schedule/"+created.ID, nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))

	status, _ = s.doRequest(ctx, "GET", "/workout-schedule/"+created.ID, nil)
	assert.Equal(s.T(), http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestWorkoutSchedule_ListAndFilters() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ids := make([]string, 0, 3)
	for day := 10; day <= 12; day++ {
		date := schedule.NewDate(2032, time.June, day)
		status, body := s.doRequest(ctx, "POST", "/workout-schedule", schedule.CreateRequest{
			WorkoutID:     testWorkoutID,
			ScheduledDate: &date,
		})
		require.Equal(s.T(), http.StatusCreated, status, string(body))
		var e schedule.Entry
		s.decode(body, &e)
		ids = append(ids, e.ID)
	}
	defer func() {
		for _, id := range ids {
			s.doRequest(ctx, "DELETE", "/workout-schedule/"+id, nil)
		}
	}()

	status, body := s.doRequest(ctx, "PATCH", "/workout-schedule/"+ids[1]+"/skip", nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))

	status, body = s.doRequest(ctx, "GET", "/workout-schedule?start_date=2032-06-01&end_date=2032-06-30&limit=2", nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))
	var page schedule.ListResponse
	s.decode(body, &page)
	assert.Equal(s.T(), 3, page.Count)
	require.Len(s.T(), page.Rows, 2)
	assert.Equal(s.T(), ids[0], page.Rows[0].ID)
	assert.Equal(s.T(), ids[1], page.Rows[1].ID)

	status, body = s.doRequest(ctx, "GET", "/workout-schedule?start_date=2032-06-01&end_date=2032-06-30&status=skipped", nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))
	page = schedule.ListResponse{}
	s.decode(body, &page)
	assert.Equal(s.T(), 1, page.Count)
	require.Len(s.T(), page.Rows, 1)
	assert.Equal(s.T(), ids[1], page.Rows[0].ID)

	status, _ = s.doRequest(ctx, "GET", "/workout-schedule?status=finished", nil)
	assert.Equal(s.T(), http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestWorkoutSchedule_Unauthorized() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status, _ := s.doRequestWithToken(ctx, "GET", "/workout-schedule", nil, "")
	assert.Equal(s.T(), http.StatusUnauthorized, status)

	status, _ = s.doRequestWithToken(ctx, "GET", "/workout-schedule", nil, "unknown-token")
	assert.Equal(s.T(), http.StatusUnauthorized, status)
}
