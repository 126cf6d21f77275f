//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitcoach/internal/progression/benchmarks"
	"github.com/2beens/fitcoach/internal/progression/profiles"
)

func floatPtr(f float64) *float64 {
	return &f
}

func (s *IntegrationTestSuite) TestProfiles_BenchmarkSubmission() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// no profile yet
	status, body := s.doRequest(ctx, "GET", "/users/me/profiles/"+testSportID, nil)
	require.Equal(s.T(), http.StatusNotFound, status, string(body))

	status, body = s.doRequest(ctx, "POST", "/users/benchmark-result", profiles.BenchmarkResultRequest{
		SportID:     testSportID,
		WorkoutID:   testWorkoutID,
		WorkoutName: "Fran",
		Result:      benchmarks.Result{TimeSeconds: floatPtr(170)},
	})
	require.Equal(s.T(), http.StatusOK, status, string(body))

	var res profiles.SubmissionResult
	s.decode(body, &res)
	assert.True(s.T(), res.Success)
	assert.Equal(s.T(), benchmarks.LevelElite, res.Level)
	require.Contains(s.T(), res.BenchmarkResults, "Fran")
	assert.Equal(s.T(), testWorkoutID, res.BenchmarkResults["Fran"].WorkoutID)

	// a benchmark without a standard is stored but keeps the level
	status, body = s.doRequest(ctx, "POST", "/users/benchmark-result", profiles.BenchmarkResultRequest{
		SportID:     testSportID,
		WorkoutID:   testWorkoutID,
		WorkoutName: "Backyard Loop",
		Result:      benchmarks.Result{Rounds: floatPtr(3)},
	})
	require.Equal(s.T(), http.StatusOK, status, string(body))
	res = profiles.SubmissionResult{}
	s.decode(body, &res)
	assert.Equal(s.T(), benchmarks.LevelElite, res.Level)
	assert.Len(s.T(), res.BenchmarkResults, 2)

	status, body = s.doRequest(ctx, "GET", "/users/me/profiles/"+testSportID, nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))
	var profile profiles.SportProfile
	s.decode(body, &profile)
	assert.Equal(s.T(), testUserID, profile.UserID)
	assert.Equal(s.T(), benchmarks.LevelElite, profile.SportLevel)
	assert.True(s.T(), profile.IsActive)
	assert.NotNil(s.T(), profile.LastActivityAt)

	status, body = s.doRequest(ctx, "GET", "/users/me?sportId="+testSportID, nil)
	require.Equal(s.T(), http.StatusOK, status, string(body))
	var me profiles.MeResponse
	s.decode(body, &me)
	require.NotNil(s.T(), me.User)
	assert.Equal(s.T(), testUserID, me.User.ID)
	assert.Equal(s.T(), "athlete@fitcoach.test", me.User.Email)
	assert.Equal(s.T(), benchmarks.LevelElite, me.SportLevel)
	require.NotNil(s.T(), me.Stats)
}

func (s *IntegrationTestSuite) TestProfiles_BadSubmission() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status, _ := s.doRequest(ctx, "POST", "/users/benchmark-result", profiles.BenchmarkResultRequest{
		WorkoutName: "Fran",
	})
	assert.Equal(s.T(), http.StatusBadRequest, status)

	status, _ = s.doRequest(ctx, "POST", "/users/benchmark-result", profiles.BenchmarkResultRequest{
		SportID:     "not-a-uuid",
		WorkoutName: "Fran",
	})
	assert.Equal(s.T(), http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestMisc_Healthz() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status, body := s.doRequestWithToken(ctx, "GET", "/healthz", nil, "")
	require.Equal(s.T(), http.StatusOK, status, string(body))
	assert.Contains(s.T(), string(body), `"status":"ok"`)

	status, body = s.doRequestWithToken(ctx, "GET", "/version", nil, "")
	require.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), "test-version-info", string(body))
}
