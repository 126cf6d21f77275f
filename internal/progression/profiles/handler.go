package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitcoach/internal/auth"
	"github.com/2beens/fitcoach/internal/middleware"
	"github.com/2beens/fitcoach/internal/progression/benchmarks"
	"github.com/2beens/fitcoach/internal/schedule"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=profiles_test

type profileService interface {
	SubmitBenchmarkResult(ctx context.Context, sub Submission) (*SubmissionResult, error)
	GetProfile(ctx context.Context, userID, sportID string) (*SportProfile, error)
	SportLevel(ctx context.Context, userID, sportID string) (benchmarks.Level, error)
}

type userSource interface {
	Get(ctx context.Context, id string) (*User, error)
}

type statsSource interface {
	Stats(ctx context.Context, userID string) (*schedule.Stats, error)
}

type BenchmarkResultRequest struct {
	SportID     string            `json:"sportId"`
	WorkoutID   string            `json:"workoutId"`
	WorkoutName string            `json:"workoutName"`
	Result      benchmarks.Result `json:"result"`
}

type MeResponse struct {
	User       *User            `json:"user"`
	SportLevel benchmarks.Level `json:"sport_level,omitempty"`
	Stats      *schedule.Stats  `json:"stats"`
}

type Handler struct {
	profiles profileService
	users    userSource
	stats    statsSource
}

func NewHandler(profiles profileService, users userSource, stats statsSource) *Handler {
	return &Handler{
		profiles: profiles,
		users:    users,
		stats:    stats,
	}
}

func (handler *Handler) SetupRoutes(
	r *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	submitAllowedPerMin int,
	metricsManager *metrics.Manager,
) {
	r.HandleFunc("/users/me", handler.HandleMe).Methods("GET", "OPTIONS").Name("me")
	r.HandleFunc("/users/me/profiles/{sportId}", handler.HandleGetProfile).Methods("GET", "OPTIONS").Name("get-sport-profile")

	submitRouter := r.PathPrefix("/users").Subrouter()
	submitRouter.
		HandleFunc("/benchmark-result", handler.HandleSubmitBenchmarkResult).
		Methods("POST", "OPTIONS").Name("submit-benchmark-result")
	submitRouter.Use(middleware.RateLimit(rateLimiter, "benchmark-result", submitAllowedPerMin, metricsManager))
}

func (handler *Handler) HandleSubmitBenchmarkResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.submit")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, pkg.ErrCodeUnauthorized, "not authenticated")
		return
	}

	var req BenchmarkResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("benchmark result, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, pkg.ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if req.SportID == "" || req.WorkoutName == "" {
		pkg.WriteJSONError(w, http.StatusBadRequest, pkg.ErrCodeInvalidRequest, "sportId and workoutName are required")
		return
	}
	span.SetAttributes(attribute.String("benchmark", req.WorkoutName))

	res, err := handler.profiles.SubmitBenchmarkResult(ctx, Submission{
		UserID:        userID,
		SportID:       req.SportID,
		WorkoutID:     req.WorkoutID,
		BenchmarkName: req.WorkoutName,
		Result:        req.Result,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, res)
}

func (handler *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.me")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, pkg.ErrCodeUnauthorized, "not authenticated")
		return
	}

	user, err := handler.users.Get(ctx, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	stats, err := handler.stats.Stats(ctx, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := MeResponse{
		User:  user,
		Stats: stats,
	}
	if sportID := r.URL.Query().Get("sportId"); sportID != "" {
		resp.SportLevel, err = handler.profiles.SportLevel(ctx, userID, sportID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
	}

	pkg.WriteJSON(w, http.StatusOK, resp)
}

func (handler *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, pkg.ErrCodeUnauthorized, "not authenticated")
		return
	}

	profile, err := handler.profiles.GetProfile(ctx, userID, mux.Vars(r)["sportId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, profile)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProfileNotFound), errors.Is(err, ErrUserNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, pkg.ErrCodeNotFound, err.Error())
	case errors.Is(err, ErrInvalidSportID), errors.Is(err, ErrMissingBenchmark):
		pkg.WriteJSONError(w, http.StatusBadRequest, pkg.ErrCodeInvalidRequest, err.Error())
	default:
		log.Errorf("profiles request failed: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, pkg.ErrCodeServerError, "internal error")
	}
}
