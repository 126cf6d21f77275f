package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitcoach/internal/auth"
	"github.com/2beens/fitcoach/internal/catalog"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=schedule_test

type scheduleService interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Entry, error)
	Get(ctx context.Context, id, userID string) (*Entry, error)
	FindByDate(ctx context.Context, userID string, date Date) (*Entry, error)
	List(ctx context.Context, params ListParams) ([]Entry, int, error)
	Update(ctx context.Context, id, userID string, patch Patch) (*Entry, error)
	MarkCompleted(ctx context.Context, id, userID string, sessionID *string) (*Entry, error)
	MarkSkipped(ctx context.Context, id, userID string) (*Entry, error)
	Reschedule(ctx context.Context, id, userID string, newDate Date) (*Entry, error)
	Delete(ctx context.Context, id, userID string) error
}

type CreateRequest struct {
	WorkoutID     string  `json:"workout_id"`
	ScheduledDate *Date   `json:"scheduled_date"`
	Notes         *string `json:"notes"`
}

type UpdateRequest struct {
	ScheduledDate      *Date   `json:"scheduled_date"`
	Status             *Status `json:"status"`
	CompletedSessionID *string `json:"completed_session_id"`
	Notes              *string `json:"notes"`
}

type CompleteRequest struct {
	SessionID *string `json:"session_id"`
}

type RescheduleRequest struct {
	ScheduledDate *Date `json:"scheduled_date"`
}

type ListResponse struct {
	Rows  []Entry `json:"rows"`
	Count int     `json:"count"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

type Handler struct {
	service scheduleService
}

func NewHandler(service scheduleService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workout-schedule", handler.HandleList).Methods("GET", "OPTIONS").Name("list-schedule")
	r.HandleFunc("/workout-schedule", handler.HandleCreate).Methods("POST", "OPTIONS").Name("new-schedule-entry")
	r.HandleFunc("/workout-schedule/by-date/{date}", handler.HandleGetByDate).Methods("GET", "OPTIONS").Name("get-schedule-entry-by-date")
	r.HandleFunc("/workout-schedule/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-schedule-entry")
	r.HandleFunc("/workout-schedule/{id}", handler.HandleUpdate).Methods("PATCH", "OPTIONS").Name("update-schedule-entry")
	r.HandleFunc("/workout-schedule/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-schedule-entry")
	r.HandleFunc("/workout-schedule/{id}/complete", handler.HandleComplete).Methods("PATCH", "OPTIONS").Name("complete-schedule-entry")
	r.HandleFunc("/workout-schedule/{id}/skip", handler.HandleSkip).Methods("PATCH", "OPTIONS").Name("skip-schedule-entry")
	r.HandleFunc("/workout-schedule/{id}/reschedule", handler.HandleReschedule).Methods("PATCH", "OPTIONS").Name("reschedule-schedule-entry")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.list")
	defer span.End()

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	params, err := parseListParams(r)
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, pkg.ErrCodeInvalidRequest, err.Error())
		return
	}
	params.UserID = userID

	rows, count, err := handler.service.List(ctx, params)
	if err != nil {
		log.Errorf("list schedule for user %s: %s", userID, err)
		writeServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []Entry{}
	}

	pkg.WriteJSON(w, http.StatusOK, ListResponse{
		Rows:  rows,
		Count: count,
	})
}

func parseListParams(r *http.Request) (ListParams, error) {
	var params ListParams
	query := r.URL.Query()

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return params, errors.New("parameter <limit> must be a positive number")
		}
		params.Limit = limit
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return params, errors.New("parameter <offset> must be a non-negative number")
		}
		params.Offset = offset
	}
	if startStr := query.Get("start_date"); startStr != "" {
		start, err := ParseDate(startStr)
		if err != nil {
			return params, err
		}
		params.StartDate = &start
	}
	if endStr := query.Get("end_date"); endStr != "" {
		end, err := ParseDate(endStr)
		if err != nil {
			return params, err
		}
		params.EndDate = &end
	}
	if statusStr := query.Get("status"); statusStr != "" {
		status, err := ParseStatus(statusStr)
		if err != nil {
			return params, err
		}
		params.Status = &status
	}
	if workoutID := query.Get("workout_id"); workoutID != "" {
		params.WorkoutID = &workoutID
	}

	return params, nil
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.get")
	defer span.End()

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	entry, err := handler.service.Get(ctx, mux.Vars(r)["id"], userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, entry)
}

func (handler *Handler) HandleGetByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.getbydate")
	defer span.End()

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	date, err := ParseDate(mux.Vars(r)["date"])
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, pkg.ErrCodeInvalidRequest, err.Error())
		return
	}

	entry, err := handler.service.FindByDate(ctx, userID, date)
	if err != nil {
		log.Errorf("find schedule entry by date %s for user %s: %s", date, userID, err)
		writeServiceError(w, err)
		return
	}

	// a free date is not an error, the body is null
	pkg.WriteJSON(w, http.StatusOK, entry)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.create")
	defer span.End()

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("new schedule entry, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, pkg.ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if req.WorkoutID == "" || req.ScheduledDate == nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, pkg.ErrCodeInvalidRequest, "workout_id and scheduled_date are required")
		return
	}

	entry, err := handler.service.Create(ctx, userID, CreateParams{
		WorkoutID:     req.WorkoutID,
		ScheduledDate: *req.ScheduledDate,
		Notes:         req.Notes,
	})
	if err != nil {
		log.Warnf("failed to schedule workout %s on %s for user %s: %s", req.WorkoutID, req.ScheduledDate, userID, err)
		writeServiceError(w, err)
		return
	}

	log.Debugf("workout %s scheduled on %s for user %s: %s", entry.WorkoutID, entry.ScheduledDate, userID, entry.ID)
	pkg.WriteJSON(w, http.StatusCreated, entry)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.update")
	defer span.End()

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("update schedule entry, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, pkg.ErrCodeInvalidRequest, "invalid request body")
		return
	}

	patch := Patch{
		ScheduledDate:      req.ScheduledDate,
		Status:             req.Status,
		CompletedSessionID: req.CompletedSessionID,
		Notes:              req.Notes,
	}
	if patch.IsEmpty() {
		pkg.WriteJSONError(w, http.StatusBadRequest, pkg.ErrCodeInvalidRequest, "nothing to update")
		return
	}

	entry, err := handler.service.Update(ctx, mux.Vars(r)["id"], userID, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, entry)
}

func (handler *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.complete")
	defer span.End()

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	// the body is optional
	var req CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		pkg.WriteJSONError(w, http.StatusBadRequest, pkg.ErrCodeInvalidRequest, "invalid request body")
		return
	}

	entry, err := handler.service.MarkCompleted(ctx, mux.Vars(r)["id"], userID, req.SessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, entry)
}

func (handler *Handler) HandleSkip(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.skip")
	defer span.End()

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	entry, err := handler.service.MarkSkipped(ctx, mux.Vars(r)["id"], userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, entry)
}

func (handler *Handler) HandleReschedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.reschedule")
	defer span.End()

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ScheduledDate == nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, pkg.ErrCodeInvalidRequest, "scheduled_date is required")
		return
	}

	entry, err := handler.service.Reschedule(ctx, mux.Vars(r)["id"], userID, *req.ScheduledDate)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, entry)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.delete")
	defer span.End()

	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if err := handler.service.Delete(ctx, id, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	log.Debugf("schedule entry %s removed by user %s", id, userID)
	pkg.WriteJSON(w, http.StatusOK, DeleteResponse{Success: true})
}

func requestUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, pkg.ErrCodeUnauthorized, "not authenticated")
		return "", false
	}
	return userID, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrScheduleEntryNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, pkg.ErrCodeNotFound, err.Error())
	case errors.Is(err, catalog.ErrWorkoutNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, pkg.ErrCodeNotFound, catalog.ErrWorkoutNotFound.Error())
	case errors.Is(err, ErrScheduleConflict):
		pkg.WriteJSONError(w, http.StatusConflict, pkg.ErrCodeConflict, err.Error())
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidSessionID),
		errors.Is(err, ErrRescheduleSameDate):
		pkg.WriteJSONError(w, http.StatusBadRequest, pkg.ErrCodeInvalidRequest, err.Error())
	default:
		log.Errorf("schedule request failed: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, pkg.ErrCodeServerError, "internal error")
	}
}
