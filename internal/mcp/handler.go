package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/fitcoach/internal/progression/benchmarks"
	"github.com/2beens/fitcoach/internal/schedule"
)

// Handler parses tool input, calls the service and formats the MCP result.
type Handler struct {
	service coachService
}

func NewHandler(service coachService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// StandardsInput is the input for get_benchmark_standards.
type StandardsInput struct {
	Name string `json:"name,omitempty" jsonschema:"Exact benchmark name (e.g. Fran, Back Squat 1RM). Empty returns all standards."`
}

func (h *Handler) GetBenchmarkStandardsTool() func(context.Context, *mcp.CallToolRequest, StandardsInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in StandardsInput) (*mcp.CallToolResult, any, error) {
		standards, err := h.service.Standards(in.Name)
		if err != nil {
			return errorResult("Error fetching standards: " + err.Error()), nil, nil
		}
		return jsonResult(standards), nil, nil
	}
}

// ClassifyInput is the input for classify_benchmark_result.
type ClassifyInput struct {
	Name         string   `json:"name" jsonschema:"Exact benchmark name (e.g. Fran)"`
	CurrentLevel string   `json:"current_level,omitempty" jsonschema:"Level before this result: beginner, intermediate, advanced or elite"`
	Rounds       *float64 `json:"rounds,omitempty" jsonschema:"Rounds completed, or meters for distance benchmarks"`
	Reps         *float64 `json:"reps,omitempty" jsonschema:"Extra reps after the last full round"`
	TimeSeconds  *float64 `json:"time_seconds,omitempty" jsonschema:"Finish time in seconds"`
	Weight       *float64 `json:"weight,omitempty" jsonschema:"Load in kg, or watts for power benchmarks"`
}

func (h *Handler) ClassifyBenchmarkResultTool() func(context.Context, *mcp.CallToolRequest, ClassifyInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in ClassifyInput) (*mcp.CallToolResult, any, error) {
		if in.Name == "" {
			return errorResult("Missing benchmark name"), nil, nil
		}
		classification := h.service.Classify(in.Name, benchmarks.Result{
			Rounds:      in.Rounds,
			Reps:        in.Reps,
			TimeSeconds: in.TimeSeconds,
			Weight:      in.Weight,
		}, in.CurrentLevel)
		return jsonResult(classification), nil, nil
	}
}

// ScheduleInput is the input for list_workout_schedule.
type ScheduleInput struct {
	UserID    string `json:"user_id" jsonschema:"User id (uuid)"`
	FromDate  string `json:"from_date,omitempty" jsonschema:"Start date (YYYY-MM-DD), inclusive"`
	ToDate    string `json:"to_date,omitempty" jsonschema:"End date (YYYY-MM-DD), inclusive"`
	Status    string `json:"status,omitempty" jsonschema:"Filter by status: scheduled, completed, skipped, rescheduled"`
	WorkoutID string `json:"workout_id,omitempty" jsonschema:"Filter by workout id"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Page size"`
	Offset    int    `json:"offset,omitempty" jsonschema:"Rows to skip"`
}

func (h *Handler) ListWorkoutScheduleTool() func(context.Context, *mcp.CallToolRequest, ScheduleInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ScheduleInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" {
			return errorResult("Missing user_id"), nil, nil
		}

		params := schedule.ListParams{
			FilterParams: schedule.FilterParams{UserID: in.UserID},
			Limit:        in.Limit,
			Offset:       in.Offset,
		}
		if in.FromDate != "" {
			from, err := schedule.ParseDate(in.FromDate)
			if err != nil {
				return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
			}
			params.StartDate = &from
		}
		if in.ToDate != "" {
			to, err := schedule.ParseDate(in.ToDate)
			if err != nil {
				return errorResult("Invalid to_date: use YYYY-MM-DD"), nil, nil
			}
			params.EndDate = &to
		}
		if in.Status != "" {
			status, err := schedule.ParseStatus(in.Status)
			if err != nil {
				return errorResult("Invalid status: " + in.Status), nil, nil
			}
			params.Status = &status
		}
		if in.WorkoutID != "" {
			params.WorkoutID = &in.WorkoutID
		}

		page, err := h.service.ListSchedule(ctx, params)
		if err != nil {
			return errorResult("Error listing schedule: " + err.Error()), nil, nil
		}
		return jsonResult(page), nil, nil
	}
}
