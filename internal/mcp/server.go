package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the coach tools: benchmark standards,
// result classification and the workout schedule of a user.
func NewServer(scheduleLister scheduleLister) *mcp.Server {
	h := NewHandler(NewCoachService(scheduleLister))
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fitcoach-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_benchmark_standards",
		Description: "Returns the benchmark standards (metric and elite/advanced/intermediate/beginner thresholds). Optional arg: name, the exact benchmark name. Time is in seconds, distance in meters, weight in kg, power in watts.",
	}, h.GetBenchmarkStandardsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "classify_benchmark_result",
		Description: "Classifies a benchmark result into a sport level. Args: name, and the value field the benchmark metric uses (time_seconds, rounds + reps, weight). Unknown benchmarks keep current_level.",
	}, h.ClassifyBenchmarkResultTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_workout_schedule",
		Description: "Returns a user's scheduled workouts ordered by date, with the total count. Args: user_id; optional: from_date, to_date (YYYY-MM-DD), status, workout_id, limit, offset.",
	}, h.ListWorkoutScheduleTool())

	return s
}
