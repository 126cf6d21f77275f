// Package main runs the coach MCP server over stdio. It reads the same
// config.toml as the HTTP service and talks to the same database.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/2beens/fitcoach/internal/catalog"
	"github.com/2beens/fitcoach/internal/config"
	"github.com/2beens/fitcoach/internal/db"
	coachmcp "github.com/2beens/fitcoach/internal/mcp"
	"github.com/2beens/fitcoach/internal/schedule"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the MCP protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         os.Getenv("FITCOACH_DB_USER"),
		DBPassword:     os.Getenv("FITCOACH_DB_PASS"),
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %s", err)
	}
	defer dbPool.Close()

	metricsManager := metrics.NewManager("backend", "coach_mcp", metrics.SetupPrometheus())
	workouts := catalog.NewCachedLookup(
		catalog.NewRepo(dbPool),
		cfg.WorkoutCacheSizeMB,
		time.Duration(cfg.WorkoutCacheTTLSeconds)*time.Second,
		metricsManager,
	)
	scheduleService := schedule.NewService(
		schedule.NewRepo(dbPool),
		workouts,
		metricsManager,
		schedule.PageConfig{
			DefaultSize: cfg.ScheduleDefaultPageSize,
			MaxSize:     cfg.ScheduleMaxPageSize,
		},
	)

	server := coachmcp.NewServer(scheduleService)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
