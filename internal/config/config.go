package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	BenchmarkSubmitRateLimitPerMin int `toml:"benchmark_submit_rate_limit_per_min"`

	// workout catalog lookup cache
	WorkoutCacheSizeMB      int `toml:"workout_cache_size_mb"`
	WorkoutCacheTTLSeconds  int `toml:"workout_cache_ttl_seconds"`
	ScheduleDefaultPageSize int `toml:"schedule_default_page_size"`
	ScheduleMaxPageSize     int `toml:"schedule_max_page_size"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.BenchmarkSubmitRateLimitPerMin <= 0 {
		c.BenchmarkSubmitRateLimitPerMin = 30
	}
	if c.WorkoutCacheSizeMB <= 0 {
		c.WorkoutCacheSizeMB = 10
	}
	if c.WorkoutCacheTTLSeconds <= 0 {
		c.WorkoutCacheTTLSeconds = 300
	}
	if c.ScheduleDefaultPageSize <= 0 {
		c.ScheduleDefaultPageSize = 50
	}
	if c.ScheduleMaxPageSize <= 0 {
		c.ScheduleMaxPageSize = 500
	}
	if c.ScheduleDefaultPageSize > c.ScheduleMaxPageSize {
		c.ScheduleDefaultPageSize = c.ScheduleMaxPageSize
	}
}

// Load reads the TOML file at configPath and returns the section for env.
func Load(env, configPath string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(configPath, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", configPath, err)
	}
	return tomlConfig.Get(env)
}

// Parse is like Load, but reads the TOML document from a string.
func Parse(env, tomlContent string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.Decode(tomlContent, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return tomlConfig.Get(env)
}
