// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvLogLevel           = "PIXEL_MCP_LOG_LEVEL"
	EnvWorkers            = "PIXEL_MCP_WORKERS"
	EnvSegmentMaxAttempts = "PIXEL_MCP_SEGMENT_MAX_ATTEMPTS"
)

// Config holds the settings shared by the MCP server and the CLI.
type Config struct {
	// LogLevel is "info" unless set to "debug".
	LogLevel string

	// Workers is the number of goroutines each operation may use to fill rows.
	Workers int

	// SegmentMaxAttempts caps random draws during segmentation. Zero selects
	// the engine default.
	SegmentMaxAttempts int
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win over the
// file.
func Load() (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		LogLevel: "info",
		Workers:  runtime.GOMAXPROCS(0),
	}

	if lvl := strings.ToLower(strings.TrimSpace(getenv(EnvLogLevel))); lvl != "" {
		cfg.LogLevel = lvl
	}

	workers, err := intVar(getenv, EnvWorkers)
	if err != nil {
		return nil, err
	}
	if workers > 0 {
		cfg.Workers = workers
	}

	cfg.SegmentMaxAttempts, err = intVar(getenv, EnvSegmentMaxAttempts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func intVar(getenv func(string) string, name string) (int, error) {
	raw := strings.TrimSpace(getenv(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid %s: %d is negative", name, v)
	}
	return v, nil
}
