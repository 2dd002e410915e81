// SPDX-License-Identifier: MIT

package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the full command configuration.
type Config struct {
	Search    SearchConfig    `json:"search" yaml:"search"`
	Heuristic HeuristicConfig `json:"heuristic" yaml:"heuristic"`
	Log       LogConfig       `json:"log" yaml:"log"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics"`
	Output    OutputConfig    `json:"output" yaml:"output"`
}

// SearchConfig drives search.Solve.
type SearchConfig struct {
	Order        string        `json:"order" yaml:"order" validate:"oneof=index fewest"`
	MaxSolutions int           `json:"max_solutions" yaml:"max_solutions" validate:"gte=0"`
	FirstOnly    bool          `json:"first_only" yaml:"first_only"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout" validate:"gte=0"`
	StrictPairs  bool          `json:"strict_pairs" yaml:"strict_pairs"`
	Backjump     bool          `json:"backjump" yaml:"backjump"`
}

// HeuristicConfig drives heuristic.Solve. The bounds mirror the package limits.
type HeuristicConfig struct {
	Method     string  `json:"method" yaml:"method" validate:"oneof=direct-random direct-walk direct-genetic meta-random meta-walk meta-genetic"`
	Seed       int64   `json:"seed" yaml:"seed"`
	Iterations int     `json:"iterations" yaml:"iterations" validate:"gte=1,lte=1048576"`
	Flips      int     `json:"flips" yaml:"flips" validate:"gte=1,lte=1048576"`
	PoolSize   int     `json:"pool_size" yaml:"pool_size" validate:"gte=1,lte=4096"`
	Retain     float64 `json:"retain" yaml:"retain" validate:"gte=0,lte=1"`
	Mutation   float64 `json:"mutation" yaml:"mutation" validate:"gte=0,lte=1"`
	Range      int64   `json:"range" yaml:"range" validate:"gte=0,lte=1099511627776"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" validate:"oneof=text json"`
}

// StoreConfig enables run persistence.
type StoreConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path" validate:"required_if=Enabled true"`
}

// MetricsConfig enables the Prometheus textfile dump after each command.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path" validate:"required_if=Enabled true"`
}

// OutputConfig selects the presenter.
type OutputConfig struct {
	Format string `json:"format" yaml:"format" validate:"oneof=table matrix json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Order:        "index",
			MaxSolutions: 0,
			FirstOnly:    false,
			Timeout:      0,
		},
		Heuristic: HeuristicConfig{
			Method:     "meta-walk",
			Seed:       1,
			Iterations: 50,
			Flips:      20,
			PoolSize:   20,
			Retain:     0.5,
			Mutation:   0.3,
			Range:      100,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Store: StoreConfig{
			Enabled: false,
			Path:    "tcsp.db",
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}

// Load returns defaults overlaid with the file at path (if any) and the
// environment, then validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	loadEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}

	return nil
}

func envBool(v string) bool { return v == "true" || v == "1" }

func loadEnv(cfg *Config) {
	if v := os.Getenv("TCSP_SEARCH_ORDER"); v != "" {
		cfg.Search.Order = v
	}
	if v := os.Getenv("TCSP_MAX_SOLUTIONS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Search.MaxSolutions = i
		}
	}
	if v := os.Getenv("TCSP_FIRST_ONLY"); v != "" {
		cfg.Search.FirstOnly = envBool(v)
	}
	if v := os.Getenv("TCSP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Search.Timeout = d
		}
	}
	if v := os.Getenv("TCSP_STRICT_PAIRS"); v != "" {
		cfg.Search.StrictPairs = envBool(v)
	}
	if v := os.Getenv("TCSP_BACKJUMP"); v != "" {
		cfg.Search.Backjump = envBool(v)
	}

	if v := os.Getenv("TCSP_HEURISTIC_METHOD"); v != "" {
		cfg.Heuristic.Method = strings.ToLower(v)
	}
	if v := os.Getenv("TCSP_HEURISTIC_SEED"); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Heuristic.Seed = i
		}
	}
	if v := os.Getenv("TCSP_HEURISTIC_ITERATIONS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Heuristic.Iterations = i
		}
	}
	if v := os.Getenv("TCSP_HEURISTIC_FLIPS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Heuristic.Flips = i
		}
	}
	if v := os.Getenv("TCSP_HEURISTIC_POOL_SIZE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Heuristic.PoolSize = i
		}
	}

	if v := os.Getenv("TCSP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("TCSP_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}

	if v := os.Getenv("TCSP_STORE_ENABLED"); v != "" {
		cfg.Store.Enabled = envBool(v)
	}
	if v := os.Getenv("TCSP_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}

	if v := os.Getenv("TCSP_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = envBool(v)
	}
	if v := os.Getenv("TCSP_METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}

	if v := os.Getenv("TCSP_OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = strings.ToLower(v)
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// SlogLevel maps Log.Level onto slog; unknown names map to Info.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogger builds a text or JSON slog logger writing to w.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
