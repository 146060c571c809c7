// Package config loads and validates the run configuration shared by the
// CLI, the pipeline stages, and the optional telemetry/watch layers.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default values, applied before any YAML file or flag override.
// DefaultMetricsAddr is the exception: Defaults leaves MetricsAddr empty,
// so the metrics server is off unless an address is given.
const (
	DefaultMaxEpochs    = 50
	DefaultMaxPasses    = 100
	DefaultEpsilon      = 1e-4
	DefaultMetricsAddr  = "127.0.0.1:9090"
	DefaultWatchDebounceMillis = 250
)

// Config carries everything one run of the pipeline needs. Fields are
// populated in increasing precedence: Defaults, then an optional YAML
// file, then CLI flags.
type Config struct {
	// InputPath is the edge-list file to load. Required.
	InputPath string `yaml:"input_path" validate:"required"`

	// Workers is the worker-pool size for loading, building, and sorting.
	// 0 means "default to runtime.NumCPU()".
	Workers int `yaml:"workers" validate:"gte=0"`

	// MaxEpochs bounds the outer contraction loop.
	MaxEpochs int `yaml:"max_epochs" validate:"gte=1"`

	// MaxPasses bounds the inner local-moving loop per epoch.
	MaxPasses int `yaml:"max_passes" validate:"gte=1"`

	// Epsilon is the inner-loop convergence threshold.
	Epsilon float64 `yaml:"epsilon" validate:"gt=0"`

	// Progress enables the TTY progress reporter.
	Progress bool `yaml:"progress"`

	// Trace enables OpenTelemetry tracing, exported to stdout.
	Trace bool `yaml:"trace"`

	// MetricsAddr, if non-empty, serves /metrics and /healthz on this
	// address. Empty disables the metrics server.
	MetricsAddr string `yaml:"metrics_addr"`

	// Watch re-runs the whole pipeline whenever InputPath changes.
	Watch bool `yaml:"watch"`

	// WatchDebounceMillis delays a watch-triggered re-run to let a writer
	// finish before the file is re-read.
	WatchDebounceMillis int `yaml:"watch_debounce_millis" validate:"gte=0"`

	// LogJSON switches the slog handler from text to JSON.
	LogJSON bool `yaml:"log_json"`
}

// Defaults returns a Config with every field at its default value except
// InputPath, which the caller must set.
func Defaults() Config {
	return Config{
		MaxEpochs:           DefaultMaxEpochs,
		MaxPasses:           DefaultMaxPasses,
		Epsilon:             DefaultEpsilon,
		Progress:            true,
		MetricsAddr:         "",
		WatchDebounceMillis: DefaultWatchDebounceMillis,
	}
}

// Load builds a Config from defaults, an optional YAML file at yamlPath
// (skipped entirely if yamlPath is empty), and the already-parsed flag
// overrides in flagConfig (only non-zero fields of flagConfig are
// applied). The result is validated before being returned.
func Load(yamlPath string, flagConfig Config) (*Config, error) {
	cfg := Defaults()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigFileNotFound, yamlPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", yamlPath, err)
		}
	}

	applyOverrides(&cfg, flagConfig)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyOverrides copies every non-zero-valued field of override onto cfg.
// It mirrors the teacher's flags-win-over-file merge order without
// requiring a third-party merge library, since the field set is small and
// fixed.
func applyOverrides(cfg *Config, override Config) {
	if override.InputPath != "" {
		cfg.InputPath = override.InputPath
	}
	if override.Workers != 0 {
		cfg.Workers = override.Workers
	}
	if override.MaxEpochs != 0 {
		cfg.MaxEpochs = override.MaxEpochs
	}
	if override.MaxPasses != 0 {
		cfg.MaxPasses = override.MaxPasses
	}
	if override.Epsilon != 0 {
		cfg.Epsilon = override.Epsilon
	}
	if override.Progress {
		cfg.Progress = true
	}
	if override.Trace {
		cfg.Trace = true
	}
	if override.MetricsAddr != "" {
		cfg.MetricsAddr = override.MetricsAddr
	}
	if override.Watch {
		cfg.Watch = true
	}
	if override.WatchDebounceMillis != 0 {
		cfg.WatchDebounceMillis = override.WatchDebounceMillis
	}
	if override.LogJSON {
		cfg.LogJSON = true
	}
}

var validate = validator.New()

// Validate runs struct-tag validation over cfg, wrapping the validator's
// field errors in ErrInvalidConfig.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
