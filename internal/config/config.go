// Package config loads markovsim experiment files.
//
// A file holds global settings plus a list of experiments; each experiment
// is {name, type, spec} where spec is decoded into the struct matching type
// (AbsorbingSpec, ErgodicSpec, TraceSpec). Several files can be loaded and
// merged in order: later scalars win, experiments accumulate.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Experiment types.
const (
	TypeAbsorbing = "absorbing"
	TypeErgodic   = "ergodic"
	TypeTrace     = "trace"
)

// ErrInvalidConfig is returned for structurally invalid configuration.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the merged view of one or more experiment files.
type Config struct {
	// Seed is the base seed; experiments without their own seed derive from it.
	Seed uint64 `mapstructure:"seed" yaml:"seed" json:"seed"`
	// Workers is the number of goroutines trials are split across.
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
	// Defaults fill experiment parameters left at zero.
	Defaults RunDefaults `mapstructure:"defaults" yaml:"defaults" json:"defaults"`
	// Logging configures the CLI logger.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`
	// Metrics configures the Prometheus textfile export.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
	// Experiments run in file order.
	Experiments []Experiment `mapstructure:"experiments" yaml:"experiments" json:"experiments"`
}

// RunDefaults are the simulation parameters shared by all experiments.
type RunDefaults struct {
	Trials   int     `mapstructure:"trials" yaml:"trials" json:"trials"`
	Steps    int     `mapstructure:"steps" yaml:"steps" json:"steps"`
	MaxSteps int     `mapstructure:"maxSteps" yaml:"maxSteps" json:"maxSteps"`
	Window   int     `mapstructure:"window" yaml:"window" json:"window"`
	Epsilon  float64 `mapstructure:"epsilon" yaml:"epsilon" json:"epsilon"`
	Power    int     `mapstructure:"power" yaml:"power" json:"power"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is "debug", "info" (default), "warn" or "error".
	Level string `mapstructure:"level" yaml:"level" json:"level"`
}

// MetricsConfig configures metric export.
type MetricsConfig struct {
	// File, when set, receives the Prometheus text exposition after a run.
	File string `mapstructure:"file" yaml:"file" json:"file"`
}

// Experiment is one named run; Spec is decoded according to Type.
type Experiment struct {
	Name string         `mapstructure:"name" yaml:"name" json:"name"`
	Type string         `mapstructure:"type" yaml:"type" json:"type"`
	Spec map[string]any `mapstructure:"spec" yaml:"spec" json:"spec"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Workers: 1,
		Defaults: RunDefaults{
			Trials:   10000,
			Steps:    1000,
			MaxSteps: 10000,
			Window:   50,
			Power:    64,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfigs loads and merges fnames over Default(), logging each file to
// logger at Debug. A nil logger discards.
func LoadConfigs(logger *slog.Logger, fnames []string) (*Config, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	merged := Default()
	for _, fname := range fnames {
		logger.Debug("loading config", "file", fname)
		cfg, err := loadConfig(fname)
		if err != nil {
			return nil, err
		}
		merged.merge(cfg)
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	return merged, nil
}

// merge overlays the non-zero fields of o onto c and appends its experiments.
func (c *Config) merge(o *Config) {
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.Defaults.Trials != 0 {
		c.Defaults.Trials = o.Defaults.Trials
	}
	if o.Defaults.Steps != 0 {
		c.Defaults.Steps = o.Defaults.Steps
	}
	if o.Defaults.MaxSteps != 0 {
		c.Defaults.MaxSteps = o.Defaults.MaxSteps
	}
	if o.Defaults.Window != 0 {
		c.Defaults.Window = o.Defaults.Window
	}
	if o.Defaults.Epsilon != 0 {
		c.Defaults.Epsilon = o.Defaults.Epsilon
	}
	if o.Defaults.Power != 0 {
		c.Defaults.Power = o.Defaults.Power
	}
	if o.Logging.Level != "" {
		c.Logging.Level = o.Logging.Level
	}
	if o.Metrics.File != "" {
		c.Metrics.File = o.Metrics.File
	}
	c.Experiments = append(c.Experiments, o.Experiments...)
}

func loadConfig(fname string) (*Config, error) {
	var cfg Config
	if err := LoadYAML(fname, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadYAML decodes fname into cfg, rejecting unknown top-level keys.
func LoadYAML(fname string, cfg *Config) error {
	b, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("config: %s: %w", fname, err)
	}

	return nil
}

// MarshalYAML renders cfg as YAML.
func MarshalYAML(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate checks experiment names and types and decodes every spec.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0 (%d)", ErrInvalidConfig, c.Workers)
	}
	seen := make(map[string]bool, len(c.Experiments))
	for i, e := range c.Experiments {
		if e.Name == "" {
			return fmt.Errorf("%w: experiment %d has no name", ErrInvalidConfig, i)
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: duplicate experiment %q", ErrInvalidConfig, e.Name)
		}
		seen[e.Name] = true

		var err error
		switch e.Type {
		case TypeAbsorbing:
			_, err = e.Absorbing()
		case TypeErgodic:
			_, err = e.Ergodic()
		case TypeTrace:
			_, err = e.Trace()
		default:
			err = fmt.Errorf("%w: unknown type %q", ErrInvalidConfig, e.Type)
		}
		if err != nil {
			return fmt.Errorf("config: experiment %q: %w", e.Name, err)
		}
	}

	return nil
}
