// SPDX-License-Identifier: MIT

// Package config loads run settings for the command line tool from a YAML
// file and POLYDESCENT_* environment variables.
//
// Precedence, lowest first: Default(), the YAML file, the environment.
// Command line flags are applied on top by the caller.
//
// Example file:
//
//	polynomial: "10*x^2 + -40*x + 40"
//	tolerance: 0.001
//	max_iterations: 100
//	step_size: 0.05
//	start_point: {x: 1.0}
//	log:
//	  level: info
//	  development: false
//
// Environment: POLYDESCENT_POLYNOMIAL, POLYDESCENT_TOLERANCE,
// POLYDESCENT_MAX_ITERATIONS, POLYDESCENT_STEP_SIZE,
// POLYDESCENT_START_POINT (as "x:1,y:2"), POLYDESCENT_LOG_LEVEL,
// POLYDESCENT_LOG_DEVELOPMENT.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/polydescent/descent"
	"github.com/katalvlaran/polydescent/logging"
	"github.com/katalvlaran/polydescent/vector"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "POLYDESCENT"

// ErrInvalid is returned for unreadable or out-of-range settings.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds everything needed for one minimization run.
type Config struct {
	Polynomial    string             `yaml:"polynomial" split_words:"true"`
	Tolerance     float64            `yaml:"tolerance" split_words:"true"`
	MaxIterations int                `yaml:"max_iterations" split_words:"true"`
	StepSize      float64            `yaml:"step_size" split_words:"true"`
	StartPoint    map[string]float64 `yaml:"start_point" split_words:"true"`
	Log           LogConfig          `yaml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the minimizer defaults with an empty polynomial.
func Default() Config {
	return Config{
		Tolerance:     descent.DefaultTolerance,
		MaxIterations: descent.DefaultMaxIterations,
		StepSize:      descent.DefaultStepSize,
		StartPoint:    map[string]float64{},
		Log:           LogConfig{Level: "info"},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: environment: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFile reads the YAML file at path on top of Default(). Unknown keys
// are rejected.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return Decode(bytes.NewReader(data))
}

// Decode reads YAML from r on top of Default(). An empty document yields
// the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return cfg, nil
}

// Validate checks numeric ranges and the log level.
func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance < 0:
		return fmt.Errorf("%w: tolerance must be finite and non-negative, got %v", ErrInvalid, c.Tolerance)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max_iterations must be positive, got %d", ErrInvalid, c.MaxIterations)
	case math.IsNaN(c.StepSize) || math.IsInf(c.StepSize, 0) || c.StepSize <= 0:
		return fmt.Errorf("%w: step_size must be finite and positive, got %v", ErrInvalid, c.StepSize)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// Options converts c into minimizer options.
func (c Config) Options() []descent.Option {
	return []descent.Option{
		descent.WithTolerance(c.Tolerance),
		descent.WithMaxIterations(c.MaxIterations),
		descent.WithStepSize(c.StepSize),
		descent.WithStartPoint(vector.Vector(c.StartPoint)),
	}
}

// Logging returns the logger configuration.
func (c Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	if c.Log.Development {
		cfg = logging.DevelopmentConfig()
	}
	if c.Log.Level != "" {
		cfg.Level = c.Log.Level
	}

	return cfg
}
