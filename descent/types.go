// SPDX-License-Identifier: MIT

package descent

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/polydescent/vector"
)

// Sentinel errors.
var (
	// ErrVariableMismatch is returned when the start point binds variables
	// the polynomial does not use, even after the origin fallback.
	ErrVariableMismatch = errors.New("descent: variable mismatch")

	// ErrOptionViolation is returned by New when an Option carries an
	// invalid value.
	ErrOptionViolation = errors.New("descent: invalid option")
)

// Defaults.
const (
	DefaultTolerance     = 0.001
	DefaultMaxIterations = 100
	DefaultStepSize      = 0.05
)

// State is the lifecycle position of a Minimizer.
type State int

const (
	// Idle: before, between and after runs.
	Idle State = iota
	// Iterating: inside Minimize.
	Iterating
)

// String returns "idle" or "iterating".
func (s State) String() string {
	if s == Iterating {
		return "iterating"
	}

	return "idle"
}

// TraceRecord describes the point reached after one iteration.
type TraceRecord struct {
	Iteration int
	Point     vector.Vector
	Objective float64
}

// String renders r as "At iteration 1: {x=2.0000} objective value = 0.000".
func (r TraceRecord) String() string {
	return fmt.Sprintf("At iteration %d: %s objective value = %.3f", r.Iteration, r.Point, r.Objective)
}

// ResetEvent reports that the start point did not bind every free
// variable and the run restarted from the origin.
type ResetEvent struct {
	Polynomial  string        // rendering of the polynomial being minimized
	Missing     []string      // free variables absent from the start point, sorted
	StartPoint  vector.Vector // the configured start point
	Replacement vector.Vector // the point actually used: all free variables at 0
}

// Summary is the outcome of the most recent run.
type Summary struct {
	RunID        string
	Converged    bool
	Point        vector.Vector
	Objective    float64
	GradientNorm float64
	Iterations   int
	Elapsed      time.Duration
	Reset        *ResetEvent // nil when the start point was used as given
}

// Option configures a Minimizer. Invalid values are recorded and surfaced
// as ErrOptionViolation by New.
type Option func(*Options)

// Options holds minimizer parameters and hooks.
type Options struct {
	// Tolerance: stop once the gradient norm is ≤ Tolerance. Must be ≥ 0.
	Tolerance float64

	// MaxIterations caps the number of steps. Must be > 0.
	MaxIterations int

	// StepSize is the fixed step α. Must be > 0.
	StepSize float64

	// StartPoint is copied on every run and never modified.
	StartPoint vector.Vector

	// Logger receives run events; zap.NewNop() by default.
	Logger *zap.Logger

	// OnIteration is called after every step. A non-nil error aborts the
	// run and is returned by Minimize.
	OnIteration func(rec TraceRecord) error

	// OnReset is called when the start point is replaced by the origin.
	OnReset func(ev ResetEvent)

	err error
}

// DefaultOptions returns the parameters of the original tool:
// tolerance 0.001, 100 iterations, step 0.05, empty start point, no-op
// logger and hooks.
func DefaultOptions() Options {
	return Options{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		StepSize:      DefaultStepSize,
		StartPoint:    vector.Vector{},
		Logger:        zap.NewNop(),
		OnIteration:   func(TraceRecord) error { return nil },
		OnReset:       func(ResetEvent) {},
	}
}

// WithTolerance sets the gradient-norm threshold (finite, ≥ 0).
func WithTolerance(eps float64) Option {
	return func(o *Options) {
		if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
			o.err = fmt.Errorf("%w: tolerance must be finite and non-negative (%v)", ErrOptionViolation, eps)
			return
		}
		o.Tolerance = eps
	}
}

// WithMaxIterations sets the iteration cap (> 0).
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: max iterations must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithStepSize sets the fixed step α (finite, > 0).
func WithStepSize(alpha float64) Option {
	return func(o *Options) {
		if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha <= 0 {
			o.err = fmt.Errorf("%w: step size must be finite and positive (%v)", ErrOptionViolation, alpha)
			return
		}
		o.StepSize = alpha
	}
}

// WithStartPoint sets the start point; x0 is copied.
func WithStartPoint(x0 vector.Vector) Option {
	return func(o *Options) {
		for k, v := range x0 {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				o.err = fmt.Errorf("%w: start point %s=%v is not finite", ErrOptionViolation, k, v)
				return
			}
		}
		o.StartPoint = vector.Clone(x0)
	}
}

// WithLogger sets the logger; nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnIteration registers a per-iteration callback; nil is ignored.
func WithOnIteration(fn func(rec TraceRecord) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnIteration = fn
		}
	}
}

// WithOnReset registers a callback for the origin fallback; nil is ignored.
func WithOnReset(fn func(ev ResetEvent)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnReset = fn
		}
	}
}
