// SPDX-License-Identifier: MIT

package descent

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/polydescent/poly"
	"github.com/katalvlaran/polydescent/vector"
)

// Minimizer runs steepest descent and keeps the outcome of its last run.
type Minimizer struct {
	opts  Options
	state State

	runID        string
	lastPoint    vector.Vector
	lastObj      float64
	lastGradNorm float64
	iterations   int
	converged    bool
	elapsed      time.Duration
	reset        *ResetEvent
}

// New returns a Minimizer configured by opts on top of DefaultOptions.
// Returns ErrOptionViolation if any option is invalid.
func New(opts ...Option) (*Minimizer, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Minimizer{opts: o, lastPoint: vector.Vector{}}, nil
}

// Tolerance returns the gradient-norm threshold.
func (m *Minimizer) Tolerance() float64 { return m.opts.Tolerance }

// MaxIterations returns the iteration cap.
func (m *Minimizer) MaxIterations() int { return m.opts.MaxIterations }

// StepSize returns the fixed step α.
func (m *Minimizer) StepSize() float64 { return m.opts.StepSize }

// StartPoint returns a copy of the configured start point.
func (m *Minimizer) StartPoint() vector.Vector { return vector.Clone(m.opts.StartPoint) }

// SetStartPoint replaces the start point with a copy of x0.
func (m *Minimizer) SetStartPoint(x0 vector.Vector) { m.opts.StartPoint = vector.Clone(x0) }

// LastPoint returns a copy of the point reached by the last run.
func (m *Minimizer) LastPoint() vector.Vector { return vector.Clone(m.lastPoint) }

// LastObjective returns p(LastPoint()).
func (m *Minimizer) LastObjective() float64 { return m.lastObj }

// LastGradientNorm returns the gradient norm of the last step.
func (m *Minimizer) LastGradientNorm() float64 { return m.lastGradNorm }

// Iterations returns the number of steps taken by the last run.
func (m *Minimizer) Iterations() int { return m.iterations }

// Elapsed returns the wall-clock duration of the last run.
func (m *Minimizer) Elapsed() time.Duration { return m.elapsed }

// State reports whether a run is in progress.
func (m *Minimizer) State() State { return m.state }

// Summary returns the outcome of the last run.
func (m *Minimizer) Summary() Summary {
	s := Summary{
		RunID:        m.runID,
		Converged:    m.converged,
		Point:        m.LastPoint(),
		Objective:    m.lastObj,
		GradientNorm: m.lastGradNorm,
		Iterations:   m.iterations,
		Elapsed:      m.elapsed,
	}
	if m.reset != nil {
		ev := *m.reset
		s.Reset = &ev
	}

	return s
}

// Minimize runs steepest descent on p from the start point.
//
// Returns converged=true once the gradient norm drops to the tolerance,
// converged=false when the iteration cap is reached first, and the trace of
// every completed iteration. Errors: ErrVariableMismatch before the first
// iteration; poly.ErrUnboundVariable from evaluation; any error returned by
// the OnIteration hook.
func (m *Minimizer) Minimize(p poly.Polynomial) (converged bool, trace []TraceRecord, err error) {
	started := time.Now()
	m.state = Iterating
	m.runID = uuid.NewString()
	m.lastPoint, m.lastObj, m.lastGradNorm = vector.Vector{}, 0, 0
	m.iterations, m.converged, m.reset = 0, false, nil
	log := m.opts.Logger.With(zap.String("run_id", m.runID))
	defer func() {
		m.state = Idle
		m.converged = converged
		m.elapsed = time.Since(started)
	}()

	x, err := m.prepare(p, log)
	if err != nil {
		return false, nil, err
	}
	log.Debug("minimize started",
		zap.Stringer("polynomial", p),
		zap.Stringer("start", x),
		zap.Float64("tolerance", m.opts.Tolerance),
		zap.Float64("step_size", m.opts.StepSize),
		zap.Int("max_iterations", m.opts.MaxIterations),
	)

	// ∂p/∂v for every coordinate, built once.
	partials := p.Partials(vector.Keys(x)...)

	for m.iterations < m.opts.MaxIterations {
		g, err := partials.At(x)
		if err != nil {
			return false, trace, fmt.Errorf("iteration %d: %w", m.iterations+1, err)
		}

		next, err := vector.Sum(x, vector.Scale(-m.opts.StepSize, g))
		if err != nil {
			return false, trace, fmt.Errorf("iteration %d: %w", m.iterations+1, err)
		}
		obj, err := p.Evaluate(next)
		if err != nil {
			return false, trace, fmt.Errorf("iteration %d: %w", m.iterations+1, err)
		}

		x = next
		m.lastPoint, m.lastObj, m.lastGradNorm = x, obj, vector.L2Norm(g)
		m.iterations++

		rec := TraceRecord{Iteration: m.iterations, Point: vector.Clone(x), Objective: obj}
		trace = append(trace, rec)
		log.Debug("iteration",
			zap.Int("iteration", rec.Iteration),
			zap.Stringer("point", rec.Point),
			zap.Float64("objective", obj),
			zap.Float64("gradient_norm", m.lastGradNorm),
		)
		if err := m.opts.OnIteration(rec); err != nil {
			return false, trace, err
		}

		if m.lastGradNorm <= m.opts.Tolerance {
			converged = true
			break
		}
	}

	log.Info("minimize finished",
		zap.Bool("converged", converged),
		zap.Int("iterations", m.iterations),
		zap.Stringer("point", m.lastPoint),
		zap.Float64("objective", m.lastObj),
		zap.Float64("gradient_norm", m.lastGradNorm),
		zap.Duration("elapsed", time.Since(started)),
	)

	return converged, trace, nil
}

// prepare returns the working copy of the start point, falling back to the
// origin when a free variable of p is unbound, and rejects start points
// that bind variables p does not use.
func (m *Minimizer) prepare(p poly.Polynomial, log *zap.Logger) (vector.Vector, error) {
	x := vector.Clone(m.opts.StartPoint)
	vars := p.FreeVariables()

	var missing []string
	for _, v := range vars {
		if _, ok := x[v]; !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		zero := vector.Zero(vars)
		ev := ResetEvent{
			Polynomial:  p.String(),
			Missing:     missing,
			StartPoint:  vector.Clone(m.opts.StartPoint),
			Replacement: vector.Clone(zero),
		}
		m.reset = &ev
		log.Warn("start point does not bind every free variable, restarting from the origin",
			zap.String("polynomial", ev.Polynomial),
			zap.Strings("missing", missing),
			zap.Stringer("start", ev.StartPoint),
		)
		m.opts.OnReset(ev)
		x = zero
	}

	used := make(map[string]struct{}, len(vars))
	for _, v := range vars {
		used[v] = struct{}{}
	}
	for _, k := range vector.Keys(x) {
		if _, ok := used[k]; !ok {
			return nil, fmt.Errorf("%w: start point binds %v, polynomial uses %v", ErrVariableMismatch, vector.Keys(x), vars)
		}
	}

	return x, nil
}
