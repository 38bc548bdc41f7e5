// SPDX-License-Identifier: MIT

package descent_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/polydescent/descent"
	"github.com/katalvlaran/polydescent/poly"
	"github.com/katalvlaran/polydescent/vector"
)

const quadratic = "10*x^2 + -40*x + 40"

// newMinimizer fails the test on option errors.
func newMinimizer(t *testing.T, opts ...descent.Option) *descent.Minimizer {
	t.Helper()
	m, err := descent.New(opts...)
	require.NoError(t, err)

	return m
}

// TestNew_Defaults checks the documented default parameters.
func TestNew_Defaults(t *testing.T) {
	m := newMinimizer(t)
	assert.Equal(t, descent.DefaultTolerance, m.Tolerance())
	assert.Equal(t, descent.DefaultMaxIterations, m.MaxIterations())
	assert.Equal(t, descent.DefaultStepSize, m.StepSize())
	assert.Empty(t, m.StartPoint())
	assert.Equal(t, descent.Idle, m.State())
}

// TestNew_OptionViolations verifies invalid parameters are rejected.
func TestNew_OptionViolations(t *testing.T) {
	cases := map[string]descent.Option{
		"negative tolerance": descent.WithTolerance(-1),
		"NaN tolerance":      descent.WithTolerance(math.NaN()),
		"zero iterations":    descent.WithMaxIterations(0),
		"negative iters":     descent.WithMaxIterations(-5),
		"zero step":          descent.WithStepSize(0),
		"infinite step":      descent.WithStepSize(math.Inf(1)),
		"NaN start":          descent.WithStartPoint(vector.Vector{"x": math.NaN()}),
	}
	for name, opt := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := descent.New(opt)
			assert.ErrorIs(t, err, descent.ErrOptionViolation)
		})
	}
}

// TestMinimize_Quadratic reproduces the reference run: two iterations to x=2.
func TestMinimize_Quadratic(t *testing.T) {
	m := newMinimizer(t,
		descent.WithStartPoint(vector.Vector{"x": 1}),
		descent.WithTolerance(0.001),
		descent.WithStepSize(0.05),
		descent.WithMaxIterations(100),
	)

	converged, trace, err := m.Minimize(poly.MustParse(quadratic))
	require.NoError(t, err)
	assert.True(t, converged)
	assert.Equal(t, 2, m.Iterations())
	require.Len(t, trace, 2)

	assert.InDelta(t, 2.0, m.LastPoint()["x"], 1e-9)
	assert.InDelta(t, 0.0, m.LastObjective(), 1e-9)
	assert.LessOrEqual(t, m.LastGradientNorm(), 0.001)

	assert.Equal(t, "At iteration 1: {x=2.0000} objective value = 0.000", trace[0].String())
	assert.Equal(t, "At iteration 2: {x=2.0000} objective value = 0.000", trace[1].String())
	for i, rec := range trace {
		assert.Equal(t, i+1, rec.Iteration)
	}

	// The start point survives the run.
	assert.Equal(t, vector.Vector{"x": 1}, m.StartPoint())
}

// TestMinimize_IterationCap: an unreachable tolerance runs exactly
// MaxIterations steps and reports converged=false without an error.
func TestMinimize_IterationCap(t *testing.T) {
	m := newMinimizer(t,
		descent.WithStartPoint(vector.Vector{"x": 1}),
		descent.WithTolerance(0),
		descent.WithMaxIterations(25),
	)

	converged, trace, err := m.Minimize(poly.MustParse("x^2"))
	require.NoError(t, err)
	assert.False(t, converged)
	assert.Len(t, trace, 25)
	assert.Equal(t, 25, m.Iterations())

	// x_{k+1} = 0.9·x_k
	assert.InDelta(t, math.Pow(0.9, 25), m.LastPoint()["x"], 1e-12)
	assert.False(t, m.Summary().Converged)
}

// TestMinimize_ResetToOrigin checks the permissive fallback is observable
// through the hook, the summary and a warn-level log entry.
func TestMinimize_ResetToOrigin(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	var events []descent.ResetEvent
	m := newMinimizer(t,
		descent.WithStartPoint(vector.Vector{"y": 1}),
		descent.WithLogger(zap.New(core)),
		descent.WithOnReset(func(ev descent.ResetEvent) { events = append(events, ev) }),
	)

	_, _, err := m.Minimize(poly.MustParse(quadratic))
	// {y} is replaced by {x: 0}, which then matches exactly.
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, []string{"x"}, events[0].Missing)
	assert.Equal(t, vector.Vector{"y": 1}, events[0].StartPoint)
	assert.Equal(t, vector.Vector{"x": 0}, events[0].Replacement)

	sum := m.Summary()
	require.NotNil(t, sum.Reset)
	assert.Equal(t, []string{"x"}, sum.Reset.Missing)
	assert.True(t, sum.Converged)
	assert.InDelta(t, 2.0, sum.Point["x"], 1e-9)

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0].Message, "restarting from the origin")
	assert.Equal(t, sum.RunID, warns[0].ContextMap()["run_id"])

	// Configured start point is untouched.
	assert.Equal(t, vector.Vector{"y": 1}, m.StartPoint())
}

// TestMinimize_NoResetWhenBound verifies the hook stays silent otherwise.
func TestMinimize_NoResetWhenBound(t *testing.T) {
	called := false
	m := newMinimizer(t,
		descent.WithStartPoint(vector.Vector{"x": 5}),
		descent.WithOnReset(func(descent.ResetEvent) { called = true }),
	)
	_, _, err := m.Minimize(poly.MustParse(quadratic))
	require.NoError(t, err)
	assert.False(t, called)
	assert.Nil(t, m.Summary().Reset)
}

// TestMinimize_VariableMismatch: extra start-point variables are fatal
// before any iteration.
func TestMinimize_VariableMismatch(t *testing.T) {
	m := newMinimizer(t, descent.WithStartPoint(vector.Vector{"x": 1, "y": 2}))

	converged, trace, err := m.Minimize(poly.MustParse(quadratic))
	assert.ErrorIs(t, err, descent.ErrVariableMismatch)
	assert.False(t, converged)
	assert.Nil(t, trace)
	assert.Zero(t, m.Iterations())
	assert.Equal(t, descent.Idle, m.State())
}

// TestMinimize_Constant: a polynomial without variables converges at once
// from the empty point.
func TestMinimize_Constant(t *testing.T) {
	m := newMinimizer(t)

	converged, trace, err := m.Minimize(poly.MustParse("7"))
	require.NoError(t, err)
	assert.True(t, converged)
	require.Len(t, trace, 1)
	assert.Empty(t, m.LastPoint())
	assert.Equal(t, 7.0, m.LastObjective())
	assert.Zero(t, m.LastGradientNorm())
}

// TestMinimize_TwoVariables converges on a separable bowl with minimum
// at (1, -1) and leaves last_point keyed by the free variables.
func TestMinimize_TwoVariables(t *testing.T) {
	p := poly.MustParse("x^2 + 2*y^2 + -2*x + 4*y + 3")
	m := newMinimizer(t, descent.WithStartPoint(vector.Vector{"x": 0, "y": 0}))

	converged, _, err := m.Minimize(p)
	require.NoError(t, err)
	assert.True(t, converged)
	assert.Less(t, m.Iterations(), m.MaxIterations())

	last := m.LastPoint()
	assert.Equal(t, p.FreeVariables(), vector.Keys(last))
	assert.InDelta(t, 1.0, last["x"], 1e-2)
	assert.InDelta(t, -1.0, last["y"], 1e-2)
	assert.InDelta(t, 0.0, m.LastObjective(), 1e-4)
}

// TestMinimize_HookAbort propagates a hook error and keeps partial trace.
func TestMinimize_HookAbort(t *testing.T) {
	stop := errors.New("stop here")
	m := newMinimizer(t,
		descent.WithStartPoint(vector.Vector{"x": 1}),
		descent.WithTolerance(0),
		descent.WithOnIteration(func(rec descent.TraceRecord) error {
			if rec.Iteration == 3 {
				return stop
			}
			return nil
		}),
	)

	converged, trace, err := m.Minimize(poly.MustParse("x^2"))
	assert.ErrorIs(t, err, stop)
	assert.False(t, converged)
	assert.Len(t, trace, 3)
	assert.Equal(t, 3, m.Iterations())
}

// TestMinimize_StateDuringRun observes Iterating from inside the hook.
func TestMinimize_StateDuringRun(t *testing.T) {
	var m *descent.Minimizer
	var seen []descent.State
	m = newMinimizer(t,
		descent.WithStartPoint(vector.Vector{"x": 1}),
		descent.WithOnIteration(func(descent.TraceRecord) error {
			seen = append(seen, m.State())
			return nil
		}),
	)

	_, _, err := m.Minimize(poly.MustParse(quadratic))
	require.NoError(t, err)
	assert.Equal(t, []descent.State{descent.Iterating, descent.Iterating}, seen)
	assert.Equal(t, descent.Idle, m.State())
	assert.Equal(t, "iterating", descent.Iterating.String())
}

// TestMinimize_Repeatable: re-running reuses the unchanged start point and
// gives the same outcome under a fresh run id.
func TestMinimize_Repeatable(t *testing.T) {
	m := newMinimizer(t, descent.WithStartPoint(vector.Vector{"x": -3}))
	p := poly.MustParse(quadratic)

	_, first, err := m.Minimize(p)
	require.NoError(t, err)
	s1 := m.Summary()

	_, second, err := m.Minimize(p)
	require.NoError(t, err)
	s2 := m.Summary()

	assert.Equal(t, first, second)
	assert.Equal(t, s1.Point, s2.Point)
	assert.NotEqual(t, s1.RunID, s2.RunID)
	_, err = uuid.Parse(s2.RunID)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, s2.Elapsed.Nanoseconds(), int64(0))
}

// TestSetStartPoint copies its argument.
func TestSetStartPoint(t *testing.T) {
	m := newMinimizer(t)
	x0 := vector.Vector{"x": 1}
	m.SetStartPoint(x0)
	x0["x"] = 99
	assert.Equal(t, vector.Vector{"x": 1}, m.StartPoint())

	got := m.StartPoint()
	got["x"] = 42
	assert.Equal(t, vector.Vector{"x": 1}, m.StartPoint())
}

// TestTraceRecord_PointIsolated: trace points are snapshots.
func TestTraceRecord_PointIsolated(t *testing.T) {
	m := newMinimizer(t, descent.WithStartPoint(vector.Vector{"x": 1}), descent.WithMaxIterations(3), descent.WithTolerance(0))
	_, trace, err := m.Minimize(poly.MustParse("x^2"))
	require.NoError(t, err)

	trace[0].Point["x"] = 1000
	assert.NotEqual(t, 1000.0, trace[1].Point["x"])
	assert.NotEqual(t, 1000.0, m.LastPoint()["x"])
}
