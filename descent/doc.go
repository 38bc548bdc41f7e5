// SPDX-License-Identifier: MIT

// Package descent minimizes a polynomial by steepest descent with a fixed
// step size and exact symbolic gradients.
//
// Algorithm (one call to Minimize):
//  1. Copy the start point into a working point x.
//  2. If x does not bind every free variable of p, restart from the origin
//     over p's free variables. This recovery is reported through the
//     OnReset hook, Summary.Reset and a warn-level log entry.
//  3. If x still binds variables p does not use, fail with ErrVariableMismatch.
//  4. Repeat up to MaxIterations times:
//     g    = (∂p/∂v evaluated at x) for every v in x
//     x    = x − StepSize·g
//     emit TraceRecord{iteration, x, p(x)}
//     stop if ‖g‖₂ ≤ Tolerance (converged).
//
// Hitting the iteration cap is not an error: Minimize returns
// converged=false with a nil error.
//
// The derivative polynomials ∂p/∂v are built once per run and evaluated at
// every step. There is no line search and no adaptive schedule.
//
// A Minimizer owns mutable run state (last point, objective, gradient norm,
// iteration count, elapsed time) and must not be used by several goroutines
// at once. The start point is never modified by a run.
//
// Usage:
//
//	m, err := descent.New(
//		descent.WithStartPoint(vector.Vector{"x": 1}),
//		descent.WithTolerance(0.001),
//		descent.WithStepSize(0.05),
//	)
//	converged, trace, err := m.Minimize(poly.MustParse("10*x^2 + -40*x + 40"))
//
// Problem adapts a polynomial to gonum's optimize.Problem so the same
// objective and gradient can be handed to gonum's line-search methods.
package descent
