// Package polydescent is a small toolkit for symbolic polynomial
// differentiation and gradient-based minimization.
//
// 🚀 What is inside?
//
//	vector/  — named-coordinate vectors: Sum, Scale, L2Norm, stable rendering
//	poly/    — Term and Polynomial: parse, render, evaluate, differentiate
//	descent/ — fixed-step steepest descent with trace, hooks and a gonum bridge
//	config/  — YAML + environment settings for runs
//	logging/ — zap logger construction
//	cmd/polydescent — command line front end
//
// ✨ Why?
//
//   - Exact gradients: derivatives are symbolic, never finite differences.
//   - Deterministic output: variables are always listed in lexicographic order.
//   - Pure operations: differentiation builds new values and never aliases
//     the source's internal state.
//
// Quick example:
//
//	p := poly.MustParse("10*x^2 + -40*x + 40")
//	m, _ := descent.New(descent.WithStartPoint(vector.Vector{"x": 1}))
//	converged, trace, err := m.Minimize(p)
//	// converged == true, len(trace) == 2, m.LastPoint() == {x=2.0000}
//
//	go get github.com/katalvlaran/polydescent
package polydescent
