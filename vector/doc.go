// SPDX-License-Identifier: MIT

// Package vector implements the small amount of vector arithmetic needed
// by gradient-based updates over named variables.
//
// A Vector maps a variable name to a real value. The same type stands for
// a point in variable space, a gradient, or a step direction; callers keep
// track of the role by context.
//
// Operations:
//   - Sum      — pointwise a+b; key sets must be identical (ErrKeyMismatch).
//   - Scale    — pointwise s·a; total.
//   - L2Norm   — sqrt(Σ aᵢ²); 0 for the empty vector.
//   - String   — stable rendering with keys in lexicographic order.
//
// All operations are pure: operands are never mutated and results are
// freshly allocated maps.
//
// Usage:
//
//	x := vector.Vector{"x": 1, "y": 2}
//	g := vector.Vector{"x": -20, "y": 4}
//	next, err := vector.Sum(x, vector.Scale(-0.05, g))
//	fmt.Println(next) // {x=2.0000, y=1.8000}
package vector
