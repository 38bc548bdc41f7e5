// SPDX-License-Identifier: MIT

package descent

import (
	"gonum.org/v1/gonum/optimize"

	"github.com/katalvlaran/polydescent/poly"
	"github.com/katalvlaran/polydescent/vector"
)

// Problem adapts p to gonum's optimize.Problem. Coordinates follow
// p.FreeVariables(), which is also returned so callers can map gonum's
// []float64 back to names. Grad uses the exact symbolic derivatives.
//
// Func and Grad panic if x has the wrong length; gonum only calls them
// with vectors of the dimension passed to optimize.Minimize.
func Problem(p poly.Polynomial) (optimize.Problem, []string) {
	vars := p.FreeVariables()
	grads := make([]poly.Polynomial, len(vars))
	for i, v := range vars {
		grads[i] = p.Differentiate(v)
	}

	point := func(x []float64) vector.Vector {
		if len(x) != len(vars) {
			panic("descent: dimension mismatch in optimize.Problem")
		}
		pt := make(vector.Vector, len(vars))
		for i, v := range vars {
			pt[v] = x[i]
		}

		return pt
	}

	return optimize.Problem{
		Func: func(x []float64) float64 {
			f, err := p.Evaluate(point(x))
			if err != nil {
				panic(err)
			}

			return f
		},
		Grad: func(grad, x []float64) {
			pt := point(x)
			for i, dp := range grads {
				g, err := dp.Evaluate(pt)
				if err != nil {
					panic(err)
				}
				grad[i] = g
			}
		},
	}, vars
}

// ToSlice returns the values of pt in the order of vars.
func ToSlice(pt vector.Vector, vars []string) []float64 {
	out := make([]float64, len(vars))
	for i, v := range vars {
		out[i] = pt[v]
	}

	return out
}
