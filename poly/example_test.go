// SPDX-License-Identifier: MIT

package poly_test

import (
	"fmt"

	"github.com/katalvlaran/polydescent/poly"
	"github.com/katalvlaran/polydescent/vector"
)

// ExamplePolynomial_Differentiate shows term-wise differentiation; terms
// that do not mention the variable keep their slot as "0.000".
func ExamplePolynomial_Differentiate() {
	p, err := poly.Parse("x^2 + y^2 + -4*x*y + 8")
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	x0 := vector.Vector{"x": 1, "y": 2}

	dx := p.Differentiate("x")
	val, _ := p.Evaluate(x0)
	dval, _ := dx.Evaluate(x0)

	fmt.Println("p:    ", p)
	fmt.Println("dp/dx:", dx)
	fmt.Println("vars: ", p.FreeVariables())
	fmt.Println("p(x0) =", val, " dp/dx(x0) =", dval)
	// Output:
	// p:     1.000*x^2 + 1.000*y^2 + -4.000*x*y + 8.000
	// dp/dx: 2.000*x + 0.000 + -4.000*y + 0.000
	// vars:  [x y]
	// p(x0) = 5  dp/dx(x0) = -6
}

// ExampleParseTerm shows how numeric factors fold into the coefficient.
func ExampleParseTerm() {
	t, err := poly.ParseTerm("2*x^3*0.5*y")
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println(t, "→", t.Differentiate("x"))
	// Output:
	// 1.000*x^3*y → 3.000*x^2*y
}
