// SPDX-License-Identifier: MIT

package poly

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/polydescent/vector"
)

// termSeparator joins rendered terms.
const termSeparator = " + "

// Polynomial is an ordered sum of Terms. The zero value is the empty
// polynomial, which renders as "" and evaluates to 0.
type Polynomial struct {
	terms []Term
}

// NewPolynomial returns the sum of the given terms, in order.
func NewPolynomial(terms ...Term) Polynomial {
	return Polynomial{terms: append([]Term(nil), terms...)}
}

// Parse parses a '+'-separated list of terms, e.g. "x^2 + y^2 + -4*x*y + 8".
// Blank text yields the empty polynomial. Any malformed term fails the
// whole parse with ErrParse.
func Parse(s string) (Polynomial, error) {
	if strings.TrimSpace(s) == "" {
		return Polynomial{}, nil
	}
	pieces := strings.Split(s, "+")
	p := Polynomial{terms: make([]Term, 0, len(pieces))}
	for i, piece := range pieces {
		t, err := ParseTerm(piece)
		if err != nil {
			return Polynomial{}, fmt.Errorf("term %d: %w", i+1, err)
		}
		p.terms = append(p.terms, t)
	}

	return p, nil
}

// MustParse is like Parse but panics on error. Intended for literals in
// tests and examples.
func MustParse(s string) Polynomial {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return p
}

// Terms returns a copy of the term list.
func (p Polynomial) Terms() []Term {
	return append([]Term(nil), p.terms...)
}

// Len returns the number of terms.
func (p Polynomial) Len() int { return len(p.terms) }

// String renders p as terms joined by " + ".
func (p Polynomial) String() string {
	parts := make([]string, len(p.terms))
	for i, t := range p.terms {
		parts[i] = t.String()
	}

	return strings.Join(parts, termSeparator)
}

// FreeVariables returns every variable used by any term, sorted and
// without duplicates.
func (p Polynomial) FreeVariables() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, t := range p.terms {
		for _, v := range t.vars {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)

	return out
}

// Evaluate returns Σ term(point).
// All variables are checked before any arithmetic; a missing one yields
// ErrUnboundVariable.
func (p Polynomial) Evaluate(point vector.Vector) (float64, error) {
	if err := p.checkBound(point); err != nil {
		return 0, err
	}

	sum := 0.0
	for _, t := range p.terms {
		x, err := t.Evaluate(point)
		if err != nil {
			return 0, err
		}
		sum += x
	}

	return sum, nil
}

// checkBound returns ErrUnboundVariable naming the first free variable of p
// (in sorted order) that point does not bind.
func (p Polynomial) checkBound(point vector.Vector) error {
	for _, v := range p.FreeVariables() {
		if _, ok := point[v]; !ok {
			return fmt.Errorf("%w: %s", ErrUnboundVariable, v)
		}
	}

	return nil
}

// Differentiate returns ∂p/∂v. Each term is differentiated in place of the
// original, so the result has exactly as many terms as p, in the same
// order; terms without v become zero terms. p is left untouched.
func (p Polynomial) Differentiate(v string) Polynomial {
	d := Polynomial{terms: make([]Term, len(p.terms))}
	for i, t := range p.terms {
		d.terms[i] = t.Differentiate(v)
	}

	return d
}

// Gradient evaluates ∂p/∂k at point for every key k of point.
// Returns ErrUnboundVariable if point does not bind a variable of p.
func (p Polynomial) Gradient(point vector.Vector) (vector.Vector, error) {
	if err := p.checkBound(point); err != nil {
		return nil, err
	}

	return p.Partials(vector.Keys(point)...).At(point)
}

// Partials is a fixed set of partial derivatives of one polynomial, built
// once and evaluated at many points.
type Partials struct {
	vars  []string
	polys []Polynomial
}

// Partials differentiates p with respect to each of vars, in order.
func (p Polynomial) Partials(vars ...string) Partials {
	d := Partials{
		vars:  append([]string(nil), vars...),
		polys: make([]Polynomial, len(vars)),
	}
	for i, v := range vars {
		d.polys[i] = p.Differentiate(v)
	}

	return d
}

// Variables returns the variables the partials were taken with respect to.
func (d Partials) Variables() []string {
	return append([]string(nil), d.vars...)
}

// At evaluates every partial at point and returns them keyed by variable.
func (d Partials) At(point vector.Vector) (vector.Vector, error) {
	grad := make(vector.Vector, len(d.vars))
	for i, v := range d.vars {
		g, err := d.polys[i].Evaluate(point)
		if err != nil {
			return nil, fmt.Errorf("d/d%s: %w", v, err)
		}
		grad[v] = g
	}

	return grad, nil
}
