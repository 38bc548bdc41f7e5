// SPDX-License-Identifier: MIT

package poly

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/katalvlaran/polydescent/vector"
)

// Term is a single monomial: a coefficient times a product of distinct
// variables raised to positive integer powers.
//
// vars and pows are parallel and keep the order in which the variables
// were written; a variable with exponent 0 is never stored. The slices are
// never modified after construction, so Terms are safe to copy by value.
type Term struct {
	coef float64
	vars []string
	pows []int
}

// Factor is one variable-power pair of a Term.
type Factor struct {
	Name string
	Exp  int
}

// NewTerm builds a Term from a coefficient and variable factors.
// Returns ErrParse if coef is not finite, a name is not a valid variable
// name, an exponent is < 1, or a name is repeated.
func NewTerm(coef float64, factors ...Factor) (Term, error) {
	t := Term{
		coef: coef,
		vars: make([]string, 0, len(factors)),
		pows: make([]int, 0, len(factors)),
	}
	if math.IsNaN(coef) || math.IsInf(coef, 0) {
		return Term{}, fmt.Errorf("%w: non-finite coefficient %v", ErrParse, coef)
	}
	for _, f := range factors {
		if !isVariableName(f.Name) {
			return Term{}, fmt.Errorf("%w: invalid variable name %q", ErrParse, f.Name)
		}
		if f.Exp < 1 {
			return Term{}, fmt.Errorf("%w: exponent of %s must be positive, got %d", ErrParse, f.Name, f.Exp)
		}
		if t.index(f.Name) >= 0 {
			return Term{}, fmt.Errorf("%w: %s appears twice", ErrParse, f.Name)
		}
		t.vars = append(t.vars, f.Name)
		t.pows = append(t.pows, f.Exp)
	}

	return t, nil
}

// ParseTerm parses text such as "2.1*x^4*y*z^2" or "-3*2*x".
//
// The text is split on '*'. A factor written as a decimal literal
// (optional sign, digits with an optional fraction, optional exponent)
// multiplies into the coefficient; anything else must be "name" or
// "name^k" with k a positive integer (default 1).
func ParseTerm(s string) (Term, error) {
	t := Term{coef: 1}
	for _, raw := range strings.Split(s, "*") {
		factor := strings.TrimSpace(raw)
		if factor == "" {
			return Term{}, fmt.Errorf("%w: empty factor in %q", ErrParse, s)
		}

		// Numeric factors multiply into the coefficient.
		if isRealLiteral(factor) {
			c, err := strconv.ParseFloat(factor, 64)
			if err != nil || math.IsInf(c, 0) {
				return Term{}, fmt.Errorf("%w: coefficient %q out of range", ErrParse, factor)
			}
			if t.coef *= c; math.IsInf(t.coef, 0) {
				return Term{}, fmt.Errorf("%w: coefficient of %q out of range", ErrParse, s)
			}
			continue
		}

		name, pow, err := parseFactor(factor)
		if err != nil {
			return Term{}, err
		}
		if t.index(name) >= 0 {
			return Term{}, fmt.Errorf("%w: %s appears twice in %q", ErrParse, name, s)
		}
		t.vars = append(t.vars, name)
		t.pows = append(t.pows, pow)
	}

	return t, nil
}

// parseFactor splits "name^k" into its parts.
func parseFactor(factor string) (string, int, error) {
	parts := strings.Split(factor, "^")
	if len(parts) > 2 {
		return "", 0, fmt.Errorf("%w: could not parse %q", ErrParse, factor)
	}
	name := strings.TrimSpace(parts[0])
	if !isVariableName(name) {
		return "", 0, fmt.Errorf("%w: could not parse %q", ErrParse, factor)
	}
	if len(parts) == 1 {
		return name, 1, nil
	}
	pow, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", 0, fmt.Errorf("%w: could not parse %q", ErrParse, factor)
	}
	if pow < 1 {
		return "", 0, fmt.Errorf("%w: exponent must be positive in %q", ErrParse, factor)
	}

	return name, pow, nil
}

// isRealLiteral reports whether s matches [-+]?(d+(.d*)?|.d+)([eE][-+]?d+)?
// with ASCII digits. Hex floats, '_' separators and the words accepted by
// strconv.ParseFloat (inf, nan) are not literals.
func isRealLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	mantissa := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '-' || s[i] == '+') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}

	return i == len(s)
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// reservedNames are spellings of non-finite floats. They are never
// variables, since a term holding one could not be told apart from a
// coefficient once rendered.
var reservedNames = []string{"inf", "infinity", "nan"}

// isVariableName reports whether s is an identifier that is not a
// reserved float word.
func isVariableName(s string) bool {
	if !isIdentifier(s) {
		return false
	}
	for _, w := range reservedNames {
		if strings.EqualFold(s, w) {
			return false
		}
	}

	return true
}

// isIdentifier reports whether s is a letter or '_' followed by letters,
// digits or '_'.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}

// index returns the position of v in t.vars, or -1.
func (t Term) index(v string) int {
	for i, name := range t.vars {
		if name == v {
			return i
		}
	}

	return -1
}

// Coefficient returns the numeric coefficient.
func (t Term) Coefficient() float64 { return t.coef }

// Variables returns the variable names in the order they were written.
func (t Term) Variables() []string {
	return append([]string(nil), t.vars...)
}

// Exponent returns the power of v in t, or 0 when v does not occur.
func (t Term) Exponent(v string) int {
	if i := t.index(v); i >= 0 {
		return t.pows[i]
	}

	return 0
}

// FreeVariables returns the variables of t in lexicographic order.
func (t Term) FreeVariables() []string {
	out := t.Variables()
	sort.Strings(out)

	return out
}

// String renders t so that ParseTerm accepts it again, e.g. "2.100*x^4*y".
func (t Term) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatFloat(t.coef, 'f', 3, 64))
	for i, v := range t.vars {
		sb.WriteByte('*')
		sb.WriteString(v)
		if t.pows[i] != 1 {
			sb.WriteByte('^')
			sb.WriteString(strconv.Itoa(t.pows[i]))
		}
	}

	return sb.String()
}

// Evaluate returns coef · Π point[v]^k.
// Returns ErrUnboundVariable if point lacks any variable of t.
func (t Term) Evaluate(point vector.Vector) (float64, error) {
	prod := 1.0
	for i, v := range t.vars {
		x, ok := point[v]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnboundVariable, v)
		}
		prod *= ipow(x, t.pows[i])
	}

	return t.coef * prod, nil
}

// Differentiate returns ∂t/∂v as a new Term; t is left untouched.
//
//   - v absent          → zero term (coefficient 0, no variables)
//   - v with exponent 1 → v dropped, coefficient unchanged
//   - v with exponent k → v^(k-1), coefficient multiplied by k
func (t Term) Differentiate(v string) Term {
	i := t.index(v)
	if i < 0 {
		return Term{}
	}

	d := Term{
		coef: t.coef,
		vars: make([]string, 0, len(t.vars)),
		pows: make([]int, 0, len(t.pows)),
	}
	for j, name := range t.vars {
		k := t.pows[j]
		if j == i {
			if k == 1 {
				continue
			}
			d.coef *= float64(k)
			k--
		}
		d.vars = append(d.vars, name)
		d.pows = append(d.pows, k)
	}

	return d
}

// ipow computes x^k for k ≥ 0 by repeated squaring.
func ipow(x float64, k int) float64 {
	result := 1.0
	for k > 0 {
		if k&1 == 1 {
			result *= x
		}
		x *= x
		k >>= 1
	}

	return result
}
