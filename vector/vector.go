// SPDX-License-Identifier: MIT

package vector

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ErrKeyMismatch is returned by Sum when the operands do not share
// exactly the same key set.
var ErrKeyMismatch = errors.New("vector: key mismatch")

// Vector maps a variable name to its real value.
type Vector map[string]float64

// Zero returns a vector with every name in keys mapped to 0.
func Zero(keys []string) Vector {
	out := make(Vector, len(keys))
	for _, k := range keys {
		out[k] = 0
	}

	return out
}

// Clone returns an independent copy of v. A nil v yields an empty vector.
func Clone(v Vector) Vector {
	out := make(Vector, len(v))
	for k, x := range v {
		out[k] = x
	}

	return out
}

// Keys returns the keys of v in lexicographic order.
func Keys(v Vector) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// SameKeys reports whether a and b have identical key sets.
func SameKeys(a, b Vector) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}

	return true
}

// Sum returns the pointwise sum a+b.
// Returns ErrKeyMismatch (wrapped with the offending keys) when the key
// sets differ.
// Complexity: O(n).
func Sum(a, b Vector) (Vector, error) {
	if !SameKeys(a, b) {
		return nil, fmt.Errorf("%w: %v vs %v", ErrKeyMismatch, Keys(a), Keys(b))
	}
	out := make(Vector, len(a))
	for k, x := range a {
		out[k] = x + b[k]
	}

	return out, nil
}

// Scale returns s·a.
func Scale(s float64, a Vector) Vector {
	out := make(Vector, len(a))
	for k, x := range a {
		out[k] = s * x
	}

	return out
}

// L2Norm returns the Euclidean norm of a; 0 for an empty vector.
// Values are summed in key order so the result is reproducible bit for bit.
func L2Norm(a Vector) float64 {
	if len(a) == 0 {
		return 0
	}

	return floats.Norm(values(a), 2)
}

// values returns the entries of a in key order.
func values(a Vector) []float64 {
	keys := Keys(a)
	out := make([]float64, len(keys))
	for i, k := range keys {
		out[i] = a[k]
	}

	return out
}

// String renders v as "{k1=v1, k2=v2}" with keys sorted and four decimals.
func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range Keys(v) {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%.4f", k, v[k])
	}
	sb.WriteByte('}')

	return sb.String()
}
