// SPDX-License-Identifier: MIT

package poly

import "errors"

var (
	// ErrParse is returned for malformed term or polynomial text: an empty
	// factor, a factor with more than one '^', a non-integer or
	// non-positive exponent, an invalid variable name, or a variable that
	// appears twice in the same term.
	ErrParse = errors.New("poly: parse error")

	// ErrUnboundVariable is returned by Evaluate when the point does not
	// bind every variable the term or polynomial references.
	ErrUnboundVariable = errors.New("poly: unbound variable")
)
