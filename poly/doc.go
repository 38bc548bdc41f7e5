// SPDX-License-Identifier: MIT

// Package poly parses, renders, evaluates and symbolically differentiates
// multivariate polynomials with real coefficients and positive integer
// exponents.
//
// 🚀 Model
//
//	Term       — c · v₁^k₁ · v₂^k₂ · …   (one monomial, variables unique)
//	Polynomial — Term₁ + Term₂ + …       (terms kept in textual order)
//
// Text format:
//
//	polynomial := term (" + " term)*
//	term       := factor ("*" factor)*
//	factor     := real_literal | variable ("^" integer)?
//
// A real_literal is a plain decimal such as "40", "-0.5" or "1e2"; hex
// floats and '_' separators are not accepted. The words inf, infinity and
// nan (any case) are reserved and may not name a variable.
// Several numeric factors in one term multiply together ("2*x*3" is 6·x).
// Rendering always prints the coefficient with three decimals and each
// variable as "*v" or "*v^k", so "x^2 + -4*x*y + 8" renders as
// "1.000*x^2 + -4.000*x*y + 8.000". Re-parsing a rendering yields a
// polynomial that evaluates identically (up to the three-decimal rounding
// of the coefficients).
//
// ✨ Differentiation
//
// Term.Differentiate and Polynomial.Differentiate are pure: they build new
// values from the old ones and never share or mutate internal slices. The
// power rule is applied term by term without any simplification, so a term
// that does not mention the variable differentiates to the zero term and
// still occupies its slot, rendering as "0.000":
//
//	p  := poly.MustParse("x^2 + y^2 + -4*x*y + 8")
//	dp := p.Differentiate("x") // 2.000*x + 0.000 + -4.000*y + 0.000
//
// Partials builds a set of derivatives once for repeated evaluation, as a
// descent loop needs; Gradient is the one-shot form.
//
// Errors:
//   - ErrParse            — malformed term or polynomial text.
//   - ErrUnboundVariable  — evaluation point lacks a referenced variable.
package poly
