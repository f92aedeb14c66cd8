// SPDX-License-Identifier: MIT

package chain

import (
	"fmt"
	"math"
)

// DefaultTolerance is the row-sum tolerance used when none is configured.
const DefaultTolerance = 1e-9

// Option configures TransitionMatrix construction via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds construction parameters.
type Options struct {
	// Tolerance bounds |Σ row − 1| and decides M[i][i] == 1 for absorbing states.
	Tolerance float64

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with Tolerance = DefaultTolerance.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance}
}

// WithTolerance overrides the row-sum tolerance.
//
//	tol > 0: used verbatim
//	tol <= 0, NaN or Inf: invalid option → ErrOptionViolation
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol <= 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			o.err = fmt.Errorf("%w: tolerance must be a positive finite number (%g)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}
