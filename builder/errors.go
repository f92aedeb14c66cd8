// SPDX-License-Identifier: MIT
// Package: markovsim/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Constructors attach context with builderErrorf / %w.
//   • Constructors never panic; validation panics are confined to
//     option constructor functions (WithX...).

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewStates indicates that a size parameter (n, k) is smaller than the
// allowed minimum for the requested constructor.
var ErrTooFewStates = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates that a probability value is outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor ran without an RNG
// (WithSeed or WithRand must be set).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates that the builder exhausted its redraw budget
// without producing a row with positive total weight.
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf prefixes err with the constructor name and a formatted detail,
// keeping err reachable for errors.Is.
//
// Complexity: O(len(format) + Σlen(args)).
func builderErrorf(method string, err error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
