// SPDX-License-Identifier: MIT

package chain

import "errors"

// Sentinel errors for chain construction and sampling.
var (
	// ErrInvalidDistribution is returned when a matrix row or a distribution
	// has a negative or non-finite weight, or does not sum to 1 within tolerance.
	ErrInvalidDistribution = errors.New("chain: invalid distribution")

	// ErrNonSquare is returned when a transition matrix is not N×N.
	ErrNonSquare = errors.New("chain: transition matrix is not square")

	// ErrStateOutOfRange is returned for a state index outside [0, N).
	ErrStateOutOfRange = errors.New("chain: state index out of range")

	// ErrEmpty is returned for a zero-length distribution, a nil matrix or
	// an all-zero count vector.
	ErrEmpty = errors.New("chain: empty input")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("chain: invalid option supplied")
)
