// SPDX-License-Identifier: MIT

package chain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// inf selects the L∞ norm in floats.Distance.
var inf = math.Inf(1)

// Distribution is a probability vector over the states of a chain:
// length N, non-negative entries summing to 1.
type Distribution []float64

// NewDistribution validates p against tol and returns a copy of it.
// A non-positive tol selects DefaultTolerance.
func NewDistribution(p []float64, tol float64) (Distribution, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if err := validateWeights(p, tol); err != nil {
		return nil, fmt.Errorf("chain.NewDistribution: %w", err)
	}

	return append(Distribution(nil), p...), nil
}

// PointMass returns the distribution concentrated on state i of n.
func PointMass(n, i int) (Distribution, error) {
	if n <= 0 {
		return nil, fmt.Errorf("chain.PointMass: n=%d: %w", n, ErrEmpty)
	}
	if i < 0 || i >= n {
		return nil, fmt.Errorf("chain.PointMass: state %d not in [0,%d): %w", i, n, ErrStateOutOfRange)
	}
	d := make(Distribution, n)
	d[i] = 1

	return d, nil
}

// Uniform returns 1/n on every state.
func Uniform(n int) (Distribution, error) {
	if n <= 0 {
		return nil, fmt.Errorf("chain.Uniform: n=%d: %w", n, ErrEmpty)
	}
	d := make(Distribution, n)
	for i := range d {
		d[i] = 1 / float64(n)
	}

	return d, nil
}

// LinearRamp returns p[i] = (i+1) / Σ_k (k+1), a start distribution that
// favours higher-numbered states without excluding any.
func LinearRamp(n int) (Distribution, error) {
	if n <= 0 {
		return nil, fmt.Errorf("chain.LinearRamp: n=%d: %w", n, ErrEmpty)
	}
	d := make(Distribution, n)
	for i := range d {
		d[i] = float64(i + 1)
	}
	floats.Scale(1/floats.Sum(d), d)

	return d, nil
}

// FromCounts normalises occupation counts into a Distribution.
// Returns ErrEmpty when counts is empty or sums to zero.
func FromCounts(counts []int64) (Distribution, error) {
	var total int64
	for _, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("chain.FromCounts: negative count %d: %w", c, ErrInvalidDistribution)
		}
		total += c
	}
	if total == 0 {
		return nil, fmt.Errorf("chain.FromCounts: %w", ErrEmpty)
	}
	d := make(Distribution, len(counts))
	for i, c := range counts {
		d[i] = float64(c) / float64(total)
	}

	return d, nil
}

// Len returns the number of states.
func (d Distribution) Len() int { return len(d) }

// Clone returns an independent copy.
func (d Distribution) Clone() Distribution { return append(Distribution(nil), d...) }

// Validate reports whether d is a probability vector within tol.
func (d Distribution) Validate(tol float64) error { return validateWeights(d, tol) }

// MaxAbsDiff returns max_i |d[i] − o[i]|, or ErrStateOutOfRange on a length mismatch.
func (d Distribution) MaxAbsDiff(o Distribution) (float64, error) {
	if len(d) != len(o) {
		return 0, fmt.Errorf("chain.MaxAbsDiff: lengths %d and %d: %w", len(d), len(o), ErrStateOutOfRange)
	}

	return floats.Distance(d, o, inf), nil
}
