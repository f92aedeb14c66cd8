// SPDX-License-Identifier: MIT

package chain

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Source is a uniform random generator. *math/rand/v2.Rand satisfies it.
//
// A Source is never shared between goroutines by this module; callers that
// run trials in parallel give each trial its own Source.
type Source interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
}

// Sample draws one index from weights, which must form a probability vector
// within tol (a non-positive tol selects DefaultTolerance).
//
// Implementation:
//   - Stage 1: validateWeights (ErrEmpty / ErrInvalidDistribution).
//   - Stage 2: cumulative sums via floats.CumSum, then searchCumulative.
//
// Exactly one value is consumed from src. Indices with zero weight are never returned.
// Complexity: O(N) for the cumulative pass, O(log N) for the search.
func Sample(weights []float64, src Source, tol float64) (int, error) {
	if src == nil {
		return 0, fmt.Errorf("chain.Sample: nil source: %w", ErrEmpty)
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if err := validateWeights(weights, tol); err != nil {
		return 0, fmt.Errorf("chain.Sample: %w", err)
	}
	cum := floats.CumSum(make([]float64, len(weights)), weights)

	return searchCumulative(cum, src.Float64()), nil
}

// Step advances the chain one transition from current.
//
// Rows were validated when m was built, so the only failure modes are a nil
// matrix or source (ErrEmpty) and a bad state index (ErrStateOutOfRange).
//
// Complexity: O(log N), no allocations.
func Step(m *TransitionMatrix, current int, src Source) (int, error) {
	if m == nil || src == nil {
		return 0, fmt.Errorf("chain.Step: nil matrix or source: %w", ErrEmpty)
	}
	if err := m.checkState(current); err != nil {
		return 0, fmt.Errorf("chain.Step: %w", err)
	}

	return searchCumulative(m.cum[current], src.Float64()), nil
}

// searchCumulative maps u ∈ [0,1) onto the first index whose cumulative weight
// exceeds u·total. Scaling by the row total keeps the last state reachable when
// a row sums to 1−δ within tolerance.
func searchCumulative(cum []float64, u float64) int {
	n := len(cum)
	x := u * cum[n-1]
	idx := sort.Search(n, func(i int) bool { return cum[i] > x })
	if idx < n {
		return idx
	}
	// Rounding put x on the total; fall back to the last positive-weight state.
	idx = n - 1
	for idx > 0 && cum[idx] == cum[idx-1] {
		idx--
	}

	return idx
}
