// SPDX-License-Identifier: MIT
// Package: markovsim/builder
//
// api.go - public entry-points for the builder package.
//
// Design contract (strict):
//   - Every constructor resolves its options into an immutable builderConfig,
//     validates parameters, assembles rows and returns the validated chain.
//   - Determinism: same inputs/options/seed ⇒ identical matrices.
//   - Safety: never panic; return sentinel errors wrapped with the method name.
//
// AI-Hints (practical):
//   - RandomAbsorbing(n, k) is the quickest way to get a chain for
//     sim.EstimateAbsorption vs closedform.Absorption comparisons.
//   - Cycle(n) is periodic: sim.EstimateStationary rejects it from a point
//     mass; Lazy(Cycle(n), hold) is aperiodic and converges to Uniform(n).
//   - GamblersRuin(n, 0.5) has the exact answer P(hit n | start i) = i/n.

package builder

import (
	"fmt"

	"github.com/katalvlaran/markovsim/chain"
	"github.com/katalvlaran/markovsim/matrix"
)

// RandomStochastic returns an n-state chain with random rows.
//
// Each row draws, per column, whether the entry is a candidate (probability
// = density) and always adds one uniformly chosen column, so no row is empty.
// Candidates get raw weights from the WeightFn and the row is normalised.
//
// Errors: ErrTooFewStates (n < 1), ErrNeedRandSource, ErrConstructFailed.
// Complexity: O(n²) time and space.
func RandomStochastic(n int, opts ...BuilderOption) (*chain.TransitionMatrix, error) {
	cfg := newBuilderConfig(opts...)
	if err := validateMin(MethodRandomStochastic, n, MinStates); err != nil {
		return nil, err
	}
	if err := requireRand(MethodRandomStochastic, cfg); err != nil {
		return nil, err
	}

	rows := make([][]float64, n)
	for i := range rows {
		row, err := cfg.randomRow(n, -1)
		if err != nil {
			return nil, builderErrorf(MethodRandomStochastic, err, "row %d", i)
		}
		rows[i] = row
	}

	return cfg.buildNormalized(MethodRandomStochastic, rows)
}

// RandomAbsorbing returns an n-state chain whose last k states are absorbing.
// Every transient row is random (as in RandomStochastic) and carries a
// positive weight to absorbing state n−k + (i mod k), so absorption from any
// start happens with probability 1.
//
// Errors: ErrTooFewStates (k < 1 or n < k+1), ErrNeedRandSource, ErrConstructFailed.
func RandomAbsorbing(n, k int, opts ...BuilderOption) (*chain.TransitionMatrix, error) {
	cfg := newBuilderConfig(opts...)
	if err := validateMin(MethodRandomAbsorbing, k, 1); err != nil {
		return nil, err
	}
	if err := validateMin(MethodRandomAbsorbing, n, k+1); err != nil {
		return nil, err
	}
	if err := requireRand(MethodRandomAbsorbing, cfg); err != nil {
		return nil, err
	}

	first := n - k
	rows := make([][]float64, n)
	for i := 0; i < first; i++ {
		row, err := cfg.randomRow(n, first+i%k)
		if err != nil {
			return nil, builderErrorf(MethodRandomAbsorbing, err, "row %d", i)
		}
		rows[i] = row
	}
	for i := first; i < n; i++ {
		rows[i] = oneHot(n, i)
	}

	return cfg.buildNormalized(MethodRandomAbsorbing, rows)
}

// Cycle returns the deterministic ring i → (i+1) mod n. Irreducible with
// period n; its unique stationary distribution is uniform.
//
// Errors: ErrTooFewStates (n < 2).
func Cycle(n int, opts ...BuilderOption) (*chain.TransitionMatrix, error) {
	cfg := newBuilderConfig(opts...)
	if err := validateMin(MethodCycle, n, MinCycleStates); err != nil {
		return nil, err
	}
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = oneHot(n, (i+1)%n)
	}

	return cfg.build(MethodCycle, rows)
}

// GamblersRuin returns the birth–death chain on states 0..target: from
// 0 < i < target move to i+1 with probability p and to i−1 otherwise;
// 0 and target are absorbing.
//
// Errors: ErrTooFewStates (target < 2), ErrInvalidProbability.
func GamblersRuin(target int, p float64, opts ...BuilderOption) (*chain.TransitionMatrix, error) {
	cfg := newBuilderConfig(opts...)
	if err := validateMin(MethodGamblersRuin, target, MinRuinTarget); err != nil {
		return nil, err
	}
	if err := validateProbability(MethodGamblersRuin, p); err != nil {
		return nil, err
	}
	n := target + 1
	rows := make([][]float64, n)
	rows[0] = oneHot(n, 0)
	rows[target] = oneHot(n, target)
	for i := 1; i < target; i++ {
		rows[i] = make([]float64, n)
		rows[i][i+1] = p
		rows[i][i-1] = 1 - p
	}

	return cfg.build(MethodGamblersRuin, rows)
}

// Identity returns the n-state chain in which every state is absorbing.
//
// Errors: ErrTooFewStates (n < 1).
func Identity(n int, opts ...BuilderOption) (*chain.TransitionMatrix, error) {
	cfg := newBuilderConfig(opts...)
	if err := validateMin(MethodIdentity, n, MinStates); err != nil {
		return nil, err
	}
	id, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodIdentity, err)
	}

	return cfg.fromMatrix(MethodIdentity, id)
}

// Lazy returns hold·I + (1−hold)·M: at every step the walker stays put with
// probability hold. For hold > 0 the result is aperiodic and keeps the
// stationary distributions of m.
//
// Errors: ErrTooFewStates (nil m), ErrInvalidProbability.
func Lazy(m *chain.TransitionMatrix, hold float64, opts ...BuilderOption) (*chain.TransitionMatrix, error) {
	cfg := newBuilderConfig(opts...)
	if m == nil {
		return nil, builderErrorf(MethodLazy, ErrTooFewStates, "nil chain")
	}
	if err := validateProbability(MethodLazy, hold); err != nil {
		return nil, err
	}
	moving, err := matrix.Scale(m.Dense(), 1-hold)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodLazy, err)
	}
	id, err := matrix.NewIdentity(m.N())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodLazy, err)
	}
	staying, err := matrix.Scale(id, hold)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodLazy, err)
	}
	sum, err := matrix.Add(staying, moving)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodLazy, err)
	}

	return cfg.fromMatrix(MethodLazy, sum)
}
