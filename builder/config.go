// SPDX-License-Identifier: MIT
// Package: markovsim/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults (no surprises):
//   • rng       = nil              (pure/deterministic unless seeded)
//   • weightFn  = DefaultWeightFn  (constant weights → uniform rows)
//   • density   = DefaultDensity   (dense rows)
//   • tolerance = chain.DefaultTolerance
//
// AI-Hints:
//   • Set WithSeed for reproducible RandomStochastic/RandomAbsorbing fixtures.
//   • WithExponentialWeight(1) samples rows uniformly from the simplex.
//   • WithDensity(p) sparsifies rows; each row keeps at least one entry.

package builder

import (
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/markovsim/chain"
	"github.com/katalvlaran/markovsim/matrix"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors (immutable to callers).
type builderConfig struct {
	// RNG for stochastic choices; nil means “no randomness”.
	rng *rand.Rand
	// Weight generator for candidate row entries before normalisation.
	weightFn WeightFn
	// Probability that an off-diagonal entry is a candidate.
	density float64
	// Row-sum tolerance handed to chain.New.
	tolerance float64
}

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (later overrides earlier).
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		weightFn:  DefaultWeightFn,
		density:   DefaultDensity,
		tolerance: chain.DefaultTolerance,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// build validates rows with the configured tolerance.
func (c builderConfig) build(method string, rows [][]float64) (*chain.TransitionMatrix, error) {
	m, err := chain.New(rows, chain.WithTolerance(c.tolerance))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	return m, nil
}

// buildNormalized scales every row of raw weights to unit L1 norm and
// validates the result. A zero row stays zero and is rejected by the chain.
func (c builderConfig) buildNormalized(method string, rows [][]float64) (*chain.TransitionMatrix, error) {
	raw, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	norm, _, err := matrix.NormalizeRowsL1(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	return c.fromMatrix(method, norm)
}

// fromMatrix validates an assembled matrix with the configured tolerance.
func (c builderConfig) fromMatrix(method string, m matrix.Matrix) (*chain.TransitionMatrix, error) {
	tm, err := chain.FromMatrix(m, chain.WithTolerance(c.tolerance))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	return tm, nil
}
