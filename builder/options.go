// SPDX-License-Identifier: MIT
// Package: markovsim/builder
//
// options.go - functional options for the builder package.
//
// Contract (strict):
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.
//   • No hidden globals; everything flows through builderConfig.

package builder

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// BuilderOption customizes the behavior of a constructor by mutating a
// builderConfig instance before the matrix is built.
// Complexity: applying N options costs O(N) time, O(1) space.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic builders.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a PCG-backed *rand.Rand with the given seed (deterministic).
// Use this in tests and examples to lock outcomes.
func WithSeed(seed uint64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithWeightFn overrides the generator of raw row weights. Panics on nil.
func WithWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) {
		c.weightFn = fn
	}
}

// WithDensity sets the probability that an off-diagonal entry receives a
// weight in random constructors. Panics if p is outside [0,1].
func WithDensity(p float64) BuilderOption {
	if p < MinProbability || p > MaxProbability || math.IsNaN(p) {
		panic(fmt.Sprintf("builder: WithDensity(%g) outside [0,1]", p))
	}
	return func(c *builderConfig) {
		c.density = p
	}
}

// WithTolerance sets the row-sum tolerance of the built chain.
// Panics if tol is not a finite number > 0.
func WithTolerance(tol float64) BuilderOption {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(fmt.Sprintf("builder: WithTolerance(%g) must be finite and > 0", tol))
	}
	return func(c *builderConfig) {
		c.tolerance = tol
	}
}
