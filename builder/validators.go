// Package builder provides validation helpers to enforce
// parameter contracts in chain constructors.
package builder

import "math"

// validateMin ensures that got ≥ min, otherwise ErrTooFewStates.
// Complexity: O(1).
func validateMin(method string, got, min int) error {
	if got < min {
		return builderErrorf(method, ErrTooFewStates, "parameter must be ≥ %d, got %d", min, got)
	}

	return nil
}

// validateProbability enforces p ∈ [MinProbability, MaxProbability].
// Complexity: O(1).
func validateProbability(method string, p float64) error {
	if p < MinProbability || p > MaxProbability || math.IsNaN(p) {
		return builderErrorf(method, ErrInvalidProbability, "probability must be in [%.1f,%.1f], got %g",
			MinProbability, MaxProbability, p)
	}

	return nil
}

// requireRand fails with ErrNeedRandSource when cfg carries no RNG.
func requireRand(method string, cfg builderConfig) error {
	if cfg.rng == nil {
		return builderErrorf(method, ErrNeedRandSource, "use WithSeed or WithRand")
	}

	return nil
}
