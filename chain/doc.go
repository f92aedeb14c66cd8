// Package chain defines the data model of a discrete-time, finite-state Markov
// chain and the single-step transition that every simulation is built on.
//
// A TransitionMatrix is an N×N row-stochastic matrix: every entry is finite
// and non-negative and every row sums to 1 within a tolerance (1e-9 unless
// WithTolerance says otherwise). It is validated once, at construction, and is
// immutable afterwards, so a running simulation never meets a malformed row.
// Construction also derives:
//
//   - the cumulative weights of every row, used by Step for O(log N) sampling;
//   - the absorbing states (M[i][i] == 1) and the transient ones (the rest);
//   - the positive-probability edge lists used by the reachability helpers.
//
// Sampling draws exactly one uniform number per step from a caller-owned
// Source, scales it by the row total and binary-searches the cumulative row.
// States with zero weight are never returned, and a fixed seed always yields
// the same sequence of states.
//
// Example:
//
//	m, err := chain.New([][]float64{
//		{0.9, 0.1},
//		{0.5, 0.5},
//	})
//	if err != nil {
//		return err
//	}
//	rng := rand.New(rand.NewPCG(1, 2))
//	next, err := chain.Step(m, 0, rng)
//
// Distribution is the companion vector type for initial distributions and
// normalised occupation counts.
package chain
