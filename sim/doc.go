// Package sim runs Monte Carlo experiments on Markov chains.
//
// Two drivers are provided:
//
//   - EstimateAbsorption walks many independent trajectories from one start
//     state until each lands in a target (absorbing) state, and reports the
//     fraction of trials ending in each target together with the mean number
//     of steps. EstimateAbsorptionAll repeats this for every transient state.
//
//   - EstimateStationary advances an ensemble of trajectories in lockstep,
//     watches the cross-trial occupation p_t, and decides programmatically
//     when the chain has forgotten its start (the burn-in, see DetectBurnIn).
//     From there it tallies Steps steps per trial and normalises the counts.
//     TraceOccupation returns the raw p_t series for diagnostics.
//
// Determinism. Every trial owns a PCG generator derived from (seed, trial
// index), so an experiment returns identical numbers for a given seed no
// matter how many workers run it. Seed 0 selects DefaultSeed.
//
// Failure is total: a driver either returns a fully formed estimate or an
// error, never a partial result. The sentinels are ErrNonTerminatingChain,
// ErrNoStationaryDistribution and ErrOptionViolation; per-trial failures are
// wrapped in *TrialError.
//
// Options follow the functional pattern: DefaultOptions plus With* helpers.
// Invalid values are recorded and surfaced as ErrOptionViolation when the
// driver runs.
package sim
