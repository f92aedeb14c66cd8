// SPDX-License-Identifier: MIT
// Package sim - deterministic RNG streams.
//
// Goals:
//   - Determinism: same seed ⇒ identical results, for any worker count.
//   - Independence: each trial owns a PCG stream derived from (seed, trial).
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. A trial's generator is only ever
//     touched by the worker that owns the trial.

package sim

import "math/rand/v2"

// DefaultSeed is the fixed seed used when callers pass seed == 0.
const DefaultSeed uint64 = 1

// streamSalt decorrelates the two PCG words derived from the same inputs.
const streamSalt uint64 = 0xda942042e4dd58b5

// seedOrDefault applies the seed==0 ⇒ DefaultSeed policy.
func seedOrDefault(seed uint64) uint64 {
	if seed == 0 {
		return DefaultSeed
	}

	return seed
}

// deriveSeed mixes a parent seed and a stream identifier with the SplitMix64
// finalizer; small input changes give well-distributed output changes.
//
// Complexity: O(1).
func deriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x
}

// StartSeed returns the experiment seed for one start state of a multi-start
// absorption run, so every start owns its own trial streams. Seed 0 selects
// DefaultSeed first.
func StartSeed(seed uint64, start int) uint64 {
	return deriveSeed(seedOrDefault(seed), uint64(start))
}

// trialSeeds returns the two PCG words for trial i of an experiment.
func trialSeeds(seed uint64, trial int) (uint64, uint64) {
	s := seedOrDefault(seed)

	return deriveSeed(s, uint64(trial)), deriveSeed(s^streamSalt, uint64(trial))
}

// trialRNG returns the generator owned by one trial.
func trialRNG(seed uint64, trial int) *rand.Rand {
	a, b := trialSeeds(seed, trial)

	return rand.New(rand.NewPCG(a, b))
}

// span is a half-open range of trial indices handled by one worker.
type span struct{ lo, hi int }

// partition splits [0, total) into at most workers contiguous spans of
// near-equal size. Empty spans are never returned.
func partition(total, workers int) []span {
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}
	out := make([]span, 0, workers)
	size, rem := total/workers, total%workers
	lo := 0
	for w := 0; w < workers; w++ {
		hi := lo + size
		if w < rem {
			hi++
		}
		out = append(out, span{lo: lo, hi: hi})
		lo = hi
	}

	return out
}
