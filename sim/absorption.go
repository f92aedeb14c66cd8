// SPDX-License-Identifier: MIT

package sim

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/markovsim/chain"
)

// ctxCheckEvery is how many trials a worker runs between context checks.
const ctxCheckEvery = 256

// AbsorptionEstimate is the outcome of EstimateAbsorption.
type AbsorptionEstimate struct {
	// Start is the state every trial began in.
	Start int
	// Probabilities maps every target state to the fraction of trials ending there.
	// Unreachable targets are present with probability 0.
	Probabilities map[int]float64
	// Counts maps every target state to the number of trials ending there.
	Counts map[int]int64
	// Trials is the number of trials run.
	Trials int
	// MeanSteps is the average number of transitions before absorption.
	MeanSteps float64
}

// Targets returns the target states in ascending order.
func (e *AbsorptionEstimate) Targets() []int {
	out := make([]int, 0, len(e.Counts))
	for s := range e.Counts {
		out = append(out, s)
	}
	slices.Sort(out)

	return out
}

// absorptionTally is one worker's private result.
type absorptionTally struct {
	counts []int64
	steps  int64
}

// EstimateAbsorption estimates where trajectories from start get absorbed.
//
// Implementation:
//   - Stage 1: options and inputs; absorbing == nil means m.Absorbing().
//   - Stage 2: fail fast with ErrNonTerminatingChain when no target is
//     reachable from start over positive-probability edges.
//   - Stage 3: split trials across workers (errgroup); each trial owns a PCG
//     stream and steps with chain.Step until it hits a target. A trial that
//     exceeds MaxSteps aborts the experiment with a *TrialError wrapping
//     ErrNonTerminatingChain.
//   - Stage 4: sum the per-worker tallies and normalise by Trials.
//
// A start state that is itself a target ends every trial immediately.
//
// Errors: ErrOptionViolation (options, empty/duplicate targets),
// chain.ErrStateOutOfRange, ErrNonTerminatingChain, context errors.
//
// Complexity: O(Trials · E[steps] · log N) time, O(Workers · N) extra space.
func EstimateAbsorption(m *chain.TransitionMatrix, absorbing []int, start int, opts ...Option) (*AbsorptionEstimate, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: nil transition matrix", ErrOptionViolation)
	}
	exp := o.label("absorption")

	if absorbing == nil {
		absorbing = m.Absorbing()
	}
	target, err := targetSet(m, absorbing)
	if err != nil {
		return nil, err
	}
	if start < 0 || start >= m.N() {
		return nil, fmt.Errorf("sim: start %d not in [0,%d): %w", start, m.N(), chain.ErrStateOutOfRange)
	}
	reachable, _ := m.CanReachAny(start, absorbing) // states validated above
	if !reachable {
		o.Recorder.Failure(exp, ReasonNonTerminating)
		o.Logger.Warn("no absorbing state reachable", "experiment", exp, "start", start)

		return nil, fmt.Errorf("sim: no target reachable from state %d: %w", start, ErrNonTerminatingChain)
	}

	o.Logger.Debug("absorption experiment started",
		"experiment", exp, "start", start, "trials", o.Trials, "workers", o.Workers, "seed", seedOrDefault(o.Seed))

	spans := partition(o.Trials, o.Workers)
	tallies := make([]absorptionTally, len(spans))
	g, ctx := errgroup.WithContext(o.Ctx)
	for w, sp := range spans {
		tallies[w].counts = make([]int64, m.N())
		g.Go(func() error {
			pcg := rand.NewPCG(0, 0)
			rng := rand.New(pcg)
			tl := &tallies[w]
			for trial := sp.lo; trial < sp.hi; trial++ {
				if (trial-sp.lo)%ctxCheckEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				pcg.Seed(trialSeeds(o.Seed, trial))
				end, steps, err := absorbOnce(m, target, start, o.MaxSteps, rng)
				if err != nil {
					return &TrialError{Trial: trial, Start: start, State: end, Steps: steps, Err: err}
				}
				tl.counts[end]++
				tl.steps += int64(steps)
			}

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		reason := ReasonNonTerminating
		if !errors.Is(err, ErrNonTerminatingChain) {
			reason = ReasonCanceled
		}
		o.Recorder.Failure(exp, reason)
		o.Logger.Warn("absorption experiment failed", "experiment", exp, "start", start, "err", err)

		return nil, err
	}

	est := &AbsorptionEstimate{
		Start:         start,
		Probabilities: make(map[int]float64, len(absorbing)),
		Counts:        make(map[int]int64, len(absorbing)),
		Trials:        o.Trials,
	}
	var totalSteps int64
	for _, tl := range tallies {
		for _, s := range absorbing {
			est.Counts[s] += tl.counts[s]
		}
		totalSteps += tl.steps
	}
	for s, c := range est.Counts {
		est.Probabilities[s] = float64(c) / float64(o.Trials)
	}
	est.MeanSteps = float64(totalSteps) / float64(o.Trials)

	o.Recorder.TrialsCompleted(exp, o.Trials)
	o.Recorder.StepsTaken(exp, totalSteps)
	o.Logger.Debug("absorption experiment finished",
		"experiment", exp, "start", start, "mean_steps", est.MeanSteps)

	return est, nil
}

// absorbOnce walks one trajectory until it enters a target state.
// Returns the terminal state and the number of transitions taken.
func absorbOnce(m *chain.TransitionMatrix, target []bool, start, maxSteps int, src chain.Source) (int, int, error) {
	s, steps := start, 0
	var err error
	for !target[s] {
		if steps == maxSteps {
			return s, steps, ErrNonTerminatingChain
		}
		if s, err = chain.Step(m, s, src); err != nil {
			return s, steps, err
		}
		steps++
	}

	return s, steps, nil
}

// targetSet validates the target list and returns its membership mask.
func targetSet(m *chain.TransitionMatrix, states []int) ([]bool, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: no absorbing states", ErrOptionViolation)
	}
	mask := make([]bool, m.N())
	for _, s := range states {
		if s < 0 || s >= m.N() {
			return nil, fmt.Errorf("sim: target %d not in [0,%d): %w", s, m.N(), chain.ErrStateOutOfRange)
		}
		if mask[s] {
			return nil, fmt.Errorf("%w: duplicate target %d", ErrOptionViolation, s)
		}
		mask[s] = true
	}

	return mask, nil
}

// EstimateAbsorptionAll runs EstimateAbsorption from every transient state of m,
// in ascending order. Start s runs with StartSeed(seed, s), so the runs are
// independent yet reproducible.
func EstimateAbsorptionAll(m *chain.TransitionMatrix, opts ...Option) ([]AbsorptionEstimate, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: nil transition matrix", ErrOptionViolation)
	}

	transient := m.Transient()
	out := make([]AbsorptionEstimate, 0, len(transient))
	for _, s := range transient {
		startOpts := append(slices.Clone(opts), WithSeed(StartSeed(o.Seed, s)))
		est, err := EstimateAbsorption(m, nil, s, startOpts...)
		if err != nil {
			return nil, fmt.Errorf("sim: start %d: %w", s, err)
		}
		out = append(out, *est)
	}

	return out, nil
}
