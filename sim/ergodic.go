// SPDX-License-Identifier: MIT

package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/markovsim/chain"
)

// StationaryEstimate is the outcome of EstimateStationary.
type StationaryEstimate struct {
	// Distribution is the normalised occupation over the sampled steps.
	Distribution chain.Distribution
	// BurnIn is the first sampled step.
	BurnIn int
	// Samples is the number of tallied (trial, step) pairs: Trials · Steps.
	Samples int64
	// Trials and Steps echo the options the estimate was produced with.
	Trials int
	Steps  int
}

// ensemble advances Trials trajectories in lockstep. Trial i always uses the
// same generator, so per-step occupation counts do not depend on Workers.
type ensemble struct {
	m      *chain.TransitionMatrix
	starts []int
	states []int
	rngs   []*rand.Rand
	spans  []span
}

// newEnsemble draws every trial's start state from init and returns the
// ensemble together with the occupation counts at step 0.
func newEnsemble(m *chain.TransitionMatrix, init chain.Distribution, o Options) (*ensemble, []int64, error) {
	e := &ensemble{
		m:      m,
		starts: make([]int, o.Trials),
		states: make([]int, o.Trials),
		rngs:   make([]*rand.Rand, o.Trials),
		spans:  partition(o.Trials, o.Workers),
	}
	counts := make([]int64, m.N())
	for i := range e.states {
		e.rngs[i] = trialRNG(o.Seed, i)
		s, err := chain.Sample(init, e.rngs[i], m.Tolerance())
		if err != nil {
			return nil, nil, fmt.Errorf("sim: initial state of trial %d: %w", i, err)
		}
		e.starts[i], e.states[i] = s, s
		counts[s]++
	}

	return e, counts, nil
}

// advance moves every trajectory forward by steps transitions and returns the
// occupation counts after each of them (len == steps, each of length N).
// Workers fill private count tables that are summed once they join.
func (e *ensemble) advance(ctx context.Context, steps int) ([][]int64, error) {
	n := e.m.N()
	local := make([][][]int64, len(e.spans))
	g, gctx := errgroup.WithContext(ctx)
	for w, sp := range e.spans {
		g.Go(func() error {
			tbl := make([][]int64, steps)
			for t := range tbl {
				tbl[t] = make([]int64, n)
			}
			for t := 0; t < steps; t++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				row := tbl[t]
				for i := sp.lo; i < sp.hi; i++ {
					next, err := chain.Step(e.m, e.states[i], e.rngs[i])
					if err != nil {
						return &TrialError{Trial: i, Start: e.starts[i], State: e.states[i], Steps: t, Err: err}
					}
					e.states[i] = next
					row[next]++
				}
			}
			local[w] = tbl

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := local[0]
	for _, tbl := range local[1:] {
		for t := range out {
			for s := range out[t] {
				out[t][s] += tbl[t][s]
			}
		}
	}

	return out, nil
}

// checkInit validates init against m.
func checkInit(m *chain.TransitionMatrix, init chain.Distribution) error {
	if m == nil {
		return fmt.Errorf("%w: nil transition matrix", ErrOptionViolation)
	}
	if len(init) != m.N() {
		return fmt.Errorf("sim: initial distribution has %d states, chain has %d: %w",
			len(init), m.N(), chain.ErrInvalidDistribution)
	}
	if err := init.Validate(m.Tolerance()); err != nil {
		return fmt.Errorf("sim: initial distribution: %w", err)
	}

	return nil
}

// toDistributions normalises per-step counts; every row sums to Trials > 0.
func toDistributions(counts [][]int64) []chain.Distribution {
	out := make([]chain.Distribution, len(counts))
	for t, c := range counts {
		out[t], _ = chain.FromCounts(c)
	}

	return out
}

// TraceOccupation returns the empirical cross-trial occupation after each
// step: out[0] is the distribution of the sampled start states and out[t]
// the occupation after t transitions, for t = 1..Steps.
//
// Errors: ErrOptionViolation, chain.ErrInvalidDistribution, context errors.
//
// Complexity: O(Trials · Steps · log N) time, O(Workers · Steps · N) space.
func TraceOccupation(m *chain.TransitionMatrix, init chain.Distribution, opts ...Option) ([]chain.Distribution, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if err = checkInit(m, init); err != nil {
		return nil, err
	}
	exp := o.label("trace")

	e, c0, err := newEnsemble(m, init, o)
	if err != nil {
		return nil, err
	}
	rest, err := e.advance(o.Ctx, o.Steps)
	if err != nil {
		o.Recorder.Failure(exp, ReasonCanceled)
		return nil, err
	}

	o.Recorder.TrialsCompleted(exp, o.Trials)
	o.Recorder.StepsTaken(exp, int64(o.Trials)*int64(o.Steps))

	return toDistributions(append([][]int64{c0}, rest...)), nil
}

// EstimateStationary estimates the stationary distribution of m.
//
// Implementation:
//   - Stage 1: structural check; more than one closed communicating class
//     means no unique stationary law, and a periodic closed class never
//     settles (ErrNoStationaryDistribution in both cases).
//   - Stage 2: draw start states from init and advance the ensemble in
//     chunks of Window steps, appending each p_t to the trace and testing
//     every newly completed window with the DetectBurnIn criterion.
//     No stable window within MaxSteps ⇒ ErrNoStationaryDistribution.
//   - Stage 3: with burn-in b found, advance until steps b..b+Steps-1 are
//     recorded and normalise their summed counts.
//
// The window test only sees sampling noise of order 1/sqrt(Trials). A chain
// that mixes slowly relative to Window can look flat while p_t is still
// drifting, so burn-in may be declared early and the first tallied steps
// carry some of the start's bias. A larger Window, a smaller Epsilon or a
// Steps well above the mixing time keeps that bias small.
//
// Errors: ErrOptionViolation, chain.ErrInvalidDistribution,
// ErrNoStationaryDistribution, context errors.
func EstimateStationary(m *chain.TransitionMatrix, init chain.Distribution, opts ...Option) (*StationaryEstimate, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if err = checkInit(m, init); err != nil {
		return nil, err
	}
	exp := o.label("stationary")
	eps := o.epsilon()

	closed := m.ClosedClasses()
	if len(closed) > 1 {
		o.Recorder.Failure(exp, ReasonNoStationary)
		o.Logger.Warn("chain is reducible", "experiment", exp, "closed_classes", len(closed))

		return nil, fmt.Errorf("sim: %d closed classes: %w", len(closed), ErrNoStationaryDistribution)
	}
	if period, _ := m.Period(closed[0][0]); period > 1 {
		o.Recorder.Failure(exp, ReasonNoStationary)
		o.Logger.Warn("chain is periodic", "experiment", exp, "period", period)

		return nil, fmt.Errorf("sim: closed class has period %d: %w", period, ErrNoStationaryDistribution)
	}

	o.Logger.Debug("stationary experiment started",
		"experiment", exp, "trials", o.Trials, "steps", o.Steps, "window", o.Window,
		"epsilon", eps, "workers", o.Workers, "seed", seedOrDefault(o.Seed))

	e, c0, err := newEnsemble(m, init, o)
	if err != nil {
		return nil, err
	}
	counts := [][]int64{c0}
	trace := toDistributions(counts)

	// Stage 2: burn-in search. trace[t] is p_t; steps taken so far = len(trace)-1.
	var (
		scratch []float64
		burnIn  = -1
		nextEnd = o.Window - 1
	)
	for burnIn < 0 {
		taken := len(trace) - 1
		if taken >= o.MaxSteps {
			break
		}
		chunk, err := e.advance(o.Ctx, min(o.Window, o.MaxSteps-taken))
		if err != nil {
			return nil, o.fail(exp, err)
		}
		counts = append(counts, chunk...)
		trace = append(trace, toDistributions(chunk)...)

		for ; nextEnd < len(trace); nextEnd++ {
			if windowStable(trace, nextEnd, o.Window, eps, &scratch) {
				burnIn = nextEnd - o.Window + 1
				break
			}
		}
	}
	if burnIn < 0 {
		o.Recorder.Failure(exp, ReasonNoStationary)
		o.Logger.Warn("burn-in not reached", "experiment", exp, "max_steps", o.MaxSteps)

		return nil, fmt.Errorf("sim: occupation still varies after %d steps: %w",
			o.MaxSteps, ErrNoStationaryDistribution)
	}
	o.Recorder.BurnIn(exp, burnIn)

	// Stage 3: make sure steps burnIn .. burnIn+Steps-1 are recorded.
	last := burnIn + o.Steps - 1
	if missing := last - (len(counts) - 1); missing > 0 {
		more, err := e.advance(o.Ctx, missing)
		if err != nil {
			return nil, o.fail(exp, err)
		}
		counts = append(counts, more...)
	}
	total := make([]int64, m.N())
	for t := burnIn; t <= last; t++ {
		for s, c := range counts[t] {
			total[s] += c
		}
	}
	dist, err := chain.FromCounts(total)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	simulated := int64(len(counts)-1) * int64(o.Trials)
	o.Recorder.TrialsCompleted(exp, o.Trials)
	o.Recorder.StepsTaken(exp, simulated)
	o.Logger.Debug("stationary experiment finished",
		"experiment", exp, "burn_in", burnIn, "simulated_steps", simulated)

	return &StationaryEstimate{
		Distribution: dist,
		BurnIn:       burnIn,
		Samples:      int64(o.Trials) * int64(o.Steps),
		Trials:       o.Trials,
		Steps:        o.Steps,
	}, nil
}

// fail records a mid-experiment failure and returns err unchanged.
func (o Options) fail(exp string, err error) error {
	reason := ReasonCanceled
	if errors.Is(err, ErrNonTerminatingChain) {
		reason = ReasonNonTerminating
	}
	o.Recorder.Failure(exp, reason)
	o.Logger.Warn("experiment failed", "experiment", exp, "err", err)

	return err
}
