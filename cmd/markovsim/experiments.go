package main

import (
	"context"
	"slices"
	"time"

	"github.com/katalvlaran/markovsim/chain"
	"github.com/katalvlaran/markovsim/closedform"
	"github.com/katalvlaran/markovsim/sim"
)

func (a *app) simOptions(ctx context.Context, name string, p runParams) []sim.Option {
	return []sim.Option{
		sim.WithContext(ctx),
		sim.WithTrials(p.Trials),
		sim.WithSteps(p.Steps),
		sim.WithMaxSteps(p.MaxSteps),
		sim.WithWindow(p.Window),
		sim.WithEpsilon(p.Epsilon),
		sim.WithSeed(p.Seed),
		sim.WithWorkers(p.Workers),
		sim.WithExperiment(name),
		sim.WithLogger(a.logger),
		sim.WithRecorder(a.rec),
	}
}

func (a *app) stateLabels(states []int) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = a.labels(s)
	}

	return out
}

func (a *app) allLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = a.labels(i)
	}

	return out
}

// runAbsorbing estimates absorption from every start and attaches the
// fundamental-matrix values when targets are the chain's absorbing states.
// Empty starts means every non-target state; empty targets means m.Absorbing().
func (a *app) runAbsorbing(ctx context.Context, name string, m *chain.TransitionMatrix,
	starts, targets []int, p runParams) (*AbsorptionReport, error) {
	begin := time.Now()
	defer func() { a.rec.ObserveDuration(name, time.Since(begin)) }()

	if len(targets) == 0 {
		targets = m.Absorbing()
	}
	if len(starts) == 0 {
		for s := 0; s < m.N(); s++ {
			if !slices.Contains(targets, s) {
				starts = append(starts, s)
			}
		}
	}

	var table *closedform.AbsorptionTable
	if slices.Equal(sortedCopy(targets), m.Absorbing()) {
		t, err := closedform.Absorption(a.alg, m)
		if err != nil {
			a.logger.Warn("closed-form absorption unavailable", "experiment", name, "err", err)
		} else {
			table = t
		}
	}

	rep := &AbsorptionReport{
		Experiment: name,
		Trials:     p.Trials,
		Targets:    a.stateLabels(targets),
	}
	for _, s := range starts {
		opts := append(a.simOptions(ctx, name, p), sim.WithSeed(sim.StartSeed(p.Seed, s)))
		est, err := sim.EstimateAbsorption(m, targets, s, opts...)
		if err != nil {
			return nil, err
		}
		row := AbsorptionRow{Start: a.labels(s), MeanSteps: est.MeanSteps}
		for _, t := range targets {
			row.Empirical = append(row.Empirical, est.Probabilities[t])
		}
		if table != nil {
			row.fillExact(table, s, targets)
		}
		rep.Rows = append(rep.Rows, row)
	}

	return rep, nil
}

// fillExact copies the closed-form row for start; absorbing starts have none.
func (r *AbsorptionRow) fillExact(table *closedform.AbsorptionTable, start int, targets []int) {
	steps, err := table.Steps(start)
	if err != nil {
		return
	}
	exact := make([]float64, len(targets))
	for j, t := range targets {
		if exact[j], err = table.Lookup(start, t); err != nil {
			return
		}
	}
	r.Exact = exact
	r.Diff = closedform.Diff(r.Empirical, exact)
	r.ExpectedSteps = &steps
}

// runErgodic estimates the stationary distribution and attaches the
// eigenvector and M^k references when they exist.
func (a *app) runErgodic(ctx context.Context, name string, m *chain.TransitionMatrix,
	init chain.Distribution, p runParams) (*StationaryReport, error) {
	begin := time.Now()
	defer func() { a.rec.ObserveDuration(name, time.Since(begin)) }()

	est, err := sim.EstimateStationary(m, init, a.simOptions(ctx, name, p)...)
	if err != nil {
		return nil, err
	}
	rep := &StationaryReport{
		Experiment: name,
		States:     a.allLabels(m.N()),
		Trials:     est.Trials,
		Steps:      est.Steps,
		BurnIn:     est.BurnIn,
		Empirical:  est.Distribution,
		Power:      p.Power,
	}

	if exact, err := closedform.Stationary(a.alg, m); err != nil {
		a.logger.Warn("closed-form stationary distribution unavailable", "experiment", name, "err", err)
	} else {
		rep.Exact = exact
		rep.DiffExact = closedform.Diff(est.Distribution, exact)
	}
	if byPower, err := closedform.StationaryByPower(m, p.Power); err != nil {
		a.logger.Warn("matrix power reference unavailable", "experiment", name, "err", err)
	} else {
		rep.ByPower = byPower
		rep.DiffPower = closedform.Diff(est.Distribution, byPower)
	}

	return rep, nil
}

// runTrace records the occupation after each step and its running average;
// every > 1 keeps every every-th step plus the last one.
func (a *app) runTrace(ctx context.Context, name string, m *chain.TransitionMatrix,
	init chain.Distribution, every int, p runParams) (*TraceReport, error) {
	begin := time.Now()
	defer func() { a.rec.ObserveDuration(name, time.Since(begin)) }()

	trace, err := sim.TraceOccupation(m, init, a.simOptions(ctx, name, p)...)
	if err != nil {
		return nil, err
	}
	avg := make([][]float64, m.N())
	for s := range avg {
		if avg[s], err = sim.RunningAverage(trace, s); err != nil {
			return nil, err
		}
	}
	if every < 1 {
		every = 1
	}

	rep := &TraceReport{Experiment: name, States: a.allLabels(m.N()), Trials: p.Trials}
	last := len(trace) - 1
	for t, occ := range trace {
		if t%every != 0 && t != last {
			continue
		}
		row := TraceRow{Step: t, Occupation: occ, Average: make([]float64, m.N())}
		for s := range avg {
			row.Average[s] = avg[s][t]
		}
		rep.Rows = append(rep.Rows, row)
	}

	return rep, nil
}

func sortedCopy(s []int) []int {
	out := slices.Clone(s)
	slices.Sort(out)

	return out
}
