package sim_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/katalvlaran/markovsim/chain"
	"github.com/katalvlaran/markovsim/sim"
	"github.com/stretchr/testify/require"
)

// absorbingRows is the four-state example with absorbing ends 0 and 3.
var absorbingRows = [][]float64{
	{1, 0, 0, 0},
	{0.1, 0.2, 0.3, 0.4},
	{0.5, 0.1, 0.1, 0.3},
	{0, 0, 0, 1},
}

func mustChain(tb testing.TB, rows [][]float64) *chain.TransitionMatrix {
	tb.Helper()
	m, err := chain.New(rows)
	require.NoError(tb, err)

	return m
}

// TestEstimateAbsorption_Example matches the fundamental-matrix values within 0.02.
func TestEstimateAbsorption_Example(t *testing.T) {
	m := mustChain(t, absorbingRows)
	want := map[int][2]float64{
		1: {0.3478, 0.6522},
		2: {0.5942, 0.4058},
	}

	for start, w := range want {
		est, err := sim.EstimateAbsorption(m, nil, start, sim.WithSeed(77))
		require.NoError(t, err)
		require.Equal(t, sim.DefaultTrials, est.Trials)
		require.Equal(t, []int{0, 3}, est.Targets())
		require.InDelta(t, w[0], est.Probabilities[0], 0.02)
		require.InDelta(t, w[1], est.Probabilities[3], 0.02)
		require.InDelta(t, 1.0, est.Probabilities[0]+est.Probabilities[3], 1e-12)
		require.Equal(t, int64(est.Trials), est.Counts[0]+est.Counts[3])
	}
}

// TestEstimateAbsorption_MeanSteps compares with t = N·1 (1.2/0.69 from state 1).
func TestEstimateAbsorption_MeanSteps(t *testing.T) {
	m := mustChain(t, absorbingRows)

	est, err := sim.EstimateAbsorption(m, nil, 1, sim.WithSeed(5))
	require.NoError(t, err)
	require.InDelta(t, 1.2/0.69, est.MeanSteps, 0.05)
}

// TestEstimateAbsorption_SingleTrial: probabilities sum to 1 for any Trials ≥ 1.
func TestEstimateAbsorption_SingleTrial(t *testing.T) {
	m := mustChain(t, absorbingRows)

	est, err := sim.EstimateAbsorption(m, []int{0, 3}, 2, sim.WithTrials(1))
	require.NoError(t, err)
	require.Equal(t, 1.0, est.Probabilities[0]+est.Probabilities[3])
}

// TestEstimateAbsorption_Unreachable: state 3 cannot be reached from 1, so it
// gets probability 0 while state 0 takes everything.
func TestEstimateAbsorption_Unreachable(t *testing.T) {
	m := mustChain(t, [][]float64{
		{1, 0, 0, 0},
		{0.5, 0.5, 0, 0},
		{0, 0.5, 0, 0.5},
		{0, 0, 0, 1},
	})

	est, err := sim.EstimateAbsorption(m, nil, 1, sim.WithTrials(2000))
	require.NoError(t, err)
	require.Equal(t, 1.0, est.Probabilities[0])
	prob, ok := est.Probabilities[3]
	require.True(t, ok, "unreachable target must be reported")
	require.Zero(t, prob)
}

// TestEstimateAbsorption_StartAbsorbing ends every trial immediately.
func TestEstimateAbsorption_StartAbsorbing(t *testing.T) {
	m := mustChain(t, absorbingRows)

	est, err := sim.EstimateAbsorption(m, nil, 3, sim.WithTrials(10))
	require.NoError(t, err)
	require.Equal(t, 1.0, est.Probabilities[3])
	require.Zero(t, est.MeanSteps)
}

// TestEstimateAbsorption_NonTerminating covers both the reachability fail-fast
// and the per-trial step budget.
func TestEstimateAbsorption_NonTerminating(t *testing.T) {
	loop := mustChain(t, [][]float64{
		{1, 0, 0},
		{0, 0, 1},
		{0, 1, 0},
	})
	_, err := sim.EstimateAbsorption(loop, nil, 1)
	require.ErrorIs(t, err, sim.ErrNonTerminatingChain)

	slow := mustChain(t, [][]float64{{1, 0}, {0.001, 0.999}})
	_, err = sim.EstimateAbsorption(slow, nil, 1, sim.WithTrials(1000), sim.WithMaxSteps(1))
	require.ErrorIs(t, err, sim.ErrNonTerminatingChain)
	var te *sim.TrialError
	require.True(t, errors.As(err, &te))
	require.Equal(t, 1, te.Start)
	require.Equal(t, 1, te.Steps)
}

func TestEstimateAbsorption_Errors(t *testing.T) {
	m := mustChain(t, absorbingRows)

	_, err := sim.EstimateAbsorption(m, nil, 1, sim.WithTrials(0))
	require.ErrorIs(t, err, sim.ErrOptionViolation)

	_, err = sim.EstimateAbsorption(m, []int{0, 0}, 1)
	require.ErrorIs(t, err, sim.ErrOptionViolation)

	_, err = sim.EstimateAbsorption(m, []int{0, 9}, 1)
	require.ErrorIs(t, err, chain.ErrStateOutOfRange)

	_, err = sim.EstimateAbsorption(m, nil, 4)
	require.ErrorIs(t, err, chain.ErrStateOutOfRange)

	ergodic := mustChain(t, [][]float64{{0.5, 0.5}, {0.5, 0.5}})
	_, err = sim.EstimateAbsorption(ergodic, nil, 0)
	require.ErrorIs(t, err, sim.ErrOptionViolation) // no absorbing states

	_, err = sim.EstimateAbsorption(nil, nil, 0)
	require.ErrorIs(t, err, sim.ErrOptionViolation)
}

func TestEstimateAbsorption_Canceled(t *testing.T) {
	m := mustChain(t, absorbingRows)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.EstimateAbsorption(m, nil, 1, sim.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

// TestEstimateAbsorption_WorkerIndependent: the same seed gives identical
// tallies for any worker count.
func TestEstimateAbsorption_WorkerIndependent(t *testing.T) {
	m := mustChain(t, absorbingRows)

	one, err := sim.EstimateAbsorption(m, nil, 1, sim.WithSeed(42), sim.WithTrials(5000))
	require.NoError(t, err)
	many, err := sim.EstimateAbsorption(m, nil, 1, sim.WithSeed(42), sim.WithTrials(5000), sim.WithWorkers(7))
	require.NoError(t, err)
	require.Equal(t, one, many)

	other, err := sim.EstimateAbsorption(m, nil, 1, sim.WithSeed(43), sim.WithTrials(5000))
	require.NoError(t, err)
	require.NotEqual(t, one.Counts, other.Counts)
}

func TestEstimateAbsorptionAll(t *testing.T) {
	m := mustChain(t, absorbingRows)

	all, err := sim.EstimateAbsorptionAll(m, sim.WithSeed(77), sim.WithWorkers(4))
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, 1, all[0].Start)
	require.Equal(t, 2, all[1].Start)
	require.InDelta(t, 0.3478, all[0].Probabilities[0], 0.02)
	require.InDelta(t, 0.4058, all[1].Probabilities[3], 0.02)
}

// TestEstimateAbsorptionAll_StartSeeds: every start runs on its own seed.
func TestEstimateAbsorptionAll_StartSeeds(t *testing.T) {
	m := mustChain(t, absorbingRows)

	all, err := sim.EstimateAbsorptionAll(m, sim.WithSeed(5), sim.WithTrials(300))
	require.NoError(t, err)
	for _, est := range all {
		single, err := sim.EstimateAbsorption(m, nil, est.Start,
			sim.WithSeed(sim.StartSeed(5, est.Start)), sim.WithTrials(300))
		require.NoError(t, err)
		require.Equal(t, single.Counts, est.Counts, "start %d", est.Start)
	}

	require.NotEqual(t, sim.StartSeed(5, 1), sim.StartSeed(5, 2))
	require.Equal(t, sim.StartSeed(sim.DefaultSeed, 1), sim.StartSeed(0, 1))
}

// fakeRecorder captures Recorder calls.
type fakeRecorder struct {
	mu       sync.Mutex
	trials   map[string]int
	steps    map[string]int64
	failures map[string]string
	burnIn   map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		trials:   map[string]int{},
		steps:    map[string]int64{},
		failures: map[string]string{},
		burnIn:   map[string]int{},
	}
}

func (f *fakeRecorder) TrialsCompleted(exp string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trials[exp] += n
}

func (f *fakeRecorder) StepsTaken(exp string, n int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.steps[exp] += n
}

func (f *fakeRecorder) Failure(exp, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[exp] = reason
}

func (f *fakeRecorder) BurnIn(exp string, step int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.burnIn[exp] = step
}

func TestEstimateAbsorption_RecorderAndLogger(t *testing.T) {
	m := mustChain(t, absorbingRows)
	rec := newFakeRecorder()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	est, err := sim.EstimateAbsorption(m, nil, 1,
		sim.WithTrials(100), sim.WithExperiment("demo"), sim.WithRecorder(rec), sim.WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, 100, rec.trials["demo"])
	require.Equal(t, int64(est.MeanSteps*100+0.5), rec.steps["demo"])
	require.Contains(t, buf.String(), "absorption experiment started")

	loop := mustChain(t, [][]float64{{1, 0, 0}, {0, 0, 1}, {0, 1, 0}})
	_, err = sim.EstimateAbsorption(loop, nil, 1, sim.WithExperiment("loop"), sim.WithRecorder(rec))
	require.Error(t, err)
	require.Equal(t, sim.ReasonNonTerminating, rec.failures["loop"])
}
