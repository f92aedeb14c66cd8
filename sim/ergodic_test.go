package sim_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/markovsim/chain"
	"github.com/katalvlaran/markovsim/sim"
	"github.com/stretchr/testify/require"
)

var ergodicRows = [][]float64{
	{0.3, 0.2, 0.5},
	{0.4, 0.1, 0.5},
	{0.3, 0.6, 0.1},
}

// TestEstimateStationary_Example matches π ≈ [0.3312, 0.3117, 0.3571] within 0.01.
func TestEstimateStationary_Example(t *testing.T) {
	m := mustChain(t, ergodicRows)
	init, err := chain.LinearRamp(3)
	require.NoError(t, err)

	est, err := sim.EstimateStationary(m, init,
		sim.WithSeed(100), sim.WithTrials(2000), sim.WithSteps(500), sim.WithWorkers(4))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.3312, 0.3117, 0.3571}, []float64(est.Distribution), 0.01)

	var sum float64
	for _, p := range est.Distribution {
		sum += p
	}
	require.InDelta(t, 1.0, sum, 1e-12)
	require.Equal(t, int64(2000*500), est.Samples)
	require.GreaterOrEqual(t, est.BurnIn, 0)
	require.Less(t, est.BurnIn, sim.DefaultMaxSteps)
}

// TestEstimateStationary_PathIndependent: both point-mass starts of the
// two-state chain converge to ≈ [0.0426, 0.9574].
func TestEstimateStationary_PathIndependent(t *testing.T) {
	m := mustChain(t, [][]float64{{0.1, 0.9}, {0.04, 0.96}})

	for start := 0; start < 2; start++ {
		init, err := chain.PointMass(2, start)
		require.NoError(t, err)

		est, err := sim.EstimateStationary(m, init,
			sim.WithSeed(uint64(start)+1), sim.WithTrials(2000), sim.WithSteps(500))
		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{0.0426, 0.9574}, []float64(est.Distribution), 0.01, "start %d", start)
	}
}

// TestEstimateStationary_Periodic: a 2-cycle keeps oscillating, so it is
// rejected by its period.
func TestEstimateStationary_Periodic(t *testing.T) {
	m := mustChain(t, [][]float64{{0, 1}, {1, 0}})
	init, err := chain.PointMass(2, 0)
	require.NoError(t, err)

	rec := newFakeRecorder()
	_, err = sim.EstimateStationary(m, init,
		sim.WithTrials(100), sim.WithMaxSteps(300), sim.WithWindow(10), sim.WithRecorder(rec))
	require.ErrorIs(t, err, sim.ErrNoStationaryDistribution)
	require.Contains(t, err.Error(), "period 2")
	require.Equal(t, sim.ReasonNoStationary, rec.failures["stationary"])
}

// TestEstimateStationary_PeriodicSmallEnsemble: with few trials the default
// epsilon is wider than the oscillation itself, so the period check has to
// reject the chain before any window is tested.
func TestEstimateStationary_PeriodicSmallEnsemble(t *testing.T) {
	m := mustChain(t, [][]float64{{0, 1}, {1, 0}})
	ramp, err := chain.LinearRamp(2)
	require.NoError(t, err)
	point, err := chain.PointMass(2, 0)
	require.NoError(t, err)

	tests := []struct {
		name   string
		init   chain.Distribution
		trials int
	}{
		{"ramp/100 trials", ramp, 100},
		{"point/10 trials", point, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := newFakeRecorder()
			_, err := sim.EstimateStationary(m, tc.init, sim.WithTrials(tc.trials), sim.WithRecorder(rec))
			require.ErrorIs(t, err, sim.ErrNoStationaryDistribution)
			require.Contains(t, err.Error(), "period 2")
			require.Equal(t, sim.ReasonNoStationary, rec.failures["stationary"])
			require.Zero(t, rec.steps["stationary"], "nothing is simulated")
		})
	}
}

// TestEstimateStationary_PeriodicClosedClass: a transient state feeding a
// 2-cycle still has no limiting occupation.
func TestEstimateStationary_PeriodicClosedClass(t *testing.T) {
	m := mustChain(t, [][]float64{
		{0, 0.5, 0.5},
		{0, 0, 1},
		{0, 1, 0},
	})
	u, err := chain.Uniform(3)
	require.NoError(t, err)

	_, err = sim.EstimateStationary(m, u, sim.WithTrials(1000))
	require.ErrorIs(t, err, sim.ErrNoStationaryDistribution)
}

// TestEstimateStationary_Reducible fails before simulating anything.
func TestEstimateStationary_Reducible(t *testing.T) {
	for _, rows := range [][][]float64{
		{{1, 0}, {0, 1}},
		absorbingRows, // two absorbing states are two closed classes
	} {
		m := mustChain(t, rows)
		init, err := chain.Uniform(m.N())
		require.NoError(t, err)

		_, err = sim.EstimateStationary(m, init, sim.WithTrials(10))
		require.ErrorIs(t, err, sim.ErrNoStationaryDistribution)
	}
}

// TestEstimateStationary_SingleAbsorbing: one absorbing state is the unique
// closed class, so the estimate concentrates on it.
func TestEstimateStationary_SingleAbsorbing(t *testing.T) {
	m := mustChain(t, [][]float64{{0.5, 0.5}, {0, 1}})
	init, err := chain.PointMass(2, 0)
	require.NoError(t, err)

	est, err := sim.EstimateStationary(m, init, sim.WithTrials(500), sim.WithSteps(50))
	require.NoError(t, err)
	require.InDelta(t, 1.0, est.Distribution[1], 0.01)
}

func TestEstimateStationary_Errors(t *testing.T) {
	m := mustChain(t, ergodicRows)

	_, err := sim.EstimateStationary(m, chain.Distribution{0.5, 0.5})
	require.ErrorIs(t, err, chain.ErrInvalidDistribution)

	_, err = sim.EstimateStationary(m, chain.Distribution{0.5, 0.5, 0.5})
	require.ErrorIs(t, err, chain.ErrInvalidDistribution)

	u, _ := chain.Uniform(3)
	_, err = sim.EstimateStationary(m, u, sim.WithWindow(1))
	require.ErrorIs(t, err, sim.ErrOptionViolation)

	_, err = sim.EstimateStationary(m, u, sim.WithEpsilon(-1))
	require.ErrorIs(t, err, sim.ErrOptionViolation)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.EstimateStationary(m, u, sim.WithContext(ctx), sim.WithTrials(10))
	require.ErrorIs(t, err, context.Canceled)
}

// TestEstimateStationary_WorkerIndependent: identical estimates for 1 and 4 workers.
func TestEstimateStationary_WorkerIndependent(t *testing.T) {
	m := mustChain(t, ergodicRows)
	u, _ := chain.Uniform(3)

	one, err := sim.EstimateStationary(m, u, sim.WithSeed(9), sim.WithTrials(500), sim.WithSteps(100))
	require.NoError(t, err)
	four, err := sim.EstimateStationary(m, u, sim.WithSeed(9), sim.WithTrials(500), sim.WithSteps(100), sim.WithWorkers(4))
	require.NoError(t, err)
	require.Equal(t, one, four)
}

// TestTraceOccupation checks shape, normalisation and the exact 2-cycle swap.
func TestTraceOccupation(t *testing.T) {
	m := mustChain(t, [][]float64{{0, 1}, {1, 0}})
	init, err := chain.PointMass(2, 0)
	require.NoError(t, err)

	trace, err := sim.TraceOccupation(m, init, sim.WithTrials(50), sim.WithSteps(4))
	require.NoError(t, err)
	require.Len(t, trace, 5)
	for step, p := range trace {
		if step%2 == 0 {
			require.Equal(t, chain.Distribution{1, 0}, p, "step %d", step)
		} else {
			require.Equal(t, chain.Distribution{0, 1}, p, "step %d", step)
		}
	}
}

// TestTraceOccupation_Converges: late occupation of the example chain is near π.
func TestTraceOccupation_Converges(t *testing.T) {
	m := mustChain(t, ergodicRows)
	init, _ := chain.PointMass(3, 0)

	trace, err := sim.TraceOccupation(m, init, sim.WithTrials(5000), sim.WithSteps(30), sim.WithSeed(3))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.3312, 0.3117, 0.3571}, []float64(trace[30]), 0.03)

	avg, err := sim.RunningAverage(trace, 0)
	require.NoError(t, err)
	require.Len(t, avg, 31)
	require.Equal(t, 1.0, avg[0]) // every trial starts in state 0
}
