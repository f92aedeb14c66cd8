package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/markovsim/chain"
)

func TestSeedOrDefault(t *testing.T) {
	require.Equal(t, DefaultSeed, seedOrDefault(0))
	require.Equal(t, uint64(9), seedOrDefault(9))
}

func TestDeriveSeed(t *testing.T) {
	require.Equal(t, deriveSeed(1, 2), deriveSeed(1, 2))
	require.NotEqual(t, deriveSeed(1, 2), deriveSeed(1, 3))
	require.NotEqual(t, deriveSeed(1, 2), deriveSeed(2, 2))

	a1, b1 := trialSeeds(0, 5)
	a2, b2 := trialSeeds(DefaultSeed, 5)
	require.Equal(t, [2]uint64{a1, b1}, [2]uint64{a2, b2}) // seed 0 policy
	require.NotEqual(t, a1, b1)
}

func TestTrialRNGReproducible(t *testing.T) {
	r1, r2 := trialRNG(42, 3), trialRNG(42, 3)
	for i := 0; i < 10; i++ {
		require.Equal(t, r1.Float64(), r2.Float64())
	}
}

func TestPartition(t *testing.T) {
	require.Equal(t, []span{{0, 4}, {4, 7}, {7, 10}}, partition(10, 3))
	require.Equal(t, []span{{0, 1}, {1, 2}}, partition(2, 8)) // never more spans than trials
	require.Equal(t, []span{{0, 5}}, partition(5, 0))

	covered := 0
	for _, sp := range partition(10_001, 7) {
		require.Equal(t, covered, sp.lo)
		covered = sp.hi
	}
	require.Equal(t, 10_001, covered)
}

func TestOptionsEpsilon(t *testing.T) {
	o, err := buildOptions([]Option{WithTrials(400)})
	require.NoError(t, err)
	require.InDelta(t, 0.1, o.epsilon(), 1e-12)

	o, err = buildOptions([]Option{WithEpsilon(0.05)})
	require.NoError(t, err)
	require.Equal(t, 0.05, o.epsilon())
	require.Equal(t, "fallback", o.label("fallback"))
}

// TestEnsembleTrialErrorCarriesStart: a trajectory that fails mid-run reports
// the start state it was drawn in.
func TestEnsembleTrialErrorCarriesStart(t *testing.T) {
	m, err := chain.New([][]float64{{0.5, 0.5}, {0.5, 0.5}})
	require.NoError(t, err)
	init, err := chain.PointMass(2, 1)
	require.NoError(t, err)

	o := DefaultOptions()
	o.Trials = 3
	e, _, err := newEnsemble(m, init, o)
	require.NoError(t, err)
	require.Equal(t, []int{1, 1, 1}, e.starts)

	e.states[2] = 7 // not a state of m
	_, err = e.advance(context.Background(), 1)
	var te *TrialError
	require.True(t, errors.As(err, &te))
	require.Equal(t, 2, te.Trial)
	require.Equal(t, 1, te.Start)
	require.Equal(t, 7, te.State)
	require.ErrorIs(t, err, chain.ErrStateOutOfRange)
	require.Contains(t, err.Error(), "from state 1")
}
