// Package builder_test contains functional tests for the chain constructors,
// verifying shapes, absorbing sets, determinism and error classes.
package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/markovsim/builder"
	"github.com/katalvlaran/markovsim/chain"
)

// assertPanics fails the test if fn does not panic.
func assertPanics(t *testing.T, fn func(), name string) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s: expected panic, but none occurred", name)
		}
	}()
	fn()
}

func TestRandomStochastic_RowsAreDistributions(t *testing.T) {
	t.Parallel()

	for _, density := range []float64{0, 0.3, 1} {
		m, err := builder.RandomStochastic(12, builder.WithSeed(7), builder.WithDensity(density),
			builder.WithExponentialWeight(1))
		require.NoError(t, err, "density=%g", density)
		require.Equal(t, 12, m.N())
		for i, row := range m.Rows() {
			var sum float64
			for _, v := range row {
				require.GreaterOrEqual(t, v, 0.0)
				sum += v
			}
			assert.InDelta(t, 1.0, sum, 1e-12, "row %d", i)
		}
	}
}

func TestRandomStochastic_ZeroDensityIsFunctional(t *testing.T) {
	t.Parallel()

	m, err := builder.RandomStochastic(8, builder.WithSeed(3), builder.WithDensity(0))
	require.NoError(t, err)
	for i := 0; i < m.N(); i++ {
		succ, err := m.Successors(i)
		require.NoError(t, err)
		assert.Len(t, succ, 1, "row %d", i)
	}
}

func TestRandomStochastic_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := builder.RandomStochastic(6, builder.WithSeed(42), builder.WithUniformWeight(0.5, 2))
	require.NoError(t, err)
	b, err := builder.RandomStochastic(6, builder.WithSeed(42), builder.WithUniformWeight(0.5, 2))
	require.NoError(t, err)
	c, err := builder.RandomStochastic(6, builder.WithSeed(43), builder.WithUniformWeight(0.5, 2))
	require.NoError(t, err)

	assert.Equal(t, a.Rows(), b.Rows())
	assert.NotEqual(t, a.Rows(), c.Rows())
}

func TestRandomAbsorbing_Structure(t *testing.T) {
	t.Parallel()

	m, err := builder.RandomAbsorbing(7, 2, builder.WithSeed(11), builder.WithDensity(0.4))
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6}, m.Absorbing())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, m.Transient())
	for _, s := range m.Transient() {
		ok, err := m.CanReachAny(s, m.Absorbing())
		require.NoError(t, err)
		assert.True(t, ok, "state %d", s)

		p, err := m.At(s, 5+s%2)
		require.NoError(t, err)
		assert.Greater(t, p, 0.0, "forced edge from %d", s)
	}
}

func TestCycle(t *testing.T) {
	t.Parallel()

	m, err := builder.Cycle(4)
	require.NoError(t, err)
	assert.Empty(t, m.Absorbing())
	assert.True(t, m.IsIrreducible())
	period, err := m.Period(0)
	require.NoError(t, err)
	assert.Equal(t, 4, period)
}

func TestGamblersRuin(t *testing.T) {
	t.Parallel()

	m, err := builder.GamblersRuin(4, 0.3)
	require.NoError(t, err)
	assert.Equal(t, 5, m.N())
	assert.Equal(t, []int{0, 4}, m.Absorbing())
	assert.Equal(t, []int{1, 2, 3}, m.Transient())

	up, err := m.At(2, 3)
	require.NoError(t, err)
	down, err := m.At(2, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, up, 1e-15)
	assert.InDelta(t, 0.7, down, 1e-15)
}

func TestRandomStochastic_ConstantWeightsGiveUniformRows(t *testing.T) {
	t.Parallel()

	m, err := builder.RandomStochastic(4, builder.WithSeed(1))
	require.NoError(t, err)
	for i, row := range m.Rows() {
		assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, row, "row %d", i)
	}

	abs, err := builder.RandomAbsorbing(3, 1, builder.WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, abs.Rows()[0])
	assert.Equal(t, []float64{0, 0, 1}, abs.Rows()[2])
}

func TestIdentityAndLazy(t *testing.T) {
	t.Parallel()

	id, err := builder.Identity(3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, id.Absorbing())

	ring, err := builder.Cycle(3)
	require.NoError(t, err)
	lazy, err := builder.Lazy(ring, 0.5)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{
		{0.5, 0.5, 0},
		{0, 0.5, 0.5},
		{0.5, 0, 0.5},
	}, lazy.Rows())
	period, err := lazy.Period(0)
	require.NoError(t, err)
	assert.Equal(t, 1, period)

	// hold = 1 freezes every state.
	frozen, err := builder.Lazy(ring, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, frozen.Absorbing())
}

func TestBuilders_Errors(t *testing.T) {
	t.Parallel()

	ring, err := builder.Cycle(2)
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() (*chain.TransitionMatrix, error)
		want error
	}{
		{"RandomStochastic/n=0", func() (*chain.TransitionMatrix, error) {
			return builder.RandomStochastic(0, builder.WithSeed(1))
		}, builder.ErrTooFewStates},
		{"RandomStochastic/no rng", func() (*chain.TransitionMatrix, error) {
			return builder.RandomStochastic(3)
		}, builder.ErrNeedRandSource},
		{"RandomStochastic/zero weights", func() (*chain.TransitionMatrix, error) {
			return builder.RandomStochastic(3, builder.WithSeed(1), builder.WithConstantWeight(0))
		}, builder.ErrConstructFailed},
		{"RandomAbsorbing/k=0", func() (*chain.TransitionMatrix, error) {
			return builder.RandomAbsorbing(3, 0, builder.WithSeed(1))
		}, builder.ErrTooFewStates},
		{"RandomAbsorbing/no transient", func() (*chain.TransitionMatrix, error) {
			return builder.RandomAbsorbing(2, 2, builder.WithSeed(1))
		}, builder.ErrTooFewStates},
		{"RandomAbsorbing/no rng", func() (*chain.TransitionMatrix, error) {
			return builder.RandomAbsorbing(3, 1)
		}, builder.ErrNeedRandSource},
		{"Cycle/n=1", func() (*chain.TransitionMatrix, error) {
			return builder.Cycle(1)
		}, builder.ErrTooFewStates},
		{"GamblersRuin/target=1", func() (*chain.TransitionMatrix, error) {
			return builder.GamblersRuin(1, 0.5)
		}, builder.ErrTooFewStates},
		{"GamblersRuin/p>1", func() (*chain.TransitionMatrix, error) {
			return builder.GamblersRuin(3, 1.5)
		}, builder.ErrInvalidProbability},
		{"Identity/n=0", func() (*chain.TransitionMatrix, error) {
			return builder.Identity(0)
		}, builder.ErrTooFewStates},
		{"Lazy/nil", func() (*chain.TransitionMatrix, error) {
			return builder.Lazy(nil, 0.5)
		}, builder.ErrTooFewStates},
		{"Lazy/hold<0", func() (*chain.TransitionMatrix, error) {
			return builder.Lazy(ring, -0.1)
		}, builder.ErrInvalidProbability},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := tc.call()
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, m)
		})
	}
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	assertPanics(t, func() { builder.WithRand(nil) }, "WithRand(nil)")
	assertPanics(t, func() { builder.WithWeightFn(nil) }, "WithWeightFn(nil)")
	assertPanics(t, func() { builder.WithDensity(1.5) }, "WithDensity(1.5)")
	assertPanics(t, func() { builder.WithTolerance(0) }, "WithTolerance(0)")
}
