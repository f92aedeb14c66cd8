// SPDX-License-Identifier: MIT

package closedform

import (
	"fmt"

	"github.com/katalvlaran/markovsim/chain"
	"github.com/katalvlaran/markovsim/linalg"
	"github.com/katalvlaran/markovsim/matrix"
)

// AbsorptionTable is the closed-form solution of an absorbing chain.
type AbsorptionTable struct {
	// Transient and Absorbing index the rows and columns below.
	Transient []int
	Absorbing []int

	// Fundamental is N = (I − Q)^{-1}, |T|×|T|.
	Fundamental matrix.Matrix

	// Probabilities is B = N·R, |T|×|A|; each row sums to 1.
	Probabilities matrix.Matrix

	// ExpectedSteps[i] is the mean number of steps to absorption from Transient[i].
	ExpectedSteps []float64

	tIndex map[int]int
	aIndex map[int]int
}

// Absorption solves the absorbing chain m with alg.
//
// Implementation:
//   - Stage 1: split states into T and A; extract Q = M[T,T] and R = M[T,A].
//   - Stage 2: N = alg.Invert(I − Q); B = N·R; t = RowSums(N).
//
// Errors: ErrNoAbsorbingStates, ErrNoTransientStates, and linalg.ErrSingular
// when some transient state cannot reach any absorbing state.
func Absorption(alg linalg.Algebra, m *chain.TransitionMatrix) (*AbsorptionTable, error) {
	T, A := m.Transient(), m.Absorbing()
	if len(A) == 0 {
		return nil, ErrNoAbsorbingStates
	}
	if len(T) == 0 {
		return nil, ErrNoTransientStates
	}

	d := m.Dense()
	Q, err := d.Induced(T, T)
	if err != nil {
		return nil, fmt.Errorf("closedform.Absorption: Q: %w", err)
	}
	R, err := d.Induced(T, A)
	if err != nil {
		return nil, fmt.Errorf("closedform.Absorption: R: %w", err)
	}
	I, err := matrix.NewIdentity(len(T))
	if err != nil {
		return nil, fmt.Errorf("closedform.Absorption: %w", err)
	}
	IQ, err := matrix.Sub(I, Q)
	if err != nil {
		return nil, fmt.Errorf("closedform.Absorption: %w", err)
	}

	N, err := alg.Invert(IQ)
	if err != nil {
		return nil, fmt.Errorf("closedform.Absorption: fundamental matrix: %w", err)
	}
	B, err := matrix.Mul(N, R)
	if err != nil {
		return nil, fmt.Errorf("closedform.Absorption: %w", err)
	}
	steps, err := matrix.RowSums(N)
	if err != nil {
		return nil, fmt.Errorf("closedform.Absorption: %w", err)
	}

	tbl := &AbsorptionTable{
		Transient:     T,
		Absorbing:     A,
		Fundamental:   N,
		Probabilities: B,
		ExpectedSteps: steps,
		tIndex:        make(map[int]int, len(T)),
		aIndex:        make(map[int]int, len(A)),
	}
	for i, s := range T {
		tbl.tIndex[s] = i
	}
	for j, s := range A {
		tbl.aIndex[s] = j
	}

	return tbl, nil
}

// Lookup returns the probability of absorption in target when starting at start.
func (t *AbsorptionTable) Lookup(start, target int) (float64, error) {
	i, ok := t.tIndex[start]
	if !ok {
		return 0, fmt.Errorf("closedform.Lookup: start %d: %w", start, ErrNotTransient)
	}
	j, ok := t.aIndex[target]
	if !ok {
		return 0, fmt.Errorf("closedform.Lookup: target %d: %w", target, ErrNotAbsorbing)
	}

	return t.Probabilities.At(i, j)
}

// Row returns the absorption probabilities from start keyed by absorbing state,
// the same shape the Monte Carlo estimator reports.
func (t *AbsorptionTable) Row(start int) (map[int]float64, error) {
	out := make(map[int]float64, len(t.Absorbing))
	for _, a := range t.Absorbing {
		p, err := t.Lookup(start, a)
		if err != nil {
			return nil, err
		}
		out[a] = p
	}

	return out, nil
}

// Steps returns the expected number of steps to absorption from start.
func (t *AbsorptionTable) Steps(start int) (float64, error) {
	i, ok := t.tIndex[start]
	if !ok {
		return 0, fmt.Errorf("closedform.Steps: start %d: %w", start, ErrNotTransient)
	}

	return t.ExpectedSteps[i], nil
}
