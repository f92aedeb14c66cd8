// SPDX-License-Identifier: MIT

package chain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/markovsim/matrix"
)

// TransitionMatrix is a validated, immutable row-stochastic matrix.
//
// Invariants (checked by New/FromMatrix):
//   - N ≥ 1 and the matrix is N×N;
//   - every entry is finite and ≥ 0;
//   - every row sums to 1 within Tolerance.
//
// All getters return copies; a TransitionMatrix is safe for concurrent reads.
type TransitionMatrix struct {
	n         int
	tol       float64
	dense     *matrix.Dense
	cum       [][]float64 // cum[i][j] = Σ_{k≤j} M[i][k]
	succ      [][]int     // succ[i] lists j with M[i][j] > 0, ascending
	absorbing []int
	transient []int
	isAbs     []bool
}

// New validates rows as a transition matrix.
//
// Errors:
//   - ErrEmpty for no rows; ErrNonSquare for N×M with N ≠ M or ragged rows;
//   - ErrInvalidDistribution for a bad row (the row index is in the message);
//   - ErrOptionViolation for a bad Option.
func New(rows [][]float64, opts ...Option) (*TransitionMatrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("chain.New: %w", ErrEmpty)
	}
	for i, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("chain.New: row %d has %d entries, want %d: %w",
				i, len(row), len(rows), ErrNonSquare)
		}
	}
	d, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		// NaN/Inf cells are a distribution problem, not a shape problem.
		return nil, fmt.Errorf("chain.New: %v: %w", err, ErrInvalidDistribution)
	}

	return FromMatrix(d, opts...)
}

// FromMatrix validates an existing matrix.Matrix as a transition matrix.
// The input is copied; later mutations of m do not affect the result.
//
// Implementation:
//   - Stage 1: apply options; reject nil (ErrEmpty) and non-square input (ErrNonSquare).
//   - Stage 2: validate each row with validateWeights and cache its cumulative sums.
//   - Stage 3: derive absorbing/transient sets and positive-probability successors.
//
// Complexity: O(N^2) time and space.
func FromMatrix(m matrix.Matrix, opts ...Option) (*TransitionMatrix, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("chain.FromMatrix: %v: %w", err, ErrEmpty)
	}
	if m.Rows() != m.Cols() {
		return nil, fmt.Errorf("chain.FromMatrix: %dx%d: %w", m.Rows(), m.Cols(), ErrNonSquare)
	}

	n := m.Rows()
	src, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("chain.FromMatrix: %w", err)
	}
	tm := &TransitionMatrix{
		n:     n,
		tol:   o.Tolerance,
		dense: src,
		cum:   make([][]float64, n),
		succ:  make([][]int, n),
		isAbs: make([]bool, n),
	}

	var i, j int
	row := make([]float64, n)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if row[j], err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("chain.FromMatrix: %w", err)
			}
		}
		if err = validateWeights(row, o.Tolerance); err != nil {
			return nil, fmt.Errorf("chain.FromMatrix: row %d: %w", i, err)
		}
		for j = 0; j < n; j++ {
			_ = src.Set(i, j, row[j]) // finite and in range after validation
			if row[j] > 0 {
				tm.succ[i] = append(tm.succ[i], j)
			}
		}
		tm.cum[i] = floats.CumSum(make([]float64, n), row)

		if math.Abs(row[i]-1) <= o.Tolerance {
			tm.isAbs[i] = true
			tm.absorbing = append(tm.absorbing, i)
		} else {
			tm.transient = append(tm.transient, i)
		}
	}

	return tm, nil
}

// N returns the number of states.
func (m *TransitionMatrix) N() int { return m.n }

// Tolerance returns the row-sum tolerance the matrix was validated with.
func (m *TransitionMatrix) Tolerance() float64 { return m.tol }

// At returns M[i][j], or ErrStateOutOfRange.
func (m *TransitionMatrix) At(i, j int) (float64, error) {
	if err := m.checkState(i); err != nil {
		return 0, err
	}
	if err := m.checkState(j); err != nil {
		return 0, err
	}
	v, _ := m.dense.At(i, j)

	return v, nil
}

// Row returns a copy of row i.
func (m *TransitionMatrix) Row(i int) ([]float64, error) {
	if err := m.checkState(i); err != nil {
		return nil, err
	}

	return m.dense.Row(i)
}

// Dense returns a copy of the underlying matrix for linear-algebra use.
func (m *TransitionMatrix) Dense() *matrix.Dense {
	return m.dense.Clone().(*matrix.Dense)
}

// Rows exports the matrix as [][]float64.
func (m *TransitionMatrix) Rows() [][]float64 { return m.dense.ToRows() }

// Absorbing returns the absorbing states in ascending order.
func (m *TransitionMatrix) Absorbing() []int { return append([]int(nil), m.absorbing...) }

// Transient returns the non-absorbing states in ascending order.
func (m *TransitionMatrix) Transient() []int { return append([]int(nil), m.transient...) }

// IsAbsorbing reports whether state i is absorbing; out-of-range states are not.
func (m *TransitionMatrix) IsAbsorbing(i int) bool {
	return i >= 0 && i < m.n && m.isAbs[i]
}

// Successors returns the states reachable from i in one step with positive probability.
func (m *TransitionMatrix) Successors(i int) ([]int, error) {
	if err := m.checkState(i); err != nil {
		return nil, err
	}

	return append([]int(nil), m.succ[i]...), nil
}

// String renders the matrix rows; intended for logs.
func (m *TransitionMatrix) String() string { return m.dense.String() }

func (m *TransitionMatrix) checkState(i int) error {
	if i < 0 || i >= m.n {
		return fmt.Errorf("state %d not in [0,%d): %w", i, m.n, ErrStateOutOfRange)
	}

	return nil
}

// validateWeights checks w is a probability vector within tol.
func validateWeights(w []float64, tol float64) error {
	if len(w) == 0 {
		return ErrEmpty
	}
	for j, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("weight %d is %g: %w", j, v, ErrInvalidDistribution)
		}
	}
	if s := floats.Sum(w); math.Abs(s-1) > tol {
		return fmt.Errorf("weights sum to %.12g: %w", s, ErrInvalidDistribution)
	}

	return nil
}
