// SPDX-License-Identifier: MIT

package closedform

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/markovsim/chain"
	"github.com/katalvlaran/markovsim/linalg"
	"github.com/katalvlaran/markovsim/matrix"
)

// UnitTolerance bounds |λ − 1| for an eigenvalue to count as the unit eigenvalue.
const UnitTolerance = 1e-9

// DefaultPower is the exponent PowerLimit is usually called with.
const DefaultPower = 64

// Stationary returns π with π·M = π from the unit eigenvector of Mᵀ.
//
// Implementation:
//   - Stage 1: eigen-decompose Mᵀ through alg.
//   - Stage 2: pick the eigenvalue with the largest real part; it must be
//     within UnitTolerance of 1 and be the only such eigenvalue.
//   - Stage 3: take the real part of its eigenvector and scale it to sum 1.
//
// Errors: ErrNoUnitEigenvalue for reducible chains with several closed
// classes (unit eigenvalue of multiplicity > 1), backend errors otherwise.
func Stationary(alg linalg.Algebra, m *chain.TransitionMatrix) (chain.Distribution, error) {
	mt, err := matrix.Transpose(m.Dense())
	if err != nil {
		return nil, fmt.Errorf("closedform.Stationary: %w", err)
	}
	es, err := alg.Eigen(mt)
	if err != nil {
		return nil, fmt.Errorf("closedform.Stationary: %w", err)
	}

	k := es.LargestReal()
	if k < 0 || cmplx.Abs(es.Values[k]-1) > UnitTolerance {
		return nil, fmt.Errorf("closedform.Stationary: %w", ErrNoUnitEigenvalue)
	}
	units := 0
	for _, v := range es.Values {
		if cmplx.Abs(v-1) <= UnitTolerance {
			units++
		}
	}
	if units > 1 {
		return nil, fmt.Errorf("closedform.Stationary: multiplicity %d: %w", units, ErrNoUnitEigenvalue)
	}

	v := es.RealVector(k)
	s := floats.Sum(v)
	if math.Abs(s) < UnitTolerance {
		return nil, fmt.Errorf("closedform.Stationary: eigenvector sums to zero: %w", ErrNoUnitEigenvalue)
	}
	floats.Scale(1/s, v)
	for i := range v {
		if v[i] < 0 && v[i] > -UnitTolerance {
			v[i] = 0 // rounding noise on states with zero mass
		}
	}

	return chain.NewDistribution(v, 1e-6)
}

// PowerLimit returns M^k by repeated squaring.
func PowerLimit(m *chain.TransitionMatrix, k int) (*matrix.Dense, error) {
	p, err := matrix.Pow(m.Dense(), k)
	if err != nil {
		return nil, fmt.Errorf("closedform.PowerLimit: %w", err)
	}

	return p.(*matrix.Dense), nil
}

// StationaryByPower returns row 0 of M^k. For a regular chain every row of
// M^k approaches π, so k = DefaultPower is plenty for small chains.
func StationaryByPower(m *chain.TransitionMatrix, k int) (chain.Distribution, error) {
	p, err := PowerLimit(m, k)
	if err != nil {
		return nil, err
	}
	row, err := p.Row(0)
	if err != nil {
		return nil, fmt.Errorf("closedform.StationaryByPower: %w", err)
	}

	return chain.Distribution(row), nil
}

// Diff returns the signed differences empirical[i] − exact[i].
// The shorter length wins when the slices differ in length.
func Diff(empirical, exact []float64) []float64 {
	n := min(len(empirical), len(exact))
	out := make([]float64, n)
	floats.SubTo(out, empirical[:n], exact[:n])

	return out
}
