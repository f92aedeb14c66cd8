// SPDX-License-Identifier: MIT

package linalg

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/markovsim/matrix"
)

// Native implements Algebra with the matrix package kernels.
//
// Tol and MaxIter tune the Jacobi sweeps; zero values select 1e-12 and 10000.
type Native struct {
	Tol     float64
	MaxIter int
}

var _ Algebra = Native{}

// Invert delegates to matrix.Inverse (LU without pivoting).
func (Native) Invert(a matrix.Matrix) (matrix.Matrix, error) {
	inv, err := matrix.Inverse(a)
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return nil, fmt.Errorf("Native.Invert: %w: %w", ErrSingular, err)
		}

		return nil, fmt.Errorf("Native.Invert: %w", err)
	}

	return inv, nil
}

// Eigen delegates to the Jacobi matrix.Eigen; input must be symmetric
// (matrix.ErrAsymmetry otherwise).
func (n Native) Eigen(a matrix.Matrix) (*Eigensystem, error) {
	tol, maxIter := n.Tol, n.MaxIter
	if tol <= 0 {
		tol = 1e-12
	}
	if maxIter <= 0 {
		maxIter = 10000
	}

	vals, q, err := matrix.Eigen(a, tol, maxIter)
	if err != nil {
		if errors.Is(err, matrix.ErrEigenFailed) {
			return nil, fmt.Errorf("Native.Eigen: %w: %w", ErrEigenFailed, err)
		}

		return nil, fmt.Errorf("Native.Eigen: %w", err)
	}

	size := len(vals)
	es := &Eigensystem{Values: make([]complex128, size), Vectors: make([][]complex128, size)}
	for k, v := range vals {
		es.Values[k] = complex(v, 0)
		col := make([]complex128, size)
		for i := 0; i < size; i++ {
			x, _ := q.At(i, k)
			col[i] = complex(x, 0)
		}
		es.Vectors[k] = col
	}

	return es, nil
}
