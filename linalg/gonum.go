// SPDX-License-Identifier: MIT

package linalg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/markovsim/matrix"
)

// Gonum implements Algebra with gonum.org/v1/gonum/mat.
type Gonum struct{}

var _ Algebra = Gonum{}

// Invert returns A^{-1} via mat.Dense.Inverse.
//
// gonum reports ill-conditioning through a mat.Condition error while still
// producing a result; only an infinite condition number is treated as singular.
func (Gonum) Invert(a matrix.Matrix) (matrix.Matrix, error) {
	src, err := toGonum(a)
	if err != nil {
		return nil, fmt.Errorf("Gonum.Invert: %w", err)
	}

	var inv mat.Dense
	if err = inv.Inverse(src); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("Gonum.Invert: %v: %w", err, ErrSingular)
		}
	}

	return fromGonum(&inv)
}

// Eigen factorizes A with mat.Eigen and returns values and right eigenvectors.
func (Gonum) Eigen(a matrix.Matrix) (*Eigensystem, error) {
	src, err := toGonum(a)
	if err != nil {
		return nil, fmt.Errorf("Gonum.Eigen: %w", err)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(src, mat.EigenRight); !ok {
		return nil, fmt.Errorf("Gonum.Eigen: %w", ErrEigenFailed)
	}
	values := eig.Values(nil)
	var vecs mat.CDense
	eig.VectorsTo(&vecs)

	n := len(values)
	es := &Eigensystem{Values: values, Vectors: make([][]complex128, n)}
	for k := 0; k < n; k++ {
		col := make([]complex128, n)
		for i := 0; i < n; i++ {
			col[i] = vecs.At(i, k)
		}
		es.Vectors[k] = col
	}

	return es, nil
}

// toGonum copies a square matrix.Matrix into a *mat.Dense.
func toGonum(a matrix.Matrix) (*mat.Dense, error) {
	if err := matrix.ValidateSquare(a); err != nil {
		return nil, err
	}
	r, c := a.Rows(), a.Cols()
	data := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := a.At(i, j)
			if err != nil {
				return nil, err
			}
			data[i*c+j] = v
		}
	}

	return mat.NewDense(r, c, data), nil
}

// fromGonum copies a *mat.Dense back into a *matrix.Dense.
func fromGonum(m *mat.Dense) (matrix.Matrix, error) {
	r, c := m.Dims()
	out, err := matrix.NewDense(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if err = out.Set(i, j, m.At(i, j)); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
