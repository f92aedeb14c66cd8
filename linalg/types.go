// SPDX-License-Identifier: MIT

package linalg

import "github.com/katalvlaran/markovsim/matrix"

// Algebra inverts and eigen-decomposes square matrices.
// Implementations must not mutate their inputs.
type Algebra interface {
	// Invert returns A^{-1}. Errors: ErrSingular, matrix.ErrDimensionMismatch.
	Invert(a matrix.Matrix) (matrix.Matrix, error)

	// Eigen returns the eigenvalues of A and the matching right eigenvectors.
	Eigen(a matrix.Matrix) (*Eigensystem, error)
}

// Eigensystem holds an eigen-decomposition A·v_k = λ_k·v_k.
// Values[k] pairs with Vectors[k]; vectors carry whatever scale the backend chose.
type Eigensystem struct {
	Values  []complex128
	Vectors [][]complex128
}

// Len returns the number of eigenpairs.
func (e *Eigensystem) Len() int { return len(e.Values) }

// LargestReal returns the index of the eigenvalue with the largest real part.
// Ties keep the lowest index. Returns -1 for an empty system.
func (e *Eigensystem) LargestReal() int {
	best := -1
	for k, v := range e.Values {
		if best < 0 || real(v) > real(e.Values[best]) {
			best = k
		}
	}

	return best
}

// RealVector returns the real part of eigenvector k.
func (e *Eigensystem) RealVector(k int) []float64 {
	out := make([]float64, len(e.Vectors[k]))
	for i, v := range e.Vectors[k] {
		out[i] = real(v)
	}

	return out
}
