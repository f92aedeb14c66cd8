// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise addition and subtraction, multiplication, transpose, scaling,
// matrix-vector products, LU, inversion, integer powers and a symmetric
// eigen-decomposition. All functions validate first and return clear errors.
//
// Notes:
//   - Every kernel converts its operands with asDense once and then runs flat
//     row-major loops; non-Dense inputs pay one O(r*c) copy.
//   - Errors are wrapped with matrixErrorf(op*, err) so the sentinel survives.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for substitutions and dot products.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/Inverse routines.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMatVec    = "MatVec"
	opEigen     = "Eigen"
	opInverse   = "Inverse"
	opLU        = "LU"
	opPow       = "Pow"
)

// matrixErrorf wraps err with an operation tag, preserving it via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes out = a + sign*b for sign ∈ {+1, -1}.
// Shared by Add and Sub; operands are never mutated.
func addSub(a, b Matrix, sign float64, opTag string) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	for idx := range res.data {
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// Mul performs standard matrix multiplication C = A × B.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible (non-nil, A.Cols == B.Rows).
//   - Stage 2: i→k→j loop over flat slices, skipping zero A[i,k]. Transition
//     matrices are often sparse-ish, so the skip pays off.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k                int
		av                     float64
		rowA, rowB, rowR, cols = 0, 0, 0, db.c
	)
	for i = 0; i < da.r; i++ {
		rowA = i * da.c
		rowR = i * cols
		for k = 0; k < da.c; k++ {
			av = da.data[rowA+k]
			if av == 0 {
				continue
			}
			rowB = k * cols
			for j = 0; j < cols; j++ {
				res.data[rowR+j] += av * db.data[rowB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Errors: ErrNilMatrix. Complexity: O(r*c).
//
// AI-Hints:
//   - The eigenvector route to a stationary distribution works on Mᵀ;
//     hoist the transpose out of any loop.
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	res, err := NewDense(dm.c, dm.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < dm.r; i++ {
		for j = 0; j < dm.c; j++ {
			res.data[j*dm.r+i] = dm.data[i*dm.c+j]
		}
	}

	return res, nil
}

// Scale returns alpha*m. Errors: ErrNilMatrix. Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	res, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx, v := range dm.data {
		res.data[idx] = v * alpha
	}

	return res, nil
}

// MatVec computes y = m·x for a column vector x.
//
// Contract: m non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, dm.r)
	var i, j, base int
	var acc float64
	for i = 0; i < dm.r; i++ {
		acc = ZeroSum
		base = i * dm.c
		for j = 0; j < dm.c; j++ {
			if x[j] != 0 {
				acc += dm.data[base+j] * x[j]
			}
		}
		y[i] = acc
	}

	return y, nil
}

// LU computes the Doolittle factorization A = L·U with unit diagonal on L (no pivoting).
//
// Implementation:
//   - Stage 1: validate square input; allocate L (diag 1) and U.
//   - Stage 2: for i=0..n-1 build row i of U, guard its pivot, then column i of L.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrSingular (U[i,i] == 0).
// Complexity: Time O(n^3), Space O(n^2).
//
// Notes:
//   - No pivoting keeps results bit-for-bit reproducible. Diagonally dominant
//     inputs such as I − Q never hit a zero pivot.
func LU(m Matrix) (Matrix, Matrix, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	a, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	n := a.r
	L, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	var i, j, k int
	var sum, pivot float64
	for i = 0; i < n; i++ {
		L.data[i*n+i] = 1.0
		// Row i of U.
		for j = i; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[i*n+k] * U.data[k*n+j]
			}
			U.data[i*n+j] = a.data[i*n+j] - sum
		}
		pivot = U.data[i*n+i]
		if pivot == ZeroPivot {
			return nil, nil, matrixErrorf(opLU, fmt.Errorf("zero pivot at %d: %w", i, ErrSingular))
		}
		// Column i of L.
		for j = i + 1; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[j*n+k] * U.data[k*n+i]
			}
			L.data[j*n+i] = (a.data[j*n+i] - sum) / pivot
		}
	}

	return L, U, nil
}

// Inverse computes A^{-1} from the Doolittle factors (deterministic, no pivoting).
//
// Implementation:
//   - Stage 1: validate square input and factorize via LU.
//   - Stage 2: for each basis column e_col solve L·y = e_col (top-down) then
//     U·x = y (bottom-up) and write x into column col.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
// Complexity: Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - The fundamental matrix of an absorbing chain is Inverse(I − Q).
func Inverse(m Matrix) (Matrix, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	lm, um, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	L, U := lm.(*Dense), um.(*Dense)

	n := L.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		col, i, k int
		sum       float64
		y         = make([]float64, n)
		x         = make([]float64, n)
	)
	for col = 0; col < n; col++ {
		for i = 0; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[i*n+k] * y[k]
			}
			if i == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			for k = i + 1; k < n; k++ {
				sum += U.data[i*n+k] * x[k]
			}
			x[i] = (y[i] - sum) / U.data[i*n+i] // pivots were checked by LU
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// Pow computes m^k for a square matrix by repeated squaring.
//
// Implementation:
//   - Stage 1: validate square input and k ≥ 0 (ErrNegativeExponent).
//   - Stage 2: result = I; walk the bits of k, squaring the base each step.
//
// Complexity: Time O(n^3 log k), Space O(n^2).
//
// AI-Hints:
//   - Pow(M, 64) is the classic "iterate the chain until nothing moves" check:
//     for a regular chain every row of M^64 is (numerically) the stationary distribution.
func Pow(m Matrix, k int) (Matrix, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opPow, err)
	}
	if k < 0 {
		return nil, matrixErrorf(opPow, ErrNegativeExponent)
	}

	result, err := NewIdentity(m.Rows())
	if err != nil {
		return nil, matrixErrorf(opPow, err)
	}
	var acc Matrix = result
	base := m.Clone()
	for k > 0 {
		if k&1 == 1 {
			if acc, err = Mul(acc, base); err != nil {
				return nil, matrixErrorf(opPow, err)
			}
		}
		k >>= 1
		if k > 0 {
			if base, err = Mul(base, base); err != nil {
				return nil, matrixErrorf(opPow, err)
			}
		}
	}

	return acc, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(m, tol).
//   - Stage 2: repeatedly pick (p,q) with the largest |A[p,q]| (upper triangle,
//     i→j scan) and apply the rotation that zeroes it, accumulating it into Q.
//   - Stage 3: converged when max |A[p,q]| < tol; eigenvalues are diag(A).
//
// Inputs:
//   - tol: convergence threshold (typ. 1e-12..1e-9).
//   - maxIter: cap on rotations; n(n-1)/2 * 50 is plenty for n ≤ 100.
//
// Returns eigenvalues and Q whose columns are the matching unit eigenvectors.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrEigenFailed.
// Complexity: Time O(maxIter * n^2), Space O(n^2).
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, Matrix, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	A := src.Clone().(*Dense)
	n := A.r
	Q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	var (
		iter, i, j, p, q     int
		maxOff, off          float64
		app, aqq, apq        float64
		aip, aiq, qip, qiq   float64
		theta, t, c, s       float64
		converged            = n == 1
	)
	for iter = 0; iter < maxIter && !converged; iter++ {
		maxOff = 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(A.data[i*n+j])
				if off > maxOff {
					maxOff, p, q = off, i, j
				}
			}
		}
		if maxOff < tol {
			converged = true
			break
		}

		app, aqq, apq = A.data[p*n+p], A.data[q*n+q], A.data[p*n+q]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == p || i == q {
				continue
			}
			aip, aiq = A.data[i*n+p], A.data[i*n+q]
			A.data[i*n+p] = c*aip - s*aiq
			A.data[p*n+i] = A.data[i*n+p]
			A.data[i*n+q] = s*aip + c*aiq
			A.data[q*n+i] = A.data[i*n+q]
		}
		A.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		A.data[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
		A.data[p*n+q], A.data[q*n+p] = 0, 0

		for i = 0; i < n; i++ {
			qip, qiq = Q.data[i*n+p], Q.data[i*n+q]
			Q.data[i*n+p] = c*qip - s*qiq
			Q.data[i*n+q] = s*qip + c*qiq
		}
	}
	if !converged {
		// The last rotation may have finished the job on the final iteration.
		maxOff = 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				maxOff = math.Max(maxOff, math.Abs(A.data[i*n+j]))
			}
		}
		if maxOff >= tol {
			return nil, nil, matrixErrorf(opEigen, ErrEigenFailed)
		}
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = A.data[i*n+i]
	}

	return eigs, Q, nil
}
