// SPDX-License-Identifier: MIT
// Package matrix - constructors and row-oriented helpers.
//
// Purpose:
//   - Provide intention-revealing helpers used across the simulator: identity,
//     per-row sums, L1 row normalization and a numeric comparison for tests.
//   - Keep loop order fixed so results are bit-for-bit reproducible.
//
// AI-Hints:
//   - RowSums + NormalizeRowsL1 turn arbitrary non-negative weights into a
//     row-stochastic matrix.
//   - AllClose is the comparison the closed-form tests rely on.

package matrix

import "math"

const (
	opRowSums         = "RowSums"
	opNormalizeRowsL1 = "NormalizeRowsL1"
	opAllClose        = "AllClose"
)

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// RowSums returns vector r where r[i] = sum_j m[i,j].
// Implementation: MatVec(m, ones(cols)).
// Complexity: O(rc).
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	ones := make([]float64, m.Cols())
	for j := range ones {
		ones[j] = 1.0
	}

	return MatVec(m, ones)
}

// NormalizeRowsL1 returns Y where each row i is scaled to L1-norm = 1, plus the
// per-row norms. Rows whose norm is zero stay zero; callers decide whether that
// is an error (chain validation rejects them).
//
// Time: O(r*c). Space: O(r*c). Deterministic.
func NormalizeRowsL1(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL1, err)
	}
	src, err := asDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL1, err)
	}

	r, c := src.r, src.c
	out, err := NewDense(r, c)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL1, err)
	}
	norms := make([]float64, r)

	var i, j, base int
	var s float64
	for i = 0; i < r; i++ {
		s = 0.0
		base = i * c
		for j = 0; j < c; j++ {
			s += math.Abs(src.data[base+j])
		}
		norms[i] = s
		if s == 0 {
			continue
		}
		for j = 0; j < c; j++ {
			out.data[base+j] = src.data[base+j] / s
		}
	}

	return out, norms, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if every element satisfies the relation; (false,nil) otherwise.
// rtol and atol are taken by absolute value.
//
// Time: O(r*c). Space: O(1).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := asDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := asDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for idx, av := range da.data {
		bv := db.data[idx]
		if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
			return false, nil
		}
	}

	return true, nil
}
