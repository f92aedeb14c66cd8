// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Kernels return these sentinels (optionally wrapped with an operation tag via
// matrixErrorf); callers and tests match them with errors.Is. No kernel panics
// on user-triggered error conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." so failures are easy to grep.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape/index -> NaN/Inf -> structural (symmetry, singularity).

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes, e.g. Mul with
	// a.Cols != b.Rows, a non-square input to a square-only kernel, or ragged rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrAsymmetry signals that a matrix expected to be symmetric is not,
	// within the supplied tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrSingular is returned when a zero pivot is met during LU/Inverse.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrEigenFailed indicates that the Jacobi sweeps did not converge within
	// the iteration budget.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")

	// ErrNegativeExponent is returned by Pow for k < 0.
	ErrNegativeExponent = errors.New("matrix: negative exponent")
)
