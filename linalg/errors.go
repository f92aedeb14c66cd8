// SPDX-License-Identifier: MIT

package linalg

import "errors"

var (
	// ErrSingular is returned by Invert for a singular input.
	ErrSingular = errors.New("linalg: singular matrix")

	// ErrEigenFailed is returned when the eigen-decomposition does not converge.
	ErrEigenFailed = errors.New("linalg: eigen decomposition failed")
)
