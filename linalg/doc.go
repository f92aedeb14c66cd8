// Package linalg is the linear-algebra capability the closed-form solvers are
// written against: matrix inversion and eigen-decomposition behind one small
// interface, so callers can swap the numeric backend without touching the
// Markov code.
//
// Two backends ship with the module:
//
//   - Gonum wraps gonum.org/v1/gonum/mat. It handles general (non-symmetric)
//     matrices and returns complex eigenvalues with right eigenvectors, which
//     is what a transition matrix needs.
//   - Native wraps this module's own matrix kernels: LU-based Inverse and the
//     Jacobi Eigen. Jacobi only accepts symmetric input, so Native.Eigen
//     fails with matrix.ErrAsymmetry on most transition matrices; it exists
//     for symmetric (doubly stochastic, reversible) chains and as a
//     dependency-free cross-check of Gonum.
package linalg
