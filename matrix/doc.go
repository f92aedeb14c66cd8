// Package matrix provides the dense linear-algebra primitives used by the
// Markov chain packages.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set that return
//     sentinel errors instead of panicking.
//   - Kernels: Add, Sub, Mul, Transpose, Scale, MatVec, LU, Inverse, Pow and a
//     Jacobi Eigen for symmetric input.
//   - Facades: NewIdentity, RowSums, NormalizeRowsL1, AllClose and friends.
//
// Every kernel validates its operands, never mutates them, and allocates a
// fresh *Dense for its result. Loop orders are fixed, so identical inputs
// produce bit-identical outputs.
//
// Transition matrices are small (tens of states), so everything here is
// O(n^3) at worst and favours determinism over raw speed: Inverse and LU do
// not pivot. For the (I − Q) systems built from absorbing chains this is safe,
// since I − Q is a non-singular M-matrix and every leading pivot is positive.
package matrix
