// Package closedform computes the exact limiting behaviour of a Markov chain,
// the reference values Monte Carlo estimates are compared against.
//
// Absorbing chains. With the states reordered as transient T and absorbing A,
//
//	M = | Q  R |    N = (I − Q)^{-1}    B = N·R    t = N·1
//	    | 0  I |
//
// N is the fundamental matrix (expected visits), B[i][j] the probability of
// being absorbed in A[j] when starting from T[i], and t[i] the expected number
// of steps before absorption.
//
// Ergodic chains. The stationary distribution π satisfies π·M = π; it is the
// eigenvector of Mᵀ for eigenvalue 1, scaled to sum to 1. PowerLimit offers
// the second route: for a regular chain every row of M^k converges to π.
//
// Inversion and eigen-decomposition go through a linalg.Algebra, so the same
// code runs on gonum or on the native kernels.
package closedform
