// Package markovsim estimates the limiting behaviour of discrete-time
// finite-state Markov chains by Monte Carlo simulation and checks the
// estimates against closed-form linear algebra.
//
// What is in the box:
//
//	• Data model: validated transition matrices, distributions, absorbing
//	  and transient states, reachability and communicating classes
//	• Simulation: weighted single-step sampling, absorption-probability
//	  estimation, stationary-distribution estimation with a programmatic
//	  burn-in, occupation traces
//	• Closed form: fundamental matrix, absorption probabilities, expected
//	  steps, unit eigenvector of Mᵀ, matrix powers
//	• Fixtures: random, absorbing, periodic and gambler's-ruin chains
//
// Under the hood, everything is organized in subpackages:
//
//	matrix/     dense matrices and kernels (Mul, Pow, LU, Inverse, Jacobi Eigen)
//	chain/      TransitionMatrix, Distribution, Sample, Step, reachability
//	sim/        EstimateAbsorption, EstimateStationary, TraceOccupation, DetectBurnIn
//	linalg/     the injected Algebra (Invert, Eigen): Gonum and Native
//	closedform/ exact reference values
//	builder/    deterministic chain fixtures
//	cmd/markovsim command-line front end
//
// Quick example:
//
//	m, _ := chain.New([][]float64{
//		{1, 0, 0, 0},
//		{0.1, 0.2, 0.3, 0.4},
//		{0.5, 0.1, 0.1, 0.3},
//		{0, 0, 0, 1},
//	})
//	est, _ := sim.EstimateAbsorption(m, nil, 1, sim.WithSeed(77))
//	fmt.Println(est.Probabilities) // ≈ map[0:0.348 3:0.652]
//
// Determinism: every experiment takes a seed; the same seed gives the same
// result for any number of workers.
package markovsim
