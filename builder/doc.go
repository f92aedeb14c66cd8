// Package builder provides deterministic Markov chain fixtures built with
// "functional-options"-style configuration. It sits next to chain and sim so
// tests, benchmarks and the CLI share one source of well-known chains.
//
// The package offers the following key components:
//
//   - Configuration primitives:
//     – BuilderOption:     a function that mutates builderConfig before use.
//     – builderConfig:     holds RNG, weight function, density and tolerance.
//   - Constructors (all return *chain.TransitionMatrix):
//     – RandomStochastic:  dense or sparse random row-stochastic chain.
//     – RandomAbsorbing:   random chain whose last k states are absorbing and
//     from which every transient state is absorbed with probability 1.
//     – Cycle:             deterministic ring i → i+1 (mod n), period n.
//     – GamblersRuin:      birth–death chain on 0..n with absorbing ends.
//     – Identity:          every state absorbing.
//     – Lazy:              (1−α)·I + α·M, removes periodicity.
//   - Row weight distributions (WeightFn implementations):
//     – DefaultWeightFn:     constant weight DefaultWeight.
//     – ConstantWeightFn:    fixed user-provided value.
//     – UniformWeightFn:     uniform ∼U[min,max].
//     – ExponentialWeightFn: exponential ∼Exp(rate); normalised rows of
//     Exp(1) weights are uniform on the probability simplex.
//   - State label schemes (LabelFn implementations):
//     – DecimalLabel, ExcelColumnLabel, PrefixLabel; LabelScheme by name.
//
// Guarantees:
//
//   - Same inputs, options and seed ⇒ identical matrices.
//   - Fast-fail on invalid option parameters via panics in option-constructors.
//   - Structured runtime errors (sentinels wrapped with the constructor name)
//     for invalid build parameters.
//   - Stochastic constructors without WithSeed/WithRand fail with ErrNeedRandSource.
package builder
