// Package builder defines shared constants used by chain constructors, ensuring
// consistent defaults and validation across all of them.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants
//   used to prefix errors with the constructor name for context.
//-----------------------------------------------------------------------------

const (
	// MethodRandomStochastic is the canonical name for the RandomStochastic constructor.
	MethodRandomStochastic = "RandomStochastic"
	// MethodRandomAbsorbing is the canonical name for the RandomAbsorbing constructor.
	MethodRandomAbsorbing = "RandomAbsorbing"
	// MethodCycle is the canonical name for the Cycle constructor.
	MethodCycle = "Cycle"
	// MethodGamblersRuin is the canonical name for the GamblersRuin constructor.
	MethodGamblersRuin = "GamblersRuin"
	// MethodIdentity is the canonical name for the Identity constructor.
	MethodIdentity = "Identity"
	// MethodLazy is the canonical name for the Lazy constructor.
	MethodLazy = "Lazy"
)

//-----------------------------------------------------------------------------
// Minimum Sizes
//-----------------------------------------------------------------------------

// MinStates is the smallest chain any constructor accepts.
const MinStates = 1

// MinCycleStates is the smallest meaningful ring: 2 states give period 2.
const MinCycleStates = 2

// MinRuinTarget is the smallest gambler's-ruin target with a transient state.
const MinRuinTarget = 2

//-----------------------------------------------------------------------------
// Probability bounds
//-----------------------------------------------------------------------------

// MinProbability and MaxProbability bound density and step probabilities.
const (
	MinProbability = 0.0
	MaxProbability = 1.0
)

// DefaultDensity keeps every off-diagonal entry eligible (dense rows).
const DefaultDensity = 1.0

// maxRowRedraws bounds how often a row whose weights all came out zero is redrawn.
const maxRowRedraws = 64
