// SPDX-License-Identifier: MIT

package closedform

import "errors"

var (
	// ErrNoAbsorbingStates is returned by Absorption for a chain without absorbing states.
	ErrNoAbsorbingStates = errors.New("closedform: chain has no absorbing states")

	// ErrNoTransientStates is returned by Absorption when every state is absorbing.
	ErrNoTransientStates = errors.New("closedform: chain has no transient states")

	// ErrNoUnitEigenvalue is returned by Stationary when Mᵀ has no simple
	// eigenvalue 1 to take the stationary vector from.
	ErrNoUnitEigenvalue = errors.New("closedform: no simple unit eigenvalue")

	// ErrNotTransient is returned by AbsorptionTable lookups for a start state
	// that is not transient.
	ErrNotTransient = errors.New("closedform: state is not transient")

	// ErrNotAbsorbing is returned by AbsorptionTable lookups for a target state
	// that is not absorbing.
	ErrNotAbsorbing = errors.New("closedform: state is not absorbing")
)
