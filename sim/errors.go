// SPDX-License-Identifier: MIT

package sim

import (
	"errors"
	"fmt"
)

// Sentinel errors for experiment drivers.
var (
	// ErrNonTerminatingChain is returned when an absorption trial exceeds its
	// step budget, or when no target state is reachable from the start.
	ErrNonTerminatingChain = errors.New("sim: chain does not terminate")

	// ErrNoStationaryDistribution is returned when the chain has several
	// closed classes, its closed class is periodic, or the burn-in criterion
	// never holds within MaxSteps.
	ErrNoStationaryDistribution = errors.New("sim: no stationary distribution")

	// ErrOptionViolation is returned when an invalid Option or argument is supplied.
	ErrOptionViolation = errors.New("sim: invalid option supplied")
)

// TrialError carries the context of the trial that aborted an experiment.
type TrialError struct {
	Trial int // trial index in [0, Trials)
	Start int // start state of the trajectory
	State int // state the trajectory was in when it stopped
	Steps int // transitions taken
	Err   error
}

func (e *TrialError) Error() string {
	return fmt.Sprintf("sim: trial %d from state %d stopped at state %d after %d steps: %v",
		e.Trial, e.Start, e.State, e.Steps, e.Err)
}

func (e *TrialError) Unwrap() error { return e.Err }
