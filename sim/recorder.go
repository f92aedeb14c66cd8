// SPDX-License-Identifier: MIT

package sim

// Recorder receives experiment counters. Implementations must be safe for
// concurrent use; drivers call them once per experiment, after workers join.
type Recorder interface {
	// TrialsCompleted adds n finished trials.
	TrialsCompleted(experiment string, n int)
	// StepsTaken adds n simulated transitions.
	StepsTaken(experiment string, n int64)
	// Failure counts one failed experiment; reason is a short stable label.
	Failure(experiment, reason string)
	// BurnIn reports the burn-in step detected by EstimateStationary.
	BurnIn(experiment string, step int)
}

// Failure reasons passed to Recorder.Failure.
const (
	ReasonNonTerminating = "non_terminating"
	ReasonNoStationary   = "no_stationary"
	ReasonCanceled       = "canceled"
)

type nopRecorder struct{}

func (nopRecorder) TrialsCompleted(string, int) {}
func (nopRecorder) StepsTaken(string, int64)    {}
func (nopRecorder) Failure(string, string)      {}
func (nopRecorder) BurnIn(string, int)          {}
