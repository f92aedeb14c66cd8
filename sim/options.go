// SPDX-License-Identifier: MIT

package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
)

// Defaults applied by DefaultOptions.
const (
	DefaultTrials   = 10000
	DefaultSteps    = 1000
	DefaultMaxSteps = 10000
	DefaultWindow   = 50
	DefaultWorkers  = 1
)

// Option configures an experiment via functional arguments.
// If an Option is invalid (e.g. zero trials), it is recorded internally
// and surfaced as ErrOptionViolation when the driver is invoked.
type Option func(*Options)

// Options holds the parameters shared by every driver.
type Options struct {
	// Ctx allows cancellation; it is checked between trials and steps.
	Ctx context.Context

	// Trials is the number of independent trajectories.
	Trials int

	// Steps is the number of transitions per trajectory tallied by
	// EstimateStationary after burn-in, and traced by TraceOccupation.
	Steps int

	// MaxSteps caps a single absorption trial, and the burn-in search of
	// EstimateStationary.
	MaxSteps int

	// Seed is the experiment seed; 0 selects DefaultSeed.
	Seed uint64

	// Workers is the number of goroutines trials are split across.
	Workers int

	// Window is the burn-in window length W.
	Window int

	// Epsilon is the burn-in spread tolerance; 0 selects 2/sqrt(Trials).
	Epsilon float64

	// Experiment labels log lines and recorder counters.
	Experiment string

	// Logger receives Debug progress and Warn failures.
	Logger *slog.Logger

	// Recorder receives counters once the experiment ends.
	Recorder Recorder

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - Context.Background()
//   - 10,000 trials, 1,000 steps, 10,000 max steps
//   - seed 0 (DefaultSeed), 1 worker
//   - window 50, epsilon derived from Trials
//   - a discarding logger and a no-op recorder.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		Trials:   DefaultTrials,
		Steps:    DefaultSteps,
		MaxSteps: DefaultMaxSteps,
		Workers:  DefaultWorkers,
		Window:   DefaultWindow,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Recorder: nopRecorder{},
	}
}

// buildOptions applies opts over DefaultOptions and returns the first recorded error.
func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return o, o.err
	}

	return o, nil
}

// epsilon resolves the burn-in tolerance: explicit value or 2/sqrt(Trials).
func (o Options) epsilon() float64 {
	if o.Epsilon > 0 {
		return o.Epsilon
	}

	return 2 / math.Sqrt(float64(o.Trials))
}

// label returns Experiment or the driver's fallback name.
func (o Options) label(fallback string) string {
	if o.Experiment != "" {
		return o.Experiment
	}

	return fallback
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithTrials sets the number of trials; n < 1 → ErrOptionViolation.
func WithTrials(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: trials must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Trials = n
	}
}

// WithSteps sets the tallied/traced step count; n < 1 → ErrOptionViolation.
func WithSteps(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: steps must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Steps = n
	}
}

// WithMaxSteps sets the step budget; n < 1 → ErrOptionViolation.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: max steps must be >= 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithSeed sets the experiment seed. Seed 0 is valid and selects DefaultSeed.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithWorkers sets the worker count; n <= 0 means a single worker.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			n = 1
		}
		o.Workers = n
	}
}

// WithWindow sets the burn-in window; w < 2 → ErrOptionViolation.
func WithWindow(w int) Option {
	return func(o *Options) {
		if w < 2 {
			o.err = fmt.Errorf("%w: window must be >= 2 (%d)", ErrOptionViolation, w)
			return
		}
		o.Window = w
	}
}

// WithEpsilon sets the burn-in tolerance.
//
//	eps > 0: used verbatim
//	eps == 0: derive 2/sqrt(Trials)
//	eps < 0, NaN or Inf: ErrOptionViolation
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
			o.err = fmt.Errorf("%w: epsilon must be a finite number >= 0 (%g)", ErrOptionViolation, eps)
			return
		}
		o.Epsilon = eps
	}
}

// WithExperiment sets the label used in logs and metrics.
func WithExperiment(name string) Option {
	return func(o *Options) { o.Experiment = name }
}

// WithLogger routes driver logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRecorder routes experiment counters to r.
func WithRecorder(r Recorder) Option {
	return func(o *Options) {
		if r != nil {
			o.Recorder = r
		}
	}
}
