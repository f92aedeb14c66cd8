// Package metrics exports simulation counters in the Prometheus format.
//
// Recorder implements sim.Recorder on a private registry so several
// recorders (one per CLI run, one per test) never collide.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/markovsim/sim"
)

const namespace = "markovsim"

// Recorder collects experiment counters.
type Recorder struct {
	reg       *prometheus.Registry
	trials    *prometheus.CounterVec
	steps     *prometheus.CounterVec
	failures  *prometheus.CounterVec
	burnIn    *prometheus.GaugeVec
	durations *prometheus.HistogramVec
}

var _ sim.Recorder = (*Recorder)(nil)

// NewRecorder registers the markovsim collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		trials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "trials_total",
				Help:      "Completed simulation trials.",
			},
			[]string{"experiment"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_total",
				Help:      "Simulated chain transitions.",
			},
			[]string{"experiment"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Failed experiments by reason.",
			},
			[]string{"experiment", "reason"},
		),
		burnIn: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "burn_in_steps",
				Help:      "Detected burn-in of the last stationary estimate.",
			},
			[]string{"experiment"},
		),
		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "experiment_duration_seconds",
				Help:      "Wall time of an experiment.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"experiment"},
		),
	}
	r.reg.MustRegister(r.trials, r.steps, r.failures, r.burnIn, r.durations)

	return r
}

// Registry exposes the underlying registry (for promhttp or tests).
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// TrialsCompleted implements sim.Recorder.
func (r *Recorder) TrialsCompleted(experiment string, n int) {
	r.trials.WithLabelValues(experiment).Add(float64(n))
}

// StepsTaken implements sim.Recorder.
func (r *Recorder) StepsTaken(experiment string, n int64) {
	r.steps.WithLabelValues(experiment).Add(float64(n))
}

// Failure implements sim.Recorder.
func (r *Recorder) Failure(experiment, reason string) {
	r.failures.WithLabelValues(experiment, reason).Inc()
}

// BurnIn implements sim.Recorder.
func (r *Recorder) BurnIn(experiment string, step int) {
	r.burnIn.WithLabelValues(experiment).Set(float64(step))
}

// ObserveDuration records the wall time of one experiment.
func (r *Recorder) ObserveDuration(experiment string, d time.Duration) {
	r.durations.WithLabelValues(experiment).Observe(d.Seconds())
}

// WriteToTextfile writes the registry in the text exposition format to
// path, atomically, for the node_exporter textfile collector.
func (r *Recorder) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}

	return nil
}
