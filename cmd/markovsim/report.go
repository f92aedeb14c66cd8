package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// report is anything a subcommand prints.
type report interface {
	writeText(w io.Writer) error
}

// AbsorptionReport compares simulated and exact absorption probabilities.
type AbsorptionReport struct {
	Experiment string          `yaml:"experiment"`
	Trials     int             `yaml:"trials"`
	Targets    []string        `yaml:"targets"`
	Rows       []AbsorptionRow `yaml:"rows"`
}

// AbsorptionRow holds one start state; slices are indexed like Targets.
type AbsorptionRow struct {
	Start         string    `yaml:"start"`
	Empirical     []float64 `yaml:"empirical"`
	Exact         []float64 `yaml:"exact,omitempty"`
	Diff          []float64 `yaml:"diff,omitempty"`
	MeanSteps     float64   `yaml:"meanSteps"`
	ExpectedSteps *float64  `yaml:"expectedSteps,omitempty"`
}

// StationaryReport compares simulated and exact stationary distributions.
type StationaryReport struct {
	Experiment string    `yaml:"experiment"`
	States     []string  `yaml:"states"`
	Trials     int       `yaml:"trials"`
	Steps      int       `yaml:"steps"`
	BurnIn     int       `yaml:"burnIn"`
	Power      int       `yaml:"power"`
	Empirical  []float64 `yaml:"empirical"`
	Exact      []float64 `yaml:"exact,omitempty"`
	ByPower    []float64 `yaml:"byPower,omitempty"`
	DiffExact  []float64 `yaml:"diffExact,omitempty"`
	DiffPower  []float64 `yaml:"diffPower,omitempty"`
}

// TraceReport lists occupation distributions over time.
type TraceReport struct {
	Experiment string     `yaml:"experiment"`
	States     []string   `yaml:"states"`
	Trials     int        `yaml:"trials"`
	Rows       []TraceRow `yaml:"rows"`
}

// TraceRow is the occupation after Step transitions and its running average.
type TraceRow struct {
	Step       int       `yaml:"step"`
	Occupation []float64 `yaml:"occupation"`
	Average    []float64 `yaml:"average"`
}

// render prints r in the configured format.
func (a *app) render(r report) error {
	if a.format == formatYAML {
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}

	return r.writeText(a.out)
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

func signed(v float64) string { return fmt.Sprintf("%+.4f", v) }

// cell returns xs[i] formatted by f, or "-" when xs is too short.
func cell(xs []float64, i int, f func(float64) string) string {
	if i >= len(xs) {
		return "-"
	}

	return f(xs[i])
}

func (r *AbsorptionReport) writeText(w io.Writer) error {
	fmt.Fprintf(w, "experiment %s: absorption, %d trials per start\n", r.Experiment, r.Trials)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "start\ttarget\tempirical\texact\tdiff\t")
	for _, row := range r.Rows {
		for j, t := range r.Targets {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", row.Start, t,
				cell(row.Empirical, j, num), cell(row.Exact, j, num), cell(row.Diff, j, signed))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, row := range r.Rows {
		exact := "-"
		if row.ExpectedSteps != nil {
			exact = num(*row.ExpectedSteps)
		}
		fmt.Fprintf(w, "start %s: mean steps %s (exact %s)\n", row.Start, num(row.MeanSteps), exact)
	}

	return nil
}

func (r *StationaryReport) writeText(w io.Writer) error {
	fmt.Fprintf(w, "experiment %s: stationary, %d trials x %d steps after burn-in %d\n",
		r.Experiment, r.Trials, r.Steps, r.BurnIn)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "state\tempirical\teigenvector\tdiff\tM^%d\tdiff\t\n", r.Power)
	for i, s := range r.States {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n", s,
			cell(r.Empirical, i, num),
			cell(r.Exact, i, num), cell(r.DiffExact, i, signed),
			cell(r.ByPower, i, num), cell(r.DiffPower, i, signed))
	}

	return tw.Flush()
}

func (r *TraceReport) writeText(w io.Writer) error {
	fmt.Fprintf(w, "experiment %s: occupation trace, %d trials\n", r.Experiment, r.Trials)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "step\t%s\t|\t%s\t\n",
		strings.Join(r.States, "\t"), strings.Join(prefixed("avg ", r.States), "\t"))
	for _, row := range r.Rows {
		fmt.Fprintf(tw, "%d\t%s\t|\t%s\t\n", row.Step, joinNums(row.Occupation), joinNums(row.Average))
	}

	return tw.Flush()
}

func prefixed(p string, xs []string) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = p + x
	}

	return out
}

func joinNums(xs []float64) string {
	parts := make([]string, len(xs))
	for i, v := range xs {
		parts[i] = num(v)
	}

	return strings.Join(parts, "\t")
}
