package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/markovsim/builder"
	"github.com/katalvlaran/markovsim/chain"
	"github.com/katalvlaran/markovsim/internal/config"
)

// parseMatrix reads "a,b;c,d" into rows. Whitespace around cells is ignored.
func parseMatrix(s string) ([][]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty matrix")
	}
	var rows [][]float64
	for i, line := range strings.Split(s, ";") {
		cells := strings.Split(line, ",")
		row := make([]float64, len(cells))
		for j, c := range cells {
			v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
			if err != nil {
				return nil, fmt.Errorf("matrix cell (%d,%d): %w", i, j, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// formatMatrix is the inverse of parseMatrix.
func formatMatrix(rows [][]float64) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte(';')
		}
		for j, v := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}

	return b.String()
}

// chainFromFlag parses and validates the --matrix flag.
func chainFromFlag(s string) (*chain.TransitionMatrix, error) {
	rows, err := parseMatrix(s)
	if err != nil {
		return nil, err
	}

	return chain.New(rows)
}

// chainFromSource resolves a config chain source.
func chainFromSource(src config.ChainSource) (*chain.TransitionMatrix, error) {
	if src.Builder != nil {
		return buildChain(*src.Builder)
	}

	return chain.New(src.Matrix)
}

// buildChain runs the builder constructor named by spec.Kind, then applies
// Lazy when spec.Hold > 0.
func buildChain(spec config.BuilderSpec) (*chain.TransitionMatrix, error) {
	opts := []builder.BuilderOption{builder.WithSeed(spec.Seed)}
	if spec.Density != 0 {
		if spec.Density < 0 || spec.Density > 1 {
			return nil, fmt.Errorf("density %g outside [0,1]", spec.Density)
		}
		opts = append(opts, builder.WithDensity(spec.Density))
	}

	var (
		m   *chain.TransitionMatrix
		err error
	)
	switch spec.Kind {
	case "random":
		m, err = builder.RandomStochastic(spec.N, opts...)
	case "absorbing":
		m, err = builder.RandomAbsorbing(spec.N, spec.K, opts...)
	case "cycle":
		m, err = builder.Cycle(spec.N, opts...)
	case "ruin":
		m, err = builder.GamblersRuin(spec.N, spec.P, opts...)
	case "identity":
		m, err = builder.Identity(spec.N, opts...)
	default:
		return nil, fmt.Errorf("unknown builder kind %q", spec.Kind)
	}
	if err != nil {
		return nil, err
	}
	if spec.Hold > 0 {
		return builder.Lazy(m, spec.Hold, opts...)
	}

	return m, nil
}

// parseInitial resolves the start distribution: explicit weights, or one of
// "ramp" (default), "uniform", "point:<i>".
func parseInitial(name string, weights []float64, n int) (chain.Distribution, error) {
	if len(weights) > 0 {
		return chain.NewDistribution(weights, chain.DefaultTolerance)
	}
	switch name {
	case "", "ramp":
		return chain.LinearRamp(n)
	case "uniform":
		return chain.Uniform(n)
	}
	if idx, ok := strings.CutPrefix(name, "point:"); ok {
		i, err := strconv.Atoi(idx)
		if err != nil {
			return nil, fmt.Errorf("initial %q: %w", name, err)
		}
		return chain.PointMass(n, i)
	}

	return nil, fmt.Errorf("unknown initial distribution %q (want ramp, uniform or point:<i>)", name)
}
