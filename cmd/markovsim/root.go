package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/markovsim/builder"
	"github.com/katalvlaran/markovsim/internal/config"
	"github.com/katalvlaran/markovsim/internal/logging"
	"github.com/katalvlaran/markovsim/internal/metrics"
	"github.com/katalvlaran/markovsim/linalg"
)

// Output formats.
const (
	formatText = "text"
	formatYAML = "yaml"
)

// runParams are the simulation knobs shared by every experiment.
type runParams struct {
	Trials   int
	Steps    int
	MaxSteps int
	Window   int
	Epsilon  float64
	Power    int
	Seed     uint64
	Workers  int
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	// flag values
	params      runParams
	logLevel    string
	format      string
	metricsFile string
	algebra     string
	labelScheme string

	// resolved in setup
	out    io.Writer
	logger *slog.Logger
	rec    *metrics.Recorder
	alg    linalg.Algebra
	labels builder.LabelFn
}

func newRootCmd() *cobra.Command {
	a := &app{}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "markovsim",
		Short: "Monte Carlo estimation of Markov chain limits",
		Long: `markovsim simulates discrete-time finite Markov chains.

It estimates absorption probabilities of absorbing chains and the stationary
distribution of ergodic chains, and prints them next to the closed-form
values (fundamental matrix, unit eigenvector, matrix power).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	f := rootCmd.PersistentFlags()
	f.IntVar(&a.params.Trials, "trials", defaults.Defaults.Trials, "number of independent trajectories")
	f.IntVar(&a.params.Steps, "steps", defaults.Defaults.Steps, "steps tallied after burn-in (ergodic) or traced (trace)")
	f.IntVar(&a.params.MaxSteps, "max-steps", defaults.Defaults.MaxSteps, "step budget per absorption trial and for the burn-in search")
	f.IntVar(&a.params.Window, "window", defaults.Defaults.Window, "burn-in window length")
	f.Float64Var(&a.params.Epsilon, "epsilon", 0, "burn-in tolerance (0 derives 2/sqrt(trials))")
	f.IntVar(&a.params.Power, "power", defaults.Defaults.Power, "exponent k of the M^k reference")
	f.Uint64Var(&a.params.Seed, "seed", 0, "experiment seed (0 selects the default seed)")
	f.IntVar(&a.params.Workers, "workers", defaults.Workers, "goroutines trials are split across")
	f.StringVar(&a.logLevel, "log-level", defaults.Logging.Level, "debug, info, warn or error")
	f.StringVarP(&a.format, "output", "o", formatText, "output format: text or yaml")
	f.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	f.StringVar(&a.algebra, "algebra", "gonum", "closed-form backend: gonum or native")
	f.StringVar(&a.labelScheme, "labels", "decimal", "state labels: decimal, excel or prefix:<p>")

	rootCmd.AddCommand(
		newAbsorbCmd(a),
		newErgodicCmd(a),
		newTraceCmd(a),
		newRunCmd(a),
		newGenerateCmd(a),
	)

	return rootCmd
}

// setup resolves flag values into collaborators.
func (a *app) setup(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()
	a.logger = logging.New(a.logLevel, cmd.ErrOrStderr())
	a.rec = metrics.NewRecorder()

	switch a.algebra {
	case "gonum":
		a.alg = linalg.Gonum{}
	case "native":
		a.alg = linalg.Native{}
	default:
		return fmt.Errorf("unknown algebra %q (want gonum or native)", a.algebra)
	}
	switch a.format {
	case formatText, formatYAML:
	default:
		return fmt.Errorf("unknown output format %q (want text or yaml)", a.format)
	}
	labels, err := builder.LabelScheme(a.labelScheme)
	if err != nil {
		return err
	}
	a.labels = labels

	return nil
}

// withMetrics runs fn and then writes the metrics file, if one is configured,
// whether or not fn failed.
func (a *app) withMetrics(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if a.metricsFile == "" {
			return err
		}
		if werr := a.rec.WriteToTextfile(a.metricsFile); werr != nil {
			if err == nil {
				return werr
			}
			a.logger.Warn("metrics not written", "err", werr)
		}

		return err
	}
}
