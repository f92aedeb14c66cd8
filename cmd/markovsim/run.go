package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/markovsim/internal/config"
	"github.com/katalvlaran/markovsim/internal/logging"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <config.yaml>...",
		Short: "Run the experiments listed in one or more config files",
		Long: `Loads the config files in order, merging as it goes, and runs every
experiment. Spec values override the file defaults; --log-level and
--metrics-file given on the command line override the file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.withMetrics(func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfigs(a.logger, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") {
				a.logger = logging.New(cfg.Logging.Level, cmd.ErrOrStderr())
			}
			if !cmd.Flags().Changed("metrics-file") && cfg.Metrics.File != "" {
				a.metricsFile = cfg.Metrics.File
			}
			for _, e := range cfg.Experiments {
				a.logger.Info("running experiment", "experiment", e.Name, "type", e.Type)
				rep, err := a.runExperiment(cmd, cfg, e)
				if err != nil {
					return fmt.Errorf("experiment %q: %w", e.Name, err)
				}
				if err := a.render(rep); err != nil {
					return err
				}
			}

			return nil
		}),
	}
}

// baseParams turns the file-level settings into runParams.
func baseParams(cfg *config.Config) runParams {
	d := cfg.Defaults
	return runParams{
		Trials:   d.Trials,
		Steps:    d.Steps,
		MaxSteps: d.MaxSteps,
		Window:   d.Window,
		Epsilon:  d.Epsilon,
		Power:    d.Power,
		Seed:     cfg.Seed,
		Workers:  cfg.Workers,
	}
}

// override replaces p's field with v when v is non-zero.
func override[T int | uint64 | float64](p *T, v T) {
	if v != 0 {
		*p = v
	}
}

func (a *app) runExperiment(cmd *cobra.Command, cfg *config.Config, e config.Experiment) (report, error) {
	ctx := cmd.Context()
	p := baseParams(cfg)

	switch e.Type {
	case config.TypeAbsorbing:
		s, err := e.Absorbing()
		if err != nil {
			return nil, err
		}
		override(&p.Trials, s.Trials)
		override(&p.MaxSteps, s.MaxSteps)
		override(&p.Seed, s.Seed)
		m, err := chainFromSource(s.ChainSource)
		if err != nil {
			return nil, err
		}
		return a.runAbsorbing(ctx, e.Name, m, s.Starts, s.Absorbing, p)

	case config.TypeErgodic:
		s, err := e.Ergodic()
		if err != nil {
			return nil, err
		}
		override(&p.Trials, s.Trials)
		override(&p.Steps, s.Steps)
		override(&p.MaxSteps, s.MaxSteps)
		override(&p.Window, s.Window)
		override(&p.Epsilon, s.Epsilon)
		override(&p.Power, s.Power)
		override(&p.Seed, s.Seed)
		m, err := chainFromSource(s.ChainSource)
		if err != nil {
			return nil, err
		}
		init, err := parseInitial(s.Initial, s.InitialWeights, m.N())
		if err != nil {
			return nil, err
		}
		return a.runErgodic(ctx, e.Name, m, init, p)

	case config.TypeTrace:
		s, err := e.Trace()
		if err != nil {
			return nil, err
		}
		override(&p.Trials, s.Trials)
		override(&p.Steps, s.Steps)
		override(&p.Seed, s.Seed)
		m, err := chainFromSource(s.ChainSource)
		if err != nil {
			return nil, err
		}
		init, err := parseInitial(s.Initial, s.InitialWeights, m.N())
		if err != nil {
			return nil, err
		}
		return a.runTrace(ctx, e.Name, m, init, s.Every, p)
	}

	return nil, fmt.Errorf("unknown experiment type %q", e.Type)
}
