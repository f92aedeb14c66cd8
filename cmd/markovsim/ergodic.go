package main

import "github.com/spf13/cobra"

func newErgodicCmd(a *app) *cobra.Command {
	var matrix, initial string
	cmd := &cobra.Command{
		Use:   "ergodic",
		Short: "Estimate the stationary distribution of an ergodic chain",
		Long: `Advances --trials trajectories from the initial distribution until the
cross-trial occupation is stable over --window consecutive steps (burn-in),
then tallies --steps further steps. The estimate is printed next to the
normalised unit eigenvector of M^T and row 0 of M^k.`,
		Example: `  markovsim ergodic --matrix "0.3,0.2,0.5;0.4,0.1,0.5;0.3,0.6,0.1" --trials 1000`,
		Args:    cobra.NoArgs,
		RunE: a.withMetrics(func(cmd *cobra.Command, args []string) error {
			m, err := chainFromFlag(matrix)
			if err != nil {
				return err
			}
			init, err := parseInitial(initial, nil, m.N())
			if err != nil {
				return err
			}
			rep, err := a.runErgodic(cmd.Context(), "ergodic", m, init, a.params)
			if err != nil {
				return err
			}

			return a.render(rep)
		}),
	}
	cmd.Flags().StringVar(&matrix, "matrix", "", `transition matrix as "a,b;c,d"`)
	cmd.Flags().StringVar(&initial, "initial", "ramp", "initial distribution: ramp, uniform or point:<i>")
	_ = cmd.MarkFlagRequired("matrix")

	return cmd
}
