package main

import "github.com/spf13/cobra"

func newAbsorbCmd(a *app) *cobra.Command {
	var (
		matrix    string
		starts    []int
		absorbing []int
	)
	cmd := &cobra.Command{
		Use:   "absorb",
		Short: "Estimate absorption probabilities of an absorbing chain",
		Long: `Runs --trials trajectories from each start state until they enter an
absorbing state, and prints the fraction ending in each absorbing state next
to the fundamental-matrix value B = (I-Q)^-1 R.`,
		Example: `  markovsim absorb --matrix "1,0,0,0;0.1,0.2,0.3,0.4;0.5,0.1,0.1,0.3;0,0,0,1" --seed 77`,
		Args:    cobra.NoArgs,
		RunE: a.withMetrics(func(cmd *cobra.Command, args []string) error {
			m, err := chainFromFlag(matrix)
			if err != nil {
				return err
			}
			rep, err := a.runAbsorbing(cmd.Context(), "absorb", m, starts, absorbing, a.params)
			if err != nil {
				return err
			}

			return a.render(rep)
		}),
	}
	cmd.Flags().StringVar(&matrix, "matrix", "", `transition matrix as "a,b;c,d"`)
	cmd.Flags().IntSliceVar(&starts, "start", nil, "start states (default: every non-absorbing state)")
	cmd.Flags().IntSliceVar(&absorbing, "absorbing", nil, "target states (default: states with M[i][i] = 1)")
	_ = cmd.MarkFlagRequired("matrix")

	return cmd
}
