package main

import "github.com/spf13/cobra"

func newTraceCmd(a *app) *cobra.Command {
	var (
		matrix, initial string
		every           int
	)
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print the occupation distribution after each step",
		Args:  cobra.NoArgs,
		RunE: a.withMetrics(func(cmd *cobra.Command, args []string) error {
			m, err := chainFromFlag(matrix)
			if err != nil {
				return err
			}
			init, err := parseInitial(initial, nil, m.N())
			if err != nil {
				return err
			}
			rep, err := a.runTrace(cmd.Context(), "trace", m, init, every, a.params)
			if err != nil {
				return err
			}

			return a.render(rep)
		}),
	}
	cmd.Flags().StringVar(&matrix, "matrix", "", `transition matrix as "a,b;c,d"`)
	cmd.Flags().StringVar(&initial, "initial", "ramp", "initial distribution: ramp, uniform or point:<i>")
	cmd.Flags().IntVar(&every, "every", 1, "print every n-th step")
	_ = cmd.MarkFlagRequired("matrix")

	return cmd
}
