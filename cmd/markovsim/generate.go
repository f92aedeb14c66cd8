package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/markovsim/internal/config"
)

func newGenerateCmd(a *app) *cobra.Command {
	var spec config.BuilderSpec
	cmd := &cobra.Command{
		Use:   "generate <random|absorbing|cycle|ruin|identity>",
		Short: "Print a generated transition matrix",
		Long: `Builds a fixture chain and prints it in --matrix syntax (text) or as
rows (yaml), ready to feed back into absorb, ergodic or trace.`,
		Example: `  markovsim absorb --matrix "$(markovsim generate ruin --n 4 --p 0.5)"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec.Kind = args[0]
			spec.Seed = a.params.Seed
			m, err := buildChain(spec)
			if err != nil {
				return err
			}
			if a.format == formatYAML {
				enc := yaml.NewEncoder(a.out)
				if err := enc.Encode(map[string]any{"matrix": m.Rows()}); err != nil {
					return err
				}
				return enc.Close()
			}
			_, err = fmt.Fprintln(a.out, formatMatrix(m.Rows()))

			return err
		},
	}
	cmd.Flags().IntVar(&spec.N, "n", 4, "number of states (target for ruin)")
	cmd.Flags().IntVar(&spec.K, "k", 1, "number of absorbing states (absorbing)")
	cmd.Flags().Float64Var(&spec.P, "p", 0.5, "step-up probability (ruin)")
	cmd.Flags().Float64Var(&spec.Density, "density", 0, "off-diagonal density (random, absorbing; 0 means dense)")
	cmd.Flags().Float64Var(&spec.Hold, "hold", 0, "make the chain lazy with this holding probability")

	return cmd
}
