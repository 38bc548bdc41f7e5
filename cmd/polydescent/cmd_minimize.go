// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/polydescent/descent"
)

func newMinimizeCmd(a *app) *cobra.Command {
	var (
		tolerance float64
		maxIter   int
		stepSize  float64
		start     map[string]string
	)

	cmd := &cobra.Command{
		Use:   "minimize [polynomial]",
		Short: "Minimize a polynomial by fixed-step steepest descent",
		Long: `Run steepest descent from the start point and print every iteration.

If the start point does not bind every variable of the polynomial, the run
starts from the origin instead and a warning is logged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parse(args)
			if err != nil {
				return err
			}

			opts := a.cfg.Options()
			if cmd.Flags().Changed("tolerance") {
				opts = append(opts, descent.WithTolerance(tolerance))
			}
			if cmd.Flags().Changed("max-iter") {
				opts = append(opts, descent.WithMaxIterations(maxIter))
			}
			if cmd.Flags().Changed("step") {
				opts = append(opts, descent.WithStepSize(stepSize))
			}
			if cmd.Flags().Changed("start") {
				x0, err := parsePoint(start)
				if err != nil {
					return err
				}
				opts = append(opts, descent.WithStartPoint(x0))
			}

			out := cmd.OutOrStdout()
			opts = append(opts,
				descent.WithLogger(a.logger),
				descent.WithOnIteration(func(rec descent.TraceRecord) error {
					_, err := fmt.Fprintln(out, rec)
					return err
				}),
				descent.WithOnReset(func(ev descent.ResetEvent) {
					fmt.Fprintf(out, "WARNING: %v not assigned in %s, starting from %s\n",
						ev.Missing, ev.StartPoint, ev.Replacement)
				}),
			)
			m, err := descent.New(opts...)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "Polynomial:", p)
			converged, _, err := m.Minimize(p)
			if err != nil {
				return err
			}

			s := m.Summary()
			fmt.Fprintf(out, "At termination: %s objective value = %.3f\n", s.Point, s.Objective)
			if converged {
				fmt.Fprintf(out, "Converged after %d iterations (gradient norm %.6f, %s)\n",
					s.Iterations, s.GradientNorm, s.Elapsed)
			} else {
				fmt.Fprintf(out, "Stopped at the iteration cap of %d (gradient norm %.6f, %s)\n",
					s.Iterations, s.GradientNorm, s.Elapsed)
			}

			return nil
		},
	}
	cmd.Flags().Float64Var(&tolerance, "tolerance", descent.DefaultTolerance, "stop when the gradient norm is at most this")
	cmd.Flags().IntVar(&maxIter, "max-iter", descent.DefaultMaxIterations, "maximum number of iterations")
	cmd.Flags().Float64Var(&stepSize, "step", descent.DefaultStepSize, "fixed step size")
	cmd.Flags().StringToStringVar(&start, "start", nil, "start point, e.g. x=1,y=2")

	return cmd
}
