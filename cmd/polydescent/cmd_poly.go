// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/polydescent/poly"
)

func newDiffCmd(a *app) *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:   "diff [polynomial]",
		Short: "Print partial derivatives",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parse(args)
			if err != nil {
				return err
			}
			if len(vars) == 0 {
				vars = p.FreeVariables()
			}
			for _, v := range vars {
				fmt.Fprintf(cmd.OutOrStdout(), "d/d%s: %s\n", v, p.Differentiate(v))
			}

			return nil
		},
	}
	cmd.Flags().StringSliceVar(&vars, "var", nil, "variables to differentiate by (default: all free variables)")

	return cmd
}

func newEvalCmd(a *app) *cobra.Command {
	var at map[string]string

	cmd := &cobra.Command{
		Use:   "eval [polynomial]",
		Short: "Evaluate a polynomial at a point",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parse(args)
			if err != nil {
				return err
			}
			pt, err := parsePoint(at)
			if err != nil {
				return err
			}
			v, err := p.Evaluate(pt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', -1, 64))

			return nil
		},
	}
	cmd.Flags().StringToStringVar(&at, "at", nil, "point, e.g. x=1,y=2")

	return cmd
}

func newVarsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "vars [polynomial]",
		Short: "List free variables",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parse(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.FreeVariables())

			return nil
		},
	}
}

// parse reads the polynomial from args or the config and echoes its
// normalized form at debug level.
func (a *app) parse(args []string) (poly.Polynomial, error) {
	text, err := a.polynomialText(args)
	if err != nil {
		return poly.Polynomial{}, err
	}
	p, err := poly.Parse(text)
	if err != nil {
		return poly.Polynomial{}, err
	}
	a.logger.Sugar().Debugw("parsed polynomial", "input", text, "normalized", p.String())

	return p, nil
}
