// SPDX-License-Identifier: MIT

// Command polydescent parses, differentiates, evaluates and minimizes
// polynomials from the command line.
//
// Usage:
//
//	polydescent minimize "10*x^2 + -40*x + 40" --start x=1
//	polydescent diff "x^2 + y^2 + -4*x*y + 8" --var x
//	polydescent eval "x^2 + y^2" --at x=1,y=2
//	polydescent vars "x^2*z + y"
//
// Settings come from --config (YAML), POLYDESCENT_* environment variables
// and flags, in increasing order of precedence.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/polydescent/config"
	"github.com/katalvlaran/polydescent/logging"
	"github.com/katalvlaran/polydescent/vector"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	configPath string
	logLevel   string
	devLogs    bool

	cfg    config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds a fresh command tree.
func newRootCmd() *cobra.Command {
	a := &app{logger: logging.NewNop()}

	root := &cobra.Command{
		Use:           "polydescent",
		Short:         "Symbolic polynomial differentiation and steepest descent",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.devLogs, "dev", false, "human-readable development logs")

	root.AddCommand(
		newMinimizeCmd(a),
		newDiffCmd(a),
		newEvalCmd(a),
		newVarsCmd(a),
	)

	return root
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("dev") {
		cfg.Log.Development = a.devLogs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger

	return nil
}

// polynomialText returns the positional argument or the configured text.
func (a *app) polynomialText(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if a.cfg.Polynomial != "" {
		return a.cfg.Polynomial, nil
	}

	return "", fmt.Errorf("no polynomial given: pass it as an argument or set polynomial in the config")
}

// parsePoint converts flag pairs such as {"x": "1.5"} into a Vector.
func parsePoint(pairs map[string]string) (vector.Vector, error) {
	out := make(vector.Vector, len(pairs))
	for k, s := range pairs {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q", k, s)
		}
		out[k] = v
	}

	return out, nil
}
