// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tcsp/config"
)

// app is the state shared by all commands of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg    config.Config
	logger *slog.Logger

	// persistent flag values
	configPath  string
	logLevel    string
	logFormat   string
	output      string
	metricsFile string
}

// run executes one command line and returns the process exit code.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(context.Background())
	if err != nil {
		var ee *ExitError
		if !errors.As(err, &ee) || !ee.Silent {
			fmt.Fprintf(errOut, "tcsp: %v\n", err)
		}
	}
	if a.metricsFile != "" {
		if werr := prometheus.WriteToTextfile(a.metricsFile, prometheus.DefaultGatherer); werr != nil {
			fmt.Fprintf(errOut, "tcsp: write metrics: %v\n", werr)
		}
	}

	return exitCodeOf(err)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "tcsp",
		Short:         "Solve Temporal Constraint Satisfaction Problems",
		Long:          "tcsp decides Simple Temporal Problems by Floyd–Warshall tightening and enumerates\nthe consistent scenarios of a TCSP by backtracking over interval choices.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (YAML or JSON)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	pf.StringVarP(&a.output, "output", "o", "", "output format: table, matrix or json")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(
		newSolveCmd(a),
		newSTPCmd(a),
		newHeuristicCmd(a),
		newVerifyCmd(a),
		newGenerateCmd(a),
		newRunsCmd(a),
	)

	return root
}

// setup loads the configuration and applies the persistent flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return usageErr(err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("output") {
		cfg.Output.Format = a.output
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.Enabled = a.metricsFile != ""
		cfg.Metrics.Path = a.metricsFile
	}
	if err = cfg.Validate(); err != nil {
		return usageErr(fmt.Errorf("invalid flags: %w", err))
	}
	if cfg.Metrics.Enabled {
		a.metricsFile = cfg.Metrics.Path
	}

	a.cfg = cfg
	a.logger = cfg.Log.NewLogger(a.errOut)
	a.logger.Debug("config loaded",
		slog.String("path", a.configPath),
		slog.String("order", cfg.Search.Order),
		slog.String("output", cfg.Output.Format),
	)

	return nil
}

// usageErr marks err as a malformed-input / usage failure.
func usageErr(err error) error {
	return &ExitError{Code: exitError, Wrapped: err}
}
