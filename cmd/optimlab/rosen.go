package main

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-optim/experiment"
	"github.com/cwbudde/algo-optim/optim/trace"
)

type rosenOptions struct {
	config      string
	coefficient float64
	tolerance   float64
	maxSteps    int
	strategies  []string
	metrics     string
	printTrace  bool
}

func newRosenCmd(a *app) *cobra.Command {
	var o rosenOptions

	cmd := &cobra.Command{
		Use:   "rosen",
		Short: "Compare descent strategies on the Rosenbrock function",
		Long: "Runs every selected strategy from a common start point until the gradient norm\n" +
			"drops below the tolerance and prints iterations and evaluation counts per trial.\n\n" +
			"Strategies: " + strings.Join(experiment.Strategies(), ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRosen(cmd, a, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.config, "config", "", "YAML experiment file")
	f.Float64Var(&o.coefficient, "coefficient", 100, "Rosenbrock coefficient c")
	f.Float64Var(&o.tolerance, "tolerance", 1e-3, "stop once the gradient norm is at most this")
	f.IntVar(&o.maxSteps, "max-steps", 0, "step limit per trial (0: none)")
	f.StringSliceVar(&o.strategies, "strategies", nil, "strategies to run (default: all)")
	f.StringVar(&o.metrics, "metrics", "", "write tracer counts as a Prometheus text file")
	f.BoolVar(&o.printTrace, "trace", false, "print every tracer label after the table")
	return cmd
}

func runRosen(cmd *cobra.Command, a *app, o rosenOptions) error {
	cfg := experiment.DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = experiment.LoadConfig(o.config); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("coefficient") {
		cfg.Coefficient = o.coefficient
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = o.tolerance
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = o.maxSteps
	}
	if len(o.strategies) > 0 {
		cfg.Trials = cfg.Trials[:0:0]
		for _, s := range o.strategies {
			cfg.Trials = append(cfg.Trials, experiment.TrialConfig{Name: s, Strategy: s})
		}
	}

	suite, err := cfg.Suite()
	if err != nil {
		return err
	}

	tr := trace.New()
	reports, err := experiment.RunTrials(cmd.Context(), suite, tr, a.logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := experiment.WriteTable(out, reports); err != nil {
		return err
	}
	if o.printTrace {
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
		if err := tr.Print(out); err != nil {
			return err
		}
	}

	if o.metrics != "" {
		reg := prometheus.NewRegistry()
		if err := reg.Register(trace.NewCollector(tr, "optimlab")); err != nil {
			return fmt.Errorf("register collector: %w", err)
		}
		if err := prometheus.WriteToTextfile(o.metrics, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		a.logger.Info("metrics written", "path", o.metrics)
	}
	return nil
}
