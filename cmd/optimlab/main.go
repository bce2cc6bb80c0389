// Command optimlab compares descent strategies on the Rosenbrock function and
// deblurs images by Tikhonov-regularised conjugate gradients.
//
// Usage:
//
//	optimlab rosen [flags]
//	optimlab deblur --input FILE [flags]
//
// Examples:
//
//	optimlab rosen
//	optimlab rosen --strategies newton,polak-ribiere --tolerance 1e-8
//	optimlab rosen --config experiment.yaml --metrics optimlab.prom
//	optimlab deblur --input data/dollarblur.txt --out unblur
//	optimlab deblur --input blur.txt --lambdas 1e-2,1e-3 -v
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type app struct {
	verbose bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:           "optimlab",
		Short:         "Line-search descent and CG deconvolution experiments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every iteration")

	root.AddCommand(newRosenCmd(a), newDeblurCmd(a))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
