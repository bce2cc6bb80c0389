package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-optim/deconv"
	"github.com/cwbudde/algo-optim/internal/imageio"
	"github.com/cwbudde/algo-optim/linalg"
	"github.com/cwbudde/algo-optim/optim/trace"
)

type deblurOptions struct {
	input       string
	outDir      string
	spread      float64
	power       int
	lambdas     []float64
	tolerance   float64
	maxIter     int
	parallelism int
}

func newDeblurCmd(a *app) *cobra.Command {
	var o deblurOptions

	cmd := &cobra.Command{
		Use:   "deblur",
		Short: "Reconstruct a blurred image for a sweep of regularisation weights",
		Long: "Reads a whitespace-separated matrix of gray levels, treats each column as a\n" +
			"signal blurred by the three-point operator raised to --power, and writes\n" +
			"original.png plus one lambda_<λ>.png per regularisation weight to --out.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeblur(cmd, a, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.input, "input", "", "text matrix of blurred gray levels")
	f.StringVar(&o.outDir, "out", "unblur", "output directory for PNG files")
	f.Float64Var(&o.spread, "spread", 0.45, "off-diagonal weight l of the blur operator")
	f.IntVar(&o.power, "power", 25, "number of times the blur operator is applied")
	f.Float64SliceVar(&o.lambdas, "lambdas", deconv.DefaultLambdas(), "regularisation weights")
	f.Float64Var(&o.tolerance, "tolerance", deconv.DefaultTolerance, "CG residual tolerance")
	f.IntVar(&o.maxIter, "max-iterations", 0, "CG iteration cap per signal; capped signals are reported, not fatal (0: none)")
	f.IntVar(&o.parallelism, "parallel", 0, "λ values solved at once (0: all)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runDeblur(cmd *cobra.Command, a *app, o deblurOptions) error {
	if o.power < 0 {
		return fmt.Errorf("--power must be >= 0, got %d", o.power)
	}
	if o.maxIter < 0 {
		return fmt.Errorf("--max-iterations must be >= 0, got %d", o.maxIter)
	}

	fh, err := os.Open(o.input)
	if err != nil {
		return err
	}
	rows, err := imageio.ReadMatrix(fh)
	_ = fh.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", o.input, err)
	}
	cols := imageio.Columns(rows)

	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return err
	}
	if err := writePNG(filepath.Join(o.outDir, "original.png"), cols); err != nil {
		return err
	}

	n := len(rows)
	a.logger.Info("blur operator", "size", n, "spread", o.spread, "power", o.power)
	blur := deconv.Blur(n, o.spread, o.power)

	tr := trace.New()
	out := cmd.OutOrStdout()
	return deconv.Sweep(cmd.Context(), blur, cols, o.lambdas, func(res deconv.Result) error {
		path := filepath.Join(o.outDir, fmt.Sprintf("lambda_%g.png", res.Lambda))
		if err := writePNG(path, res.Rows); err != nil {
			return err
		}
		matvecs := tr.Count(fmt.Sprintf("deblur/lambda=%g/matvec", res.Lambda))
		_, err := fmt.Fprintf(out, "λ=%g\tsignals=%d\tunconverged=%d\tcg iterations=%d\tmatvecs=%d\t%s\n",
			res.Lambda, len(res.Rows), len(res.Unconverged), res.TotalIterations(), matvecs, path)
		return err
	},
		deconv.WithTolerance(o.tolerance),
		deconv.WithMaxIterations(o.maxIter),
		deconv.WithParallelism(o.parallelism),
		deconv.WithScope(trace.NewScope(tr, "deblur")),
		deconv.WithLogger(a.logger),
	)
}

func writePNG(path string, cols []linalg.Vector) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := imageio.WriteGray(f, cols); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
