package deconv

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-optim/linalg"
	"github.com/cwbudde/algo-optim/optim/cg"
	"github.com/cwbudde/algo-optim/optim/deriv"
	"github.com/cwbudde/algo-optim/optim/trace"
)

// Deconvolution errors.
var (
	ErrEmptyInput     = errors.New("deconv: empty input")
	ErrInvalidLambda  = errors.New("deconv: regularisation weight must be finite and non-negative")
	ErrSize           = errors.New("deconv: size must be a power of two")
	ErrKernelTooLong  = errors.New("deconv: kernel longer than signal")
	ErrDivisionByZero = errors.New("deconv: division by zero in spectral solve")
)

// Tikhonov is the regularised least-squares problem for blur A and weight λ.
type Tikhonov struct {
	A      linalg.Matrix
	Lambda float64
}

// NormalMatrix returns AᵗA + λ²I.
func (t Tikhonov) NormalMatrix() linalg.Matrix {
	n := t.A.Dim()
	return t.A.Transpose().Mul(t.A).Add(linalg.Identity(n).Scale(t.Lambda * t.Lambda))
}

// RHS returns Aᵗd.
func (t Tikhonov) RHS(d linalg.Vector) linalg.Vector {
	return t.A.Transpose().MulVec(d)
}

// Quadratic returns the objective ‖A·x − d‖² + λ²‖x‖², minus the constant
// ‖d‖², as a quadratic that the descent optimizers can minimise directly.
func (t Tikhonov) Quadratic(d linalg.Vector) deriv.Quadratic {
	return deriv.Quadratic{
		A: t.NormalMatrix().Scale(2),
		B: t.RHS(d).Scale(2),
	}
}

// Result holds the reconstruction of every input signal and the CG
// iteration count each one needed.
type Result struct {
	Lambda     float64
	Rows       []linalg.Vector
	Iterations []int

	// Unconverged lists the signals whose solve hit Config.MaxIterations.
	// Their rows hold the last CG iterate.
	Unconverged []int
}

// Converged reports whether every signal met the tolerance.
func (r Result) Converged() bool {
	return len(r.Unconverged) == 0
}

// TotalIterations sums Iterations.
func (r Result) TotalIterations() int {
	total := 0
	for _, n := range r.Iterations {
		total += n
	}
	return total
}

// Deblur reconstructs every signal in rows from its blurred version under a,
// regularised by lambda. Signals are solved in order; the first solve starts
// from the blurred signal itself and every later one from the previous
// reconstruction.
//
// A solve that reaches Config.MaxIterations is not an error: its last iterate
// is kept, the signal is listed in Result.Unconverged and counted as an
// "unconverged" event. On error the result holds the signals solved so far.
func Deblur(ctx context.Context, a linalg.Matrix, rows []linalg.Vector, lambda float64, opts ...Option) (Result, error) {
	cfg := ApplyOptions(opts...)
	res := Result{Lambda: lambda}

	if len(rows) == 0 {
		return res, ErrEmptyInput
	}
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda < 0 {
		return res, fmt.Errorf("%w: λ = %g", ErrInvalidLambda, lambda)
	}
	n := a.Dim()
	for i, d := range rows {
		if d.Dim() != n {
			return res, fmt.Errorf("deconv: %w: signal %d has %d samples, operator %d",
				linalg.ErrDimensionMismatch, i, d.Dim(), n)
		}
	}

	t := Tikhonov{A: a, Lambda: lambda}
	normal := t.NormalMatrix()
	pred := cg.ResidualAbove(cfg.Tolerance)
	cgOpts := []cg.Option{
		cg.WithScope(cfg.Scope),
		cg.WithMaxIterations(cfg.MaxIterations),
		cg.WithLogger(cfg.Logger),
		cg.WithoutSymmetryCheck(), // AᵗA + λ²I is symmetric by construction
	}

	res.Rows = make([]linalg.Vector, 0, len(rows))
	res.Iterations = make([]int, 0, len(rows))

	start := rows[0]
	for i, d := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		frames, err := cg.Solve(normal, t.RHS(d), start, pred, cgOpts...)
		switch {
		case errors.Is(err, cg.ErrNoConvergence):
			res.Unconverged = append(res.Unconverged, i)
			cfg.Scope.Inc("unconverged")
			cfg.Logger.Warn("signal not converged", "signal", i, "lambda", lambda,
				"iterations", len(frames)-1, "residual", cg.Last(frames).Residual.Norm())
		case err != nil:
			return res, fmt.Errorf("deconv: signal %d at λ = %g: %w", i, lambda, err)
		}
		cfg.Scope.Inc("signal")

		x := cg.Last(frames).Position
		res.Rows = append(res.Rows, x)
		res.Iterations = append(res.Iterations, len(frames)-1)
		start = x

		cfg.Logger.Debug("signal deblurred", "signal", i, "lambda", lambda, "iterations", len(frames)-1)
	}

	cfg.Logger.Info("deblur finished",
		"lambda", lambda,
		"signals", len(res.Rows),
		"unconverged", len(res.Unconverged),
		"iterations", res.TotalIterations())
	return res, nil
}

// DefaultLambdas returns the sweep 1, 0.1, …, 1e-6.
func DefaultLambdas() []float64 {
	return []float64{1, 1e-1, 1e-2, 1e-3, 1e-4, 1e-5, 1e-6}
}

// Sweep runs Deblur for every λ in lambdas and hands each result to fn in
// the order of lambdas. The λ values are solved concurrently, bounded by
// Config.Parallelism; fn itself is never called concurrently.
//
// Each λ is traced on its own sub-scope "lambda=<λ>" below Config.Scope and
// merged back once all solves have finished.
func Sweep(ctx context.Context, a linalg.Matrix, rows []linalg.Vector, lambdas []float64,
	fn func(Result) error, opts ...Option,
) error {
	cfg := ApplyOptions(opts...)
	if len(lambdas) == 0 {
		return ErrEmptyInput
	}

	results := make([]Result, len(lambdas))
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Parallelism > 0 {
		g.SetLimit(cfg.Parallelism)
	}

	subs := make([]trace.Scope, len(lambdas))
	for i, lambda := range lambdas {
		subs[i] = cfg.Scope.Sub(fmt.Sprintf("lambda=%g", lambda))
		lambdaOpts := append(slices.Clone(opts), WithScope(subs[i]))

		g.Go(func() error {
			res, err := Deblur(gctx, a, rows, lambda, lambdaOpts...)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	err := g.Wait()
	for _, sub := range subs {
		cfg.Scope.MergeSub(sub)
	}
	if err != nil {
		return err
	}

	for _, res := range results {
		if err := fn(res); err != nil {
			return err
		}
	}
	return nil
}
