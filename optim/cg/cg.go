// Package cg solves symmetric positive-definite linear systems A·x = b with
// the classical conjugate-gradient recurrence.
//
// Starting from x₀ with residual r₀ = A·x₀ − b and direction d₀ = −r₀, each
// iteration computes
//
//	α = (r·r) / (d·Ad)
//	x ← x + α·d
//	r ← r + α·Ad
//	β = (r_new·r_new) / (r_old·r_old)
//	d ← −r_new + β·d
//
// No restart or reorthogonalisation is performed. The caller's predicate
// decides when to stop; every call returns the full frame history so that
// convergence can be audited.
package cg

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-optim/linalg"
)

// Errors returned by Solve. Every error is returned together with the frames
// recorded before the failure.
var (
	ErrNotSymmetric        = errors.New("cg: matrix is not symmetric")
	ErrNotPositiveDefinite = errors.New("cg: matrix is not positive definite")
	ErrBreakdown           = errors.New("cg: breakdown, direction has no curvature")
	ErrNoConvergence       = errors.New("cg: iteration limit reached")
)

// Frame is the solver state after one iteration. Frame 0 holds the initial
// guess and its residual.
type Frame struct {
	Step     int
	Residual linalg.Vector
	Position linalg.Vector
}

// Predicate reports whether iteration should continue from frame f.
type Predicate func(f Frame) bool

// ResidualAbove continues while ‖r‖ > eps.
func ResidualAbove(eps float64) Predicate {
	return func(f Frame) bool {
		return f.Residual.Norm() > eps
	}
}

// Last returns the final frame of a history. It panics on an empty history,
// which Solve never returns.
func Last(frames []Frame) Frame {
	return frames[len(frames)-1]
}

// Solve runs CG on a·x = b from x0 while pred holds.
func Solve(a linalg.Matrix, b, x0 linalg.Vector, pred Predicate, opts ...Option) ([]Frame, error) {
	cfg := ApplyOptions(opts...)

	n := a.Dim()
	if b.Dim() != n || x0.Dim() != n {
		return nil, fmt.Errorf("cg: %w: matrix %d, rhs %d, guess %d",
			linalg.ErrDimensionMismatch, n, b.Dim(), x0.Dim())
	}
	if cfg.CheckSymmetry && !a.IsSymmetric() {
		return nil, ErrNotSymmetric
	}

	x := x0.Clone()
	r := a.MulVec(x).Sub(b)
	cfg.Scope.Inc("matvec")
	d := r.Neg()

	frames := []Frame{{Step: 0, Residual: r, Position: x}}
	for pred(frames[len(frames)-1]) {
		step := len(frames)
		if cfg.MaxIterations > 0 && step > cfg.MaxIterations {
			return frames, fmt.Errorf("%w: %d iterations, residual %g",
				ErrNoConvergence, cfg.MaxIterations, r.Norm())
		}

		ad := a.MulVec(d)
		cfg.Scope.Inc("matvec")

		rr := r.Dot(r)
		dad := d.Dot(ad)
		if err := checkCurvature(dad, d.Dot(d), cfg.BreakdownTolerance); err != nil {
			return frames, fmt.Errorf("%w at iteration %d", err, step)
		}

		alpha := rr / dad
		x = x.AddScaled(alpha, d)
		r = r.AddScaled(alpha, ad)

		beta := r.Dot(r) / rr
		d = r.Neg().AddScaled(beta, d)

		frames = append(frames, Frame{Step: step, Residual: r, Position: x})
	}

	cfg.Logger.Debug("cg solve finished",
		"trial", cfg.Scope.Trial(),
		"iterations", len(frames)-1,
		"residual", r.Norm())
	return frames, nil
}

// checkCurvature validates the CG denominator d·Ad relative to d·d.
func checkCurvature(dad, dd, tol float64) error {
	switch {
	case math.IsNaN(dad) || math.IsInf(dad, 0):
		return fmt.Errorf("%w: d·Ad = %g", ErrBreakdown, dad)
	case dad < -tol*dd:
		return fmt.Errorf("%w: d·Ad = %g", ErrNotPositiveDefinite, dad)
	case dad <= tol*dd:
		return fmt.Errorf("%w: d·Ad = %g, d·d = %g", ErrBreakdown, dad, dd)
	}
	return nil
}
