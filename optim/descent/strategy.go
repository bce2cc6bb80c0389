package descent

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-optim/linalg"
	"github.com/cwbudde/algo-optim/optim/cg"
	"github.com/cwbudde/algo-optim/optim/deriv"
	"github.com/cwbudde/algo-optim/optim/trace"
)

// Strategy produces a search direction from the current frame. Strategies
// may record events on sc.
type Strategy interface {
	Direction(f Frame, sc trace.Scope) (linalg.Vector, error)
}

// Resetter is implemented by stateful strategies. Optimizer.Run calls Reset
// before the first iteration.
type Resetter interface {
	Reset()
}

// DirectionFunc adapts a pure function of position to a Strategy.
type DirectionFunc func(x linalg.Vector) (linalg.Vector, error)

// Direction implements Strategy.
func (fn DirectionFunc) Direction(f Frame, _ trace.Scope) (linalg.Vector, error) {
	return fn(f.Position)
}

// SteepestDescent chooses d = −∇f(x).
type SteepestDescent struct{}

// Direction implements Strategy.
func (SteepestDescent) Direction(f Frame, _ trace.Scope) (linalg.Vector, error) {
	return f.Gradient.Neg(), nil
}

// Newton chooses d = −H⁻¹(x)·∇f(x) from the provider. Each call counts one
// "newton" event.
type Newton struct {
	Provider deriv.Newtoner
}

// Direction implements Strategy.
func (n Newton) Direction(f Frame, sc trace.Scope) (linalg.Vector, error) {
	sc.Inc("newton")
	return n.Provider.Newton(f.Position)
}

// NewtonCG approximates the Newton direction by solving H·d = −∇f with the
// CG solver instead of inverting H. The sub-solve is traced under
// "<trial>/cg" and merged into the run's tracer when it returns.
//
// CG stops early when it meets negative curvature: the direction built so
// far is used, or −∇f if that happens on the first CG iteration. Each such
// truncation counts one "truncate" event.
type NewtonCG struct {
	Provider deriv.Hessianer

	// Tolerance is the relative residual ‖r‖ ≤ Tolerance·‖∇f‖ at which CG
	// stops. Zero selects 1e-6.
	Tolerance float64

	// MaxIterations caps each CG solve. Zero selects the dimension.
	MaxIterations int
}

// Direction implements Strategy.
func (n NewtonCG) Direction(f Frame, sc trace.Scope) (linalg.Vector, error) {
	h := n.Provider.Hessian(f.Position)
	sc.Inc("hessian")

	tol := n.Tolerance
	if tol <= 0 {
		tol = 1e-6
	}
	maxIter := n.MaxIterations
	if maxIter <= 0 {
		maxIter = h.Dim()
	}

	sub := sc.Sub("cg")
	frames, err := cg.Solve(h, f.Gradient.Neg(), linalg.Zeros(h.Dim()),
		cg.ResidualAbove(tol*f.Gradient.Norm()),
		cg.WithScope(sub), cg.WithMaxIterations(maxIter))
	sc.MergeSub(sub)

	switch {
	case err == nil, errors.Is(err, cg.ErrNoConvergence):
		return cg.Last(frames).Position, nil
	case errors.Is(err, cg.ErrNotPositiveDefinite), errors.Is(err, cg.ErrBreakdown):
		sc.Inc("truncate")
		if len(frames) == 1 {
			return f.Gradient.Neg(), nil
		}
		return cg.Last(frames).Position, nil
	default:
		return nil, fmt.Errorf("newton-cg: %w", err)
	}
}
