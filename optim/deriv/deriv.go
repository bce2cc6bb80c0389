// Package deriv supplies objective values, gradients and Newton directions
// to the descent engine.
//
// Providers are plain values. [Rosenbrock] implements the bivariate test
// objective in closed form, [Quadratic] a convex quadratic, and [Funcs]
// accepts injected functions so that the engine is not tied to one test
// problem.
package deriv

import (
	"errors"

	"github.com/cwbudde/algo-optim/linalg"
)

// Errors returned by derivative providers.
var (
	ErrSingularHessian = errors.New("deriv: singular Hessian")
	ErrNotProvided     = errors.New("deriv: derivative not provided")
)

// Objective evaluates a smooth function and its gradient.
type Objective interface {
	Value(x linalg.Vector) float64
	Gradient(x linalg.Vector) linalg.Vector
}

// Newtoner computes the Newton search direction -H⁻¹(x)·∇f(x).
type Newtoner interface {
	Newton(x linalg.Vector) (linalg.Vector, error)
}

// Hessianer evaluates the Hessian matrix at x.
type Hessianer interface {
	Hessian(x linalg.Vector) linalg.Matrix
}

// NewtonFromHessian computes -H⁻¹·g for a 2×2 Hessian with the closed-form
// inverse. A singular Hessian is reported as ErrSingularHessian.
func NewtonFromHessian(h linalg.Matrix, g linalg.Vector) (linalg.Vector, error) {
	inv, err := linalg.Inverse2(h)
	if err != nil {
		return nil, errors.Join(ErrSingularHessian, err)
	}
	return inv.MulVec(g).Neg(), nil
}
