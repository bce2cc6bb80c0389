package deriv

import (
	"fmt"

	"github.com/cwbudde/algo-optim/linalg"
)

// Funcs adapts plain functions to the provider interfaces.
//
// ValueFunc and GradientFunc are required. NewtonFunc is optional; when it is
// nil but HessianFunc is set, Newton falls back to the closed-form 2×2
// inverse of the Hessian.
type Funcs struct {
	ValueFunc    func(x linalg.Vector) float64
	GradientFunc func(x linalg.Vector) linalg.Vector
	NewtonFunc   func(x linalg.Vector) (linalg.Vector, error)
	HessianFunc  func(x linalg.Vector) linalg.Matrix
}

// Value implements Objective.
func (f Funcs) Value(x linalg.Vector) float64 {
	return f.ValueFunc(x)
}

// Gradient implements Objective.
func (f Funcs) Gradient(x linalg.Vector) linalg.Vector {
	return f.GradientFunc(x)
}

// Newton implements Newtoner.
func (f Funcs) Newton(x linalg.Vector) (linalg.Vector, error) {
	switch {
	case f.NewtonFunc != nil:
		return f.NewtonFunc(x)
	case f.HessianFunc != nil:
		return NewtonFromHessian(f.HessianFunc(x), f.GradientFunc(x))
	default:
		return nil, fmt.Errorf("%w: no Newton or Hessian function", ErrNotProvided)
	}
}

// Hessian implements Hessianer. It panics when HessianFunc is nil; check
// HasHessian first.
func (f Funcs) Hessian(x linalg.Vector) linalg.Matrix {
	return f.HessianFunc(x)
}

// HasHessian reports whether a Hessian function was injected.
func (f Funcs) HasHessian() bool {
	return f.HessianFunc != nil
}
