package deriv

import "github.com/cwbudde/algo-optim/linalg"

// Rosenbrock is the bivariate objective
//
//	f(x) = c·(x1 − x0²)² + (1 − x0)²
//
// with its global minimum f(1, 1) = 0. Coefficient c = 100 gives the classic
// banana valley.
type Rosenbrock struct {
	Coefficient float64
}

// Value returns f(x).
func (r Rosenbrock) Value(x linalg.Vector) float64 {
	t0 := x[1] - x[0]*x[0]
	t1 := 1 - x[0]
	return r.Coefficient*t0*t0 + t1*t1
}

// Gradient returns ∇f(x) = (−4c·x0·(x1−x0²) − 2(1−x0), 2c·(x1−x0²)).
func (r Rosenbrock) Gradient(x linalg.Vector) linalg.Vector {
	c := r.Coefficient
	t0 := x[1] - x[0]*x[0]
	t1 := 1 - x[0]
	return linalg.NewVector(
		-4*c*x[0]*t0-2*t1,
		2*c*t0,
	)
}

// Hessian returns the analytic second derivative
//
//	[ 12c·x0² − 4c·x1 + 2   −4c·x0 ]
//	[ −4c·x0                 2c     ]
func (r Rosenbrock) Hessian(x linalg.Vector) linalg.Matrix {
	c := r.Coefficient
	off := -4 * c * x[0]
	return linalg.FromRows(
		[]float64{12*c*x[0]*x[0] - 4*c*x[1] + 2, off},
		[]float64{off, 2 * c},
	)
}

// Newton returns −H⁻¹(x)·∇f(x).
func (r Rosenbrock) Newton(x linalg.Vector) (linalg.Vector, error) {
	return NewtonFromHessian(r.Hessian(x), r.Gradient(x))
}
