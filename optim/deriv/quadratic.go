package deriv

import (
	"fmt"

	"github.com/cwbudde/algo-optim/linalg"
)

// Quadratic is f(x) = ½·xᵗAx − Bᵗx for a symmetric A. Its gradient is Ax − B
// and its Hessian is the constant A, so Newton's method reaches the minimiser
// A⁻¹B in a single unit step.
type Quadratic struct {
	A linalg.Matrix
	B linalg.Vector
}

// Bowl returns f(x) = s·|x|² in n dimensions.
func Bowl(n int, s float64) Quadratic {
	return Quadratic{A: linalg.Identity(n).Scale(2 * s), B: linalg.Zeros(n)}
}

// Value implements Objective.
func (q Quadratic) Value(x linalg.Vector) float64 {
	return 0.5*x.Dot(q.A.MulVec(x)) - q.B.Dot(x)
}

// Gradient implements Objective.
func (q Quadratic) Gradient(x linalg.Vector) linalg.Vector {
	return q.A.MulVec(x).Sub(q.B)
}

// Hessian implements Hessianer.
func (q Quadratic) Hessian(linalg.Vector) linalg.Matrix {
	return q.A
}

// Newton implements Newtoner for two-dimensional problems.
func (q Quadratic) Newton(x linalg.Vector) (linalg.Vector, error) {
	if q.A.Dim() != 2 {
		return nil, fmt.Errorf("%w: closed-form Newton step needs dimension 2, got %d", ErrNotProvided, q.A.Dim())
	}
	return NewtonFromHessian(q.A, q.Gradient(x))
}
