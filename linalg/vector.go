package linalg

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Vector is a point, gradient or direction in N-dimensional space.
//
// Vectors have value semantics: every arithmetic method returns a freshly
// allocated result and leaves the receiver and arguments untouched.
type Vector []float64

// NewVector returns a vector holding a copy of values.
func NewVector(values ...float64) Vector {
	v := make(Vector, len(values))
	copy(v, values)
	return v
}

// Zeros returns the zero vector of dimension n.
func Zeros(n int) Vector {
	return make(Vector, n)
}

// Dim returns the dimension of v.
func (v Vector) Dim() int { return len(v) }

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	return NewVector(v...)
}

// Add returns v + w.
func (v Vector) Add(w Vector) Vector {
	checkDim("add", len(v), len(w))
	out := make(Vector, len(v))
	floats.AddTo(out, v, w)
	return out
}

// Sub returns v - w.
func (v Vector) Sub(w Vector) Vector {
	checkDim("sub", len(v), len(w))
	out := make(Vector, len(v))
	floats.SubTo(out, v, w)
	return out
}

// Scale returns c·v.
func (v Vector) Scale(c float64) Vector {
	out := make(Vector, len(v))
	floats.ScaleTo(out, c, v)
	return out
}

// Neg returns -v.
func (v Vector) Neg() Vector {
	return v.Scale(-1)
}

// AddScaled returns v + alpha·w.
func (v Vector) AddScaled(alpha float64, w Vector) Vector {
	checkDim("add scaled", len(v), len(w))
	out := make(Vector, len(v))
	floats.AddScaledTo(out, v, alpha, w)
	return out
}

// AddScaledInPlace accumulates alpha·w into v. It is the only mutating
// operation on Vector and is meant for loop accumulators.
func (v Vector) AddScaledInPlace(alpha float64, w Vector) {
	checkDim("add scaled", len(v), len(w))
	floats.AddScaled(v, alpha, w)
}

// Dot returns Σ v[i]·w[i].
func (v Vector) Dot(w Vector) float64 {
	checkDim("dot", len(v), len(w))
	return floats.Dot(v, w)
}

// Norm returns the Euclidean norm, the square root of v·v.
func (v Vector) Norm() float64 {
	return math.Sqrt(floats.Dot(v, v))
}

// Equal reports exact elementwise equality.
func (v Vector) Equal(w Vector) bool {
	return len(v) == len(w) && floats.Equal(v, w)
}

// NearlyEqual reports whether every element pair differs by at most tol.
func (v Vector) NearlyEqual(w Vector, tol float64) bool {
	return len(v) == len(w) && floats.EqualApprox(v, w, tol)
}

// IsZero reports whether every element is exactly zero.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// IsFinite reports whether no element is NaN or infinite.
func (v Vector) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// String formats v as "(x0, x1, ...)".
func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, x := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	sb.WriteByte(')')
	return sb.String()
}
