package linalg

import (
	"fmt"
	"strings"
)

// Matrix is a dense square matrix stored as a sequence of column vectors:
// m[c][r] is the entry in column c, row r.
type Matrix []Vector

// NewMatrix returns the n×n zero matrix.
func NewMatrix(n int) Matrix {
	m := make(Matrix, n)
	for c := range m {
		m[c] = Zeros(n)
	}
	return m
}

// FromRows builds a matrix from row-major data, which is how matrices are
// usually written down. Every row must have len(rows) entries.
func FromRows(rows ...[]float64) Matrix {
	n := len(rows)
	m := NewMatrix(n)
	for r, row := range rows {
		checkDim("row", len(row), n)
		for c, x := range row {
			m[c][r] = x
		}
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) Matrix {
	m := NewMatrix(n)
	for i := range n {
		m[i][i] = 1
	}
	return m
}

// Diagonal returns the square matrix with d on its diagonal.
func Diagonal(d ...float64) Matrix {
	m := NewMatrix(len(d))
	for i, x := range d {
		m[i][i] = x
	}
	return m
}

// Dim returns the side length of m.
func (m Matrix) Dim() int { return len(m) }

// At returns the entry in row r, column c.
func (m Matrix) At(r, c int) float64 { return m[c][r] }

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for c, col := range m {
		out[c] = col.Clone()
	}
	return out
}

// Mul returns the matrix product m·o. Column c of the result is m·o[c].
func (m Matrix) Mul(o Matrix) Matrix {
	checkDim("mul", len(m), len(o))
	out := make(Matrix, len(o))
	for c, col := range o {
		out[c] = m.MulVec(col)
	}
	return out
}

// MulVec returns m·x, the linear combination of m's columns weighted by x.
func (m Matrix) MulVec(x Vector) Vector {
	checkDim("mul vec", len(m), len(x))
	out := Zeros(len(m))
	for i, col := range m {
		out.AddScaledInPlace(x[i], col)
	}
	return out
}

// Add returns m + o.
func (m Matrix) Add(o Matrix) Matrix {
	checkDim("add", len(m), len(o))
	out := make(Matrix, len(m))
	for c := range m {
		out[c] = m[c].Add(o[c])
	}
	return out
}

// Sub returns m - o.
func (m Matrix) Sub(o Matrix) Matrix {
	checkDim("sub", len(m), len(o))
	out := make(Matrix, len(m))
	for c := range m {
		out[c] = m[c].Sub(o[c])
	}
	return out
}

// Scale returns s·m.
func (m Matrix) Scale(s float64) Matrix {
	out := make(Matrix, len(m))
	for c := range m {
		out[c] = m[c].Scale(s)
	}
	return out
}

// Transpose returns mᵗ.
func (m Matrix) Transpose() Matrix {
	n := len(m)
	out := NewMatrix(n)
	for c := range n {
		for r := range n {
			out[c][r] = m[r][c]
		}
	}
	return out
}

// Pow returns m raised to the n-th power by repeated squaring. Pow(0) is the
// identity. A negative exponent panics with ErrNegativePower.
func (m Matrix) Pow(n int) Matrix {
	if n < 0 {
		panic(fmt.Errorf("%w: %d", ErrNegativePower, n))
	}
	out := Identity(len(m))
	base := m
	for n > 0 {
		if n%2 == 1 {
			out = out.Mul(base)
		}
		n /= 2
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return out
}

// IsSymmetric reports whether m equals its transpose exactly. It stops at the
// first asymmetric pair.
func (m Matrix) IsSymmetric() bool {
	for c := range m {
		for r := c + 1; r < len(m); r++ {
			if m[c][r] != m[r][c] {
				return false
			}
		}
	}
	return true
}

// Equal reports exact elementwise equality.
func (m Matrix) Equal(o Matrix) bool {
	if len(m) != len(o) {
		return false
	}
	for c := range m {
		if !m[c].Equal(o[c]) {
			return false
		}
	}
	return true
}

// String formats m column by column.
func (m Matrix) String() string {
	parts := make([]string, len(m))
	for c, col := range m {
		parts[c] = col.String()
	}
	return "(" + strings.Join(parts, ",") + ")"
}
