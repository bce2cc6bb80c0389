package linalg

import (
	"errors"
	"fmt"
)

// Errors reported by linalg.
var (
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")
	ErrSingular          = errors.New("linalg: matrix is singular")
	ErrNegativePower     = errors.New("linalg: negative matrix power")
)

func checkDim(op string, a, b int) {
	if a != b {
		panic(fmt.Errorf("%w: %s of dimension %d and %d", ErrDimensionMismatch, op, a, b))
	}
}
