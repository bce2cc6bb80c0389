package linalg

import "fmt"

// Inverse2 returns the inverse of a 2×2 matrix using the determinant formula
// 1/(ad−bc)·[[d, −b], [−c, a]].
//
// A zero determinant, or one so small that the scaled entries are no longer
// finite, is reported as ErrSingular rather than returned as Inf/NaN entries.
func Inverse2(m Matrix) (Matrix, error) {
	checkDim("inverse", len(m), 2)
	a, b := m.At(0, 0), m.At(0, 1)
	c, d := m.At(1, 0), m.At(1, 1)

	det := a*d - b*c
	if det == 0 {
		return nil, fmt.Errorf("%w: determinant is zero", ErrSingular)
	}
	scale := 1 / det

	inv := FromRows(
		[]float64{scale * d, -scale * b},
		[]float64{-scale * c, scale * a},
	)
	for _, col := range inv {
		if !col.IsFinite() {
			return nil, fmt.Errorf("%w: determinant %g", ErrSingular, det)
		}
	}
	return inv, nil
}
