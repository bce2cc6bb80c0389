// Package linalg provides the small dense vector and matrix types used by the
// optimizers and solvers in this module.
//
// The dimension of a [Vector] or [Matrix] is fixed when it is created and is
// checked at runtime: combining operands of different dimensions is a
// programming error and panics with [ErrDimensionMismatch].
//
// # Vectors
//
// Arithmetic returns new values and never aliases its operands:
//
//	u := linalg.NewVector(1, 2)
//	v := linalg.NewVector(3, 4)
//	w := u.Add(v).Scale(0.5) // (2, 3); u and v are unchanged
//
// Loop accumulators may use the explicitly in-place [Vector.AddScaledInPlace].
//
// # Matrices
//
// A [Matrix] is stored column-major: m[c][r] addresses column c, row r.
//
//	a := linalg.Identity(3).Scale(2)
//	b := a.Pow(3)      // 8·I by repeated squaring
//	y := b.MulVec(x)   // matrix-vector product
//
// Equality and symmetry tests are exact. Callers that need a tolerance should
// compare with [Vector.NearlyEqual] or wrap the primitives.
package linalg
