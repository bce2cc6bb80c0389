// Package deconv recovers signals blurred by a known linear operator.
//
// The main entry point is [Deblur], which performs Tikhonov-regularised
// least squares one signal at a time:
//
//	minimise ‖A·x − d‖² + λ²‖x‖²   ⇔   (AᵗA + λ²I)·x = Aᵗd
//
// The normal system is symmetric positive definite for λ > 0 and is solved
// with the conjugate-gradient solver in package cg. Consecutive signals of an
// image are usually similar, so each solve starts from the previous solution.
//
// For periodic (circulant) blurs the same problem diagonalises under the DFT;
// [Spectral] computes that closed form with an FFT and serves as an
// independent reference for the iterative solution.
//
// Typical use:
//
//	a := deconv.Blur(220, 0.45, 25)
//	res, err := deconv.Deblur(ctx, a, columns, 1e-3)
//	if err != nil {
//		return err
//	}
//	_ = res.Rows
package deconv
