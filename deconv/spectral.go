package deconv

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// Spectral solves the Tikhonov problem for the circulant blur
// Circulant(kernel, len(row)) in closed form:
//
//	X = conj(H)·Y / (|H|² + λ²)
//
// where H and Y are the DFTs of the zero-padded kernel and of row. The
// length of row must be a power of two.
func Spectral(row, kernel []float64, lambda float64) ([]float64, error) {
	n := len(row)
	if n == 0 || len(kernel) == 0 {
		return nil, ErrEmptyInput
	}
	if len(kernel) > n {
		return nil, fmt.Errorf("%w: kernel %d, signal %d", ErrKernelTooLong, len(kernel), n)
	}
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda < 0 {
		return nil, fmt.Errorf("%w: λ = %g", ErrInvalidLambda, lambda)
	}

	plan, err := newPlan(n)
	if err != nil {
		return nil, err
	}

	kernelFreq, err := forward(plan, kernel, n)
	if err != nil {
		return nil, err
	}
	rowFreq, err := forward(plan, row, n)
	if err != nil {
		return nil, err
	}

	power := make([]float64, n)
	re, im := split(kernelFreq)
	vecmath.Power(power, re, im)

	// Regularized division: Y * conj(H) / (|H|^2 + λ^2)
	reg := lambda * lambda
	resultFreq := make([]complex128, n)
	for i := range resultFreq {
		denom := power[i] + reg
		if denom == 0 {
			return nil, fmt.Errorf("%w: at frequency bin %d", ErrDivisionByZero, i)
		}
		hConj := complex(real(kernelFreq[i]), -imag(kernelFreq[i]))
		resultFreq[i] = rowFreq[i] * hConj / complex(denom, 0)
	}

	resultTime := make([]complex128, n)
	if err := plan.Inverse(resultTime, resultFreq); err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(resultTime[i])
	}
	return out, nil
}

// SpectralCondition returns max|H| / min|H| for the DFT H of kernel padded to
// n, the 2-norm condition number of Circulant(kernel, n). It is +Inf when
// the kernel has a spectral zero.
func SpectralCondition(kernel []float64, n int) (float64, error) {
	if len(kernel) == 0 {
		return 0, ErrEmptyInput
	}
	if len(kernel) > n {
		return 0, fmt.Errorf("%w: kernel %d, size %d", ErrKernelTooLong, len(kernel), n)
	}

	plan, err := newPlan(n)
	if err != nil {
		return 0, err
	}
	freq, err := forward(plan, kernel, n)
	if err != nil {
		return 0, err
	}

	mag := make([]float64, n)
	re, im := split(freq)
	vecmath.Magnitude(mag, re, im)

	lo, hi := mag[0], mag[0]
	for _, m := range mag[1:] {
		lo = min(lo, m)
		hi = max(hi, m)
	}
	if lo == 0 {
		return math.Inf(1), nil
	}
	return hi / lo, nil
}

func newPlan(n int) (*algofft.Plan[complex128], error) {
	if n <= 0 || bits.OnesCount(uint(n)) != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrSize, n)
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("deconv: failed to create FFT plan: %w", err)
	}
	return plan, nil
}

// forward zero-pads x to n samples and returns its DFT.
func forward(plan *algofft.Plan[complex128], x []float64, n int) ([]complex128, error) {
	padded := make([]complex128, n)
	for i, v := range x {
		padded[i] = complex(v, 0)
	}
	freq := make([]complex128, n)
	if err := plan.Forward(freq, padded); err != nil {
		return nil, err
	}
	return freq, nil
}

func split(c []complex128) (re, im []float64) {
	re = make([]float64, len(c))
	im = make([]float64, len(c))
	for i, v := range c {
		re[i] = real(v)
		im[i] = imag(v)
	}
	return re, im
}
