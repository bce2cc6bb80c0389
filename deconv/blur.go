package deconv

import (
	"fmt"

	"github.com/cwbudde/algo-optim/linalg"
)

// BlurMatrix returns the n×n three-point smoothing operator with 1−2l on the
// diagonal and l on both neighbouring diagonals. The first and last samples
// lose weight at the edges; see [BlurKernel] for the periodic variant.
func BlurMatrix(n int, l float64) linalg.Matrix {
	m := linalg.NewMatrix(n)
	for i := range n {
		m[i][i] = 1 - 2*l
		if i+1 < n {
			m[i][i+1] = l
			m[i+1][i] = l
		}
	}
	return m
}

// Blur returns BlurMatrix(n, l) applied p times, i.e. BlurMatrix(n, l)^p.
func Blur(n int, l float64, p int) linalg.Matrix {
	return BlurMatrix(n, l).Pow(p)
}

// BlurKernel returns the periodic three-point kernel of length n matching
// BlurMatrix: kernel[0] = 1−2l, kernel[1] = kernel[n−1] = l.
// Circulant(BlurKernel(n, l), n) differs from BlurMatrix(n, l) only in the
// two corner entries.
func BlurKernel(n int, l float64) []float64 {
	if n < 3 {
		panic(fmt.Sprintf("deconv: periodic blur kernel needs n >= 3, got %d", n))
	}
	k := make([]float64, n)
	k[0] = 1 - 2*l
	k[1] = l
	k[n-1] = l
	return k
}

// Circulant returns the n×n matrix of periodic convolution with kernel:
//
//	(C·x)[i] = Σ_k kernel[k]·x[(i − k) mod n]
//
// kernel may be shorter than n; missing taps are zero. It panics if the
// kernel is longer than n.
func Circulant(kernel []float64, n int) linalg.Matrix {
	if len(kernel) > n {
		panic(fmt.Sprintf("deconv: kernel length %d exceeds size %d", len(kernel), n))
	}
	m := linalg.NewMatrix(n)
	for c := range n {
		for k, v := range kernel {
			m[c][(c+k)%n] = v
		}
	}
	return m
}
