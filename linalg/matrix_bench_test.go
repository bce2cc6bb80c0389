package linalg_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/cwbudde/algo-optim/linalg"
)

var benchSizes = []int{16, 64, 220}

func BenchmarkMatrixMul(b *testing.B) {
	for _, n := range benchSizes {
		rng := rand.New(rand.NewPCG(uint64(n), 1))
		x := randomMatrix(rng, n)
		y := randomMatrix(rng, n)

		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = x.Mul(y)
			}
		})
	}
}

func BenchmarkMatrixMulVec(b *testing.B) {
	for _, n := range benchSizes {
		rng := rand.New(rand.NewPCG(uint64(n), 2))
		m := randomMatrix(rng, n)
		v := randomVector(rng, n)

		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = m.MulVec(v)
			}
		})
	}
}

// Benchmark the blur-operator power used by the deblur command.
func BenchmarkMatrixPow(b *testing.B) {
	for _, n := range benchSizes {
		m := linalg.NewMatrix(n)
		for i := range n {
			m[i][i] = 0.1
			if i+1 < n {
				m[i][i+1] = 0.45
				m[i+1][i] = 0.45
			}
		}

		b.Run(fmt.Sprintf("n=%d_p=25", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = m.Pow(25)
			}
		})
	}
}

func BenchmarkMatrixIsSymmetric(b *testing.B) {
	for _, n := range benchSizes {
		rng := rand.New(rand.NewPCG(uint64(n), 3))
		m := randomMatrix(rng, n)
		s := m.Add(m.Transpose())

		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = s.IsSymmetric()
			}
		})
	}
}
