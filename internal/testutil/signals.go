package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-optim/linalg"
)

// DeterministicVector returns a vector of uniform values in [-amplitude,
// amplitude] drawn from a fixed seed.
func DeterministicVector(seed int64, amplitude float64, n int) linalg.Vector {
	out := linalg.Zeros(n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// BarRow returns a row of length n that is zero except for a plateau of
// height level between from and to (exclusive), like a printed glyph stroke.
func BarRow(n, from, to int, level float64) linalg.Vector {
	out := linalg.Zeros(n)
	for i := max(from, 0); i < min(to, n); i++ {
		out[i] = level
	}
	return out
}

// SineRow returns a row sampled from a sine with the given period.
func SineRow(n int, period, amplitude float64) linalg.Vector {
	out := linalg.Zeros(n)
	step := 2 * math.Pi / period
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}
