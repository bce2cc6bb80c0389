package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-optim/linalg"
)

// RequireVectorNearlyEqual fails t if got and want differ in dimension or if
// any element pair exceeds eps (absolute tolerance).
func RequireVectorNearlyEqual(t testing.TB, got, want linalg.Vector, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dimension mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, v linalg.Vector) {
	t.Helper()
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatalf("index %d: non-finite value %v", i, x)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two vectors.
// Returns an error if the dimensions differ.
func MaxAbsDiff(a, b linalg.Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dimension mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
