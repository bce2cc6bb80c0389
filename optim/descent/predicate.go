package descent

// Predicate reports whether the optimizer should take another step from f.
// It is evaluated before every step, including the first.
type Predicate func(f Frame) bool

// GradientNormAbove continues while ‖∇f‖ > eps.
func GradientNormAbove(eps float64) Predicate {
	return func(f Frame) bool {
		return f.Gradient.Norm() > eps
	}
}

// MaxSteps continues while fewer than n steps have been taken.
func MaxSteps(n int) Predicate {
	return func(f Frame) bool {
		return f.Step < n
	}
}

// All continues while every predicate continues.
func All(preds ...Predicate) Predicate {
	return func(f Frame) bool {
		for _, p := range preds {
			if !p(f) {
				return false
			}
		}
		return true
	}
}

// Any continues while at least one predicate continues.
func Any(preds ...Predicate) Predicate {
	return func(f Frame) bool {
		for _, p := range preds {
			if p(f) {
				return true
			}
		}
		return false
	}
}
