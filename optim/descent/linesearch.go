package descent

import (
	"fmt"

	"github.com/cwbudde/algo-optim/linalg"
	"github.com/cwbudde/algo-optim/optim/deriv"
	"github.com/cwbudde/algo-optim/optim/trace"
)

// LineSearch finds a step length α along d from x that satisfies the
// sufficient-decrease condition
//
//	f(x + α·d) ≤ f(x) + α·θ·(∇f(x)·d)
//
// starting at α₀ and contracting α ← α·ρ after each failure. fx and g are
// f(x) and ∇f(x). It returns α and f(x + α·d).
//
// Each objective evaluation is counted as "objective" and each contraction
// as "backtrack" on sc. A trial value that is NaN or infinite counts as a
// failed trial.
func LineSearch(obj deriv.Objective, cfg LineSearchConfig, x linalg.Vector, fx float64, g, d linalg.Vector, sc trace.Scope) (float64, float64, error) {
	slope := g.Dot(d)
	if !(slope < 0) {
		return 0, fx, fmt.Errorf("%w: ∇f·d = %g", ErrNotDescentDirection, slope)
	}
	threshold := cfg.StepThresholdCoefficient * slope

	alpha := cfg.InitialStepLength
	for backtracks := 0; ; backtracks++ {
		next := obj.Value(x.AddScaled(alpha, d))
		sc.Inc("objective")
		if next <= fx+alpha*threshold {
			return alpha, next, nil
		}

		if cfg.MaxBacktracks > 0 && backtracks >= cfg.MaxBacktracks {
			return 0, fx, fmt.Errorf("%w: %d contractions, last α = %g", ErrLineSearchExhausted, backtracks, alpha)
		}
		alpha *= cfg.StepContractionFactor
		sc.Inc("backtrack")
		if alpha == 0 {
			return 0, fx, fmt.Errorf("%w after %d contractions", ErrStepUnderflow, backtracks+1)
		}
	}
}
