package descent

import (
	"github.com/cwbudde/algo-optim/linalg"
	"github.com/cwbudde/algo-optim/optim/trace"
)

// BetaRule selects the momentum coefficient of NonlinearCG.
type BetaRule int

const (
	// BetaFletcherReeves uses β = (∇f_k·∇f_k) / (∇f_{k−1}·∇f_{k−1}).
	BetaFletcherReeves BetaRule = iota

	// BetaPolakRibiere uses β = max(0, ∇f_k·(∇f_k − ∇f_{k−1})) / (∇f_{k−1}·∇f_{k−1}).
	BetaPolakRibiere
)

// String returns the rule name.
func (b BetaRule) String() string {
	switch b {
	case BetaFletcherReeves:
		return "fletcher-reeves"
	case BetaPolakRibiere:
		return "polak-ribiere"
	default:
		return "unknown"
	}
}

// NonlinearCG builds d_k = −∇f_k + β·d_{k−1}. It remembers the previous
// gradient and direction between calls, so one value must serve one run at a
// time; Optimizer.Run resets it.
//
// When the combined direction is not a descent direction (∇f_k·d_k ≥ 0) it
// is replaced by −∇f_k and a "reset" event is recorded.
type NonlinearCG struct {
	Beta BetaRule

	prevGrad linalg.Vector
	prevDir  linalg.Vector
}

// Reset forgets the previous iteration.
func (s *NonlinearCG) Reset() {
	s.prevGrad = nil
	s.prevDir = nil
}

// Direction implements Strategy.
func (s *NonlinearCG) Direction(f Frame, sc trace.Scope) (linalg.Vector, error) {
	g := f.Gradient
	d := g.Neg()

	if s.prevDir != nil && s.prevDir.Dim() == g.Dim() {
		d = d.AddScaled(s.beta(g), s.prevDir)
		if g.Dot(d) >= 0 {
			d = g.Neg()
			sc.Inc("reset")
		}
	}

	s.prevGrad = g.Clone()
	s.prevDir = d.Clone()
	return d, nil
}

func (s *NonlinearCG) beta(g linalg.Vector) float64 {
	denom := s.prevGrad.Dot(s.prevGrad)
	if denom == 0 {
		return 0
	}
	switch s.Beta {
	case BetaPolakRibiere:
		return max(0, g.Dot(g.Sub(s.prevGrad))/denom)
	default:
		return g.Dot(g) / denom
	}
}
