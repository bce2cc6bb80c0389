package descent

import "fmt"

// LineSearchConfig configures the backtracking line search.
type LineSearchConfig struct {
	// InitialStepLength is the first trial step α₀ (> 0).
	InitialStepLength float64 `json:"initial_step_length" yaml:"initial_step_length"`

	// StepContractionFactor ρ ∈ (0, 1) shrinks α after a failed trial.
	StepContractionFactor float64 `json:"step_contraction_factor" yaml:"step_contraction_factor"`

	// StepThresholdCoefficient θ ∈ (0, 1) scales the sufficient-decrease
	// condition f(x+αd) ≤ f(x) + αθ·∇f(x)·d.
	StepThresholdCoefficient float64 `json:"step_threshold_coefficient" yaml:"step_threshold_coefficient"`

	// MaxBacktracks caps the contractions per line search. Zero means no cap;
	// termination then relies on d being a descent direction.
	MaxBacktracks int `json:"max_backtracks" yaml:"max_backtracks"`
}

// DefaultLineSearchConfig returns α₀ = 1, ρ = 0.5, θ = 1e-4 with no cap.
func DefaultLineSearchConfig() LineSearchConfig {
	return LineSearchConfig{
		InitialStepLength:        1,
		StepContractionFactor:    0.5,
		StepThresholdCoefficient: 1e-4,
	}
}

// Validate checks the parameter ranges.
func (c LineSearchConfig) Validate() error {
	switch {
	case !(c.InitialStepLength > 0):
		return fmt.Errorf("%w: initial step length %g must be positive", ErrInvalidConfig, c.InitialStepLength)
	case !(c.StepContractionFactor > 0 && c.StepContractionFactor < 1):
		return fmt.Errorf("%w: contraction factor %g outside (0, 1)", ErrInvalidConfig, c.StepContractionFactor)
	case !(c.StepThresholdCoefficient > 0 && c.StepThresholdCoefficient < 1):
		return fmt.Errorf("%w: threshold coefficient %g outside (0, 1)", ErrInvalidConfig, c.StepThresholdCoefficient)
	case c.MaxBacktracks < 0:
		return fmt.Errorf("%w: negative backtrack cap %d", ErrInvalidConfig, c.MaxBacktracks)
	}
	return nil
}
