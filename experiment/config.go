// Package experiment runs descent strategies side by side on the Rosenbrock
// objective and tabulates their cost.
//
// An experiment is described by a [Config], usually read from YAML with
// [LoadConfig]:
//
//	coefficient: 100
//	start: [-1.2, 1]
//	tolerance: 1e-3
//	line_search:
//	  initial_step_length: 1
//	  step_contraction_factor: 0.5
//	  step_threshold_coefficient: 1e-4
//	trials:
//	  - name: sd
//	    strategy: steepest
//	  - name: newton
//	    strategy: newton
//
// Every trial runs on its own goroutine with its own tracer; the tracers are
// merged into the caller's once all trials have finished.
package experiment

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-optim/optim/descent"
)

// Configuration errors.
var (
	ErrInvalidConfig   = errors.New("experiment: invalid configuration")
	ErrUnknownStrategy = errors.New("experiment: unknown strategy")
)

// Config describes one experiment.
type Config struct {
	// Coefficient is c in f(x) = c·(x1 − x0²)² + (1 − x0)².
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`

	// Start is the common starting point of every trial.
	Start []float64 `json:"start" yaml:"start"`

	// Tolerance stops a trial once ‖∇f‖ ≤ Tolerance.
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`

	// MaxSteps additionally stops a trial after this many steps. Zero means
	// no limit.
	MaxSteps int `json:"max_steps" yaml:"max_steps"`

	// Parallelism bounds the number of trials running at once. Zero means
	// all at once.
	Parallelism int `json:"parallelism" yaml:"parallelism"`

	LineSearch descent.LineSearchConfig `json:"line_search" yaml:"line_search"`

	Trials []TrialConfig `json:"trials" yaml:"trials"`
}

// TrialConfig names one strategy run.
type TrialConfig struct {
	Name     string `json:"name" yaml:"name"`
	Strategy string `json:"strategy" yaml:"strategy"`

	// LineSearch overrides Config.LineSearch for this trial.
	LineSearch *descent.LineSearchConfig `json:"line_search,omitempty" yaml:"line_search,omitempty"`
}

// DefaultConfig returns the classic comparison: c = 100 from (−1.2, 1),
// stopping at ‖∇f‖ ≤ 1e-3, one trial per registered strategy.
func DefaultConfig() Config {
	cfg := Config{
		Coefficient: 100,
		Start:       []float64{-1.2, 1},
		Tolerance:   1e-3,
		LineSearch:  descent.DefaultLineSearchConfig(),
	}
	for _, s := range registry {
		cfg.Trials = append(cfg.Trials, TrialConfig{Name: s.name, Strategy: s.name})
	}
	return cfg
}

// LoadConfig reads a YAML experiment file on top of DefaultConfig and
// validates the result. JSON documents are valid YAML and load the same way.
// On a parse error the returned config is DefaultConfig, untouched.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("load config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.Coefficient) || math.IsInf(c.Coefficient, 0):
		return fmt.Errorf("%w: coefficient must be finite", ErrInvalidConfig)
	case len(c.Start) != 2:
		return fmt.Errorf("%w: start must have 2 coordinates, got %d", ErrInvalidConfig, len(c.Start))
	case !(c.Tolerance > 0):
		return fmt.Errorf("%w: tolerance must be > 0", ErrInvalidConfig)
	case c.MaxSteps < 0:
		return fmt.Errorf("%w: max_steps must be >= 0", ErrInvalidConfig)
	case len(c.Trials) == 0:
		return fmt.Errorf("%w: no trials", ErrInvalidConfig)
	}
	if err := c.LineSearch.Validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Trials))
	for i, t := range c.Trials {
		if t.Name == "" {
			return fmt.Errorf("%w: trial %d has no name", ErrInvalidConfig, i)
		}
		if seen[t.Name] {
			return fmt.Errorf("%w: duplicate trial name %q", ErrInvalidConfig, t.Name)
		}
		seen[t.Name] = true

		if _, ok := lookup(t.Strategy); !ok {
			return fmt.Errorf("%w: %q in trial %q", ErrUnknownStrategy, t.Strategy, t.Name)
		}
		if t.LineSearch != nil {
			if err := t.LineSearch.Validate(); err != nil {
				return fmt.Errorf("trial %q: %w", t.Name, err)
			}
		}
	}
	return nil
}
