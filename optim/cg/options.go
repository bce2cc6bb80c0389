package cg

import (
	"log/slog"

	"github.com/cwbudde/algo-optim/optim/trace"
)

// DefaultBreakdownTolerance is the default bound on the Rayleigh quotient
// d·Ad / d·d below which a search direction is treated as having lost
// conjugacy.
const DefaultBreakdownTolerance = 1e-30

// Config controls a CG solve.
type Config struct {
	// MaxIterations caps the number of iterations. Zero leaves termination
	// entirely to the predicate.
	MaxIterations int

	// CheckSymmetry verifies A == Aᵗ exactly before iterating. On by default.
	CheckSymmetry bool

	// BreakdownTolerance is the relative curvature threshold, see
	// DefaultBreakdownTolerance.
	BreakdownTolerance float64

	// Scope receives one "matvec" event per matrix-vector product.
	Scope trace.Scope

	// Logger receives per-solve debug records.
	Logger *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns an unbounded configuration that rejects asymmetric
// matrices.
func DefaultConfig() Config {
	return Config{
		CheckSymmetry:      true,
		BreakdownTolerance: DefaultBreakdownTolerance,
		Logger:             slog.New(slog.DiscardHandler),
	}
}

// WithMaxIterations caps the number of iterations.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxIterations = n
		}
	}
}

// WithoutSymmetryCheck skips the O(N²) symmetry test for callers whose
// matrix is symmetric by construction.
func WithoutSymmetryCheck() Option {
	return func(cfg *Config) {
		cfg.CheckSymmetry = false
	}
}

// WithBreakdownTolerance sets the relative curvature threshold.
func WithBreakdownTolerance(tol float64) Option {
	return func(cfg *Config) {
		if tol >= 0 {
			cfg.BreakdownTolerance = tol
		}
	}
}

// WithScope routes call counts to sc.
func WithScope(sc trace.Scope) Option {
	return func(cfg *Config) {
		cfg.Scope = sc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
