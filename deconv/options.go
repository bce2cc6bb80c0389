package deconv

import (
	"log/slog"

	"github.com/cwbudde/algo-optim/optim/trace"
)

// DefaultTolerance is the absolute residual norm at which each CG solve
// stops.
const DefaultTolerance = 1e-6

// Config controls Deblur and Sweep.
type Config struct {
	// Tolerance is the absolute residual norm ‖(AᵗA + λ²I)·x − Aᵗd‖ at which
	// a signal is considered solved.
	Tolerance float64

	// MaxIterations caps each CG solve. Zero means no cap.
	MaxIterations int

	// Parallelism bounds the number of λ values Sweep solves at once.
	// Zero or negative means one per λ.
	Parallelism int

	// Scope receives "signal" events and the nested CG counts.
	Scope trace.Scope

	Logger *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default deconvolution configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance: DefaultTolerance,
		Logger:    slog.New(slog.DiscardHandler),
	}
}

// WithTolerance sets the residual tolerance. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(cfg *Config) {
		if tol > 0 {
			cfg.Tolerance = tol
		}
	}
}

// WithMaxIterations caps each CG solve.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxIterations = n
		}
	}
}

// WithParallelism bounds concurrent λ solves in Sweep.
func WithParallelism(n int) Option {
	return func(cfg *Config) {
		cfg.Parallelism = n
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
