// Package descent implements a backtracking line-search descent loop that
// hosts gradient descent, Newton's method and nonlinear conjugate gradients
// by swapping only the direction [Strategy].
//
// Each iteration evaluates the stopping [Predicate] on the latest [Frame],
// asks the strategy for a direction d, runs [LineSearch] for a step length α,
// advances x ← x + α·d and records a new frame. The zeroth frame holding the
// start point is always part of the returned history.
//
// # Usage
//
//	opt := descent.Optimizer{
//	    Objective:  deriv.Rosenbrock{Coefficient: 100},
//	    LineSearch: descent.DefaultLineSearchConfig(),
//	    Tracer:     trace.New(),
//	}
//	frames, err := opt.Run("steepest", linalg.NewVector(-1.2, 1),
//	    descent.GradientNormAbove(1e-3), descent.SteepestDescent{})
//
// # Cost accounting
//
// With a tracer attached, the optimizer counts "<trial>/objective" for every
// objective evaluation and "<trial>/grad" for every gradient evaluation, so
// the total evaluation cost of a trial can be read back after the run.
package descent

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-optim/linalg"
	"github.com/cwbudde/algo-optim/optim/deriv"
	"github.com/cwbudde/algo-optim/optim/trace"
)

// Errors returned by the descent engine. A run that fails still returns the
// frames recorded up to the failure.
var (
	ErrInvalidConfig       = errors.New("descent: invalid configuration")
	ErrNotDescentDirection = errors.New("descent: direction is not a descent direction")
	ErrLineSearchExhausted = errors.New("descent: line search exceeded its backtrack limit")
	ErrStepUnderflow       = errors.New("descent: step length underflowed to zero")
	ErrNonFinite           = errors.New("descent: non-finite objective or gradient")
)

// Frame is a snapshot of the optimizer state after one iteration.
type Frame struct {
	Step     int
	Position linalg.Vector
	Gradient linalg.Vector
	Value    float64
}

// Optimizer runs line-search descent on an objective.
type Optimizer struct {
	Objective  deriv.Objective
	LineSearch LineSearchConfig

	// Tracer, when set, receives evaluation counts for every run.
	Tracer *trace.Tracer

	// Logger receives one record per finished run and, at debug level, one
	// per iteration. Nil discards.
	Logger *slog.Logger
}

// Run minimises the objective from start until pred returns false.
//
// trial names the run in tracer labels and log records. Strategies that
// implement Resetter are reset before the first iteration.
func (o *Optimizer) Run(trial string, start linalg.Vector, pred Predicate, strategy Strategy) ([]Frame, error) {
	if o.Objective == nil || pred == nil || strategy == nil {
		return nil, fmt.Errorf("%w: objective, predicate and strategy are required", ErrInvalidConfig)
	}
	if err := o.LineSearch.Validate(); err != nil {
		return nil, err
	}
	if r, ok := strategy.(Resetter); ok {
		r.Reset()
	}

	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sc := trace.NewScope(o.Tracer, trial)

	x := start.Clone()
	first, err := o.evaluate(sc, 0, x, math.NaN())
	frames := []Frame{first}
	if err != nil {
		return frames, err
	}

	last := first
	for pred(last) {
		step := len(frames)

		d, err := strategy.Direction(last, sc)
		if err != nil {
			return frames, fmt.Errorf("descent: %s step %d: %w", trial, step, err)
		}

		alpha, value, err := LineSearch(o.Objective, o.LineSearch, last.Position, last.Value, last.Gradient, d, sc)
		if err != nil {
			return frames, fmt.Errorf("descent: %s step %d: %w", trial, step, err)
		}

		last, err = o.evaluate(sc, step, last.Position.AddScaled(alpha, d), value)
		frames = append(frames, last)
		if err != nil {
			return frames, err
		}

		logger.Debug("descent step",
			"trial", trial,
			"step", step,
			"alpha", alpha,
			"value", last.Value,
			"grad_norm", last.Gradient.Norm())
	}

	logger.Info("descent finished",
		"trial", trial,
		"steps", len(frames)-1,
		"value", last.Value,
		"grad_norm", last.Gradient.Norm())
	return frames, nil
}

// evaluate builds the frame at x. value is f(x) when the line search already
// computed it, NaN otherwise.
func (o *Optimizer) evaluate(sc trace.Scope, step int, x linalg.Vector, value float64) (Frame, error) {
	if math.IsNaN(value) {
		value = o.Objective.Value(x)
		sc.Inc("objective")
	}
	g := o.Objective.Gradient(x)
	sc.Inc("grad")

	f := Frame{Step: step, Position: x, Gradient: g, Value: value}
	if math.IsNaN(value) || math.IsInf(value, 0) || !g.IsFinite() {
		return f, fmt.Errorf("%w at step %d: f = %g, ∇f = %v", ErrNonFinite, step, value, g)
	}
	return f, nil
}
