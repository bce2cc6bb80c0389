package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-optim/linalg"
	"github.com/cwbudde/algo-optim/optim/deriv"
	"github.com/cwbudde/algo-optim/optim/descent"
	"github.com/cwbudde/algo-optim/optim/trace"
)

// Trial is one ready-to-run strategy.
type Trial struct {
	Name       string
	Strategy   descent.Strategy
	LineSearch descent.LineSearchConfig
}

// Suite is a set of trials sharing objective, start point and stopping rule.
type Suite struct {
	Objective   deriv.Objective
	Start       linalg.Vector
	Predicate   descent.Predicate
	Trials      []Trial
	Parallelism int
}

// Suite validates c and builds the trials it describes on the Rosenbrock
// objective.
func (c Config) Suite() (Suite, error) {
	if err := c.Validate(); err != nil {
		return Suite{}, err
	}

	obj := deriv.Rosenbrock{Coefficient: c.Coefficient}
	pred := descent.GradientNormAbove(c.Tolerance)
	if c.MaxSteps > 0 {
		pred = descent.All(pred, descent.MaxSteps(c.MaxSteps))
	}

	s := Suite{
		Objective:   obj,
		Start:       linalg.NewVector(c.Start...),
		Predicate:   pred,
		Parallelism: c.Parallelism,
	}
	for _, tc := range c.Trials {
		strategy, err := NewStrategy(tc.Strategy, obj)
		if err != nil {
			return Suite{}, err
		}
		ls := c.LineSearch
		if tc.LineSearch != nil {
			ls = *tc.LineSearch
		}
		s.Trials = append(s.Trials, Trial{Name: tc.Name, Strategy: strategy, LineSearch: ls})
	}
	return s, nil
}

// Report summarises one finished trial.
type Report struct {
	Trial      string
	Iterations int
	FinalValue float64
	GradNorm   float64
	Position   linalg.Vector

	// Objective and Grad are the evaluation counts read from the trial's
	// tracer.
	Objective int
	Grad      int

	// Err is the error the trial stopped with, if any. The other fields
	// describe the last frame reached.
	Err error
}

// Converged reports whether the trial finished without error.
func (r Report) Converged() bool { return r.Err == nil }

// RunTrials runs every trial of s concurrently and returns one report per
// trial in trial order. Each trial records into its own tracer, which is
// merged into parent (when non-nil) after all trials have finished.
//
// A failing trial is reported through Report.Err and does not stop the
// others. RunTrials itself only fails when ctx is cancelled.
func RunTrials(ctx context.Context, s Suite, parent *trace.Tracer, logger *slog.Logger) ([]Report, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	reports := make([]Report, len(s.Trials))
	tracers := make([]*trace.Tracer, len(s.Trials))

	g, gctx := errgroup.WithContext(ctx)
	if s.Parallelism > 0 {
		g.SetLimit(s.Parallelism)
	}

	for i, trial := range s.Trials {
		tracers[i] = trace.New()

		g.Go(func() error {
			opt := descent.Optimizer{
				Objective:  s.Objective,
				LineSearch: trial.LineSearch,
				Tracer:     tracers[i],
				Logger:     logger,
			}
			pred := func(f descent.Frame) bool {
				return gctx.Err() == nil && s.Predicate(f)
			}

			frames, err := opt.Run(trial.Name, s.Start, pred, trial.Strategy)
			if ctxErr := gctx.Err(); ctxErr != nil {
				return fmt.Errorf("trial %q: %w", trial.Name, ctxErr)
			}
			reports[i] = newReport(trial.Name, frames, tracers[i], err)
			if err != nil {
				logger.Warn("trial failed", "trial", trial.Name, "error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if parent != nil {
		for _, tr := range tracers {
			parent.Merge(tr)
		}
	}
	return reports, nil
}

func newReport(name string, frames []descent.Frame, tr *trace.Tracer, err error) Report {
	sc := trace.NewScope(tr, name)
	r := Report{
		Trial:     name,
		Objective: sc.Count("objective"),
		Grad:      sc.Count("grad"),
		Err:       err,
	}
	if len(frames) == 0 {
		return r
	}
	last := frames[len(frames)-1]
	r.Iterations = last.Step
	r.FinalValue = last.Value
	r.GradNorm = last.Gradient.Norm()
	r.Position = last.Position
	return r
}
