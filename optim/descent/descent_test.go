package descent_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-optim/internal/testutil"
	"github.com/cwbudde/algo-optim/linalg"
	"github.com/cwbudde/algo-optim/optim/deriv"
	"github.com/cwbudde/algo-optim/optim/descent"
	"github.com/cwbudde/algo-optim/optim/trace"
)

var rosenStart = linalg.NewVector(-1.2, 1)

func TestSteepestDescentRosenbrockTerminates(t *testing.T) {
	tr := trace.New()
	opt := descent.Optimizer{
		Objective:  deriv.Rosenbrock{Coefficient: 100},
		LineSearch: descent.DefaultLineSearchConfig(),
		Tracer:     tr,
	}

	const limit = 200000
	frames, err := opt.Run("steepest", rosenStart,
		descent.All(descent.GradientNormAbove(1e-3), descent.MaxSteps(limit)),
		descent.SteepestDescent{})
	require.NoError(t, err)

	last := frames[len(frames)-1]
	assert.Less(t, last.Step, limit, "run must stop on the gradient test, not the cap")
	assert.LessOrEqual(t, last.Gradient.Norm(), 1e-3)
	assert.Less(t, last.Value, frames[0].Value)

	assert.Equal(t, len(frames), tr.Count("steepest/grad"), "one gradient per frame")
	assert.GreaterOrEqual(t, tr.Count("steepest/objective"), len(frames))
}

func TestNewtonRosenbrockConverges(t *testing.T) {
	r := deriv.Rosenbrock{Coefficient: 100}
	tr := trace.New()
	opt := descent.Optimizer{Objective: r, LineSearch: descent.DefaultLineSearchConfig(), Tracer: tr}

	frames, err := opt.Run("newton", rosenStart,
		descent.All(descent.GradientNormAbove(1e-8), descent.MaxSteps(200)),
		descent.Newton{Provider: r})
	require.NoError(t, err)

	last := frames[len(frames)-1]
	assert.LessOrEqual(t, last.Gradient.Norm(), 1e-8)
	testutil.RequireVectorNearlyEqual(t, last.Position, linalg.NewVector(1, 1), 1e-6)
	assert.Equal(t, len(frames)-1, tr.Count("newton/newton"))
}

func TestNewtonOnBowlTakesOneStep(t *testing.T) {
	bowl := deriv.Bowl(2, 1)
	opt := descent.Optimizer{Objective: bowl, LineSearch: descent.DefaultLineSearchConfig()}

	for _, start := range []linalg.Vector{
		linalg.NewVector(3, -4),
		linalg.NewVector(-0.5, 0.25),
		linalg.NewVector(100, 7),
	} {
		frames, err := opt.Run("bowl", start, descent.GradientNormAbove(1e-12), descent.Newton{Provider: bowl})
		require.NoError(t, err)
		require.Len(t, frames, 2, "start %v", start)
		assert.True(t, frames[1].Position.IsZero(), "got %v", frames[1].Position)
	}
}

func TestNewtonCGRosenbrockConverges(t *testing.T) {
	r := deriv.Rosenbrock{Coefficient: 100}
	tr := trace.New()
	opt := descent.Optimizer{Objective: r, LineSearch: descent.DefaultLineSearchConfig(), Tracer: tr}

	frames, err := opt.Run("ncg-newton", rosenStart,
		descent.All(descent.GradientNormAbove(1e-6), descent.MaxSteps(500)),
		descent.NewtonCG{Provider: r})
	require.NoError(t, err)

	last := frames[len(frames)-1]
	assert.LessOrEqual(t, last.Gradient.Norm(), 1e-6)
	assert.Equal(t, len(frames)-1, tr.Count("ncg-newton/hessian"))
	assert.Greater(t, tr.Count("ncg-newton/cg/matvec"), 0, "CG sub-run counts are merged into the parent")
}

func TestNonlinearCGQuadratic(t *testing.T) {
	q := deriv.Quadratic{A: linalg.Diagonal(1, 10), B: linalg.NewVector(1, 1)}
	for _, rule := range []descent.BetaRule{descent.BetaFletcherReeves, descent.BetaPolakRibiere} {
		t.Run(rule.String(), func(t *testing.T) {
			opt := descent.Optimizer{Objective: q, LineSearch: descent.DefaultLineSearchConfig()}
			frames, err := opt.Run("ncg", linalg.NewVector(5, 5),
				descent.All(descent.GradientNormAbove(1e-8), descent.MaxSteps(5000)),
				&descent.NonlinearCG{Beta: rule})
			require.NoError(t, err)
			last := frames[len(frames)-1]
			assert.LessOrEqual(t, last.Gradient.Norm(), 1e-8)
			testutil.RequireVectorNearlyEqual(t, last.Position, linalg.NewVector(1, 0.1), 1e-7)
		})
	}
}

func TestRunValuesDecreaseMonotonically(t *testing.T) {
	r := deriv.Rosenbrock{Coefficient: 100}
	strategies := map[string]descent.Strategy{
		"steepest": descent.SteepestDescent{},
		"fr":       &descent.NonlinearCG{},
		"pr":       &descent.NonlinearCG{Beta: descent.BetaPolakRibiere},
	}
	for name, s := range strategies {
		t.Run(name, func(t *testing.T) {
			opt := descent.Optimizer{Objective: r, LineSearch: descent.DefaultLineSearchConfig()}
			frames, err := opt.Run(name, rosenStart, descent.All(descent.GradientNormAbove(1e-10), descent.MaxSteps(200)), s)
			require.NoError(t, err)
			for i := 1; i < len(frames); i++ {
				assert.LessOrEqual(t, frames[i].Value, frames[i-1].Value, "step %d", i)
				assert.Equal(t, i, frames[i].Step)
			}
		})
	}
}

// kinked is x² for x ≥ 0 and 4x² for x < 0: smooth enough for the line
// search, and steep enough on the left that an overshoot flips the gradient
// and grows it.
var kinked = deriv.Funcs{
	ValueFunc: func(x linalg.Vector) float64 {
		if x[0] < 0 {
			return 4 * x[0] * x[0]
		}
		return x[0] * x[0]
	},
	GradientFunc: func(x linalg.Vector) linalg.Vector {
		if x[0] < 0 {
			return linalg.NewVector(8 * x[0])
		}
		return linalg.NewVector(2 * x[0])
	},
}

func TestNonlinearCGResetInRun(t *testing.T) {
	tr := trace.New()
	opt := descent.Optimizer{
		Objective: kinked,
		LineSearch: descent.LineSearchConfig{
			InitialStepLength:        0.7,
			StepContractionFactor:    0.5,
			StepThresholdCoefficient: 1e-4,
		},
		Tracer: tr,
	}

	// Step 0 moves 1 → −0.4 (g: 2 → −3.2). At step 1 the momentum term gives
	// d = 3.2 − 2.56·2 = −1.92, an ascent direction, which must be reset.
	frames, err := opt.Run("kink", linalg.NewVector(1), descent.MaxSteps(2), &descent.NonlinearCG{})
	require.NoError(t, err)
	require.Len(t, frames, 3)

	assert.InDelta(t, -0.4, frames[1].Position[0], 1e-12)
	assert.InDelta(t, 0.72, frames[2].Position[0], 1e-12)
	assert.Equal(t, 1, tr.Count("kink/reset"))
	assert.Equal(t, 1, tr.Count("kink/backtrack"))
	assert.Equal(t, 4, tr.Count("kink/objective"))
	assert.Equal(t, 3, tr.Count("kink/grad"))
}

func TestNonlinearCGResetDirection(t *testing.T) {
	tr := trace.New()
	sc := trace.NewScope(tr, "ncg")
	s := &descent.NonlinearCG{}

	d0, err := s.Direction(descent.Frame{Gradient: linalg.NewVector(1, 0)}, sc)
	require.NoError(t, err)
	assert.Equal(t, linalg.NewVector(-1, 0), d0)
	assert.Equal(t, 0, tr.Count("ncg/reset"), "first direction is plain steepest descent")

	// β = 4, −g + β·d0 = (2, 0) + (−4, 0) has ∇f·d = 4 > 0.
	d1, err := s.Direction(descent.Frame{Step: 1, Gradient: linalg.NewVector(-2, 0)}, sc)
	require.NoError(t, err)
	assert.Equal(t, linalg.NewVector(2, 0), d1)
	assert.Equal(t, 1, tr.Count("ncg/reset"))

	// A descent-compatible update keeps the momentum term.
	d2, err := s.Direction(descent.Frame{Step: 2, Gradient: linalg.NewVector(-1, 1)}, sc)
	require.NoError(t, err)
	assert.Equal(t, linalg.NewVector(2, -1), d2)
	assert.Equal(t, 1, tr.Count("ncg/reset"))

	s.Reset()
	d3, err := s.Direction(descent.Frame{Gradient: linalg.NewVector(0, 2)}, sc)
	require.NoError(t, err)
	assert.Equal(t, linalg.NewVector(0, -2), d3)
}

func TestZerothFrameAlwaysRecorded(t *testing.T) {
	tr := trace.New()
	opt := descent.Optimizer{Objective: deriv.Rosenbrock{Coefficient: 100}, LineSearch: descent.DefaultLineSearchConfig(), Tracer: tr}
	never := func(descent.Frame) bool { return false }

	frames, err := opt.Run("idle", rosenStart, never, descent.SteepestDescent{})
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, rosenStart, frames[0].Position)
	assert.InDelta(t, 24.2, frames[0].Value, 1e-12)
	assert.Equal(t, 1, tr.Count("idle/objective"))
	assert.Equal(t, 1, tr.Count("idle/grad"))
}

func TestRunDoesNotMutateStart(t *testing.T) {
	start := linalg.NewVector(-1.2, 1)
	opt := descent.Optimizer{Objective: deriv.Rosenbrock{Coefficient: 100}, LineSearch: descent.DefaultLineSearchConfig()}
	_, err := opt.Run("s", start, descent.MaxSteps(5), descent.SteepestDescent{})
	require.NoError(t, err)
	assert.Equal(t, linalg.NewVector(-1.2, 1), start)
}

func TestRunErrors(t *testing.T) {
	r := deriv.Rosenbrock{Coefficient: 100}

	t.Run("invalid config", func(t *testing.T) {
		opt := descent.Optimizer{Objective: r, LineSearch: descent.LineSearchConfig{InitialStepLength: 1}}
		_, err := opt.Run("x", rosenStart, descent.MaxSteps(1), descent.SteepestDescent{})
		require.ErrorIs(t, err, descent.ErrInvalidConfig)
	})

	t.Run("missing strategy", func(t *testing.T) {
		opt := descent.Optimizer{Objective: r, LineSearch: descent.DefaultLineSearchConfig()}
		_, err := opt.Run("x", rosenStart, descent.MaxSteps(1), nil)
		require.ErrorIs(t, err, descent.ErrInvalidConfig)
	})

	t.Run("ascent direction", func(t *testing.T) {
		opt := descent.Optimizer{Objective: r, LineSearch: descent.DefaultLineSearchConfig()}
		ascent := descent.DirectionFunc(func(x linalg.Vector) (linalg.Vector, error) {
			return r.Gradient(x), nil
		})
		frames, err := opt.Run("x", rosenStart, descent.MaxSteps(3), ascent)
		require.ErrorIs(t, err, descent.ErrNotDescentDirection)
		require.Len(t, frames, 1)
	})

	t.Run("singular hessian", func(t *testing.T) {
		singular := deriv.Rosenbrock{Coefficient: 0.5}
		opt := descent.Optimizer{Objective: singular, LineSearch: descent.DefaultLineSearchConfig()}
		frames, err := opt.Run("x", linalg.NewVector(0, 1), descent.MaxSteps(3), descent.Newton{Provider: singular})
		require.ErrorIs(t, err, deriv.ErrSingularHessian)
		require.Len(t, frames, 1, "history before the failure is kept")
	})

	t.Run("non-finite start", func(t *testing.T) {
		opt := descent.Optimizer{Objective: r, LineSearch: descent.DefaultLineSearchConfig()}
		frames, err := opt.Run("x", linalg.NewVector(math.Inf(1), 0), descent.MaxSteps(3), descent.SteepestDescent{})
		require.ErrorIs(t, err, descent.ErrNonFinite)
		require.Len(t, frames, 1)
	})
}
