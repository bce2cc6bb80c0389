package descent_test

import (
	"fmt"

	"github.com/cwbudde/algo-optim/linalg"
	"github.com/cwbudde/algo-optim/optim/deriv"
	"github.com/cwbudde/algo-optim/optim/descent"
)

func ExampleOptimizer_Run() {
	r := deriv.Rosenbrock{Coefficient: 100}
	opt := descent.Optimizer{Objective: r, LineSearch: descent.DefaultLineSearchConfig()}

	frames, err := opt.Run("newton", linalg.NewVector(-1.2, 1),
		descent.All(descent.GradientNormAbove(1e-8), descent.MaxSteps(200)),
		descent.Newton{Provider: r})
	if err != nil {
		fmt.Println(err)
		return
	}
	last := frames[len(frames)-1]
	fmt.Printf("x=(%.4f, %.4f) at minimum: %t\n", last.Position[0], last.Position[1], last.Value < 1e-12)

	// Output:
	// x=(1.0000, 1.0000) at minimum: true
}
