package trace_test

import (
	"os"

	"github.com/cwbudde/algo-optim/optim/trace"
)

func ExampleScope() {
	tr := trace.New()
	sc := trace.NewScope(tr, "newton")
	sc.Inc("objective")
	sc.Inc("objective")
	sc.Inc("grad")

	sub := sc.Sub("cg")
	sub.Add("matvec", 3)
	sc.MergeSub(sub)

	_ = tr.Print(os.Stdout)

	// Output:
	// newton/cg/matvec: 3
	// newton/grad: 1
	// newton/objective: 2
}
