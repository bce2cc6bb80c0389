package experiment

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-optim/optim/deriv"
	"github.com/cwbudde/algo-optim/optim/descent"
)

type strategyEntry struct {
	name  string
	build func(deriv.Rosenbrock) descent.Strategy
}

var registry = []strategyEntry{
	{"steepest", func(deriv.Rosenbrock) descent.Strategy { return descent.SteepestDescent{} }},
	{"newton", func(r deriv.Rosenbrock) descent.Strategy { return descent.Newton{Provider: r} }},
	{"newton-cg", func(r deriv.Rosenbrock) descent.Strategy { return descent.NewtonCG{Provider: r} }},
	{"fletcher-reeves", func(deriv.Rosenbrock) descent.Strategy {
		return &descent.NonlinearCG{Beta: descent.BetaFletcherReeves}
	}},
	{"polak-ribiere", func(deriv.Rosenbrock) descent.Strategy {
		return &descent.NonlinearCG{Beta: descent.BetaPolakRibiere}
	}},
}

// Strategies lists the registered strategy names in registration order.
func Strategies() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	return names
}

// NewStrategy builds a fresh strategy by name for objective r. Stateful
// strategies are never shared between calls.
func NewStrategy(name string, r deriv.Rosenbrock) (descent.Strategy, error) {
	e, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return e.build(r), nil
}

func lookup(name string) (strategyEntry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range registry {
		if e.name == name {
			return e, true
		}
	}
	return strategyEntry{}, false
}
