package pricing

import (
	"gonum.org/v1/gonum/floats"

	"github.com/alessiobaldini01/Lookback-Pricing/internal/market"
)

// Payoff is a floating-strike lookback payoff rule. Both variants are
// linear in two points of the path: the terminal value and the running
// extreme, located once by Extreme.
type Payoff interface {
	Kind() market.OptionKind
	// Value returns the undiscounted payoff of path.
	Value(path []float64) float64
	// Extreme returns the index of the running extreme the payoff is
	// struck at. Ties resolve to the first index.
	Extreme(path []float64) int
	// Derivative applies the payoff's linear form to per-step
	// sensitivities d, using the extreme index ext of the same path.
	Derivative(d []float64, ext int) float64
}

// LookbackCall pays S_T - min(path).
type LookbackCall struct{}

func (LookbackCall) Kind() market.OptionKind { return market.Call }

func (c LookbackCall) Value(path []float64) float64 {
	return path[len(path)-1] - path[c.Extreme(path)]
}

func (LookbackCall) Extreme(path []float64) int { return floats.MinIdx(path) }

func (LookbackCall) Derivative(d []float64, ext int) float64 {
	return d[len(d)-1] - d[ext]
}

// LookbackPut pays max(path) - S_T.
type LookbackPut struct{}

func (LookbackPut) Kind() market.OptionKind { return market.Put }

func (p LookbackPut) Value(path []float64) float64 {
	return path[p.Extreme(path)] - path[len(path)-1]
}

func (LookbackPut) Extreme(path []float64) int { return floats.MaxIdx(path) }

func (LookbackPut) Derivative(d []float64, ext int) float64 {
	return d[ext] - d[len(d)-1]
}

// PayoffFor returns the payoff rule of kind.
func PayoffFor(kind market.OptionKind) Payoff {
	if kind == market.Put {
		return LookbackPut{}
	}
	return LookbackCall{}
}
