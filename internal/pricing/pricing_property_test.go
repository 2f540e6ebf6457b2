package pricing

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/alessiobaldini01/Lookback-Pricing/internal/market"
)

func propertyInstrument(kind market.OptionKind, seed uint64, spot, rate, vol float64, days int) (*Instrument, error) {
	p, err := market.NewParams(market.Input{
		Kind:     kind,
		Maturity: float64(days) / 365.0,
		Spot:     spot,
		Rate:     rate,
		Vol:      vol,
		Paths:    64,
		SpotStep: 1,
		Points:   1,
		Seed:     seed,
	})
	if err != nil {
		return nil, err
	}
	return New(p)
}

// Property: both lookback payoffs are non-negative on every simulated path
// because the boundary value is one of the extreme's candidates.
func TestProperty_PayoffFloor(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0

	properties := gopter.NewProperties(parameters)

	properties.Property("call and put payoffs are non-negative", prop.ForAll(
		func(seed uint64, spot, rate, vol float64, days int) bool {
			for _, kind := range []market.OptionKind{market.Call, market.Put} {
				inst, err := propertyInstrument(kind, seed, spot, rate, vol, days)
				if err != nil {
					return false
				}
				sim := inst.Simulator()
				for i := 0; i < sim.Rows(); i++ {
					if inst.Payoff().Value(sim.Path(i)) < 0 {
						return false
					}
				}
				if inst.Price() < 0 {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
		gen.Float64Range(0, 1000),
		gen.Float64Range(-0.05, 0.2),
		gen.Float64Range(0, 1.0),
		gen.IntRange(1, 60),
	))

	properties.TestingRun(t)
}

// Property: gamma is exactly zero for any valid parameter set.
func TestProperty_GammaIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("gamma == 0", prop.ForAll(
		func(seed uint64, put bool, spot, vol float64) bool {
			kind := market.Call
			if put {
				kind = market.Put
			}
			inst, err := propertyInstrument(kind, seed, spot, 0.03, vol, 20)
			if err != nil {
				return false
			}
			gamma, err := inst.Gamma()
			return err == nil && gamma == 0
		},
		gen.UInt64(),
		gen.Bool(),
		gen.Float64Range(1, 500),
		gen.Float64Range(0, 1.0),
	))

	properties.TestingRun(t)
}

// Property: the pathwise delta equals price/S0 up to rounding, the
// degree-one homogeneity the estimator relies on.
func TestProperty_DeltaHomogeneity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("delta == price / S0", prop.ForAll(
		func(seed uint64, spot, vol float64) bool {
			inst, err := propertyInstrument(market.Put, seed, spot, 0.01, vol, 30)
			if err != nil {
				return false
			}
			delta, err := inst.Delta()
			if err != nil {
				return false
			}
			want := inst.Price() / spot
			diff := delta - want
			if diff < 0 {
				diff = -diff
			}
			return diff <= 1e-9*(1+want)
		},
		gen.UInt64(),
		gen.Float64Range(1, 500),
		gen.Float64Range(0.05, 1.0),
	))

	properties.TestingRun(t)
}
