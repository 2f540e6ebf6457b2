package pricing

import (
	"github.com/alessiobaldini01/Lookback-Pricing/internal/market"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/models"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/montecarlo"
)

// Bumps holds the finite-difference step sizes used by the re-simulating
// Greek estimators.
type Bumps struct {
	Theta float64 // valuation-time step in years
	Rate  float64 // absolute rate step
	Spot  float64 // relative spot step
	Vol   float64 // absolute volatility step
}

// DefaultBumps returns one trading day, one basis point, 1% of spot and
// one volatility point.
func DefaultBumps() Bumps {
	return Bumps{
		Theta: 1.0 / 252.0,
		Rate:  1e-4,
		Spot:  0.01,
		Vol:   0.01,
	}
}

// withDefaults fills non-positive fields from DefaultBumps.
func (b Bumps) withDefaults() Bumps {
	d := DefaultBumps()
	if b.Theta <= 0 {
		b.Theta = d.Theta
	}
	if b.Rate <= 0 {
		b.Rate = d.Rate
	}
	if b.Spot <= 0 {
		b.Spot = d.Spot
	}
	if b.Vol <= 0 {
		b.Vol = d.Vol
	}
	return b
}

// InstrumentOption configures an Instrument.
type InstrumentOption func(*Instrument)

// WithBumps overrides the finite-difference step sizes.
func WithBumps(b Bumps) InstrumentOption {
	return func(in *Instrument) {
		in.bumps = b.withDefaults()
	}
}

// Instrument is a priced lookback option. Construction simulates the full
// path matrix and evaluates the payoff on every path; every accessor after
// that is read-only.
type Instrument struct {
	params   market.Params
	payoff   Payoff
	sim      *montecarlo.Simulator
	bumps    Bumps
	discount float64
	summary  Summary
}

// New simulates and prices the lookback option described by params.
func New(params market.Params, opts ...InstrumentOption) (*Instrument, error) {
	in := &Instrument{
		params: params,
		payoff: PayoffFor(params.Kind()),
		bumps:  DefaultBumps(),
	}
	for _, opt := range opts {
		opt(in)
	}

	sim, err := montecarlo.New(params)
	if err != nil {
		return nil, err
	}
	in.sim = sim
	in.discount = Discount(params.Rate(), params.Horizon())

	in.summary = Evaluate(sim, in.payoff.Value, in.discount)
	return in, nil
}

// reprice builds an independent instrument from p with the same options.
func (in *Instrument) reprice(p market.Params) (*Instrument, error) {
	return New(p, WithBumps(in.bumps))
}

func (in *Instrument) Params() market.Params            { return in.params }
func (in *Instrument) Payoff() Payoff                   { return in.payoff }
func (in *Instrument) Simulator() *montecarlo.Simulator { return in.sim }
func (in *Instrument) Bumps() Bumps                     { return in.bumps }

// Price returns the discounted mean payoff.
func (in *Instrument) Price() float64 { return in.summary.Price }

// PayoffMean returns the undiscounted mean payoff.
func (in *Instrument) PayoffMean() float64 { return in.summary.Mean }

// PayoffStd returns the sample standard deviation of the payoffs.
func (in *Instrument) PayoffStd() float64 { return in.summary.StdDev }

// PayoffStderr returns the Monte Carlo standard error of the mean payoff.
func (in *Instrument) PayoffStderr() float64 { return in.summary.StdErr }

// Summary returns the price together with its payoff statistics.
func (in *Instrument) Summary() Summary { return in.summary }

// Valuation computes every Greek with the requested method and bundles
// them with the price, the payoff statistics and the vanilla reference.
// The bump method also attaches GammaBump as a diagnostic.
func (in *Instrument) Valuation(method models.GreeksMethod) (models.Valuation, error) {
	greeks, err := in.Greeks(method)
	if err != nil {
		return models.Valuation{}, err
	}

	if method == "" {
		method = models.GreeksPathwise
	}

	var gammaBump *float64
	if method == models.GreeksBump {
		g, err := in.GammaBump()
		if err != nil {
			return models.Valuation{}, err
		}
		gammaBump = &g
	}

	p := in.params
	return models.Valuation{
		Kind:   p.Kind().String(),
		Spot:   p.Spot(),
		Paths:  in.sim.Rows(),
		Steps:  in.sim.Steps(),
		Seed:   p.Seed(),
		Price:  in.Price(),
		Greeks: greeks,
		Payoff: models.PayoffStats{
			Mean:   in.summary.Mean,
			StdDev: in.summary.StdDev,
			StdErr: in.summary.StdErr,
		},
		Method:    method,
		GammaBump: gammaBump,
		Vanilla:   BlackScholes(p.Kind(), p.Spot(), p.Spot(), p.Rate(), p.Vol(), p.Horizon()),
	}, nil
}
