package pricing

import (
	"math"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/alessiobaldini01/Lookback-Pricing/internal/errors"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/models"
)

// minSpotBump floors the absolute spot step of the bumped estimators.
const minSpotBump = 1e-4

// Delta is the pathwise spot sensitivity. Paths are homogeneous of degree
// one in S0 for fixed draws, so each path contributes payoff/S0.
// At S0 = 0 the ratio is undefined and a forward difference is used.
func (in *Instrument) Delta() (float64, error) {
	spot := in.params.Spot()
	if spot == 0 {
		return in.DeltaBump()
	}
	return in.discount * in.summary.Mean / spot, nil
}

// Gamma is identically zero: the payoff is piecewise linear in S0.
func (in *Instrument) Gamma() (float64, error) {
	return 0, nil
}

// Vega is the pathwise volatility sensitivity. The normal draw of each
// step is recovered by inverting the GBM recursion and dS_k/dsigma is
// propagated forward; the payoff's derivative is then read at the terminal
// and extreme indices.
func (in *Instrument) Vega() (float64, error) {
	vol := in.params.Vol()
	switch {
	case in.params.Spot() == 0:
		return 0, nil
	case vol == 0:
		// Draws are not recoverable from a deterministic path.
		return in.vegaBump()
	}

	drift, diffusion := in.sim.Increments()
	dt := in.sim.Dt()
	sqrtDt := math.Sqrt(dt)

	sens := make([]float64, in.sim.Steps()+1)
	var sum float64
	for i := 0; i < in.sim.Rows(); i++ {
		path := in.sim.Path(i)
		for k := 1; k < len(path); k++ {
			z := (math.Log(path[k]/path[k-1]) - drift) / diffusion
			growth := math.Exp(drift + diffusion*z)
			sens[k] = sens[k-1]*growth + path[k]*(-vol*dt+sqrtDt*z)
		}
		sum += in.payoff.Derivative(sens, in.payoff.Extreme(path))
	}
	return in.discount * sum / float64(in.sim.Rows()), nil
}

// Theta re-prices with the valuation time moved forward by one trading
// day and the same seed. The step is halved into the remaining horizon
// when it would reach maturity.
func (in *Instrument) Theta() (float64, error) {
	t, maturity := in.params.Valuation(), in.params.Maturity()
	eps := in.bumps.Theta
	if t+eps >= maturity {
		eps = (maturity - t) * 0.5
	}

	p, err := in.params.WithValuation(t + eps)
	if err != nil {
		return 0, apperrors.Wrap(err, "theta")
	}
	up, err := in.reprice(p)
	if err != nil {
		return 0, apperrors.Wrap(err, "theta")
	}
	return (up.Price() - in.Price()) / eps, nil
}

// Rho re-prices with the rate moved up one basis point and the same seed.
func (in *Instrument) Rho() (float64, error) {
	eps := in.bumps.Rate
	p, err := in.params.WithRate(in.params.Rate() + eps)
	if err != nil {
		return 0, apperrors.Wrap(err, "rho")
	}
	up, err := in.reprice(p)
	if err != nil {
		return 0, apperrors.Wrap(err, "rho")
	}
	return (up.Price() - in.Price()) / eps, nil
}

// spotStep returns the absolute spot bump and whether a down-bump stays
// at or above zero.
func (in *Instrument) spotStep() (h float64, central bool) {
	spot := in.params.Spot()
	h = math.Max(spot*in.bumps.Spot, minSpotBump)
	return h, spot-h >= 0
}

// repriceAtSpot re-prices at spot with the same seed.
func (in *Instrument) repriceAtSpot(spot float64) (float64, error) {
	p, err := in.params.WithSpot(spot)
	if err != nil {
		return 0, err
	}
	inst, err := in.reprice(p)
	if err != nil {
		return 0, err
	}
	return inst.Price(), nil
}

// DeltaBump estimates delta by re-simulating at bumped spots with common
// random numbers: a central difference, or a forward one when S0 is too
// close to zero to bump down.
func (in *Instrument) DeltaBump() (float64, error) {
	spot := in.params.Spot()
	h, central := in.spotStep()

	up, err := in.repriceAtSpot(spot + h)
	if err != nil {
		return 0, apperrors.Wrap(err, "delta")
	}
	if !central {
		return (up - in.Price()) / h, nil
	}
	down, err := in.repriceAtSpot(spot - h)
	if err != nil {
		return 0, apperrors.Wrap(err, "delta")
	}
	return (up - down) / (2 * h), nil
}

// GammaBump estimates gamma by a second difference in spot with common
// random numbers. The result should vanish up to rounding.
func (in *Instrument) GammaBump() (float64, error) {
	spot := in.params.Spot()
	h, central := in.spotStep()

	lo, mid, hi := spot-h, spot, spot+h
	if !central {
		lo, mid, hi = spot, spot+h, spot+2*h
	}

	prices := make([]float64, 3)
	for i, s := range []float64{lo, mid, hi} {
		if s == spot {
			prices[i] = in.Price()
			continue
		}
		v, err := in.repriceAtSpot(s)
		if err != nil {
			return 0, apperrors.Wrap(err, "gamma")
		}
		prices[i] = v
	}
	return (prices[2] - 2*prices[1] + prices[0]) / (h * h), nil
}

// vegaBump is a forward difference in sigma with common random numbers.
func (in *Instrument) vegaBump() (float64, error) {
	eps := in.bumps.Vol
	p, err := in.params.WithVol(in.params.Vol() + eps)
	if err != nil {
		return 0, apperrors.Wrap(err, "vega")
	}
	up, err := in.reprice(p)
	if err != nil {
		return 0, apperrors.Wrap(err, "vega")
	}
	return (up.Price() - in.Price()) / eps, nil
}

// Greeks computes all five sensitivities. The bump method only swaps the
// delta estimator; gamma is exactly 0 either way. Theta and rho each
// re-simulate an independent instrument; the two run concurrently.
func (in *Instrument) Greeks(method models.GreeksMethod) (models.OptionGreeks, error) {
	var out models.OptionGreeks
	var g errgroup.Group

	g.Go(func() (err error) {
		out.Theta, err = in.Theta()
		return err
	})
	g.Go(func() (err error) {
		out.Rho, err = in.Rho()
		return err
	})

	var err error
	if method == models.GreeksBump {
		out.Delta, err = in.DeltaBump()
	} else {
		out.Delta, err = in.Delta()
	}
	if err == nil {
		out.Gamma, err = in.Gamma()
	}
	if err == nil {
		out.Vega, err = in.Vega()
	}

	if werr := g.Wait(); err == nil {
		err = werr
	}
	if err != nil {
		return models.OptionGreeks{}, err
	}
	return out, nil
}
