package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/alessiobaldini01/Lookback-Pricing/internal/market"
)

// BlackScholes returns the European price of a call or put struck at
// strike with tau years to expiry. With no time or no volatility left the
// price is the discounted intrinsic value.
func BlackScholes(kind market.OptionKind, spot, strike, rate, vol, tau float64) float64 {
	discounted := strike * math.Exp(-rate*tau)
	if tau <= 0 || vol <= 0 || spot <= 0 || strike <= 0 {
		if kind == market.Put {
			return math.Max(discounted-spot, 0)
		}
		return math.Max(spot-discounted, 0)
	}

	sqrtTau := math.Sqrt(tau)
	d1 := (math.Log(spot/strike) + (rate+0.5*vol*vol)*tau) / (vol * sqrtTau)
	d2 := d1 - vol*sqrtTau

	if kind == market.Put {
		return discounted*distuv.UnitNormal.CDF(-d2) - spot*distuv.UnitNormal.CDF(-d1)
	}
	return spot*distuv.UnitNormal.CDF(d1) - discounted*distuv.UnitNormal.CDF(d2)
}
