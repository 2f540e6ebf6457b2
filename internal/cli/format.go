package cli

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/alessiobaldini01/Lookback-Pricing/internal/models"
)

// FormatFixed formats v with exactly precision decimal digits. The exact
// binary value is rounded, ties to even, as printf's %.*f does; zero never
// carries a sign. Non-finite values print as nan, inf or -inf.
func FormatFixed(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return exactDecimal(v).StringFixedBank(int32(precision))
}

// exactDecimal returns the decimal equal to v, digit for digit.
// decimal.NewFromFloat would return the shortest round-tripping form.
func exactDecimal(v float64) decimal.Decimal {
	frac, exp := math.Frexp(v)
	mant := big.NewInt(int64(math.Ldexp(frac, 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	// m * 2^e == m * 5^-e * 10^e
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(mant.Mul(mant, five), int32(exp))
}

// FormatFields formats every value with FormatFixed.
func FormatFields(precision int, values ...float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = FormatFixed(v, precision)
	}
	return out
}

// ValuationFields returns price, delta, gamma, theta, rho, vega in host order.
func ValuationFields(v models.Valuation, precision int) []string {
	g := v.Greeks
	return FormatFields(precision, v.Price, g.Delta, g.Gamma, g.Theta, g.Rho, g.Vega)
}

// SweepFields returns spot, price, delta.
func SweepFields(p models.SweepPoint, precision int) []string {
	return FormatFields(precision, p.Spot, p.Price, p.Delta)
}
