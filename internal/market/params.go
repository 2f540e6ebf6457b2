// Package market holds the validated market and simulation parameters an
// instrument is priced from.
package market

import (
	"math"
	"strings"

	apperrors "github.com/alessiobaldini01/Lookback-Pricing/internal/errors"
)

// OptionKind selects the lookback payoff family.
type OptionKind int

const (
	Call OptionKind = iota
	Put
)

func (k OptionKind) String() string {
	switch k {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return "unknown"
	}
}

// ParseOptionKind maps "call" or "put" in any casing to an OptionKind.
func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call":
		return Call, nil
	case "put":
		return Put, nil
	}
	return 0, apperrors.NewOptionKindError(s)
}

// Input is the raw, unvalidated parameter set.
type Input struct {
	Kind      OptionKind
	Valuation float64 // t, in years
	Maturity  float64 // T, in years
	Spot      float64 // S0
	Rate      float64 // r, continuously compounded
	Vol       float64 // sigma, annualized
	Paths     int     // N
	SpotStep  float64 // dS
	Points    int     // M
	Seed      uint64
}

// Params is an immutable, validated parameter set.
type Params struct {
	in Input
}

// NewParams validates in and returns the parameter set built from it.
func NewParams(in Input) (Params, error) {
	if err := validate(in); err != nil {
		return Params{}, err
	}
	return Params{in: in}, nil
}

func validate(in Input) error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"t", in.Valuation},
		{"T", in.Maturity},
		{"S0", in.Spot},
		{"r", in.Rate},
		{"sigma", in.Vol},
		{"dS", in.SpotStep},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return apperrors.NewValidationError(f.name, f.value, f.name+" must be a finite number")
		}
	}

	switch {
	case in.Valuation < 0:
		return apperrors.NewValidationError("t", in.Valuation, "t must be non-negative")
	case in.Maturity < in.Valuation:
		return apperrors.NewValidationError("T", in.Maturity, "T must be non-smaller than t")
	case in.Spot < 0:
		return apperrors.NewValidationError("S0", in.Spot, "S0 must be non-negative")
	case in.Vol < 0:
		return apperrors.NewValidationError("sigma", in.Vol, "sigma must be non-negative")
	case in.Paths <= 0:
		return apperrors.NewValidationError("N", in.Paths, "N must be a positive integer")
	case in.SpotStep <= 0:
		return apperrors.NewValidationError("dS", in.SpotStep, "dS must be positive")
	case in.Points <= 0:
		return apperrors.NewValidationError("M", in.Points, "M must be a positive integer")
	case in.Kind != Call && in.Kind != Put:
		return apperrors.NewOptionKindError(in.Kind.String())
	}
	return nil
}

func (p Params) Kind() OptionKind   { return p.in.Kind }
func (p Params) Valuation() float64 { return p.in.Valuation }
func (p Params) Maturity() float64  { return p.in.Maturity }
func (p Params) Spot() float64      { return p.in.Spot }
func (p Params) Rate() float64      { return p.in.Rate }
func (p Params) Vol() float64       { return p.in.Vol }
func (p Params) Paths() int         { return p.in.Paths }
func (p Params) SpotStep() float64  { return p.in.SpotStep }
func (p Params) Points() int        { return p.in.Points }
func (p Params) Seed() uint64       { return p.in.Seed }

// Horizon returns T - t in years.
func (p Params) Horizon() float64 { return p.in.Maturity - p.in.Valuation }

// Input returns a copy of the raw fields.
func (p Params) Input() Input { return p.in }

// WithSpot returns a copy with S0 replaced.
func (p Params) WithSpot(spot float64) (Params, error) {
	in := p.in
	in.Spot = spot
	return NewParams(in)
}

// WithRate returns a copy with r replaced.
func (p Params) WithRate(rate float64) (Params, error) {
	in := p.in
	in.Rate = rate
	return NewParams(in)
}

// WithVol returns a copy with sigma replaced.
func (p Params) WithVol(vol float64) (Params, error) {
	in := p.in
	in.Vol = vol
	return NewParams(in)
}

// WithValuation returns a copy with t replaced.
func (p Params) WithValuation(t float64) (Params, error) {
	in := p.in
	in.Valuation = t
	return NewParams(in)
}

// WithSeed returns a copy with the seed replaced.
func (p Params) WithSeed(seed uint64) Params {
	in := p.in
	in.Seed = seed
	return Params{in: in}
}

// SpotRange returns the bounds of the spot grid centered on S0, floored at 0.
func (p Params) SpotRange() (lo, hi float64) {
	width := float64(p.in.Points) * p.in.SpotStep
	lo = math.Max(0, p.in.Spot-width/2)
	return lo, lo + width
}

// SpotGrid returns the M+1 spot points lo, lo+dS, ..., lo+M*dS.
func (p Params) SpotGrid() []float64 {
	lo, _ := p.SpotRange()
	grid := make([]float64, p.in.Points+1)
	for i := range grid {
		grid[i] = lo + float64(i)*p.in.SpotStep
	}
	return grid
}
