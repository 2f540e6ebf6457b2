package models

// OptionGreeks represents option Greeks.
type OptionGreeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
	Vega  float64 `json:"vega"`
}

// PayoffStats summarizes the simulated undiscounted payoffs.
type PayoffStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	StdErr float64 `json:"std_err"`
}

// Valuation is the full result of pricing one lookback instrument.
type Valuation struct {
	Kind      string       `json:"kind"`
	Spot      float64      `json:"spot"`
	Paths     int          `json:"paths"`
	Steps     int          `json:"steps"`
	Seed      uint64       `json:"seed"`
	Price     float64      `json:"price"`
	Greeks    OptionGreeks `json:"greeks"`
	Payoff    PayoffStats  `json:"payoff"`
	Method    GreeksMethod `json:"greeks_method"`
	GammaBump *float64     `json:"gamma_bump,omitempty"` // bump method only; Greeks.Gamma stays 0
	Vanilla   float64      `json:"vanilla_reference"`    // European price struck at spot
}

// SweepPoint is one row of a spot sweep.
type SweepPoint struct {
	Spot  float64 `json:"spot"`
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
}
