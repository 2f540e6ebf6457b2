// Package pricing prices floating-strike lookback options on simulated GBM
// paths and estimates their Greeks.
package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PathSource is a read-only matrix of simulated trajectories.
type PathSource interface {
	Rows() int
	Path(i int) []float64
}

// PayoffFunc maps one trajectory to its undiscounted payoff.
type PayoffFunc func(path []float64) float64

// Summary holds a discounted price and the payoff statistics behind it.
type Summary struct {
	Price  float64
	Mean   float64
	StdDev float64
	StdErr float64
	Count  int
}

// Discount returns exp(-r*tau).
func Discount(rate, tau float64) float64 {
	return math.Exp(-rate * tau)
}

// Evaluate applies payoff to every row of src and summarizes the results.
func Evaluate(src PathSource, payoff PayoffFunc, discount float64) Summary {
	values := make([]float64, src.Rows())
	for i := range values {
		values[i] = payoff(src.Path(i))
	}
	return Summarize(values, discount)
}

// Summarize computes the discounted mean of values together with the
// Bessel-corrected standard deviation and the standard error. An empty
// input prices at zero; a single value has zero deviation.
func Summarize(values []float64, discount float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	s := Summary{Count: n}
	if n < 2 {
		s.Mean = values[0]
	} else {
		s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	}
	s.StdErr = s.StdDev / math.Sqrt(float64(n))
	s.Price = discount * s.Mean
	return s
}
