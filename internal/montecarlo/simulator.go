// Package montecarlo simulates geometric Brownian motion paths with
// antithetic variates.
package montecarlo

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	apperrors "github.com/alessiobaldini01/Lookback-Pricing/internal/errors"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/market"
)

// DaysPerYear is the step count of one simulated year.
const DaysPerYear = 365.0

// Simulator owns a fully simulated path matrix and its time grid.
// Nothing is mutated after New returns.
type Simulator struct {
	params   market.Params
	dt       float64
	steps    int
	paths    *mat.Dense
	timeGrid []float64
}

// New simulates params.Paths() trajectories of params.Horizon() years in
// daily steps. It fails with ErrInvalidDomain when the horizon floors to
// zero whole days.
func New(params market.Params) (*Simulator, error) {
	steps := int(params.Horizon() * DaysPerYear)
	if steps <= 0 {
		return nil, apperrors.NewDomainError(params.Valuation(), params.Maturity(), steps)
	}

	s := &Simulator{
		params: params,
		dt:     1.0 / DaysPerYear,
		steps:  steps,
	}
	s.buildTimeGrid()
	s.simulate()
	return s, nil
}

func (s *Simulator) buildTimeGrid() {
	s.timeGrid = make([]float64, s.steps+1)
	for k := range s.timeGrid {
		s.timeGrid[k] = s.params.Valuation() + float64(k)*s.dt
	}
}

func (s *Simulator) simulate() {
	n := s.params.Paths()
	s.paths = mat.NewDense(n, s.steps+1, nil)

	drift, diffusion := s.Increments()
	src := &rand.PCGSource{}
	src.Seed(s.params.Seed())
	normal := rand.New(src)
	spot := s.params.Spot()

	// Pairs share one draw per step, negated on the odd row.
	for i := 0; i+1 < n; i += 2 {
		up := s.paths.RawRowView(i)
		down := s.paths.RawRowView(i + 1)
		up[0], down[0] = spot, spot
		for k := 1; k <= s.steps; k++ {
			z := normal.NormFloat64()
			up[k] = up[k-1] * math.Exp(drift+diffusion*z)
			down[k] = down[k-1] * math.Exp(drift-diffusion*z)
		}
	}

	if n%2 == 1 {
		last := s.paths.RawRowView(n - 1)
		last[0] = spot
		for k := 1; k <= s.steps; k++ {
			last[k] = last[k-1] * math.Exp(drift+diffusion*normal.NormFloat64())
		}
	}
}

// Increments returns the per-step drift (r - sigma^2/2)dt and the
// diffusion scale sigma*sqrt(dt).
func (s *Simulator) Increments() (drift, diffusion float64) {
	vol := s.params.Vol()
	drift = (s.params.Rate() - 0.5*vol*vol) * s.dt
	diffusion = vol * math.Sqrt(s.dt)
	return drift, diffusion
}

// Params returns the parameters the paths were simulated from.
func (s *Simulator) Params() market.Params { return s.params }

// Rows returns the number of simulated paths.
func (s *Simulator) Rows() int { return s.params.Paths() }

// Steps returns Nt, the number of daily steps per path.
func (s *Simulator) Steps() int { return s.steps }

// Dt returns the step length in years.
func (s *Simulator) Dt() float64 { return s.dt }

// Path returns row i of the path matrix. The slice aliases the matrix and
// must not be modified.
func (s *Simulator) Path(i int) []float64 {
	return s.paths.RawRowView(i)
}

// Paths returns a read-only view of the N x (Nt+1) path matrix.
func (s *Simulator) Paths() mat.Matrix {
	return readOnly{s.paths}
}

// TimeGrid returns a copy of the Nt+1 time points co-indexed with columns.
func (s *Simulator) TimeGrid() []float64 {
	out := make([]float64, len(s.timeGrid))
	copy(out, s.timeGrid)
	return out
}

// readOnly hides the *mat.Dense behind the mat.Matrix interface so callers
// cannot type-assert their way to the mutable matrix.
type readOnly struct {
	m *mat.Dense
}

func (r readOnly) Dims() (int, int)    { return r.m.Dims() }
func (r readOnly) At(i, j int) float64 { return r.m.At(i, j) }
func (r readOnly) T() mat.Matrix       { return mat.Transpose{Matrix: r} }
