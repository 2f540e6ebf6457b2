package market

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alessiobaldini01/Lookback-Pricing/internal/errors"
)

func validInput() Input {
	return Input{
		Kind:      Call,
		Valuation: 0,
		Maturity:  1,
		Spot:      100,
		Rate:      0.05,
		Vol:       0.2,
		Paths:     1000,
		SpotStep:  1,
		Points:    20,
		Seed:      42,
	}
}

func TestParseOptionKind(t *testing.T) {
	for _, s := range []string{"call", "CALL", "cAlL", " call "} {
		k, err := ParseOptionKind(s)
		require.NoError(t, err, s)
		assert.Equal(t, Call, k)
	}
	for _, s := range []string{"put", "PUT", "Put"} {
		k, err := ParseOptionKind(s)
		require.NoError(t, err, s)
		assert.Equal(t, Put, k)
	}
	for _, s := range []string{"", "calls", "straddle", "c"} {
		_, err := ParseOptionKind(s)
		assert.ErrorIs(t, err, apperrors.ErrInvalidOptionKind, s)
	}
}

func TestNewParamsValid(t *testing.T) {
	p, err := NewParams(validInput())
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.Spot())
	assert.Equal(t, 1.0, p.Horizon())
	assert.Equal(t, uint64(42), p.Seed())
	assert.Equal(t, "call", p.Kind().String())
}

func TestNewParamsRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"negative t", func(in *Input) { in.Valuation = -0.1 }},
		{"T before t", func(in *Input) { in.Valuation = 0.5; in.Maturity = 0.4 }},
		{"negative spot", func(in *Input) { in.Spot = -1 }},
		{"negative vol", func(in *Input) { in.Vol = -0.01 }},
		{"zero paths", func(in *Input) { in.Paths = 0 }},
		{"zero dS", func(in *Input) { in.SpotStep = 0 }},
		{"negative M", func(in *Input) { in.Points = -3 }},
		{"NaN rate", func(in *Input) { in.Rate = math.NaN() }},
		{"infinite spot", func(in *Input) { in.Spot = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := NewParams(in)
			assert.ErrorIs(t, err, apperrors.ErrInvalidParameter)
		})
	}
}

func TestNewParamsAcceptsBoundaries(t *testing.T) {
	in := validInput()
	in.Spot = 0
	in.Vol = 0
	in.Valuation = 1
	in.Maturity = 1
	in.Rate = -0.01
	_, err := NewParams(in)
	assert.NoError(t, err)
}

func TestWithRevalidates(t *testing.T) {
	p, err := NewParams(validInput())
	require.NoError(t, err)

	bumped, err := p.WithRate(0.0501)
	require.NoError(t, err)
	assert.Equal(t, 0.0501, bumped.Rate())
	assert.Equal(t, 0.05, p.Rate(), "original must not change")

	_, err = p.WithVol(-1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidParameter)

	_, err = p.WithValuation(2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidParameter)

	assert.Equal(t, uint64(7), p.WithSeed(7).Seed())
}

func TestSpotGrid(t *testing.T) {
	in := validInput()
	in.Spot = 100
	in.SpotStep = 2.5
	in.Points = 4
	p, err := NewParams(in)
	require.NoError(t, err)

	assert.Equal(t, []float64{95, 97.5, 100, 102.5, 105}, p.SpotGrid())
	lo, hi := p.SpotRange()
	assert.Equal(t, 95.0, lo)
	assert.Equal(t, 105.0, hi)
}

func TestSpotGridFlooredAtZero(t *testing.T) {
	in := validInput()
	in.Spot = 3
	in.SpotStep = 1
	in.Points = 10
	p, err := NewParams(in)
	require.NoError(t, err)

	grid := p.SpotGrid()
	require.Len(t, grid, 11)
	assert.Equal(t, 0.0, grid[0])
	assert.Equal(t, 10.0, grid[10])
}
