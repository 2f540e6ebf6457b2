package pricing

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alessiobaldini01/Lookback-Pricing/internal/errors"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/market"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/models"
)

func sweepParams(t *testing.T) market.Params {
	return testParams(t, func(in *market.Input) {
		in.Paths = 200
		in.SpotStep = 5
		in.Points = 6
		in.Seed = 7
	})
}

func TestSweepFollowsGridAndSeeds(t *testing.T) {
	params := sweepParams(t)
	points, err := Sweep(context.Background(), params, SweepConfig{Workers: 3, Logger: zerolog.Nop()})
	require.NoError(t, err)

	grid := params.SpotGrid()
	require.Len(t, points, len(grid))
	for i, pt := range points {
		assert.Equal(t, grid[i], pt.Spot)

		p, err := params.WithSpot(grid[i])
		require.NoError(t, err)
		inst, err := New(p.WithSeed(7 + uint64(i)))
		require.NoError(t, err)
		delta, err := inst.Delta()
		require.NoError(t, err)

		assert.Equal(t, inst.Price(), pt.Price, "point %d", i)
		assert.Equal(t, delta, pt.Delta, "point %d", i)
	}
}

func TestSweepIndependentOfWorkers(t *testing.T) {
	params := sweepParams(t)
	serial, err := Sweep(context.Background(), params, SweepConfig{Workers: 1, Logger: zerolog.Nop()})
	require.NoError(t, err)
	parallel, err := Sweep(context.Background(), params, SweepConfig{Workers: 8, Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.Equal(t, serial, parallel)
}

func TestSweepBumpMethod(t *testing.T) {
	params := sweepParams(t)
	pathwise, err := Sweep(context.Background(), params, SweepConfig{Workers: 2, Logger: zerolog.Nop()})
	require.NoError(t, err)
	bumped, err := Sweep(context.Background(), params, SweepConfig{
		Workers: 2,
		Method:  models.GreeksBump,
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)

	for i := range pathwise {
		assert.Equal(t, pathwise[i].Price, bumped[i].Price)
		assert.InEpsilon(t, pathwise[i].Delta, bumped[i].Delta, 1e-8)
	}
}

func TestSweepPropagatesDomainError(t *testing.T) {
	params := testParams(t, func(in *market.Input) { in.Maturity = 0.5 / 365.0 })
	_, err := Sweep(context.Background(), params, SweepConfig{Logger: zerolog.Nop()})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDomain)
}

func TestSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Sweep(ctx, sweepParams(t), SweepConfig{Workers: 1, Logger: zerolog.Nop()})
	assert.ErrorIs(t, err, context.Canceled)
}
