package pricing

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/alessiobaldini01/Lookback-Pricing/internal/errors"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/logging"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/market"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/models"
)

// SweepConfig controls a spot sweep.
type SweepConfig struct {
	Workers int // 0 means runtime.NumCPU()
	Bumps   Bumps
	Method  models.GreeksMethod
	Logger  zerolog.Logger
}

// Sweep prices the option at every point of params.SpotGrid(). Point i is
// simulated with seed params.Seed()+i and otherwise identical parameters,
// so results depend only on the grid position, never on scheduling.
func Sweep(ctx context.Context, params market.Params, cfg SweepConfig) ([]models.SweepPoint, error) {
	grid := params.SpotGrid()
	out := make([]models.SweepPoint, len(grid))

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, spot := range grid {
		i, spot := i, spot
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			point, err := sweepPoint(params, i, spot, cfg)
			if err != nil {
				return apperrors.Wrapf(err, "sweep point %d (spot %g)", i, spot)
			}
			out[i] = point
			logging.LogSweepPoint(cfg.Logger, i, point)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func sweepPoint(params market.Params, i int, spot float64, cfg SweepConfig) (models.SweepPoint, error) {
	p, err := params.WithSpot(spot)
	if err != nil {
		return models.SweepPoint{}, err
	}
	p = p.WithSeed(params.Seed() + uint64(i))

	inst, err := New(p, WithBumps(cfg.Bumps))
	if err != nil {
		return models.SweepPoint{}, err
	}

	var delta float64
	if cfg.Method == models.GreeksBump {
		delta, err = inst.DeltaBump()
	} else {
		delta, err = inst.Delta()
	}
	if err != nil {
		return models.SweepPoint{}, err
	}
	return models.SweepPoint{Spot: spot, Price: inst.Price(), Delta: delta}, nil
}
