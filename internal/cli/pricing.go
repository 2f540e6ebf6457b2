package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alessiobaldini01/Lookback-Pricing/internal/logging"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/market"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/models"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/pricing"
)

var marketUsage = []string{"KIND", "t", "T", "S0", "r", "sigma"}

// addPricingCommands adds the valuation commands.
func addPricingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newRunCmd(app))
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newSweepCmd(app))
}

func newRunCmd(app *App) *cobra.Command {
	usage := append([]string{"MODE"}, marketUsage...)
	usage = append(usage, "N", "dS", "M", "seed")

	cmd := &cobra.Command{
		Use:   "run MODE KIND t T S0 r sigma N dS M seed",
		Short: "Positional interface for spreadsheet hosts",
		Long: `Price a lookback option from eleven positional arguments.

MODE is all, price or graph (case-insensitive). price prints one line
price;delta;gamma;theta;rho;vega. graph prints spot;price;delta for each of
the M+1 spots of the grid centered on S0 with step dS, re-seeding point i
with seed+i. all prints the price line followed by the graph lines.`,
		Example: "  lookback run all call 0 1 100 0.05 0.2 10000 1 20 42",
		Args:    exactArgs(usage...),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runLogged("run", func() error {
				mode, err := ParseMode(args[0])
				if err != nil {
					return err
				}
				params, err := parseHostArgs(args[1:])
				if err != nil {
					return err
				}
				method := models.GreeksMethod(app.Config.Greeks.Method)

				output := NewOutput(cmd)
				var result struct {
					Valuation *models.Valuation   `json:"valuation,omitempty"`
					Sweep     []models.SweepPoint `json:"sweep,omitempty"`
				}

				if mode != ModeGraph {
					v, err := app.value(params, method)
					if err != nil {
						return err
					}
					result.Valuation = &v
				}
				if mode != ModePrice {
					points, err := app.sweep(cmd.Context(), params, method, app.Config.Sweep.Workers)
					if err != nil {
						return err
					}
					result.Sweep = points
				}

				if output.IsJSON() {
					if err := output.JSON(result); err != nil {
						return err
					}
					return output.Flush()
				}
				if result.Valuation != nil {
					app.printValuation(output, *result.Valuation)
				}
				app.printSweep(output, result.Sweep)
				return output.Flush()
			})
		},
	}
	// Positionals such as a negative rate must not parse as shorthand flags.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price KIND t T S0 r sigma",
		Short: "Price an option and compute its Greeks",
		Long: `Price a lookback option and print price;delta;gamma;theta;rho;vega.

With --json the output also carries the payoff statistics and the
Black-Scholes price of the vanilla option struck at S0. Flags go before
the positional arguments.`,
		Example: "  lookback price --paths 50000 --seed 7 put 0 0.5 100 -0.01 0.25",
		Args:    exactArgs(marketUsage...),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runLogged("price", func() error {
				params, err := app.flagParams(cmd, args)
				if err != nil {
					return err
				}
				v, err := app.value(params, app.greeksMethod(cmd))
				if err != nil {
					return err
				}

				output := NewOutput(cmd)
				if output.IsJSON() {
					if err := output.JSON(v); err != nil {
						return err
					}
				} else {
					app.printValuation(output, v)
				}
				return output.Flush()
			})
		},
	}
	addSimulationFlags(cmd)
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newSweepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep KIND t T S0 r sigma",
		Short: "Price across a grid of spots",
		Long: `Price a lookback option at the --points+1 spots of the grid centered on
S0 with step --ds and print spot;price;delta per point. Point i uses
seed+i, so the output does not depend on --workers. Flags go before the
positional arguments.`,
		Args: exactArgs(marketUsage...),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runLogged("sweep", func() error {
				params, err := app.flagParams(cmd, args)
				if err != nil {
					return err
				}
				workers := app.Config.Sweep.Workers
				if cmd.Flags().Changed("workers") {
					workers, _ = cmd.Flags().GetInt("workers")
				}
				points, err := app.sweep(cmd.Context(), params, app.greeksMethod(cmd), workers)
				if err != nil {
					return err
				}

				output := NewOutput(cmd)
				if output.IsJSON() {
					if err := output.JSON(points); err != nil {
						return err
					}
				} else {
					app.printSweep(output, points)
				}
				return output.Flush()
			})
		},
	}
	addSimulationFlags(cmd)
	cmd.Flags().Int("workers", 0, "concurrent sweep points (default from config, 0 = CPUs)")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().Int("paths", 0, "Monte Carlo paths (default from config)")
	cmd.Flags().Uint64("seed", 0, "random seed (default from config)")
	cmd.Flags().Float64("ds", 0, "spot grid step (default from config)")
	cmd.Flags().Int("points", 0, "spot grid steps (default from config)")
	cmd.Flags().Bool("bump-greeks", false, "finite-difference delta instead of pathwise")
}

// flagParams builds parameters from the six market arguments, taking the
// simulation settings from flags or, when unset, from the configuration.
func (a *App) flagParams(cmd *cobra.Command, args []string) (market.Params, error) {
	in := market.Input{
		Paths:    a.Config.Simulation.Paths,
		Seed:     a.Config.Simulation.Seed,
		SpotStep: a.Config.Grid.SpotStep,
		Points:   a.Config.Grid.Points,
	}
	if err := parseMarket(args, &in); err != nil {
		return market.Params{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("paths") {
		in.Paths, _ = flags.GetInt("paths")
	}
	if flags.Changed("seed") {
		in.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("ds") {
		in.SpotStep, _ = flags.GetFloat64("ds")
	}
	if flags.Changed("points") {
		in.Points, _ = flags.GetInt("points")
	}
	return market.NewParams(in)
}

func (a *App) greeksMethod(cmd *cobra.Command) models.GreeksMethod {
	if bump, _ := cmd.Flags().GetBool("bump-greeks"); bump {
		return models.GreeksBump
	}
	return models.GreeksMethod(a.Config.Greeks.Method)
}

func (a *App) value(params market.Params, method models.GreeksMethod) (models.Valuation, error) {
	logger := logging.WithKind(logging.WithOperation(a.Logger, "price"), params.Kind().String())

	inst, err := pricing.New(params, pricing.WithBumps(a.Config.Bumps()))
	if err != nil {
		return models.Valuation{}, err
	}
	v, err := inst.Valuation(method)
	if err != nil {
		return models.Valuation{}, err
	}
	logging.LogValuation(logger, v)
	return v, nil
}

func (a *App) sweep(ctx context.Context, params market.Params, method models.GreeksMethod, workers int) ([]models.SweepPoint, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return pricing.Sweep(ctx, params, pricing.SweepConfig{
		Workers: workers,
		Bumps:   a.Config.Bumps(),
		Method:  method,
		Logger:  logging.WithOperation(a.Logger, "sweep"),
	})
}

func (a *App) printValuation(output *Output, v models.Valuation) {
	output.Line(a.Config.Output.Separator, ValuationFields(v, a.Config.Output.Precision)...)
}

func (a *App) printSweep(output *Output, points []models.SweepPoint) {
	for _, p := range points {
		output.Line(a.Config.Output.Separator, SweepFields(p, a.Config.Output.Precision)...)
	}
}
