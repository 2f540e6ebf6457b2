package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alessiobaldini01/Lookback-Pricing/internal/config"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/logging"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-01-15"
)

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	ConfigDir string
}

// NewRootCmd creates the root command for the CLI. cfg and logger are used
// until the configuration directory has been read in PersistentPreRunE.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "lookback",
		Short: "Monte Carlo pricer for floating-strike lookback options",
		Long: `lookback prices European floating-strike lookback calls and puts by
Monte Carlo simulation of geometric Brownian motion and reports the price
together with delta, gamma, theta, rho and vega.

Numeric results go to stdout as semicolon-separated fixed-point fields;
diagnostics go to stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("config")
			if dir == "" {
				dir = config.DefaultConfigDir()
			}
			app.ConfigDir = dir

			// config init must work even when the existing file is broken
			if cmd.Name() != "init" {
				cfg, err := config.Load(dir)
				if err != nil {
					return err
				}
				app.Config = cfg
				app.Logger = logging.NewLoggerWithConfig(cfg.LogConfig())
			}

			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/lookback-pricer)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addPricingCommands(rootCmd, app)

	return rootCmd
}

// runLogged runs fn and logs its duration and outcome.
func (a *App) runLogged(command string, fn func() error) error {
	start := time.Now()
	err := fn()
	logging.LogRun(a.Logger, command, time.Since(start), err)
	return err
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				if err := output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				}); err != nil {
					return err
				}
			} else {
				output.Printf("Lookback Pricer v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
			return output.Flush()
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				if err := output.JSON(app.Config); err != nil {
					return err
				}
			} else {
				showConfig(output, app.Config)
			}
			return output.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			path := config.ConfigFile(app.ConfigDir)
			if output.IsJSON() {
				if err := output.JSON(map[string]string{"path": path}); err != nil {
					return err
				}
			} else {
				output.Println(path)
			}
			return output.Flush()
		},
	})

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented configuration file with the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			force, _ := cmd.Flags().GetBool("force")
			path, err := config.WriteTemplate(app.ConfigDir, force)
			if err != nil {
				return err
			}
			output.Success("Wrote %s", path)
			return output.Flush()
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing config.toml")
	cmd.AddCommand(initCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			if output.IsJSON() {
				if err := output.JSON(map[string]bool{"valid": true}); err != nil {
					return err
				}
			} else {
				output.Success("Configuration is valid")
			}
			return output.Flush()
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	table := NewTable(output, "KEY", "VALUE")
	table.AddRow("simulation.paths", fmt.Sprint(cfg.Simulation.Paths))
	table.AddRow("simulation.seed", fmt.Sprint(cfg.Simulation.Seed))
	table.AddRow("grid.ds", fmt.Sprint(cfg.Grid.SpotStep))
	table.AddRow("grid.points", fmt.Sprint(cfg.Grid.Points))
	table.AddRow("greeks.theta_bump", fmt.Sprint(cfg.Greeks.ThetaBump))
	table.AddRow("greeks.rho_bump", fmt.Sprint(cfg.Greeks.RhoBump))
	table.AddRow("greeks.spot_bump", fmt.Sprint(cfg.Greeks.SpotBump))
	table.AddRow("greeks.vol_bump", fmt.Sprint(cfg.Greeks.VolBump))
	table.AddRow("greeks.method", cfg.Greeks.Method)
	table.AddRow("output.precision", fmt.Sprint(cfg.Output.Precision))
	table.AddRow("output.separator", cfg.Output.Separator)
	table.AddRow("sweep.workers", fmt.Sprint(cfg.Sweep.Workers))
	table.AddRow("log.level", cfg.Log.Level)
	table.AddRow("log.file", fmt.Sprint(cfg.Log.File))
	table.Render()
}
