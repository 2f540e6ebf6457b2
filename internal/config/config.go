// Package config provides configuration management for the lookback pricer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/alessiobaldini01/Lookback-Pricing/internal/errors"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/logging"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/pricing"
)

// EnvPrefix prefixes environment overrides, e.g. LOOKBACK_SIMULATION_PATHS.
const EnvPrefix = "LOOKBACK"

// Config holds all application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Grid       GridConfig       `mapstructure:"grid"`
	Greeks     GreeksConfig     `mapstructure:"greeks"`
	Output     OutputConfig     `mapstructure:"output"`
	Sweep      SweepConfig      `mapstructure:"sweep"`
	Log        LogConfig        `mapstructure:"log"`
}

// SimulationConfig holds defaults for flags not given on the command line.
type SimulationConfig struct {
	Paths int    `mapstructure:"paths"`
	Seed  uint64 `mapstructure:"seed"`
}

// GridConfig holds the spot sweep grid defaults.
type GridConfig struct {
	SpotStep float64 `mapstructure:"ds"`
	Points   int     `mapstructure:"points"`
}

// GreeksConfig holds finite-difference step sizes.
type GreeksConfig struct {
	ThetaBump float64 `mapstructure:"theta_bump"` // years
	RhoBump   float64 `mapstructure:"rho_bump"`
	SpotBump  float64 `mapstructure:"spot_bump"` // relative
	VolBump   float64 `mapstructure:"vol_bump"`
	Method    string  `mapstructure:"method"` // pathwise, bump
}

// OutputConfig holds numeric output formatting.
type OutputConfig struct {
	Precision int    `mapstructure:"precision"`
	Separator string `mapstructure:"separator"`
}

// SweepConfig holds spot sweep concurrency.
type SweepConfig struct {
	Workers int `mapstructure:"workers"` // 0 = number of CPUs
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/lookback-pricer"
	}
	return filepath.Join(home, ".config", "lookback-pricer")
}

// ConfigFile returns the path of config.toml inside configDir.
func ConfigFile(configDir string) string {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return filepath.Join(configDir, "config.toml")
}

// Default returns the built-in configuration. It reads neither the
// environment nor any file.
func Default() *Config {
	bumps := pricing.DefaultBumps()
	logDefaults := logging.DefaultLogConfig()

	return &Config{
		Simulation: SimulationConfig{Paths: 10000, Seed: 42},
		Grid:       GridConfig{SpotStep: 1.0, Points: 20},
		Greeks: GreeksConfig{
			ThetaBump: bumps.Theta,
			RhoBump:   bumps.Rate,
			SpotBump:  bumps.Spot,
			VolBump:   bumps.Vol,
			Method:    "pathwise",
		},
		Output: OutputConfig{Precision: 6, Separator: ";"},
		Sweep:  SweepConfig{Workers: 4},
		Log: LogConfig{
			Level:      logDefaults.Level,
			File:       logDefaults.File,
			FilePath:   logDefaults.FilePath,
			MaxSize:    logDefaults.MaxSize,
			MaxBackups: logDefaults.MaxBackups,
			MaxAge:     logDefaults.MaxAge,
		},
	}
}

// newViper returns a viper instance seeded with Default and bound to
// LOOKBACK_* environment overrides.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	d := Default()
	v.SetDefault("simulation.paths", d.Simulation.Paths)
	v.SetDefault("simulation.seed", d.Simulation.Seed)
	v.SetDefault("grid.ds", d.Grid.SpotStep)
	v.SetDefault("grid.points", d.Grid.Points)
	v.SetDefault("greeks.theta_bump", d.Greeks.ThetaBump)
	v.SetDefault("greeks.rho_bump", d.Greeks.RhoBump)
	v.SetDefault("greeks.spot_bump", d.Greeks.SpotBump)
	v.SetDefault("greeks.vol_bump", d.Greeks.VolBump)
	v.SetDefault("greeks.method", d.Greeks.Method)
	v.SetDefault("output.precision", d.Output.Precision)
	v.SetDefault("output.separator", d.Output.Separator)
	v.SetDefault("sweep.workers", d.Sweep.Workers)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.file_path", d.Log.FilePath)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config.toml is not an error: defaults and environment overrides apply.
// A malformed override fails here rather than at use.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := newViper()
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config.toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, format, args...)
	}

	if c.Simulation.Paths <= 0 {
		return invalid("simulation.paths must be positive")
	}
	if c.Grid.SpotStep <= 0 {
		return invalid("grid.ds must be positive")
	}
	if c.Grid.Points <= 0 {
		return invalid("grid.points must be positive")
	}
	if c.Greeks.ThetaBump <= 0 || c.Greeks.RhoBump <= 0 || c.Greeks.SpotBump <= 0 || c.Greeks.VolBump <= 0 {
		return invalid("greeks bumps must be positive")
	}
	if c.Greeks.Method != "pathwise" && c.Greeks.Method != "bump" {
		return invalid("invalid greeks.method: %s (must be 'pathwise' or 'bump')", c.Greeks.Method)
	}
	if c.Output.Precision < 0 || c.Output.Precision > 15 {
		return invalid("output.precision must be between 0 and 15")
	}
	if c.Output.Separator == "" {
		return invalid("output.separator must not be empty")
	}
	if c.Sweep.Workers < 0 {
		return invalid("sweep.workers must be non-negative")
	}
	return nil
}

// Bumps returns the finite-difference steps as pricing options.
func (c *Config) Bumps() pricing.Bumps {
	return pricing.Bumps{
		Theta: c.Greeks.ThetaBump,
		Rate:  c.Greeks.RhoBump,
		Spot:  c.Greeks.SpotBump,
		Vol:   c.Greeks.VolBump,
	}
}

// LogConfig returns the logging section as a logging configuration.
func (c *Config) LogConfig() logging.LogConfig {
	return logging.LogConfig{
		Level:      c.Log.Level,
		Console:    true,
		File:       c.Log.File,
		FilePath:   c.Log.FilePath,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
	}
}
