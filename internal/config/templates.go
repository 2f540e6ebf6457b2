package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Lookback Pricer Configuration

[simulation]
# Monte Carlo paths used when --paths is not given
paths = 10000
# Seed used when --seed is not given
seed = 42

[grid]
# Spot step and number of steps of the sweep grid centered on S0
ds = 1.0
points = 20

[greeks]
# Valuation-time step for theta, in years (one trading day)
theta_bump = 0.003968253968253968
# Rate step for rho
rho_bump = 0.0001
# Relative spot step for bumped delta/gamma
spot_bump = 0.01
# Volatility step used when sigma = 0
vol_bump = 0.01
# Delta/gamma estimator: "pathwise" or "bump"
method = "pathwise"

[output]
# Fixed decimal digits of numeric fields
precision = 6
# Field separator
separator = ";"

[sweep]
# Concurrent sweep points (0 = number of CPUs)
workers = 4

[log]
# Log level: debug, info, warn, error (console output goes to stderr)
level = "warn"
# Also write a rotating log file
file = false
# file_path = "/var/log/lookback/lookback.log"
max_size = 20
max_backups = 3
max_age = 30
`

// WriteTemplate writes a commented config.toml into configDir. An existing
// file is left untouched unless overwrite is set.
func WriteTemplate(configDir string, overwrite bool) (string, error) {
	path := ConfigFile(configDir)

	if _, err := os.Stat(path); err == nil && !overwrite {
		return path, fmt.Errorf("%s already exists", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return path, fmt.Errorf("writing config template: %w", err)
	}

	return path, nil
}
