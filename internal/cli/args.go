package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/alessiobaldini01/Lookback-Pricing/internal/errors"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/market"
)

// Mode selects what the run command prints.
type Mode string

const (
	ModeAll   Mode = "all"
	ModePrice Mode = "price"
	ModeGraph Mode = "graph"
)

// ParseMode parses a run mode, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "both":
		return ModeAll, nil
	case "price", "pricing":
		return ModePrice, nil
	case "graph", "sweep":
		return ModeGraph, nil
	default:
		return "", apperrors.NewValidationError("mode", s, "must be 'all', 'price' or 'graph'")
	}
}

// exactArgs is cobra.ExactArgs reporting a bad-input error.
func exactArgs(usage ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != len(usage) {
			return apperrors.NewValidationError("arguments", len(args),
				fmt.Sprintf("expected %d arguments: %s", len(usage), strings.Join(usage, " ")))
		}
		return nil
	}
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, apperrors.NewValidationError(field, s, "not a decimal number")
	}
	return v, nil
}

func parseInt(field, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperrors.NewValidationError(field, s, "not an integer")
	}
	return v, nil
}

func parseSeed(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("seed", s, "not a non-negative integer")
	}
	return v, nil
}

// parseMarket fills kind, t, T, S0, r and sigma from six positional
// arguments.
func parseMarket(args []string, in *market.Input) error {
	kind, err := market.ParseOptionKind(args[0])
	if err != nil {
		return err
	}
	in.Kind = kind

	fields := []struct {
		name string
		dst  *float64
	}{
		{"t", &in.Valuation},
		{"T", &in.Maturity},
		{"S0", &in.Spot},
		{"r", &in.Rate},
		{"sigma", &in.Vol},
	}
	for i, f := range fields {
		if *f.dst, err = parseFloat(f.name, args[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// parseHostArgs parses KIND t T S0 r sigma N dS M seed.
func parseHostArgs(args []string) (market.Params, error) {
	var in market.Input
	if err := parseMarket(args[:6], &in); err != nil {
		return market.Params{}, err
	}

	var err error
	if in.Paths, err = parseInt("N", args[6]); err != nil {
		return market.Params{}, err
	}
	if in.SpotStep, err = parseFloat("dS", args[7]); err != nil {
		return market.Params{}, err
	}
	if in.Points, err = parseInt("M", args[8]); err != nil {
		return market.Params{}, err
	}
	if in.Seed, err = parseSeed(args[9]); err != nil {
		return market.Params{}, err
	}
	return market.NewParams(in)
}
