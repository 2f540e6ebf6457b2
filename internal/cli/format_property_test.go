package cli

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any finite value and precision, FormatFixed should:
// 1. Print exactly precision digits after the decimal point
// 2. Round to the nearest representable value at that precision
// 3. Never print a negative zero
// 4. Agree with strconv's correctly rounded 'f' format, zero sign aside
func TestProperty_FixedPointFormatting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("FormatFixed prints exactly precision digits", prop.ForAll(
		func(v float64, precision int) bool {
			formatted := FormatFixed(v, precision)

			parts := strings.Split(formatted, ".")
			if precision == 0 {
				return len(parts) == 1
			}
			if len(parts) != 2 || len(parts[1]) != precision {
				t.Logf("Expected %d decimals for %g, got %s", precision, v, formatted)
				return false
			}
			return true
		},
		gen.Float64Range(-1e6, 1e6),
		gen.IntRange(0, 10),
	))

	properties.Property("FormatFixed rounds to nearest", prop.ForAll(
		func(v float64, precision int) bool {
			formatted := FormatFixed(v, precision)

			parsed, err := strconv.ParseFloat(formatted, 64)
			if err != nil {
				t.Logf("Unparseable output for %g: %s", v, formatted)
				return false
			}

			tol := 0.5*math.Pow(10, -float64(precision)) + 1e-9*math.Max(1, math.Abs(v))
			if math.Abs(parsed-v) > tol {
				t.Logf("Value not preserved: original=%g, formatted=%s", v, formatted)
				return false
			}
			return true
		},
		gen.Float64Range(-1e6, 1e6),
		gen.IntRange(0, 10),
	))

	properties.Property("FormatFixed never prints negative zero", prop.ForAll(
		func(v float64) bool {
			formatted := FormatFixed(v, 6)
			return formatted != "-0.000000"
		},
		gen.Float64Range(-4e-7, 4e-7),
	))

	properties.Property("FormatFixed matches strconv 'f' formatting", prop.ForAll(
		func(v float64, precision int) bool {
			want := strconv.FormatFloat(v, 'f', precision, 64)
			if strings.Trim(want, "-0.") == "" {
				want = strings.TrimPrefix(want, "-")
			}
			got := FormatFixed(v, precision)
			if got != want {
				t.Logf("FormatFixed(%g, %d) = %s, strconv gives %s", v, precision, got, want)
				return false
			}
			return true
		},
		gen.Float64Range(-1e6, 1e6),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}
