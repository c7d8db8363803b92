// Package field turns free-form keystroke text into a numeric value plus
// the string shown back in the input. It holds no state of its own: callers
// keep the current NumericField and pass it to Apply with every edit.
package field

import (
	"strconv"
	"strings"

	"github.com/iwvelando/home-cost-calculator/pkg/constants"
	"github.com/iwvelando/home-cost-calculator/pkg/format"
	"github.com/iwvelando/home-cost-calculator/pkg/mathutil"
)

// QuickDownPaymentPercentages are the shortcut shares of the house price
// offered for the down payment.
var QuickDownPaymentPercentages = []float64{5, 10, 20}

// NumericField is the state of one numeric text input.
type NumericField struct {
	Value        float64 `json:"value" yaml:"value"`
	DisplayValue string  `json:"displayValue" yaml:"displayValue"`
}

// Config constrains a field. A nil FormatFn uses format.Group.
type Config struct {
	MaxDecimals int
	FormatFn    func(string) string
}

// MoneyConfig is used for price, down payment and insurance fields.
func MoneyConfig() Config {
	return Config{MaxDecimals: constants.MoneyMaxDecimals}
}

// RateConfig is used for interest and tax rate fields.
func RateConfig() Config {
	return Config{MaxDecimals: constants.RateMaxDecimals}
}

func (c Config) formatter() func(string) string {
	if c.FormatFn == nil {
		return format.Group
	}
	return c.FormatFn
}

// New returns the starting state for a field. A zero value shows an empty
// input; anything else is shown ungrouped.
func New(initial float64) NumericField {
	if initial == 0 {
		return NumericField{}
	}
	return NumericField{Value: initial, DisplayValue: format.Plain(initial)}
}

// Apply computes the field state after the user changes the input text to
// raw. Edits with more than one decimal point, too many fractional digits,
// or an unparseable number leave previous untouched.
func Apply(previous NumericField, cfg Config, raw string) NumericField {
	next, ok := parse(cfg, raw)
	if !ok {
		return previous
	}
	return next
}

// Accepts reports whether Apply would take raw rather than keep the
// previous state.
func Accepts(cfg Config, raw string) bool {
	_, ok := parse(cfg, raw)
	return ok
}

func parse(cfg Config, raw string) (NumericField, bool) {
	numeric := stripNonNumeric(raw)
	if numeric == "" {
		return NumericField{}, true
	}

	parts := strings.Split(numeric, ".")
	if len(parts) > 2 {
		return NumericField{}, false
	}
	if len(parts) == 2 && len(parts[1]) > cfg.MaxDecimals {
		return NumericField{}, false
	}

	if numeric == "." {
		return NumericField{Value: 0, DisplayValue: constants.DecimalMarker}, true
	}

	value, err := strconv.ParseFloat(numeric, 64)
	if err != nil || !mathutil.IsFinite(value) {
		return NumericField{}, false
	}

	return NumericField{Value: value, DisplayValue: cfg.formatter()(numeric)}, true
}

// SetFromPercentageOf sets the field to percentage percent of base as if the
// result had been typed. A result whose decimal expansion has more digits
// than cfg allows is rejected like any other edit.
func SetFromPercentageOf(previous NumericField, cfg Config, base, percentage float64) NumericField {
	return Apply(previous, cfg, PercentageText(base, percentage))
}

// PercentageText is the text SetFromPercentageOf feeds through Apply.
func PercentageText(base, percentage float64) string {
	return format.Plain(mathutil.ApplyPercentage(base, percentage))
}

func stripNonNumeric(raw string) string {
	var builder strings.Builder
	builder.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c >= '0' && c <= '9') || c == '.' {
			builder.WriteByte(c)
		}
	}
	return builder.String()
}
