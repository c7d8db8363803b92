package mortgage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/home-cost-calculator/pkg/constants"
)

// ErrUnknownPeriod is returned by ParsePeriod for anything other than
// monthly or yearly.
var ErrUnknownPeriod = errors.New("unknown period")

// Period selects whether figures are reported per month or per year.
type Period string

const (
	Monthly Period = constants.PeriodMonthly
	Yearly  Period = constants.PeriodYearly
)

// Multiplier scales a monthly figure to the period.
func (p Period) Multiplier() float64 {
	if p == Yearly {
		return constants.MonthsPerYear
	}
	return 1
}

// Label is the capitalised period name used in headings ("Monthly Breakdown").
func (p Period) Label() string {
	if p == Yearly {
		return "Yearly"
	}
	return "Monthly"
}

// ParsePeriod reads a period name. An empty string means monthly.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", constants.PeriodMonthly:
		return Monthly, nil
	case constants.PeriodYearly:
		return Yearly, nil
	}
	return "", fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownPeriod, s, constants.PeriodMonthly, constants.PeriodYearly)
}
