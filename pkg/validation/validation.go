// Package validation checks values that arrive from outside the calculator
// core: CLI flags, config files and API requests.
package validation

import (
	"fmt"

	"github.com/iwvelando/home-cost-calculator/pkg/constants"
	"github.com/iwvelando/home-cost-calculator/pkg/mortgage"
)

// MaxFieldDecimals bounds the fractional digit limit a caller may request.
const MaxFieldDecimals = 10

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateMaxDecimals checks a requested fractional digit limit.
func ValidateMaxDecimals(maxDecimals int) error {
	if maxDecimals < 0 || maxDecimals > MaxFieldDecimals {
		return fmt.Errorf("maxDecimals must be between 0 and %d, got %d", MaxFieldDecimals, maxDecimals)
	}
	return nil
}

// ValidateLoanTerm checks a loan term in years. With enumerated set only
// mortgage.LoanTermChoices are allowed; otherwise any non-negative term is.
func ValidateLoanTerm(years int, enumerated bool) error {
	if years < 0 {
		return fmt.Errorf("loan term must not be negative, got %d", years)
	}
	if enumerated && !mortgage.IsLoanTermChoice(years) {
		return fmt.Errorf("loan term must be one of %v, got %d", mortgage.LoanTermChoices, years)
	}
	return nil
}
