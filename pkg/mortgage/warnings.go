package mortgage

import (
	"fmt"

	"github.com/iwvelando/home-cost-calculator/pkg/format"
)

// MissingPriceWarning is shown until a house price is entered.
const MissingPriceWarning = "Don't forget to enter the price of the home"

// Warnings returns hints about inputs that make the breakdown degenerate.
// They never block the calculation.
func Warnings(in Inputs) []string {
	var warnings []string

	if in.HousePrice == 0 {
		warnings = append(warnings, MissingPriceWarning)
	}
	if in.HousePrice > 0 && in.DownPayment > in.HousePrice {
		warnings = append(warnings, fmt.Sprintf("Down payment %s exceeds the house price %s",
			format.Currency(in.DownPayment), format.Currency(in.HousePrice)))
	}
	if in.LoanTermYears == 0 {
		warnings = append(warnings, "Loan term is not set; mortgage payment is 0")
	}
	if in.LoanTermYears > 0 && in.AnnualInterestRatePct == 0 && LoanAmount(in) > 0 {
		warnings = append(warnings, "Interest rate is 0; mortgage payment is 0")
	}

	return warnings
}
