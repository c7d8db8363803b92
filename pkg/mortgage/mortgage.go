// Package mortgage computes the monthly or yearly cost of owning a home:
// down payment share, loan amount, amortizing mortgage payment, property
// tax and insurance. Every function is a pure function of Inputs; figures
// are rounded to the cent at the monthly level and again after scaling to
// the requested period.
package mortgage

import (
	"math"

	"github.com/iwvelando/home-cost-calculator/pkg/constants"
	"github.com/iwvelando/home-cost-calculator/pkg/mathutil"
)

// LoanTermChoices are the terms offered by the fixed-choice term selector.
var LoanTermChoices = []int{10, 15, 20, 30}

// Inputs holds the values entered by the user.
type Inputs struct {
	HousePrice            float64 `json:"housePrice"`
	DownPayment           float64 `json:"downPayment"`
	AnnualInsurance       float64 `json:"annualInsurance"`
	AnnualInterestRatePct float64 `json:"annualInterestRatePct"`
	AnnualTaxRatePct      float64 `json:"annualTaxRatePct"`
	LoanTermYears         int     `json:"loanTermYears"`
	Period                Period  `json:"period"`
}

// Breakdown holds the derived figures, scaled to Inputs.Period.
type Breakdown struct {
	DownPaymentPct   float64 `json:"downPaymentPct"`
	LoanAmount       float64 `json:"loanAmount"`
	MortgagePayment  float64 `json:"mortgagePayment"`
	TaxPayment       float64 `json:"taxPayment"`
	InsurancePayment float64 `json:"insurancePayment"`
	TotalPayment     float64 `json:"totalPayment"`
}

// Calculate computes every figure of the breakdown.
func Calculate(in Inputs) Breakdown {
	return Breakdown{
		DownPaymentPct:   DownPaymentPercentage(in),
		LoanAmount:       LoanAmount(in),
		MortgagePayment:  MortgagePayment(in),
		TaxPayment:       TaxPayment(in),
		InsurancePayment: InsurancePayment(in),
		TotalPayment:     TotalPayment(in),
	}
}

// IsFinite reports whether every figure is a finite number. Inputs near the
// float64 limit can overflow once scaled to cents.
func (b Breakdown) IsFinite() bool {
	for _, v := range []float64{b.DownPaymentPct, b.LoanAmount, b.MortgagePayment, b.TaxPayment, b.InsurancePayment, b.TotalPayment} {
		if !mathutil.IsFinite(v) {
			return false
		}
	}
	return true
}

// DownPaymentPercentage is the down payment as a percentage of the house
// price, or 0 when no price is entered.
func DownPaymentPercentage(in Inputs) float64 {
	return mathutil.Round(mathutil.CalculatePercentage(in.DownPayment, in.HousePrice))
}

// LoanAmount is the part of the price that is financed.
func LoanAmount(in Inputs) float64 {
	return mathutil.Round(in.HousePrice - in.DownPayment)
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the
// standard amortization formula. The result is unrounded and is NaN for a
// zero rate.
func CalculateMonthlyPayment(loanAmount, annualInterestRate float64, termMonths int) float64 {
	monthlyRate := annualInterestRate / constants.PercentageMultiplier / constants.MonthsPerYear
	power := math.Pow(1+monthlyRate, float64(termMonths))
	return loanAmount * (monthlyRate * power) / (power - 1)
}

// MortgagePayment is the principal and interest payment for the period.
// Degenerate loans (no term, nothing financed, zero rate) pay 0.
func MortgagePayment(in Inputs) float64 {
	if in.LoanTermYears == 0 {
		return 0
	}
	loanAmount := LoanAmount(in)
	if loanAmount <= 0 {
		return 0
	}

	monthly := mathutil.Round(CalculateMonthlyPayment(loanAmount, in.AnnualInterestRatePct, in.LoanTermYears*constants.MonthsPerYear))
	payment := mathutil.Round(monthly * in.Period.Multiplier())
	if !mathutil.IsFinite(payment) {
		return 0
	}
	return payment
}

// TaxPayment is the property tax for the period.
func TaxPayment(in Inputs) float64 {
	monthly := mathutil.Round(in.HousePrice * (in.AnnualTaxRatePct / constants.PercentageMultiplier) / constants.MonthsPerYear)
	return mathutil.Round(monthly * in.Period.Multiplier())
}

// InsurancePayment is the homeowner's insurance for the period.
func InsurancePayment(in Inputs) float64 {
	monthly := in.AnnualInsurance / constants.MonthsPerYear
	return mathutil.Round(monthly * in.Period.Multiplier())
}

// TotalPayment sums the period-scaled mortgage, tax and insurance payments.
func TotalPayment(in Inputs) float64 {
	return mathutil.Round(MortgagePayment(in) + TaxPayment(in) + InsurancePayment(in))
}

// IsLoanTermChoice reports whether years is one of LoanTermChoices.
func IsLoanTermChoice(years int) bool {
	for _, choice := range LoanTermChoices {
		if choice == years {
			return true
		}
	}
	return false
}
