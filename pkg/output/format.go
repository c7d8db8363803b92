// Package output provides utilities for formatting and displaying calculator results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/home-cost-calculator/internal/calculator"
	"github.com/iwvelando/home-cost-calculator/pkg/format"
)

// PrettyFormat writes a human-readable rather than machine-readable breakdown.
func PrettyFormat(w io.Writer, results []calculator.Result) {
	for i, result := range results {
		b := result.Breakdown
		fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "! %s\n", warning)
		}
		fmt.Fprintf(w, "%s Breakdown (%d year loan)\n", result.Inputs.Period.Label(), result.Inputs.LoanTermYears)
		fmt.Fprintf(w, "Down Payment Percentage: %s%%\n", format.Number(b.DownPaymentPct))
		fmt.Fprintf(w, "Loan Amount:             %s\n", format.Currency(b.LoanAmount))
		fmt.Fprintf(w, "Mortgage:                %s\n", format.Currency(b.MortgagePayment))
		fmt.Fprintf(w, "Tax:                     %s\n", format.Currency(b.TaxPayment))
		fmt.Fprintf(w, "Insurance:               %s\n", format.Currency(b.InsurancePayment))
		fmt.Fprintf(w, "Total Payment:           %s\n", format.Currency(b.TotalPayment))
		if len(result.Notes) > 0 {
			fmt.Fprintf(w, "Notes: %s\n", strings.Join(result.Notes, "; "))
		}
		if len(results) > 1 && i < len(results)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

// CsvHeader is the first row written by CsvFormat.
var CsvHeader = []string{
	"scenario", "period", "loan term (years)", "down payment (%)", "loan amount",
	"mortgage payment", "tax payment", "insurance payment", "total payment", "notes",
}

// CsvFormat writes one comma-separated row per scenario.
func CsvFormat(w io.Writer, results []calculator.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CsvHeader); err != nil {
		return err
	}
	for _, result := range results {
		b := result.Breakdown
		row := []string{
			result.Name,
			string(result.Inputs.Period),
			strconv.Itoa(result.Inputs.LoanTermYears),
			fmt.Sprintf("%.2f", b.DownPaymentPct),
			fmt.Sprintf("%.2f", b.LoanAmount),
			fmt.Sprintf("%.2f", b.MortgagePayment),
			fmt.Sprintf("%.2f", b.TaxPayment),
			fmt.Sprintf("%.2f", b.InsurancePayment),
			fmt.Sprintf("%.2f", b.TotalPayment),
			strings.Join(append(append([]string(nil), result.Warnings...), result.Notes...), "; "),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns CsvFormat output as a string.
func CsvString(results []calculator.Result) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		return ""
	}
	return buf.String()
}
