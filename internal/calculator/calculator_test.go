package calculator

import (
	"errors"
	"strings"
	"testing"

	"github.com/iwvelando/home-cost-calculator/internal/config"
	"github.com/iwvelando/home-cost-calculator/pkg/field"
	"github.com/iwvelando/home-cost-calculator/pkg/mortgage"
	"go.uber.org/zap"
)

func text(s string) *string {
	return &s
}

func TestRunScenarioReference(t *testing.T) {
	scenario := config.Scenario{
		Name:            "starter home",
		Active:          true,
		HousePrice:      text("$300,000"),
		DownPayment:     text("60,000"),
		AnnualInsurance: text("1,200"),
		LoanTerm:        30,
	}

	result := RunScenario(zap.NewNop(), scenario)

	expected := mortgage.Breakdown{
		DownPaymentPct: 20, LoanAmount: 240000, MortgagePayment: 1077.71,
		TaxPayment: 500, InsurancePayment: 100, TotalPayment: 1677.71,
	}
	if result.Breakdown != expected {
		t.Errorf("Breakdown = %+v, expected %+v", result.Breakdown, expected)
	}
	if result.Inputs.AnnualInterestRatePct != 3.5 || result.Inputs.AnnualTaxRatePct != 2 {
		t.Errorf("expected default rates, got %+v", result.Inputs)
	}
	if result.Inputs.Period != mortgage.Monthly {
		t.Errorf("expected monthly period, got %q", result.Inputs.Period)
	}
	if got := result.Fields[config.FieldHousePrice]; got != (field.NumericField{Value: 300000, DisplayValue: "300,000"}) {
		t.Errorf("unexpected house price field %+v", got)
	}
	if got := result.Fields[config.FieldInterestRate]; got.DisplayValue != "3.5" {
		t.Errorf("expected untouched interest rate display 3.5, got %q", got.DisplayValue)
	}
	if len(result.Warnings) != 0 || len(result.Notes) != 0 {
		t.Errorf("expected no warnings or notes, got %v / %v", result.Warnings, result.Notes)
	}
}

func TestRunScenarioQuickOption(t *testing.T) {
	scenario := config.Scenario{
		Name:               "quick",
		Active:             true,
		HousePrice:         text("200000"),
		DownPayment:        text("1"),
		DownPaymentPercent: 10,
		LoanTerm:           30,
		Period:             "yearly",
	}

	result := RunScenario(zap.NewNop(), scenario)
	if result.Inputs.DownPayment != 20000 {
		t.Errorf("expected quick option to set 20000, got %v", result.Inputs.DownPayment)
	}
	if result.Fields[config.FieldDownPayment].DisplayValue != "20,000" {
		t.Errorf("unexpected down payment display %q", result.Fields[config.FieldDownPayment].DisplayValue)
	}
	if result.Inputs.Period != mortgage.Yearly {
		t.Errorf("expected yearly period, got %q", result.Inputs.Period)
	}
	if result.Breakdown.DownPaymentPct != 10 {
		t.Errorf("expected 10%% down, got %v", result.Breakdown.DownPaymentPct)
	}
}

func TestRunScenarioRejectedQuickOption(t *testing.T) {
	scenario := config.Scenario{
		Name:               "odd price",
		Active:             true,
		HousePrice:         text("123,456.78"),
		DownPayment:        text("25,000"),
		DownPaymentPercent: 5,
		LoanTerm:           30,
	}

	result := RunScenario(zap.NewNop(), scenario)
	if result.Inputs.DownPayment != 25000 {
		t.Errorf("expected down payment to stay at 25000, got %v", result.Inputs.DownPayment)
	}
	if len(result.Notes) != 1 || !strings.Contains(result.Notes[0], "rejected") {
		t.Errorf("expected a note about the rejected option, got %v", result.Notes)
	}
}

func TestRunScenarioEdits(t *testing.T) {
	scenario := config.Scenario{
		Name:       "typing",
		Active:     true,
		HousePrice: text("250000"),
		LoanTerm:   15,
		Edits: []config.Edit{
			{Field: config.FieldDownPayment, Input: "50000"},
			{Field: config.FieldDownPayment, Input: "50000.123"},
			{Field: config.FieldInterestRate, Input: "6.1.2"},
			{Field: config.FieldInterestRate, Input: "6.125"},
			{Field: config.FieldTaxRate, Input: "."},
			{Field: "closingCosts", Input: "5000"},
		},
	}

	result := RunScenario(zap.NewNop(), scenario)
	if result.Inputs.DownPayment != 50000 {
		t.Errorf("expected down payment 50000, got %v", result.Inputs.DownPayment)
	}
	if result.Inputs.AnnualInterestRatePct != 6.125 {
		t.Errorf("expected interest 6.125, got %v", result.Inputs.AnnualInterestRatePct)
	}
	if got := result.Fields[config.FieldTaxRate]; got != (field.NumericField{Value: 0, DisplayValue: "$0."}) {
		t.Errorf("expected decimal marker for tax rate, got %+v", got)
	}
	if result.Breakdown.TaxPayment != 0 {
		t.Errorf("expected zero tax, got %v", result.Breakdown.TaxPayment)
	}
	if len(result.Notes) != 3 {
		t.Errorf("expected 3 notes (two rejections, one unknown field), got %v", result.Notes)
	}
}

func TestRunScenarioNegativeTerm(t *testing.T) {
	result := RunScenario(nil, config.Scenario{Name: "neg", Active: true, HousePrice: text("100000"), LoanTerm: -10})
	if result.Inputs.LoanTermYears != 0 {
		t.Errorf("expected term clamped to 0, got %d", result.Inputs.LoanTermYears)
	}
	if result.Breakdown.MortgagePayment != 0 {
		t.Errorf("expected no mortgage payment, got %v", result.Breakdown.MortgagePayment)
	}
}

func TestRun(t *testing.T) {
	conf := config.Configuration{Scenarios: []config.Scenario{
		{Name: "a", Active: true, HousePrice: text("300000"), LoanTerm: 30},
		{Name: "b", Active: false},
		{Name: "c", Active: true, LoanTerm: 10},
	}}

	results, err := Run(zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 2 || results[0].Name != "a" || results[1].Name != "c" {
		t.Fatalf("unexpected results %+v", results)
	}
	if len(results[1].Warnings) == 0 || results[1].Warnings[0] != mortgage.MissingPriceWarning {
		t.Errorf("expected missing price warning, got %v", results[1].Warnings)
	}

	_, err = Run(zap.NewNop(), config.Configuration{Scenarios: []config.Scenario{{Name: "off"}}})
	if !errors.Is(err, ErrNoScenarios) {
		t.Errorf("expected ErrNoScenarios, got %v", err)
	}
}

func TestFormUnknownField(t *testing.T) {
	form := NewForm()
	if _, err := form.Set("hoa", "100"); err == nil {
		t.Error("expected error for unknown field")
	}
	if got := form.State("hoa"); got != (field.NumericField{}) {
		t.Errorf("expected empty state for unknown field, got %+v", got)
	}
	if len(form.States()) != len(config.FieldNames) {
		t.Errorf("expected %d fields, got %d", len(config.FieldNames), len(form.States()))
	}
}
