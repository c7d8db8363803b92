// Package calculator runs configured scenarios through the input fields and
// the mortgage engine, the same way the calculator form does for a user.
package calculator

import (
	"errors"
	"fmt"

	"github.com/iwvelando/home-cost-calculator/internal/config"
	"github.com/iwvelando/home-cost-calculator/pkg/constants"
	"github.com/iwvelando/home-cost-calculator/pkg/field"
	"github.com/iwvelando/home-cost-calculator/pkg/format"
	"github.com/iwvelando/home-cost-calculator/pkg/mortgage"
	"go.uber.org/zap"
)

// ErrNoScenarios is returned when the configuration has no active scenario.
var ErrNoScenarios = errors.New("no active scenarios")

// Result holds everything computed for one scenario.
type Result struct {
	Name      string
	Fields    map[string]field.NumericField
	Inputs    mortgage.Inputs
	Breakdown mortgage.Breakdown
	Warnings  []string
	Notes     []string
}

// Form is the set of input cells of one calculator.
type Form struct {
	cells map[string]*field.Edit
}

// NewForm returns a form with every field at its initial value.
func NewForm() *Form {
	return &Form{cells: map[string]*field.Edit{
		config.FieldHousePrice:      field.NewEdit(config.FieldHousePrice, field.MoneyConfig(), 0),
		config.FieldDownPayment:     field.NewEdit(config.FieldDownPayment, field.MoneyConfig(), 0),
		config.FieldAnnualInsurance: field.NewEdit(config.FieldAnnualInsurance, field.MoneyConfig(), 0),
		config.FieldInterestRate:    field.NewEdit(config.FieldInterestRate, field.RateConfig(), constants.DefaultInterestRatePct),
		config.FieldTaxRate:         field.NewEdit(config.FieldTaxRate, field.RateConfig(), constants.DefaultTaxRatePct),
	}}
}

// Set types raw into the named field and reports whether it was accepted.
func (f *Form) Set(name, raw string) (bool, error) {
	cell, ok := f.cells[name]
	if !ok {
		return false, fmt.Errorf("unknown field %q", name)
	}
	return cell.Set(raw), nil
}

// SetDownPaymentPercent applies a quick down payment option.
func (f *Form) SetDownPaymentPercent(percentage float64) bool {
	return f.cells[config.FieldDownPayment].SetPercentageOf(f.cells[config.FieldHousePrice].Value(), percentage)
}

// State returns the current state of the named field.
func (f *Form) State(name string) field.NumericField {
	if cell, ok := f.cells[name]; ok {
		return cell.State
	}
	return field.NumericField{}
}

// States returns a copy of every field state keyed by field name.
func (f *Form) States() map[string]field.NumericField {
	states := make(map[string]field.NumericField, len(f.cells))
	for name, cell := range f.cells {
		states[name] = cell.State
	}
	return states
}

// Inputs builds the engine inputs from the latest accepted field values.
func (f *Form) Inputs(loanTermYears int, period mortgage.Period) mortgage.Inputs {
	return mortgage.Inputs{
		HousePrice:            f.cells[config.FieldHousePrice].Value(),
		DownPayment:           f.cells[config.FieldDownPayment].Value(),
		AnnualInsurance:       f.cells[config.FieldAnnualInsurance].Value(),
		AnnualInterestRatePct: f.cells[config.FieldInterestRate].Value(),
		AnnualTaxRatePct:      f.cells[config.FieldTaxRate].Value(),
		LoanTermYears:         loanTermYears,
		Period:                period,
	}
}

// Run computes the breakdown for every active scenario.
func Run(logger *zap.Logger, conf config.Configuration) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Result
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "calculator.Run"),
			)
			continue
		}
		results = append(results, RunScenario(logger, scenario))
	}

	if len(results) == 0 {
		return nil, ErrNoScenarios
	}
	return results, nil
}

// RunScenario fills a fresh form from scenario and computes its breakdown.
func RunScenario(logger *zap.Logger, scenario config.Scenario) Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	result := Result{Name: scenario.Name}
	form := NewForm()

	initial := map[string]*string{
		config.FieldHousePrice:      scenario.HousePrice,
		config.FieldDownPayment:     scenario.DownPayment,
		config.FieldAnnualInsurance: scenario.AnnualInsurance,
		config.FieldInterestRate:    scenario.InterestRate,
		config.FieldTaxRate:         scenario.TaxRate,
	}
	for _, name := range config.FieldNames {
		if raw := initial[name]; raw != nil {
			result.Notes = append(result.Notes, applyEdit(logger, form, scenario.Name, name, *raw)...)
		}
	}

	if scenario.DownPaymentPercent != 0 {
		price := form.State(config.FieldHousePrice).Value
		if !form.SetDownPaymentPercent(scenario.DownPaymentPercent) {
			note := fmt.Sprintf("down payment option %v%% of %s produced %s, which the field rejected; keeping %s",
				scenario.DownPaymentPercent, format.Currency(price),
				field.PercentageText(price, scenario.DownPaymentPercent),
				format.Currency(form.State(config.FieldDownPayment).Value))
			logger.Warn(note,
				zap.String("op", "calculator.RunScenario"),
				zap.String("scenario", scenario.Name),
			)
			result.Notes = append(result.Notes, note)
		}
	}

	for _, edit := range scenario.Edits {
		result.Notes = append(result.Notes, applyEdit(logger, form, scenario.Name, edit.Field, edit.Input)...)
	}

	period, err := mortgage.ParsePeriod(scenario.Period)
	if err != nil {
		period = mortgage.Monthly
	}

	loanTerm := scenario.LoanTerm
	if loanTerm < 0 {
		result.Notes = append(result.Notes, fmt.Sprintf("negative loan term %d treated as unset", loanTerm))
		loanTerm = 0
	}

	result.Fields = form.States()
	result.Inputs = form.Inputs(loanTerm, period)
	result.Breakdown = mortgage.Calculate(result.Inputs)
	result.Warnings = mortgage.Warnings(result.Inputs)

	logger.Info("breakdown computed",
		zap.String("op", "calculator.RunScenario"),
		zap.String("scenario", scenario.Name),
		zap.String("period", string(period)),
		zap.Float64("totalPayment", result.Breakdown.TotalPayment),
	)

	return result
}

func applyEdit(logger *zap.Logger, form *Form, scenarioName, name, raw string) []string {
	accepted, err := form.Set(name, raw)
	if err != nil {
		logger.Warn("ignoring edit",
			zap.String("op", "calculator.applyEdit"),
			zap.String("scenario", scenarioName),
			zap.Error(err),
		)
		return []string{fmt.Sprintf("ignored edit for %s: %v", name, err)}
	}
	if !accepted {
		logger.Debug("edit rejected",
			zap.String("op", "calculator.applyEdit"),
			zap.String("scenario", scenarioName),
			zap.String("field", name),
			zap.String("input", raw),
		)
		return []string{fmt.Sprintf("rejected %s input %q; keeping %q", name, raw, form.State(name).DisplayValue)}
	}
	return nil
}
