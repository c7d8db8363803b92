// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/home-cost-calculator/pkg/constants"
	"github.com/iwvelando/home-cost-calculator/pkg/mortgage"
	"github.com/spf13/viper"
)

// Field names accepted in Scenario.Edits.
const (
	FieldHousePrice      = "housePrice"
	FieldDownPayment     = "downPayment"
	FieldAnnualInsurance = "annualInsurance"
	FieldInterestRate    = "interestRate"
	FieldTaxRate         = "taxRate"
)

// FieldNames lists the input fields in the order they appear on the form.
var FieldNames = []string{FieldHousePrice, FieldDownPayment, FieldAnnualInsurance, FieldInterestRate, FieldTaxRate}

// Configuration holds all configuration for home-cost-calculator.
type Configuration struct {
	Scenarios []Scenario    `yaml:"scenarios"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Scenario holds the text typed into each field of the calculator. Fields
// left out keep their initial value. Values are raw input text and go
// through the same rules as keystrokes ("300,000" and "$1,200.50" are fine).
type Scenario struct {
	Name               string  `yaml:"name"`
	Active             bool    `yaml:"active"`
	HousePrice         *string `yaml:"housePrice,omitempty"`
	DownPayment        *string `yaml:"downPayment,omitempty"`
	DownPaymentPercent float64 `yaml:"downPaymentPercent,omitempty"`
	AnnualInsurance    *string `yaml:"annualInsurance,omitempty"`
	InterestRate       *string `yaml:"interestRate,omitempty"`
	TaxRate            *string `yaml:"taxRate,omitempty"`
	LoanTerm           int     `yaml:"loanTerm"`
	Period             string  `yaml:"period,omitempty"`
	Edits              []Edit  `yaml:"edits,omitempty"`
}

// Edit replays one change event on a field after the initial values are set.
type Edit struct {
	Field string `yaml:"field"`
	Input string `yaml:"input"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ActiveScenarios returns the scenarios marked active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.ActiveScenarios()) == 0 {
		warnings = append(warnings, "No active scenarios configured")
	}

	for _, scenario := range c.Scenarios {
		if !scenario.Active {
			continue
		}
		if scenario.LoanTerm < 0 {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has a negative loan term (%d years)",
				scenario.Name, scenario.LoanTerm))
		} else if scenario.LoanTerm > 0 && !mortgage.IsLoanTermChoice(scenario.LoanTerm) {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' uses a loan term of %d years, not one of the offered terms %v",
				scenario.Name, scenario.LoanTerm, mortgage.LoanTermChoices))
		}
		if _, err := mortgage.ParsePeriod(scenario.Period); err != nil {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s': %v; using %s",
				scenario.Name, err, constants.PeriodMonthly))
		}
		if scenario.DownPaymentPercent < 0 || scenario.DownPaymentPercent > constants.PercentageMultiplier {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has a down payment percentage of %v outside 0-100",
				scenario.Name, scenario.DownPaymentPercent))
		}
		for i, edit := range scenario.Edits {
			if !IsFieldName(edit.Field) {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' edit %d targets unknown field '%s'",
					scenario.Name, i+1, edit.Field))
			}
		}
	}

	return warnings
}

// IsFieldName reports whether name is one of FieldNames.
func IsFieldName(name string) bool {
	for _, field := range FieldNames {
		if field == name {
			return true
		}
	}
	return false
}
