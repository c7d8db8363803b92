// Package constants provides shared constants for the home-cost-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Input field constants
const (
	// MoneyMaxDecimals is the fractional digit limit for price, payment and insurance fields
	MoneyMaxDecimals = 2

	// RateMaxDecimals is the fractional digit limit for interest and tax rate fields
	RateMaxDecimals = 3

	// DecimalMarker is shown while the user has typed only a decimal point
	DecimalMarker = "$0."

	// DefaultInterestRatePct is the initial annual interest rate field value
	DefaultInterestRatePct = 3.5

	// DefaultTaxRatePct is the initial annual tax rate field value
	DefaultTaxRatePct = 2.0
)

// Period constants
const (
	// PeriodMonthly reports figures per month
	PeriodMonthly = "monthly"

	// PeriodYearly reports figures per year
	PeriodYearly = "yearly"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
