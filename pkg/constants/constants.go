// Package constants provides shared constants for the loan-prepay application.
package constants

// DateTimeLayout is the month-granular format used for period labels and
// accepted for dates in config files.
const DateTimeLayout = "2006-01"

// DateLayout is the day-granular format accepted for dates in config files
// and API payloads.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of fractional digits emitted for monetary values
	DecimalPlaces = 2

	// MaxTermMonths bounds a loan term at 100 years. Longer terms are rejected
	// before any schedule is allocated.
	MaxTermMonths = 1200

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultAmountUnit is the multiplier applied to configured amounts when no
	// display unit is given.
	DefaultAmountUnit = 1.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable side-by-side table
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the raw comparison result as JSON
	OutputFormatJSON = "json"

	// OutputFormatChart is the remaining-balance series as CSV for plotting
	OutputFormatChart = "chart"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024
)
