// Package constants provides shared constants for the finance-projection application.
package constants

// Calendar constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// QuartersPerYear is the number of quarters in a year
	QuartersPerYear = 4

	// DaysPerYear is the day-count basis used for working-capital days
	DaysPerYear = 365.0
)

// Financial constants
const (
	// DecimalPrecision is the number of decimal places kept when rounding currency
	DecimalPrecision = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// BalanceTolerance is the largest acceptable gap between assets and
	// liabilities plus equity, in currency units.
	BalanceTolerance = 1.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// ViableDSCR is the debt service coverage a lender usually requires.
	ViableDSCR = 1.2
)

// IRR solver settings
const (
	// IRRInitialGuess is the starting rate for Newton-Raphson.
	IRRInitialGuess = 0.10

	// IRRTolerance is the convergence threshold on NPV relative to the initial outlay.
	IRRTolerance = 1e-7

	// IRRMaxIterations bounds the Newton-Raphson loop.
	IRRMaxIterations = 100

	// IRRMinRate and IRRMaxRate bound candidate rates.
	IRRMinRate = -0.99
	IRRMaxRate = 10.0
)

// Sentinels
const (
	// NotReached marks a payback or break-even point that never occurs in the horizon.
	NotReached = -1
)

// Plan defaults
const (
	// DefaultProjectionYears is the horizon used when a plan does not set one.
	DefaultProjectionYears = 3

	// DefaultDiscountRate is the NPV discount rate used when a plan does not set one.
	DefaultDiscountRate = 0.10
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON writes the raw projections as JSON
	OutputFormatJSON = "json"
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
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultCacheTTLSeconds is the default lifetime of memoized projections
	DefaultCacheTTLSeconds = 300
)
