// Package constants provides shared constants for the staffing-cost application.
package constants

import "time"

// Calendar constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// WeeksPerYear is the number of weeks used to convert weekly hours to monthly hours
	WeeksPerYear = 52

	// DaysPerYear is the calendar length used by the replacement coefficient
	DaysPerYear = 365

	// HoursPerDay is the length of a full coverage day
	HoursPerDay = 24

	// ShiftsPerDay is the number of paid security shifts covering one post for a day
	ShiftsPerDay = 2
)

// Pricing constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultWeeklyHoursLimit is the legal weekly hours ceiling before overtime
	DefaultWeeklyHoursLimit = 48.0

	// DefaultOvertimePremiumPercent is the overtime premium of the headcount model
	DefaultOvertimePremiumPercent = 25.0

	// DefaultNightOvertimePremiumPercent is the night overtime premium of the coverage model
	DefaultNightOvertimePremiumPercent = 50.0

	// CurrencyCode is the only currency the calculator renders
	CurrencyCode = "MAD"

	// CurrencyTolerance is the tolerance for currency comparisons (1 centime)
	CurrencyTolerance = 0.01
)

// Pricing policy names
const (
	// PolicyHeadcount prices agents x planned monthly hours with the monthly overtime ceiling
	PolicyHeadcount = "headcount"

	// PolicyCoverage prices required coverage hours against agent capacity
	PolicyCoverage = "coverage"

	// PolicyWeekly prices a weekly schedule with overtime above the weekly limit
	PolicyWeekly = "weekly"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Storage constants
const (
	// StoragePrefix namespaces every persisted input key
	StoragePrefix = "DSM_"

	// StorageDriverMemory keeps inputs for the lifetime of the process
	StorageDriverMemory = "memory"

	// StorageDriverSQLite persists inputs to a SQLite file
	StorageDriverSQLite = "sqlite"

	// StorageDriverMongo persists inputs to a MongoDB collection
	StorageDriverMongo = "mongo"

	// DefaultSQLitePath is the default SQLite database file
	DefaultSQLitePath = "staffing-cost.db"

	// DefaultMongoDatabase is the default MongoDB database name
	DefaultMongoDatabase = "staffing_cost"

	// DefaultMongoCollection is the default MongoDB collection name
	DefaultMongoCollection = "inputs"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the environment prefix for configuration overrides
	EnvPrefix = "STAFFING"

	// ProfileVersion is the capability profile version understood by this build
	ProfileVersion = 1
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultReadTimeout bounds reading a request, headers included
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout bounds writing a response
	DefaultWriteTimeout = 15 * time.Second

	// DefaultShutdownTimeout is how long in-flight requests get to finish on shutdown
	DefaultShutdownTimeout = 10 * time.Second
)
