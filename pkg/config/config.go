// Package config provides configuration management for tfingest.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid
// - All mutations go through Option functions
// - Invalid options are rejected with gn.Warn(), config stays valid
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - Ingest: reference_file
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Ingest.Round, AuthPlaces, AuthFundTypes, SQLitePath, ToDatabase,
//     OutputFormat (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use TFINGEST_ prefix with underscores for nesting:
//
//	TFINGEST_DATABASE_HOST=localhost
//	TFINGEST_DATABASE_PORT=5432
//	TFINGEST_LOG_LEVEL=info
//	TFINGEST_INGEST_REFERENCE_FILE=/path/to/refdata.yaml
//	TFINGEST_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete tfingest configuration.
type Config struct {
	// Database contains PostgreSQL connection settings of the
	// persistence sink.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Ingest contains settings of the ingest and validate commands.
	Ingest IngestConfig `mapstructure:"ingest" yaml:"ingest"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of workbooks ingested concurrently.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of table rows sent per COPY batch when
	// a submission is saved.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// IngestConfig contains settings of a workbook ingest.
type IngestConfig struct {
	// ReferenceFile is a path to a YAML file with reference data
	// (places, organisations, allocations, categories). Empty value
	// means the reference data embedded into the binary.
	ReferenceFile string `mapstructure:"reference_file" yaml:"reference_file"`

	// Round is the reporting round of submitted workbooks.
	Round int `mapstructure:"round" yaml:"-"`

	// AuthPlaces are place names the submitter is authorised for.
	// Authorisation is checked only if AuthPlaces or AuthFundTypes
	// are given.
	AuthPlaces []string `mapstructure:"auth_places" yaml:"-"`

	// AuthFundTypes are form fund types the submitter is authorised for,
	// for example "Town_Deal".
	AuthFundTypes []string `mapstructure:"auth_fund_types" yaml:"-"`

	// SQLitePath is a path to a SQLite file where successfully
	// ingested tables are exported. Empty means no export.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"-"`

	// ToDatabase is true if successfully ingested tables are saved
	// to PostgreSQL.
	ToDatabase bool `mapstructure:"to_database" yaml:"-"`

	// OutputFormat is the format of printed results, "json" or "text".
	OutputFormat string `mapstructure:"output_format" yaml:"-"`
}

// HasAuth returns true if an authorisation context is given.
func (ic IngestConfig) HasAuth() bool {
	return len(ic.AuthPlaces) > 0 || len(ic.AuthFundTypes) > 0
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "tfingest",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		Ingest: IngestConfig{
			OutputFormat: "json",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
