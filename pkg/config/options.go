package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows sent per COPY batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptIngestReferenceFile sets a path to a reference data YAML file.
// An empty path keeps the embedded reference data.
func OptIngestReferenceFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Reference File", s) {
			c.Ingest.ReferenceFile = s
		}
	}
}

// OptIngestRound sets the reporting round of submitted workbooks.
// Runtime-only field - not in ToOptions().
func OptIngestRound(i int) Option {
	return func(c *Config) {
		if isValidRound(i) {
			c.Ingest.Round = i
		}
	}
}

// OptIngestAuthPlaces sets place names the submitter is authorised for.
// Runtime-only field - not in ToOptions().
func OptIngestAuthPlaces(ss []string) Option {
	ss = cleanList(ss)
	return func(c *Config) {
		if len(ss) > 0 {
			c.Ingest.AuthPlaces = ss
		}
	}
}

// OptIngestAuthFundTypes sets form fund types the submitter is
// authorised for, for example "Town_Deal".
// Runtime-only field - not in ToOptions().
func OptIngestAuthFundTypes(ss []string) Option {
	ss = cleanList(ss)
	return func(c *Config) {
		if len(ss) > 0 {
			c.Ingest.AuthFundTypes = ss
		}
	}
}

// OptIngestSQLitePath sets a SQLite file for export of ingested tables.
// Runtime-only field - not in ToOptions().
func OptIngestSQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("SQLite Path", s) {
			c.Ingest.SQLitePath = s
		}
	}
}

// OptIngestToDatabase sets whether ingested tables are saved to
// PostgreSQL.
// Runtime-only field - not in ToOptions().
func OptIngestToDatabase(b bool) Option {
	return func(c *Config) {
		c.Ingest.ToDatabase = b
	}
}

// OptIngestOutputFormat sets the format of printed results.
// Valid values: "json", "text".
// Runtime-only field - not in ToOptions().
func OptIngestOutputFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Ingest.OutputFormat", s) {
			c.Ingest.OutputFormat = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of workbooks ingested concurrently.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
