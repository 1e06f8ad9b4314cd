// Package iotesting provides shared test utilities: configuration of
// integration tests and in-memory reporting workbooks.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"strconv"
	"testing"

	"github.com/gnames/tfingest/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "tfingest_test"

	// EnvTestDatabase enables database integration tests when set to "1".
	EnvTestDatabase = "TFINGEST_TEST_DATABASE"
)

// SkipUnlessDatabase skips a test in short mode or when database tests
// are not enabled.
func SkipUnlessDatabase(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if os.Getenv(EnvTestDatabase) != "1" {
		t.Skipf("Skipping database test, set %s=1 to run it", EnvTestDatabase)
	}
}

// GetTestConfig returns a configuration suitable for integration tests.
// Defaults are updated from TFINGEST_DATABASE_* environment variables,
// the database name is always TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg := config.New()

	var opts []config.Option
	if s := os.Getenv("TFINGEST_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("TFINGEST_DATABASE_PORT"); s != "" {
		if i, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(i))
		}
	}
	if s := os.Getenv("TFINGEST_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("TFINGEST_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))
	cfg.Update(opts)

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
