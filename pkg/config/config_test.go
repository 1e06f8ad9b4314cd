package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/tfingest/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "tfingest"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "tfingest"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "tfingest", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "tfingest", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "tfingest", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 5_000, cfg.Database.BatchSize)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.Equal(t, 0, cfg.Ingest.Round)
	assert.Equal(t, "json", cfg.Ingest.OutputFormat)
	assert.False(t, cfg.Ingest.HasAuth())

	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
}

func TestOptionStrings(t *testing.T) {
	tests := []struct {
		msg   string
		opt   func(string) config.Option
		input string
		get   func(*config.Config) string
		res   string
	}{
		{"host", config.OptDatabaseHost, " db.example.com ",
			func(c *config.Config) string { return c.Database.Host },
			"db.example.com"},
		{"empty host", config.OptDatabaseHost, "   ",
			func(c *config.Config) string { return c.Database.Host },
			"localhost"},
		{"ssl mode", config.OptDatabaseSSLMode, "REQUIRE",
			func(c *config.Config) string { return c.Database.SSLMode },
			"require"},
		{"bad ssl mode", config.OptDatabaseSSLMode, "maybe",
			func(c *config.Config) string { return c.Database.SSLMode },
			"disable"},
		{"log level", config.OptLogLevel, "Debug",
			func(c *config.Config) string { return c.Log.Level },
			"debug"},
		{"bad log level", config.OptLogLevel, "trace",
			func(c *config.Config) string { return c.Log.Level },
			"info"},
		{"log format", config.OptLogFormat, "text",
			func(c *config.Config) string { return c.Log.Format },
			"text"},
		{"bad log format", config.OptLogFormat, "tint",
			func(c *config.Config) string { return c.Log.Format },
			"json"},
		{"log destination", config.OptLogDestination, "stderr",
			func(c *config.Config) string { return c.Log.Destination },
			"stderr"},
		{"reference file", config.OptIngestReferenceFile, " /tmp/ref.yaml",
			func(c *config.Config) string { return c.Ingest.ReferenceFile },
			"/tmp/ref.yaml"},
		{"output format", config.OptIngestOutputFormat, "TEXT",
			func(c *config.Config) string { return c.Ingest.OutputFormat },
			"text"},
		{"bad output format", config.OptIngestOutputFormat, "xml",
			func(c *config.Config) string { return c.Ingest.OutputFormat },
			"json"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt(tt.input)})
			assert.Equal(t, tt.res, tt.get(cfg))
		})
	}
}

func TestOptionInts(t *testing.T) {
	tests := []struct {
		msg   string
		opt   func(int) config.Option
		input int
		get   func(*config.Config) int
		res   int
	}{
		{"port", config.OptDatabasePort, 6543,
			func(c *config.Config) int { return c.Database.Port }, 6543},
		{"zero port", config.OptDatabasePort, 0,
			func(c *config.Config) int { return c.Database.Port }, 5432},
		{"batch size", config.OptDatabaseBatchSize, 100,
			func(c *config.Config) int { return c.Database.BatchSize }, 100},
		{"negative batch size", config.OptDatabaseBatchSize, -1,
			func(c *config.Config) int { return c.Database.BatchSize }, 5_000},
		{"jobs", config.OptJobsNumber, 3,
			func(c *config.Config) int { return c.JobsNumber }, 3},
		{"round 4", config.OptIngestRound, 4,
			func(c *config.Config) int { return c.Ingest.Round }, 4},
		{"round 6", config.OptIngestRound, 6,
			func(c *config.Config) int { return c.Ingest.Round }, 6},
		{"unsupported round", config.OptIngestRound, 2,
			func(c *config.Config) int { return c.Ingest.Round }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt(tt.input)})
			assert.Equal(t, tt.res, tt.get(cfg))
		})
	}
}

func TestOptionAuth(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptIngestAuthPlaces([]string{" Bedford ", "", "Heanor"}),
		config.OptIngestAuthFundTypes([]string{"  "}),
	})
	assert.Equal(t, []string{"Bedford", "Heanor"}, cfg.Ingest.AuthPlaces)
	assert.Nil(t, cfg.Ingest.AuthFundTypes)
	assert.True(t, cfg.Ingest.HasAuth())
}

func TestToOptions(t *testing.T) {
	t.Run("round-trips persistent fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptDatabaseHost("db.example.com"),
			config.OptDatabasePort(5433),
			config.OptLogLevel("warn"),
			config.OptIngestReferenceFile("/data/ref.yaml"),
			config.OptJobsNumber(2),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Equal(t, "db.example.com", newCfg.Database.Host)
		assert.Equal(t, 5433, newCfg.Database.Port)
		assert.Equal(t, "warn", newCfg.Log.Level)
		assert.Equal(t, "/data/ref.yaml", newCfg.Ingest.ReferenceFile)
		assert.Equal(t, 2, newCfg.JobsNumber)
	})

	t.Run("skips runtime fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptIngestRound(5),
			config.OptIngestAuthPlaces([]string{"Bedford"}),
			config.OptIngestSQLitePath("/tmp/out.sqlite"),
			config.OptIngestToDatabase(true),
			config.OptHomeDir("/home/user"),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Equal(t, 0, newCfg.Ingest.Round)
		assert.Nil(t, newCfg.Ingest.AuthPlaces)
		assert.Empty(t, newCfg.Ingest.SQLitePath)
		assert.False(t, newCfg.Ingest.ToDatabase)
		assert.Empty(t, newCfg.HomeDir)
	})
}
