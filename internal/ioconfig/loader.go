// Package ioconfig reads tfingest configuration from config.yaml and
// TFINGEST_* environment variables.
package ioconfig

import (
	"errors"
	"io/fs"
	"os"

	"github.com/gnames/tfingest/internal/iofs"
	"github.com/gnames/tfingest/pkg/config"
	"github.com/spf13/viper"
)

// Source describes where configuration values came from.
type Source string

const (
	SourceFile        Source = "file"
	SourceDefaults    Source = "defaults"
	SourceDefaultsEnv Source = "defaults+env"
)

// LoadResult contains the loaded configuration and metadata about the
// source.
type LoadResult struct {
	Config *config.Config

	// SourcePath is the config file that was read, empty for defaults.
	SourcePath string

	Source Source
}

// Load builds a Config from defaults, a config file and environment
// variables. An empty configPath means config.yaml of homeDir, which
// may be absent. An explicit configPath must exist.
func Load(homeDir, configPath string) (*LoadResult, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = config.ConfigFilePath(homeDir)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	bindEnv(v)

	res := LoadResult{Source: SourceDefaults}
	_, err := os.Stat(configPath)
	switch {
	case err == nil:
		v.SetConfigFile(configPath)
		if err = v.ReadInConfig(); err != nil {
			return nil, iofs.ReadFileError(configPath, err)
		}
		res.Source = SourceFile
		res.SourcePath = configPath
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return nil, iofs.ReadFileError(configPath, err)
	case hasEnvVars():
		res.Source = SourceDefaultsEnv
	}

	var cfgViper config.Config
	if err = v.Unmarshal(&cfgViper); err != nil {
		return nil, iofs.ReadFileError(configPath, err)
	}

	cfg := config.New()
	cfg.Update(cfgViper.ToOptions())
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})
	res.Config = cfg
	return &res, nil
}

// EnvVars maps config keys to environment variables. They match the
// fields of config.ToOptions.
var EnvVars = map[string]string{
	"database.host":         "TFINGEST_DATABASE_HOST",
	"database.port":         "TFINGEST_DATABASE_PORT",
	"database.user":         "TFINGEST_DATABASE_USER",
	"database.password":     "TFINGEST_DATABASE_PASSWORD",
	"database.database":     "TFINGEST_DATABASE_DATABASE",
	"database.ssl_mode":     "TFINGEST_DATABASE_SSL_MODE",
	"database.batch_size":   "TFINGEST_DATABASE_BATCH_SIZE",
	"ingest.reference_file": "TFINGEST_INGEST_REFERENCE_FILE",
	"log.level":             "TFINGEST_LOG_LEVEL",
	"log.format":            "TFINGEST_LOG_FORMAT",
	"log.destination":       "TFINGEST_LOG_DESTINATION",
	"jobs_number":           "TFINGEST_JOBS_NUMBER",
}

// bindEnv binds every allowed variable explicitly, so unknown
// TFINGEST_* variables are ignored.
func bindEnv(v *viper.Viper) {
	for k, env := range EnvVars {
		_ = v.BindEnv(k, env)
	}
}

func hasEnvVars() bool {
	for _, env := range EnvVars {
		if _, ok := os.LookupEnv(env); ok {
			return true
		}
	}
	return false
}

