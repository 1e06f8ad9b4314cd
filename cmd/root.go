/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/internal/ioconfig"
	"github.com/gnames/tfingest/internal/iofs"
	"github.com/gnames/tfingest/internal/iologger"
	tfingest "github.com/gnames/tfingest/pkg"
	"github.com/gnames/tfingest/pkg/config"
	"github.com/spf13/cobra"
)

var (
	homeDir string
	cfgFile string
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tfingest",
		Short: "tfingest validates and ingests Towns Fund reporting workbooks",
		Long: `tfingest reads Towns Fund monitoring and evaluation workbooks (Town Deal
and Future High Streets Fund), checks them against the rules of a
reporting round and turns valid submissions into normalised tables.

Commands:
  - validate: check workbooks and print validation messages
  - ingest:   check workbooks and save valid submissions
  - schema:   print tables and columns of a reporting round
  - migrate:  create or update PostgreSQL submission tables

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (TFINGEST_*)
  3. Config file (~/.config/tfingest/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (database.host → TFINGEST_DATABASE_HOST).
  Examples:
    TFINGEST_DATABASE_HOST          PostgreSQL host
    TFINGEST_DATABASE_PORT          PostgreSQL port
    TFINGEST_DATABASE_USER          PostgreSQL user
    TFINGEST_DATABASE_PASSWORD      PostgreSQL password
    TFINGEST_DATABASE_DATABASE      Database name
    TFINGEST_INGEST_REFERENCE_FILE  Reference data YAML file
    TFINGEST_LOG_LEVEL              Log level (debug/info/warn/error)
    TFINGEST_JOBS_NUMBER            Workbooks processed at once`,
		Version:           fmt.Sprintf("version: %s\nbuild:   %s", tfingest.Version, tfingest.Build),
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "tfingest version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default ~/.config/tfingest/config.yaml)")
	// -V is consistent with other gn projects
	rootCmd.Flags().BoolP("version", "V", false, "version for tfingest")

	rootCmd.AddCommand(
		getValidateCmd(),
		getIngestCmd(),
		getSchemaCmd(),
		getMigrateCmd(),
	)
	return rootCmd
}

func bootstrap(_ *cobra.Command, _ []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// reconfigured after the config is loaded
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	res, err := ioconfig.Load(homeDir, cfgFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	cfg = res.Config

	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"source", res.Source,
		"config_file", res.SourcePath,
	)
	return nil
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
