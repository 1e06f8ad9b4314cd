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
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/internal/iostore"
	"github.com/gnames/tfingest/pkg/config"
	"github.com/gnames/tfingest/pkg/store"
	"github.com/spf13/cobra"
)

// getIngestCmd returns the ingest command.
func getIngestCmd() *cobra.Command {
	ingestCmd := &cobra.Command{
		Use:   "ingest [flags] workbook.xlsx...",
		Short: "Ingest reporting workbooks and save valid submissions",
		Long: `Ingest validates Towns Fund reporting workbooks the same way as the
validate command and saves tables of valid submissions.

Destinations:
  --sqlite FILE  export tables to a SQLite file, one SQL table per
                 logical table
  --db           save submissions to PostgreSQL from the configuration,
                 submission tables are created when missing

A submission that is ingested again replaces its previous rows.

Examples:
  tfingest ingest -r 4 --sqlite towns.sqlite bedford.xlsx
  tfingest ingest -r 6 --db -j 4 reports/*.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngest,
	}

	addIngestFlags(ingestCmd)
	ingestCmd.Flags().StringP("sqlite", "s", "",
		"SQLite file for the export of valid submissions")
	ingestCmd.Flags().BoolP("db", "d", false,
		"save valid submissions to PostgreSQL")
	return ingestCmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	err := applyIngestFlags(cmd, cfg,
		roundFlag, authFlags, formatFlag, refdataFlag, jobsFlag,
		sqliteFlag, dbFlag,
	)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	sinks, err := openSinks(context.Background(), cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer func() {
		for _, s := range sinks {
			_ = s.Close()
		}
	}()

	if len(sinks) == 0 {
		gn.Warn("No destination is given, submissions are validated only. " +
			"Use <em>--sqlite</em> or <em>--db</em> to save them.")
	}
	return runWorkbooks(cmd, args, cfg, sinks...)
}

// openSinks opens destinations of valid submissions.
func openSinks(ctx context.Context, c *config.Config) ([]store.Sink, error) {
	var res []store.Sink
	if c.Ingest.SQLitePath != "" {
		s, err := iostore.NewSQLiteSink(c.Ingest.SQLitePath)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}

	if c.Ingest.ToDatabase {
		s, err := openPostgres(ctx, c)
		if err != nil {
			for _, v := range res {
				_ = v.Close()
			}
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}

func openPostgres(ctx context.Context, c *config.Config) (*iostore.PostgresSink, error) {
	op := iostore.NewPgxOperator()
	if err := op.Connect(ctx, &c.Database); err != nil {
		return nil, err
	}
	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		c.Database.User, c.Database.Host,
		c.Database.Port, c.Database.Database)

	sink := iostore.NewPostgresSink(op, c.Database.BatchSize)
	exists, err := op.TableExists(ctx, store.TableSubmissions)
	if err == nil && !exists {
		gn.Info("Creating submission tables...")
		err = sink.Migrate(ctx)
	}
	if err != nil {
		_ = sink.Close()
		return nil, err
	}
	return sink, nil
}
