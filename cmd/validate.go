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
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/internal/ioingest"
	"github.com/gnames/tfingest/internal/iorefdata"
	"github.com/gnames/tfingest/pkg/config"
	"github.com/gnames/tfingest/pkg/pipeline"
	"github.com/gnames/tfingest/pkg/store"
	"github.com/spf13/cobra"
)

// errNotValid makes the process exit with non-zero status when some
// workbooks did not pass.
var errNotValid = errors.New("some workbooks are not valid")

// getValidateCmd returns the validate command.
func getValidateCmd() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate [flags] workbook.xlsx...",
		Short: "Validate reporting workbooks without saving them",
		Long: `Validate checks Towns Fund reporting workbooks of a reporting round.

For every workbook the command:
  1. Checks the reporting period, fund type and authorisation
  2. Extracts tables from the workbook sheets
  3. Casts values to declared column types
  4. Validates tables against the schema of the round
  5. Applies business rules of the round

Problems are printed as messages that name the sheet, section and
cells to fix. Nothing is saved. The exit status is not zero if any
workbook is not valid.

Examples:
  tfingest validate -r 4 bedford.xlsx
  tfingest validate -r 5 -F text -p Bedford -f Town_Deal *.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidate,
	}

	addIngestFlags(validateCmd)
	return validateCmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	err := applyIngestFlags(cmd, cfg,
		roundFlag, authFlags, formatFlag, refdataFlag, jobsFlag,
	)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return runWorkbooks(cmd, args, cfg)
}

// runWorkbooks ingests workbooks, saves valid ones to sinks and prints
// reports.
func runWorkbooks(
	cmd *cobra.Command,
	paths []string,
	c *config.Config,
	sinks ...store.Sink,
) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rd, err := iorefdata.Load(c.Ingest.ReferenceFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	runner := ioingest.New(c, pipeline.New(rd), sinks...)
	reps, err := runner.Run(ctx, paths)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	withTables, _ := cmd.Flags().GetBool("tables")
	out, err := ioingest.Format(reps, c.Ingest.OutputFormat, withTables)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	var failed int
	for _, r := range reps {
		if r.Err != nil || !r.Result.Succeeded() {
			failed++
		}
	}
	if failed > 0 {
		gn.Warn("<em>%d</em> of <em>%d</em> workbooks are not valid",
			failed, len(reps))
		return errNotValid
	}
	gn.Info("All <em>%d</em> workbooks are valid", len(reps))
	return nil
}
