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
	"slices"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/tfingest/internal/iorefdata"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/spf13/cobra"
)

// getSchemaCmd returns the schema command.
func getSchemaCmd() *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema [flags] [table...]",
		Short: "Print tables and columns of a reporting round",
		Long: `Schema prints logical tables produced from workbooks of a reporting
round, with column types, nullability, uniqueness and dropdown values.

Without arguments all tables are printed.

Examples:
  tfingest schema -r 4
  tfingest schema -r 3 -F text "Project Progress" RiskRegister`,
		RunE: runSchema,
	}

	schemaCmd.Flags().IntP("round", "r", 0,
		"reporting round (3, 4, 5 or 6)")
	schemaCmd.Flags().StringP("format", "F", "json",
		"output format: json or text")
	schemaCmd.Flags().StringP("refdata", "R", "",
		"reference data YAML file (default built-in data)")
	return schemaCmd
}

func runSchema(cmd *cobra.Command, args []string) error {
	err := applyIngestFlags(cmd, cfg, roundFlag, formatFlag, refdataFlag)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	rd, err := iorefdata.Load(cfg.Ingest.ReferenceFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	sch, err := schema.TownsFund(cfg.Ingest.Round, rd)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	tables, err := describeSchema(sch, args)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	out, err := formatSchema(tables, cfg.Ingest.OutputFormat)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

type tableInfo struct {
	Name    string       `json:"name"`
	Columns []columnInfo `json:"columns"`
}

type columnInfo struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Nullable bool     `json:"nullable"`
	Unique   bool     `json:"unique,omitempty"`
	Values   []string `json:"values,omitempty"`
}

// describeSchema returns declarations of the named tables, or of all
// tables when names are empty.
func describeSchema(sch schema.Schema, names []string) ([]tableInfo, error) {
	if len(names) == 0 {
		names = sch.Names()
	}

	res := make([]tableInfo, 0, len(names))
	for _, name := range names {
		t, ok := sch[name]
		if !ok {
			return nil, schema.UnknownTableError(name, sch.Names())
		}
		ti := tableInfo{Name: name}
		for _, c := range t.Columns {
			ci := columnInfo{
				Name:     c.Name,
				Type:     c.Type.String(),
				Nullable: !slices.Contains(t.NonNullable, c.Name),
				Unique:   t.IsUnique(c.Name),
			}
			for _, e := range t.Enums {
				if e.Column == c.Name {
					ci.Values = e.Values
				}
			}
			ti.Columns = append(ti.Columns, ci)
		}
		res = append(res, ti)
	}
	return res, nil
}

func formatSchema(tables []tableInfo, format string) (string, error) {
	if format != "text" {
		enc := gnfmt.GNjson{Pretty: true}
		bs, err := enc.Encode(tables)
		if err != nil {
			return "", err
		}
		return string(bs), nil
	}

	var sb strings.Builder
	for i, t := range tables {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(t.Name + "\n")
		for _, c := range t.Columns {
			fmt.Fprintf(&sb, "  %-40s %-8s", c.Name, c.Type)
			if !c.Nullable {
				sb.WriteString(" not null")
			}
			if c.Unique {
				sb.WriteString(" unique")
			}
			if len(c.Values) > 0 {
				fmt.Fprintf(&sb, " [%d values]", len(c.Values))
			}
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
