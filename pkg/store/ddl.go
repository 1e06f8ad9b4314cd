package store

import (
	"fmt"
	"strings"
)

// ColSubmissionID is the first column of every exported table.
const ColSubmissionID = "submission_id"

// ColRowIndex keeps the spreadsheet row of an exported row.
const ColRowIndex = "row_index"

// TableDDL creates a CREATE TABLE statement for a logical table. All
// cells are stored as text, nulls stay NULL.
func TableDDL(name string, cols []string) string {
	columns := []string{
		fmt.Sprintf("    %s TEXT NOT NULL", Quote(ColSubmissionID)),
		fmt.Sprintf("    %s INTEGER NOT NULL", Quote(ColRowIndex)),
	}
	for _, c := range cols {
		columns = append(columns, fmt.Sprintf("    %s TEXT", Quote(c)))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		Quote(name),
		strings.Join(columns, ",\n"))
}

// IndexDDL returns CREATE INDEX statements for a logical table.
func IndexDDL(name string) []string {
	idx := Quote("idx_" + snake(name) + "_submission")
	return []string{
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s);",
			idx, Quote(name), Quote(ColSubmissionID)),
	}
}

// InsertSQL returns a parameterised INSERT statement for a logical
// table.
func InsertSQL(name string, cols []string) string {
	all := append([]string{ColSubmissionID, ColRowIndex}, cols...)
	quoted := make([]string, len(all))
	marks := make([]string, len(all))
	for i, c := range all {
		quoted[i] = Quote(c)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		Quote(name), strings.Join(quoted, ", "), strings.Join(marks, ", "))
}

// DeleteSQL removes rows of one submission from a logical table.
func DeleteSQL(name string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = ?",
		Quote(name), Quote(ColSubmissionID))
}

// Quote makes an SQL identifier out of a column or table name. Names of
// the template contain spaces, slashes and line breaks.
func Quote(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func snake(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		}
		return '_'
	}, s)
}
