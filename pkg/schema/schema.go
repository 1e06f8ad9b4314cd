// Package schema declares the logical tables of a Towns Fund return and
// the constraints each of them must satisfy.
//
// A Schema is plain data. It is checked for internal consistency when it
// is built, so a broken declaration fails at start up and never during
// validation of a submission.
package schema

import (
	"slices"
	"sort"

	"github.com/gnames/tfingest/pkg/value"
)

// Type is the declared type of a column.
type Type int

const (
	Text Type = iota
	Number
	Integer
	Date
	List
)

func (t Type) String() string {
	switch t {
	case Text:
		return "text"
	case Number:
		return "number"
	case Integer:
		return "integer"
	case Date:
		return "date"
	case List:
		return "list"
	}
	return "unknown"
}

// Kind returns the value kind that holds values of the type.
func (t Type) Kind() value.Kind {
	switch t {
	case Number, Integer:
		return value.Number
	case Date:
		return value.Date
	case List:
		return value.List
	}
	return value.String
}

// Column is a declared column.
type Column struct {
	Name string
	Type Type
}

// ForeignKey links a column to the unique column of a parent table.
type ForeignKey struct {
	Column      string
	ParentTable string
	ParentPK    string

	// Nullable allows null and empty values.
	Nullable bool
}

// Enum restricts a column to dropdown values.
type Enum struct {
	Column string
	Values []string
}

// Table is the declaration of one logical table.
type Table struct {
	Columns      []Column
	Uniques      []string
	ForeignKeys  []ForeignKey
	Enums        []Enum
	NonNullable  []string
	CompositeKey []string

	// TableNullable allows the table to have no rows.
	TableNullable bool

	// ProjectDates holds start and completion date columns that must be
	// in order.
	ProjectDates []string
}

// ColumnNames returns declared column names in order.
func (t *Table) ColumnNames() []string {
	res := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		res[i] = c.Name
	}
	return res
}

// Type returns the declared type of a column.
func (t *Table) Type(col string) (Type, bool) {
	for _, c := range t.Columns {
		if c.Name == col {
			return c.Type, true
		}
	}
	return Text, false
}

// HasColumn reports if a column is declared.
func (t *Table) HasColumn(col string) bool {
	_, ok := t.Type(col)
	return ok
}

// IsUnique reports if a column is declared unique.
func (t *Table) IsUnique(col string) bool {
	return slices.Contains(t.Uniques, col)
}

// Schema maps table names to declarations.
type Schema map[string]*Table

// Names returns table names in sorted order.
func (s Schema) Names() []string {
	res := make([]string, 0, len(s))
	for k := range s {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

func cols(t Type, names ...string) []Column {
	res := make([]Column, len(names))
	for i, n := range names {
		res[i] = Column{Name: n, Type: t}
	}
	return res
}
