package failure

import (
	"fmt"

	"github.com/gnames/tfingest/pkg/value"
)

// WrongType is a value that does not have the declared column type.
type WrongType struct {
	Table, Column string
	RowIndex      int

	// Expected and Actual are value kinds.
	Expected, Actual value.Kind

	Row Values
}

func (WrongType) Kind() Kind { return User }

func (f WrongType) String() string {
	return fmt.Sprintf(
		"Wrong Type: Table %q Column %q Row %d expected %s, got %s",
		f.Table, f.Column, f.RowIndex, f.Expected, f.Actual,
	)
}

// NonUniqueCompositeKey reports rows repeating the natural key of a row
// seen earlier in the table.
type NonUniqueCompositeKey struct {
	Table   string
	Columns []string

	// RowIndex is the first duplicate row.
	RowIndex int

	// RowIndexes are the original row followed by every duplicate.
	RowIndexes []int

	Row Values
}

func (NonUniqueCompositeKey) Kind() Kind { return User }

func (f NonUniqueCompositeKey) String() string {
	return fmt.Sprintf(
		"Non Unique Composite Key: Table %q Columns %s Rows %v",
		f.Table, quoteAll(f.Columns), f.RowIndexes,
	)
}

// InvalidEnumValue is a value outside a dropdown list.
type InvalidEnumValue struct {
	Table, Column string
	RowIndex      int
	Row           Values
}

func (InvalidEnumValue) Kind() Kind { return User }

func (f InvalidEnumValue) String() string {
	return fmt.Sprintf(
		"Invalid Enum Value: Table %q Column %q Row %d value %q",
		f.Table, f.Column, f.RowIndex, f.Row.Get(f.Column).Text(),
	)
}

// NonNullableConstraint is a blank value in a required column.
type NonNullableConstraint struct {
	Table, Column string
	RowIndex      int
	Row           Values
}

func (NonNullableConstraint) Kind() Kind { return User }

func (f NonNullableConstraint) String() string {
	return fmt.Sprintf(
		"Non Nullable Constraint: Table %q Column %q Row %d is blank",
		f.Table, f.Column, f.RowIndex,
	)
}

// Generic is a failure that carries its own message. Either CellIndex
// or Column (with RowIndex) locates it in the sheet.
type Generic struct {
	Table   string
	Section string
	Message string

	CellIndex string
	Column    string
	RowIndex  int
}

func (Generic) Kind() Kind { return User }

func (f Generic) String() string {
	loc := f.CellIndex
	if loc == "" {
		loc = fmt.Sprintf("%s row %d", f.Column, f.RowIndex)
	}
	return fmt.Sprintf("%s / %s / %s: %s", f.Table, f.Section, loc, f.Message)
}
