package failure

import "fmt"

// ExtraTable is a table that is not in the schema.
type ExtraTable struct {
	Table string
}

func (ExtraTable) Kind() Kind { return Internal }

func (f ExtraTable) String() string {
	return fmt.Sprintf(
		"Extra Table Failure: The data included a table named %q but it is not in the schema.",
		f.Table,
	)
}

// EmptyTable is a table without rows that the schema requires to have data.
type EmptyTable struct {
	Table string
}

func (EmptyTable) Kind() Kind { return Internal }

func (f EmptyTable) String() string {
	return fmt.Sprintf("Empty Table Failure: The table named %q contains no data.", f.Table)
}

// ExtraColumn is a column not declared by the schema.
type ExtraColumn struct {
	Table, Column string
}

func (ExtraColumn) Kind() Kind { return Internal }

func (f ExtraColumn) String() string {
	return fmt.Sprintf(
		"Extra Column Failure: Table %q Column %q is not in the schema.",
		f.Table, f.Column,
	)
}

// MissingColumn is a declared column absent from the data.
type MissingColumn struct {
	Table, Column string
}

func (MissingColumn) Kind() Kind { return Internal }

func (f MissingColumn) String() string {
	return fmt.Sprintf(
		"Missing Column Failure: Table %q Column %q is missing from the schema.",
		f.Table, f.Column,
	)
}

// NonUnique is a repeated value in a column declared unique.
type NonUnique struct {
	Table, Column string
	RowIndexes    []int
}

func (NonUnique) Kind() Kind { return Internal }

func (f NonUnique) String() string {
	return fmt.Sprintf(
		"Non Unique Failure: Table %q column %q should contain only unique values.",
		f.Table, f.Column,
	)
}

// OrphanedRow is a foreign key value missing from the parent table.
type OrphanedRow struct {
	Table       string
	RowIndex    int
	ForeignKey  string
	Value       string
	ParentTable string
	ParentPK    string
}

func (OrphanedRow) Kind() Kind { return Internal }

func (f OrphanedRow) String() string {
	return fmt.Sprintf(
		"Orphaned Row Failure: Table %q Column %q Row %d Value %q not in parent table %q where PK %q",
		f.Table, f.ForeignKey, f.RowIndex, f.Value, f.ParentTable, f.ParentPK,
	)
}

// InvalidTable wraps internal failures of a table for logging.
type InvalidTable struct {
	Table    string
	Failures []Failure
}

func (InvalidTable) Kind() Kind { return Internal }

func (f InvalidTable) String() string {
	return fmt.Sprintf(
		"Invalid Table Failure: Table %q is invalid as it is missing expected values (%d problems)",
		f.Table, len(f.Failures),
	)
}
