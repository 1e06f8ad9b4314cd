// Package table provides the logical tables extracted from a workbook.
//
// A Table is an ordered list of rows with declared column names. Each row
// remembers the 1-based spreadsheet row it came from, so validation
// failures can be traced back to cells. Rows produced by unpivoting one
// spreadsheet row share its index.
package table

import (
	"encoding/json"
	"maps"
	"slices"
	"sort"

	"github.com/gnames/tfingest/pkg/value"
)

// Row is a single table row.
type Row struct {
	// Index is the spreadsheet row number the data came from.
	Index int

	// Cells maps column names to values.
	Cells map[string]value.Value
}

// Get returns the value of a column or Null.
func (r Row) Get(col string) value.Value {
	return r.Cells[col]
}

// Clone returns a deep copy of the row's cell map.
func (r Row) Clone() Row {
	return Row{Index: r.Index, Cells: maps.Clone(r.Cells)}
}

// Table is a named list of rows.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// New creates an empty table.
func New(name string, cols ...string) *Table {
	return &Table{Name: name, Columns: slices.Clone(cols)}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// HasColumn reports if the column is present.
func (t *Table) HasColumn(col string) bool {
	return slices.Contains(t.Columns, col)
}

// Append adds a row. Unknown columns are added to the table.
func (t *Table) Append(index int, cells map[string]value.Value) {
	for _, k := range sortedKeys(cells) {
		if !t.HasColumn(k) {
			t.Columns = append(t.Columns, k)
		}
	}
	c := maps.Clone(cells)
	if c == nil {
		c = make(map[string]value.Value)
	}
	t.Rows = append(t.Rows, Row{Index: index, Cells: c})
}

// AppendValues adds a row with values given in column order.
func (t *Table) AppendValues(index int, vals ...value.Value) {
	cells := make(map[string]value.Value, len(t.Columns))
	for i, col := range t.Columns {
		if i < len(vals) {
			cells[col] = vals[i]
		}
	}
	t.Rows = append(t.Rows, Row{Index: index, Cells: cells})
}

// Column returns the values of a column in row order.
func (t *Table) Column(col string) []value.Value {
	res := make([]value.Value, len(t.Rows))
	for i, r := range t.Rows {
		res[i] = r.Get(col)
	}
	return res
}

// SetColumn computes a column for every row, adding it if needed.
func (t *Table) SetColumn(col string, fn func(Row) value.Value) {
	if !t.HasColumn(col) {
		t.Columns = append(t.Columns, col)
	}
	for i := range t.Rows {
		t.Rows[i].Cells[col] = fn(t.Rows[i])
	}
}

// Rename renames columns. Missing columns are ignored.
func (t *Table) Rename(names map[string]string) {
	for i, col := range t.Columns {
		if n, ok := names[col]; ok {
			t.Columns[i] = n
		}
	}
	for _, r := range t.Rows {
		for from, to := range names {
			if v, ok := r.Cells[from]; ok {
				delete(r.Cells, from)
				r.Cells[to] = v
			}
		}
	}
}

// Drop removes columns.
func (t *Table) Drop(cols ...string) {
	t.Columns = slices.DeleteFunc(t.Columns, func(c string) bool {
		return slices.Contains(cols, c)
	})
	for _, r := range t.Rows {
		for _, c := range cols {
			delete(r.Cells, c)
		}
	}
}

// Select keeps only the given columns in the given order.
func (t *Table) Select(cols ...string) {
	var drop []string
	for _, c := range t.Columns {
		if !slices.Contains(cols, c) {
			drop = append(drop, c)
		}
	}
	t.Drop(drop...)
	t.Columns = slices.Clone(cols)
	for _, r := range t.Rows {
		for _, c := range cols {
			if _, ok := r.Cells[c]; !ok {
				r.Cells[c] = value.NullValue
			}
		}
	}
}

// Filter keeps rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) {
	t.Rows = slices.DeleteFunc(t.Rows, func(r Row) bool {
		return !keep(r)
	})
}

// Melt unpivots every column not in idVars into rows of
// (idVars..., varName, valueName). Rows are ordered by column, then by
// source row, and keep the source row index.
func (t *Table) Melt(idVars []string, varName, valueName string) *Table {
	cols := append(slices.Clone(idVars), varName, valueName)
	res := New(t.Name, cols...)
	for _, col := range t.Columns {
		if slices.Contains(idVars, col) {
			continue
		}
		for _, r := range t.Rows {
			cells := make(map[string]value.Value, len(cols))
			for _, id := range idVars {
				cells[id] = r.Get(id)
			}
			cells[varName] = value.Str(col)
			cells[valueName] = r.Get(col)
			res.Rows = append(res.Rows, Row{Index: r.Index, Cells: cells})
		}
	}
	return res
}

// SortBy stable-sorts rows by the text of the given columns.
func (t *Table) SortBy(cols ...string) {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		for _, c := range cols {
			a, b := t.Rows[i].Get(c).Text(), t.Rows[j].Get(c).Text()
			if a != b {
				return a < b
			}
		}
		return false
	})
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	res := New(t.Name, t.Columns...)
	res.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		res.Rows[i] = r.Clone()
	}
	return res
}

// Concat appends the rows of other tables. Columns are merged in order of
// appearance.
func (t *Table) Concat(others ...*Table) {
	for _, o := range others {
		for _, c := range o.Columns {
			if !t.HasColumn(c) {
				t.Columns = append(t.Columns, c)
			}
		}
		for _, r := range o.Rows {
			t.Rows = append(t.Rows, r.Clone())
		}
	}
}

// DistinctIndexes returns row indexes in order of first appearance.
func (t *Table) DistinctIndexes() []int {
	seen := make(map[int]struct{})
	var res []int
	for _, r := range t.Rows {
		if _, ok := seen[r.Index]; ok {
			continue
		}
		seen[r.Index] = struct{}{}
		res = append(res, r.Index)
	}
	return res
}

// Set is a collection of tables keyed by name.
type Set map[string]*Table

// Names returns table names in sorted order.
func (s Set) Names() []string {
	return sortedKeys(s)
}

// Add stores a table under its name.
func (s Set) Add(t *Table) {
	s[t.Name] = t
}

func sortedKeys[V any](m map[string]V) []string {
	res := slices.Collect(maps.Keys(m))
	slices.Sort(res)
	return res
}

// Records returns rows as column to value maps. Only declared columns are
// included.
func (t *Table) Records() []map[string]value.Value {
	res := make([]map[string]value.Value, len(t.Rows))
	for i, r := range t.Rows {
		rec := make(map[string]value.Value, len(t.Columns))
		for _, c := range t.Columns {
			rec[c] = r.Get(c)
		}
		res[i] = rec
	}
	return res
}

// MarshalJSON encodes the table as a list of records.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Records())
}
