// Package validate checks extracted and cast tables against a schema.
//
// Every constraint family runs for every table, so a submitter receives a
// complete list of problems at once. Structural problems are reported as
// internal failures, problems of submitted data as user failures.
package validate

import (
	"slices"

	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
)

// Section and column of project date failures.
const (
	ProjectDatesSection = "Projects Progress Summary"
	ProjectDatesColumn  = "Start Date"
)

type check func(t *table.Table, ts *schema.Table, set table.Set) []failure.Failure

// families run in this order for each table.
var families = []check{
	checkColumns,
	checkTypes,
	checkUniques,
	checkCompositeKey,
	checkForeignKeys,
	checkEnums,
	checkNonNullable,
	checkProjectDates,
}

// Validate removes tables the schema does not declare and validates the
// rest. Failures are ordered by table name, then by constraint family.
func Validate(set table.Set, s schema.Schema) []failure.Failure {
	res := removeExtraTables(set, s)
	for _, name := range set.Names() {
		t, ts := set[name], s[name]
		if t.Len() == 0 && !ts.TableNullable {
			res = append(res, failure.EmptyTable{Table: name})
			continue
		}
		for _, fn := range families {
			res = append(res, fn(t, ts, set)...)
		}
	}
	return res
}

func removeExtraTables(set table.Set, s schema.Schema) []failure.Failure {
	var res []failure.Failure
	for _, name := range set.Names() {
		if _, ok := s[name]; ok {
			continue
		}
		delete(set, name)
		res = append(res, failure.ExtraTable{Table: name})
	}
	return res
}

func checkColumns(t *table.Table, ts *schema.Table, _ table.Set) []failure.Failure {
	var res []failure.Failure
	for _, c := range t.Columns {
		if !ts.HasColumn(c) {
			res = append(res, failure.ExtraColumn{Table: t.Name, Column: c})
		}
	}
	for _, c := range ts.Columns {
		if !t.HasColumn(c.Name) {
			res = append(res, failure.MissingColumn{Table: t.Name, Column: c.Name})
		}
	}
	return res
}

func checkTypes(t *table.Table, ts *schema.Table, _ table.Set) []failure.Failure {
	var res []failure.Failure
	for _, r := range t.Rows {
		for _, c := range ts.Columns {
			v := r.Get(c.Name)
			if v.IsBlank() || hasType(v, c.Type) {
				continue
			}
			res = append(res, failure.WrongType{
				Table:    t.Name,
				Column:   c.Name,
				RowIndex: r.Index,
				Expected: c.Type.Kind(),
				Actual:   v.Kind(),
				Row:      failure.Values(r.Cells),
			})
		}
	}
	return res
}

func hasType(v value.Value, typ schema.Type) bool {
	if v.Kind() != typ.Kind() {
		return false
	}
	if typ == schema.Integer {
		d, _ := v.AsNumber()
		return d.IsInteger()
	}
	return true
}

func checkUniques(t *table.Table, ts *schema.Table, _ table.Set) []failure.Failure {
	var res []failure.Failure
	for _, col := range ts.Uniques {
		rows := make(map[string][]int)
		var keys []string
		for _, r := range t.Rows {
			k := r.Get(col).Key()
			if _, ok := rows[k]; !ok {
				keys = append(keys, k)
			}
			rows[k] = append(rows[k], r.Index)
		}
		var dups []int
		for _, k := range keys {
			if len(rows[k]) > 1 {
				dups = append(dups, rows[k]...)
			}
		}
		if len(dups) > 0 {
			res = append(res, failure.NonUnique{Table: t.Name, Column: col, RowIndexes: dups})
		}
	}
	return res
}

// checkCompositeKey keeps the first row of every key and reports each
// later row with the same key once per spreadsheet row.
func checkCompositeKey(t *table.Table, ts *schema.Table, _ table.Set) []failure.Failure {
	if len(ts.CompositeKey) == 0 {
		return nil
	}
	first := make(map[string]int)
	var res []failure.Failure
	reported := make(map[int]struct{})
	for _, r := range t.Rows {
		k := compositeKey(r, ts.CompositeKey)
		idx, ok := first[k]
		if !ok {
			first[k] = r.Index
			continue
		}
		if _, ok := reported[r.Index]; ok {
			continue
		}
		reported[r.Index] = struct{}{}
		row := make(failure.Values, len(ts.CompositeKey))
		for _, c := range ts.CompositeKey {
			row[c] = r.Get(c)
		}
		res = append(res, failure.NonUniqueCompositeKey{
			Table:      t.Name,
			Columns:    slices.Clone(ts.CompositeKey),
			RowIndex:   r.Index,
			RowIndexes: []int{idx, r.Index},
			Row:        row,
		})
	}
	return res
}

func compositeKey(r table.Row, cols []string) string {
	var k string
	for _, c := range cols {
		k += r.Get(c).Key() + "\x1e"
	}
	return k
}

func checkForeignKeys(t *table.Table, ts *schema.Table, set table.Set) []failure.Failure {
	var res []failure.Failure
	for _, fk := range ts.ForeignKeys {
		parent := make(map[string]struct{})
		if p, ok := set[fk.ParentTable]; ok {
			for _, v := range p.Column(fk.ParentPK) {
				parent[v.Key()] = struct{}{}
			}
		}
		for _, r := range t.Rows {
			v := r.Get(fk.Column)
			if fk.Nullable && v.IsBlank() {
				continue
			}
			if _, ok := parent[v.Key()]; ok {
				continue
			}
			res = append(res, failure.OrphanedRow{
				Table:       t.Name,
				RowIndex:    r.Index,
				ForeignKey:  fk.Column,
				Value:       v.Text(),
				ParentTable: fk.ParentTable,
				ParentPK:    fk.ParentPK,
			})
		}
	}
	return res
}

func checkEnums(t *table.Table, ts *schema.Table, _ table.Set) []failure.Failure {
	var res []failure.Failure
	for _, e := range ts.Enums {
		seen := make(map[int]struct{})
		for _, r := range t.Rows {
			v := r.Get(e.Column)
			if v.IsBlank() {
				continue
			}
			if s, ok := v.AsString(); ok && slices.Contains(e.Values, s) {
				continue
			}
			if _, ok := seen[r.Index]; ok {
				continue
			}
			seen[r.Index] = struct{}{}
			res = append(res, failure.InvalidEnumValue{
				Table:    t.Name,
				Column:   e.Column,
				RowIndex: r.Index,
				Row:      failure.Values(r.Cells),
			})
		}
	}
	return res
}

func checkNonNullable(t *table.Table, ts *schema.Table, _ table.Set) []failure.Failure {
	var res []failure.Failure
	for _, r := range t.Rows {
		for _, c := range ts.NonNullable {
			if !r.Get(c).IsBlank() {
				continue
			}
			res = append(res, failure.NonNullableConstraint{
				Table:    t.Name,
				Column:   c,
				RowIndex: r.Index,
				Row:      failure.Values(r.Cells),
			})
		}
	}
	return res
}

func checkProjectDates(t *table.Table, ts *schema.Table, _ table.Set) []failure.Failure {
	if len(ts.ProjectDates) != 2 {
		return nil
	}
	var res []failure.Failure
	for _, r := range t.Rows {
		start, ok1 := r.Get(ts.ProjectDates[0]).AsTime()
		end, ok2 := r.Get(ts.ProjectDates[1]).AsTime()
		if !ok1 || !ok2 || !start.After(end) {
			continue
		}
		res = append(res, failure.Generic{
			Table:    t.Name,
			Section:  ProjectDatesSection,
			Column:   ProjectDatesColumn,
			Message:  failure.MsgInvalidProjectDates,
			RowIndex: r.Index,
		})
	}
	return res
}
