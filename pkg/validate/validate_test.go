package validate_test

import (
	"testing"
	"time"

	"github.com/gnames/tfingest/pkg/cast"
	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/validate"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() schema.Schema {
	return schema.Schema{
		"Project Details": &schema.Table{
			Columns: []schema.Column{
				{Name: "Project ID", Type: schema.Text},
				{Name: "Theme", Type: schema.Text},
			},
			Uniques:     []string{"Project ID"},
			Enums:       []schema.Enum{{Column: "Theme", Values: []string{"Culture", "Transport"}}},
			NonNullable: []string{"Project ID"},
		},
		"Funding": &schema.Table{
			Columns: []schema.Column{
				{Name: "Project ID", Type: schema.Text},
				{Name: "Source", Type: schema.Text},
				{Name: "Spend", Type: schema.Number},
			},
			ForeignKeys: []schema.ForeignKey{{
				Column: "Project ID", ParentTable: "Project Details", ParentPK: "Project ID",
			}},
			CompositeKey: []string{"Project ID", "Source"},
			NonNullable:  []string{"Spend"},
		},
		"Project Progress": &schema.Table{
			TableNullable: true,
			Columns: []schema.Column{
				{Name: "Start Date", Type: schema.Date},
				{Name: "Completion Date", Type: schema.Date},
				{Name: "Count", Type: schema.Integer},
			},
			ProjectDates: []string{"Start Date", "Completion Date"},
		},
	}
}

func day(y int, m time.Month, d int) value.Value {
	return value.Time(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func validSet() table.Set {
	pd := table.New("Project Details", "Project ID", "Theme")
	pd.AppendValues(22, value.Str("TD-BED-01"), value.Str("Culture"))
	pd.AppendValues(23, value.Str("TD-BED-02"), value.Str(""))

	f := table.New("Funding", "Project ID", "Source", "Spend")
	f.AppendValues(38, value.Str("TD-BED-01"), value.Str("Towns Fund"), value.Int(10))
	f.AppendValues(38, value.Str("TD-BED-01"), value.Str("Council"), value.Int(0))

	pp := table.New("Project Progress", "Start Date", "Completion Date", "Count")

	set := table.Set{}
	set.Add(pd)
	set.Add(f)
	set.Add(pp)
	return set
}

func TestValidateClean(t *testing.T) {
	assert.Empty(t, validate.Validate(validSet(), testSchema()))
}

func TestExtraAndEmptyTables(t *testing.T) {
	set := validSet()
	set.Add(table.New("Unknown", "a"))
	set["Funding"].Rows = nil

	res := validate.Validate(set, testSchema())
	require.Len(t, res, 2)
	assert.Equal(t, failure.ExtraTable{Table: "Unknown"}, res[0])
	assert.Equal(t, failure.EmptyTable{Table: "Funding"}, res[1])
	_, ok := set["Unknown"]
	assert.False(t, ok)
}

func TestFamilies(t *testing.T) {
	tests := []struct {
		msg    string
		modify func(table.Set)
		check  func(*testing.T, []failure.Failure)
	}{
		{"extra and missing columns", func(s table.Set) {
			s["Project Details"].Drop("Theme")
			s["Project Details"].SetColumn("Colour", func(table.Row) value.Value {
				return value.Str("red")
			})
		}, func(t *testing.T, fs []failure.Failure) {
			assert.Contains(t, fs, failure.ExtraColumn{Table: "Project Details", Column: "Colour"})
			assert.Contains(t, fs, failure.MissingColumn{Table: "Project Details", Column: "Theme"})
		}},
		{"wrong type", func(s table.Set) {
			s["Funding"].Rows[0].Cells["Spend"] = value.Str("ten")
		}, func(t *testing.T, fs []failure.Failure) {
			require.Len(t, fs, 1)
			wt := fs[0].(failure.WrongType)
			assert.Equal(t, 38, wt.RowIndex)
			assert.Equal(t, value.Number, wt.Expected)
			assert.Equal(t, value.String, wt.Actual)
		}},
		{"fractional integer", func(s table.Set) {
			s["Project Progress"].AppendValues(20, value.NullValue, value.NullValue, value.Float(1.5))
		}, func(t *testing.T, fs []failure.Failure) {
			require.Len(t, fs, 1)
			assert.Equal(t, "Count", fs[0].(failure.WrongType).Column)
		}},
		{"non unique", func(s table.Set) {
			s["Project Details"].Rows[1].Cells["Project ID"] = value.Str("TD-BED-01")
		}, func(t *testing.T, fs []failure.Failure) {
			require.Len(t, fs, 1)
			nu := fs[0].(failure.NonUnique)
			assert.Equal(t, []int{22, 23}, nu.RowIndexes)
		}},
		{"composite key", func(s table.Set) {
			f := s["Funding"]
			f.AppendValues(66, value.Str("TD-BED-01"), value.Str("Council"), value.Int(1))
			f.AppendValues(66, value.Str("TD-BED-01"), value.Str("Council"), value.Int(2))
		}, func(t *testing.T, fs []failure.Failure) {
			require.Len(t, fs, 1)
			ck := fs[0].(failure.NonUniqueCompositeKey)
			assert.Equal(t, 66, ck.RowIndex)
			assert.Equal(t, []int{38, 66}, ck.RowIndexes)
		}},
		{"orphaned row", func(s table.Set) {
			s["Funding"].Rows[1].Cells["Project ID"] = value.Str("TD-BED-09")
		}, func(t *testing.T, fs []failure.Failure) {
			require.Len(t, fs, 1)
			or := fs[0].(failure.OrphanedRow)
			assert.Equal(t, "TD-BED-09", or.Value)
			assert.Equal(t, "Project Details", or.ParentTable)
		}},
		{"enum", func(s table.Set) {
			s["Project Details"].Rows[1].Cells["Theme"] = value.Str("Parks")
		}, func(t *testing.T, fs []failure.Failure) {
			require.Len(t, fs, 1)
			assert.Equal(t, 23, fs[0].(failure.InvalidEnumValue).RowIndex)
		}},
		{"non nullable", func(s table.Set) {
			s["Funding"].Rows[0].Cells["Spend"] = value.NullValue
			s["Funding"].Rows[1].Cells["Spend"] = value.Str("")
		}, func(t *testing.T, fs []failure.Failure) {
			require.Len(t, fs, 2)
			for _, f := range fs {
				assert.IsType(t, failure.NonNullableConstraint{}, f)
			}
		}},
		{"project dates", func(s table.Set) {
			s["Project Progress"].AppendValues(24, day(2024, 1, 1), day(2023, 1, 1), value.Int(1))
			s["Project Progress"].AppendValues(25, day(2023, 1, 1), day(2024, 1, 1), value.Int(1))
		}, func(t *testing.T, fs []failure.Failure) {
			require.Len(t, fs, 1)
			g := fs[0].(failure.Generic)
			assert.Equal(t, 24, g.RowIndex)
			assert.Equal(t, failure.MsgInvalidProjectDates, g.Message)
			assert.Equal(t, validate.ProjectDatesSection, g.Section)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			set := validSet()
			tt.modify(set)
			tt.check(t, validate.Validate(set, testSchema()))
		})
	}
}

func TestOrder(t *testing.T) {
	set := validSet()
	set["Funding"].Rows[0].Cells["Spend"] = value.Str("ten")
	set["Project Details"].Rows[1].Cells["Theme"] = value.Str("Parks")
	set["Funding"].Rows[1].Cells["Spend"] = value.NullValue

	res := validate.Validate(set, testSchema())
	require.Len(t, res, 3)
	assert.IsType(t, failure.WrongType{}, res[0])
	assert.IsType(t, failure.NonNullableConstraint{}, res[1])
	assert.IsType(t, failure.InvalidEnumValue{}, res[2])
}

func TestNumberInDateColumn(t *testing.T) {
	tests := []struct {
		msg   string
		start value.Value
	}{
		{"small number", value.Int(7)},
		{"serial-like number", value.Int(45017)},
		{"fraction", value.Float(1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			set := validSet()
			set["Project Progress"].AppendValues(24, tt.start, day(2024, 1, 1), value.Int(1))
			cast.Normalize(set, testSchema())
			fs := validate.Validate(set, testSchema())
			require.Len(t, fs, 1)
			wt, ok := fs[0].(failure.WrongType)
			require.True(t, ok)
			assert.Equal(t, "Start Date", wt.Column)
			assert.Equal(t, 24, wt.RowIndex)
			assert.Equal(t, value.Date, wt.Expected)
			assert.Equal(t, value.Number, wt.Actual)
		})
	}
}
