package cast_test

import (
	"testing"
	"time"

	"github.com/gnames/tfingest/pkg/cast"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) value.Value {
	return value.Time(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestValue(t *testing.T) {
	tests := []struct {
		msg string
		v   value.Value
		typ schema.Type
		res value.Value
	}{
		{"null", value.NullValue, schema.Number, value.NullValue},
		{"empty", value.Str(""), schema.Date, value.Str("")},
		{"whole number as text", value.Float(4.0), schema.Text, value.Str("4")},
		{"date as text", day(2023, 4, 1), schema.Text, value.Str("2023-04-01")},
		{"currency", value.Str("£5,588.13"), schema.Number, value.Float(5588.13)},
		{"plain number", value.Str(" 12 "), schema.Integer, value.Int(12)},
		{"percent", value.Str("15%"), schema.Number, value.Float(0.15)},
		{"bad number", value.Str("lots"), schema.Number, value.Str("lots")},
		{"number in date column", value.Int(45017), schema.Date, value.Int(45017)},
		{"iso date", value.Str("2023-04-01"), schema.Date, day(2023, 4, 1)},
		{"month date", value.Str("Dec-22"), schema.Date, day(2022, 12, 1)},
		{"bad date", value.Str("soon"), schema.Date, value.Str("soon")},
		{"small number in date column", value.Int(7), schema.Date, value.Int(7)},
		{"list", value.Strings([]string{"BN9 0DF"}), schema.List,
			value.Strings([]string{"BN9 0DF"})},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res := cast.Value(tt.v, tt.typ)
			assert.True(t, tt.res.Equal(res), "got %s %q", res.Kind(), res.Text())
		})
	}
}

func TestNormalize(t *testing.T) {
	s := schema.Schema{
		"Funding": &schema.Table{Columns: []schema.Column{
			{Name: "Project ID", Type: schema.Text},
			{Name: "Spend", Type: schema.Number},
		}},
	}
	f := table.New("Funding", "Project ID", "Spend", "Note")
	f.AppendValues(10, value.Str("TD-BED-01"), value.Str("£1,000"), value.Int(3))
	other := table.New("Other", "Spend")
	other.AppendValues(1, value.Str("£1"))
	set := table.Set{}
	set.Add(f)
	set.Add(other)

	cast.Normalize(set, s)
	require.Equal(t, 1, f.Len())
	assert.True(t, value.Int(1000).Equal(f.Rows[0].Get("Spend")))
	assert.True(t, value.Int(3).Equal(f.Rows[0].Get("Note")))
	assert.True(t, value.Str("£1").Equal(other.Rows[0].Get("Spend")))
}
