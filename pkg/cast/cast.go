// Package cast converts extracted cell values to the types declared by a
// schema. Values that cannot be converted are left untouched so schema
// validation reports them as wrong types.
package cast

import (
	"strings"
	"time"

	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/shopspring/decimal"
)

// dateLayouts are text date forms accepted in date columns, tried in
// order.
var dateLayouts = []string{
	value.DateLayout,
	value.DateTimeLayout,
	"2006-01-02T15:04:05",
	"02/01/2006",
	"Jan-06",
	"January-06",
	"Jan 2006",
	"January 2006",
}

// Normalize casts declared columns of every table in place. Tables and
// columns unknown to the schema are left alone.
func Normalize(set table.Set, s schema.Schema) {
	for _, name := range set.Names() {
		ts, ok := s[name]
		if !ok {
			continue
		}
		t := set[name]
		for _, col := range ts.Columns {
			if !t.HasColumn(col.Name) {
				continue
			}
			for _, r := range t.Rows {
				r.Cells[col.Name] = Value(r.Get(col.Name), col.Type)
			}
		}
	}
}

// Value casts a single value to a declared type. Null, empty text and
// values that do not convert are returned as is.
func Value(v value.Value, typ schema.Type) value.Value {
	if v.IsBlank() {
		return v
	}
	switch typ {
	case schema.Text:
		return toText(v)
	case schema.Number, schema.Integer:
		return toNumber(v)
	case schema.Date:
		return toDate(v)
	}
	return v
}

func toText(v value.Value) value.Value {
	switch v.Kind() {
	case value.Number, value.Date:
		return value.Str(v.Text())
	}
	return v
}

func toNumber(v value.Value) value.Value {
	s, ok := v.AsString()
	if !ok {
		return v
	}
	d, ok := ParseNumber(s)
	if !ok {
		return v
	}
	return value.Num(d)
}

// ParseNumber parses numeric text, accepting currency formatting such as
// "£5,588.13" and a trailing percent sign.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("£", "", ",", "", " ", "").Replace(s)
	var pct bool
	if strings.HasSuffix(s, "%") {
		s, pct = strings.TrimSuffix(s, "%"), true
	}
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if pct {
		d = d.Div(decimal.NewFromInt(100))
	}
	return d, true
}

func toDate(v value.Value) value.Value {
	switch v.Kind() {
	case value.String:
		s, _ := v.AsString()
		if t, ok := ParseDate(s); ok {
			return value.Time(t)
		}
	}
	return v
}

// ParseDate parses date text in one of the accepted layouts. Month-only
// forms such as "Dec-22" give the first day of the month.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
