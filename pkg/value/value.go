// Package value provides the cell value used everywhere in tfingest.
//
// A Value is a tagged union. Its kind is decided once, when a workbook is
// loaded or when a column is cast to its declared type, so downstream
// code switches on Kind instead of inspecting runtime types.
package value

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the kind of payload carried by a Value.
type Kind int

const (
	Null Kind = iota
	String
	Number
	Date
	List
)

// String returns the kind name used in type mismatch messages.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Date:
		return "date"
	case List:
		return "list"
	default:
		return "null"
	}
}

// DateLayout is the layout of dates in text form.
const DateLayout = "2006-01-02"

// DateTimeLayout is used for dates that carry a time of day.
const DateTimeLayout = "2006-01-02 15:04:05"

// Value is a single cell value.
type Value struct {
	kind Kind
	str  string
	num  decimal.Decimal
	date time.Time
	list []string
}

// NullValue is the absent value.
var NullValue = Value{}

// Str creates a String value.
func Str(s string) Value {
	return Value{kind: String, str: s}
}

// Num creates a Number value.
func Num(d decimal.Decimal) Value {
	return Value{kind: Number, num: d}
}

// Int creates a Number value from an integer.
func Int(i int64) Value {
	return Num(decimal.NewFromInt(i))
}

// Float creates a Number value from a float.
func Float(f float64) Value {
	return Num(decimal.NewFromFloat(f))
}

// Time creates a Date value.
func Time(t time.Time) Value {
	return Value{kind: Date, date: t}
}

// Strings creates a List value. A nil slice gives a Null value.
func Strings(ss []string) Value {
	if ss == nil {
		return NullValue
	}
	return Value{kind: List, list: ss}
}

// FromTimePtr creates a Date value, or Null for a nil pointer.
func FromTimePtr(t *time.Time) Value {
	if t == nil {
		return NullValue
	}
	return Time(*t)
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull is true for the absent value.
func (v Value) IsNull() bool { return v.kind == Null }

// IsBlank is true for Null and for the empty string.
func (v Value) IsBlank() bool {
	return v.kind == Null || (v.kind == String && v.str == "")
}

// AsString returns the string payload and true for String values.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == String
}

// AsNumber returns the numeric payload and true for Number values.
func (v Value) AsNumber() (decimal.Decimal, bool) {
	return v.num, v.kind == Number
}

// AsTime returns the date payload and true for Date values.
func (v Value) AsTime() (time.Time, bool) {
	return v.date, v.kind == Date
}

// AsList returns the list payload and true for List values.
func (v Value) AsList() ([]string, bool) {
	return v.list, v.kind == List
}

// Text returns the display form of the value. Null gives "".
func (v Value) Text() string {
	switch v.kind {
	case String:
		return v.str
	case Number:
		return v.num.String()
	case Date:
		if v.date.Hour() == 0 && v.date.Minute() == 0 && v.date.Second() == 0 {
			return v.date.Format(DateLayout)
		}
		return v.date.Format(DateTimeLayout)
	case List:
		return strings.Join(v.list, ", ")
	default:
		return ""
	}
}

// Key returns a kind-qualified identity of the value. Two values with the
// same key are duplicates for uniqueness checks. All nulls share a key.
func (v Value) Key() string {
	switch v.kind {
	case Null:
		return "n:"
	case String:
		return "s:" + v.str
	case Number:
		return "d:" + v.num.String()
	case Date:
		return "t:" + v.date.UTC().Format(time.RFC3339)
	default:
		return "l:" + strings.Join(v.list, "\x1f")
	}
}

// Equal compares kinds and payloads.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Number:
		return v.num.Equal(o.num)
	case Date:
		return v.date.Equal(o.date)
	default:
		return v.Key() == o.Key()
	}
}

// MarshalJSON encodes nulls as null, numbers as JSON numbers, dates as
// text and lists as arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Null:
		return []byte("null"), nil
	case Number:
		return []byte(v.num.String()), nil
	case List:
		return json.Marshal(v.list)
	default:
		return json.Marshal(v.Text())
	}
}
