// Package gridutil provides helpers shared by round extractors: merged
// header reconstruction, placeholder row removal, financial period
// conversion and postcode extraction.
package gridutil

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
)

// Unselected is the placeholder text of untouched dropdown cells.
const Unselected = "< Select >"

// HeaderSep joins header rows into flat column names.
const HeaderSep = "__"

// ForwardFill returns the text of cells, carrying the last non-empty
// value over blank cells. Leading blanks stay empty.
func ForwardFill(row []value.Value) []string {
	res := make([]string, len(row))
	var last string
	for i, v := range row {
		if !v.IsBlank() {
			last = v.Text()
		}
		res[i] = last
	}
	return res
}

// Texts returns the text of cells without filling.
func Texts(row []value.Value) []string {
	res := make([]string, len(row))
	for i, v := range row {
		res[i] = v.Text()
	}
	return res
}

// JoinHeaders joins header rows column by column with HeaderSep and strips
// trailing underscores.
func JoinHeaders(rows ...[]string) []string {
	var n int
	for _, r := range rows {
		n = max(n, len(r))
	}
	res := make([]string, n)
	for i := range n {
		parts := make([]string, len(rows))
		for j, r := range rows {
			if i < len(r) {
				parts[j] = r[i]
			}
		}
		res[i] = strings.TrimRight(strings.Join(parts, HeaderSep), "_")
	}
	return res
}

// IsEmpty is true for null, empty and unselected dropdown values.
func IsEmpty(v value.Value) bool {
	if v.IsBlank() {
		return true
	}
	s, ok := v.AsString()
	return ok && s == Unselected
}

// DropEmptyRows removes rows whose given columns are all empty.
func DropEmptyRows(t *table.Table, cols ...string) {
	t.Filter(func(r table.Row) bool {
		for _, c := range cols {
			if !IsEmpty(r.Get(c)) {
				return true
			}
		}
		return false
	})
}

// ClearUnselected replaces unselected dropdown values with replacement.
func ClearUnselected(t *table.Table, replacement value.Value) {
	for _, r := range t.Rows {
		for k, v := range r.Cells {
			if s, ok := v.AsString(); ok && s == Unselected {
				r.Cells[k] = replacement
			}
		}
	}
}

var halfRe = regexp.MustCompile(`^H([12]) (\d{2})/(\d{2})$`)

// FinancialHalf converts a UK financial half such as "H1 23/24" to its
// start and end dates. "Before 20/21" has no start and "Beyond 25/26" has
// no end. Unknown text gives no dates.
func FinancialHalf(s string) (start, end *time.Time) {
	switch s {
	case "Before 20/21":
		return nil, ptr(date(2020, 3, 31))
	case "Beyond 25/26":
		return ptr(date(2026, 4, 1)), nil
	}
	m := halfRe.FindStringSubmatch(s)
	if m == nil {
		return nil, nil
	}
	yy, _ := strconv.Atoi(m[2])
	year := 2000 + yy
	if m[1] == "1" {
		return ptr(date(year, 4, 1)), ptr(date(year, 9, 30))
	}
	return ptr(date(year, 10, 1)), ptr(date(year+1, 3, 31))
}

var fyRe = regexp.MustCompile(`Financial Year (\d{2})(\d{2})/(\d{2})`)

// PeriodLabel derives a financial half label like "H1 23/24" from a
// joined period header such as
// "Financial Year 2023/24 (£s)__H1 (Apr-Sep)__Actual". "Before" and
// "Beyond" headers keep their short form.
func PeriodLabel(header string) string {
	switch {
	case strings.HasPrefix(header, "Before"):
		return "Before 20/21"
	case strings.HasPrefix(header, "Beyond"):
		return "Beyond 25/26"
	}
	fy := fyRe.FindStringSubmatch(header)
	h := half(header)
	if fy == nil || h == "" {
		return ""
	}
	return h + " " + fy[2] + "/" + fy[3]
}

// half finds a header level that starts with "H1" or "H2".
func half(header string) string {
	for part := range strings.SplitSeq(header, HeaderSep) {
		for _, h := range []string{"H1", "H2"} {
			if part == h || strings.HasPrefix(part, h+" ") {
				return h
			}
		}
	}
	return ""
}

// StateTag returns the text after the last HeaderSep of a joined header.
func StateTag(header string) string {
	i := strings.LastIndex(header, HeaderSep)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(header[i+len(HeaderSep):])
}

// PostcodePattern matches UK postcodes.
const PostcodePattern = `[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2}`

var postcodeRe = regexp.MustCompile(PostcodePattern)

// ExtractPostcodes returns every postcode found in s, keeping order and
// duplicates. It returns nil when nothing is found.
func ExtractPostcodes(s string) []string {
	if s == "" {
		return nil
	}
	return postcodeRe.FindAllString(s, -1)
}

// MonthEnd returns the last day of the month of t.
func MonthEnd(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1)
}

// AddMonths returns the last day of the month n months after t.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return MonthEnd(first.AddDate(0, n, 0))
}

// FinancialYearStart returns the year in which the UK financial year
// containing t starts.
func FinancialYearStart(t time.Time) int {
	if t.Month() >= time.April {
		return t.Year()
	}
	return t.Year() - 1
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }
