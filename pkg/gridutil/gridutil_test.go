package gridutil_test

import (
	"testing"
	"time"

	"github.com/gnames/tfingest/pkg/gridutil"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFinancialHalf(t *testing.T) {
	tests := []struct {
		msg        string
		input      string
		start, end *time.Time
	}{
		{"first half", "H1 23/24", ptr(day(2023, 4, 1)), ptr(day(2023, 9, 30))},
		{"second half", "H2 23/24", ptr(day(2023, 10, 1)), ptr(day(2024, 3, 31))},
		{"second half 20/21", "H2 20/21", ptr(day(2020, 10, 1)), ptr(day(2021, 3, 31))},
		{"beyond", "Beyond 25/26", ptr(day(2026, 4, 1)), nil},
		{"before", "Before 20/21", nil, ptr(day(2020, 3, 31))},
		{"unknown", "Q3 23/24", nil, nil},
		{"empty", "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			start, end := gridutil.FinancialHalf(tt.input)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestExtractPostcodes(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		res   []string
	}{
		{"repeated", "Site 1: BN9 0DF\nSite 2: SW1P 4DF, site 3:BN9 0DF",
			[]string{"BN9 0DF", "SW1P 4DF", "BN9 0DF"}},
		{"no space", "EC1A1BB", []string{"EC1A1BB"}},
		{"none", "somewhere nice", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res := gridutil.ExtractPostcodes(tt.input)
			if tt.res == nil {
				assert.Empty(t, res)
				return
			}
			assert.Equal(t, tt.res, res)
		})
	}
}

func TestHeaders(t *testing.T) {
	top := gridutil.ForwardFill([]value.Value{
		value.NullValue,
		value.Str("Financial Year 2020/21 (£s)"),
		value.NullValue,
		value.Str(""),
		value.Str("Financial Year 2021/22 (£s)"),
	})
	assert.Equal(t, []string{"", "Financial Year 2020/21 (£s)",
		"Financial Year 2020/21 (£s)", "Financial Year 2020/21 (£s)",
		"Financial Year 2021/22 (£s)"}, top)

	mid := []string{"Project", "H1 (Apr-Sep)", "H2 (Oct-Mar)", "Total", "H1 (Apr-Sep)"}
	low := []string{"", "Actual", "Forecast", "", "Forecast"}
	res := gridutil.JoinHeaders(top, mid, low)
	assert.Equal(t, []string{
		"__Project",
		"Financial Year 2020/21 (£s)__H1 (Apr-Sep)__Actual",
		"Financial Year 2020/21 (£s)__H2 (Oct-Mar)__Forecast",
		"Financial Year 2020/21 (£s)__Total",
		"Financial Year 2021/22 (£s)__H1 (Apr-Sep)__Forecast",
	}, res)
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		msg, header, label, tag string
	}{
		{"funding", "Financial Year 2023/24 (£s)__H1 (Apr-Sep)__Actual", "H1 23/24", "Actual"},
		{"outputs", "Financial Year 2020/21__H2 (Oct-Mar)__Forecast", "H2 20/21", "Forecast"},
		{"before", "Before 2020/21", "Before 20/21", ""},
		{"beyond", "Beyond 2025/26__Forecast", "Beyond 25/26", "Forecast"},
		{"bare half", "Financial Year 2022/23__H2__Actual", "H2 22/23", "Actual"},
		{"year total", "Financial Year 2023/24 (£s)__Total", "", "Total"},
		{"half in text", "Financial Year 2023/24__SH1 (Apr-Sep)__Actual", "", "Actual"},
		{"other", "Grand Total", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.label, gridutil.PeriodLabel(tt.header))
			assert.Equal(t, tt.tag, gridutil.StateTag(tt.header))
		})
	}
}

func TestDropEmptyRows(t *testing.T) {
	tbl := table.New("Risks", "Name", "Category")
	tbl.AppendValues(1, value.Str("a"), value.NullValue)
	tbl.AppendValues(2, value.Str(gridutil.Unselected), value.NullValue)
	tbl.AppendValues(3, value.NullValue, value.Str(""))
	tbl.AppendValues(4, value.NullValue, value.Str("Reporting"))
	gridutil.DropEmptyRows(tbl, "Name", "Category")
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, []int{1, 4}, tbl.DistinctIndexes())
}

func TestMonths(t *testing.T) {
	assert.Equal(t, day(2024, 2, 29), gridutil.MonthEnd(day(2024, 2, 10)))
	assert.Equal(t, day(2021, 3, 31), gridutil.AddMonths(day(2020, 4, 1), 11))
	assert.Equal(t, 2023, gridutil.FinancialYearStart(day(2024, 3, 1)))
	assert.Equal(t, 2024, gridutil.FinancialYearStart(day(2024, 4, 1)))
}

func ptr(t time.Time) *time.Time { return &t }
