package extract

import (
	"time"

	"github.com/gnames/tfingest/pkg/gridutil"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
)

// Figure states.
const (
	Actual   = "Actual"
	Forecast = "Forecast"
)

const reportingPeriod = "Reporting Period"

// datesFunc converts a period header to the bounds of the period.
type datesFunc func(header string) (start, end *time.Time)

// financialHalf reads bounds of half-year headers such as
// "Financial Year 2023/24 (£s)__H1 (Apr-Sep)__Actual".
func financialHalf(header string) (*time.Time, *time.Time) {
	return gridutil.FinancialHalf(gridutil.PeriodLabel(header))
}

// unpivot melts every column of t not in idVars into rows holding the
// figure in valueName and its Start_Date, End_Date and Actual/Forecast.
func (e *Extractor) unpivot(
	t *table.Table,
	idVars []string,
	valueName string,
	dates datesFunc,
) *table.Table {
	res := t.Melt(idVars, reportingPeriod, valueName)
	for i, r := range res.Rows {
		h := r.Get(reportingPeriod).Text()
		start, end := dates(h)
		res.Rows[i].Cells[schema.ColStartDate] = value.FromTimePtr(start)
		res.Rows[i].Cells[schema.ColEndDate] = value.FromTimePtr(end)
		res.Rows[i].Cells[schema.ColActualForecast] = value.Str(e.state(gridutil.StateTag(h), end))
	}
	res.Columns = append(res.Columns,
		schema.ColStartDate, schema.ColEndDate, schema.ColActualForecast)
	res.Drop(reportingPeriod)
	return res
}

// state returns the header tag when it names a state. Otherwise periods
// ending by the end of the reporting period are actual figures.
func (e *Extractor) state(tag string, end *time.Time) string {
	switch tag {
	case Actual, Forecast:
		return tag
	}
	if end != nil && !end.After(e.l.ActualCutoff()) {
		return Actual
	}
	return Forecast
}

// periodHeaders joins three header rows of period columns.
func periodHeaders(top, mid, low []value.Value) []string {
	return gridutil.JoinHeaders(
		gridutil.ForwardFill(top), gridutil.Texts(mid), gridutil.Texts(low))
}

// dropNonPeriods removes columns whose headers do not name a financial
// half, such as yearly totals and spacers.
func dropNonPeriods(t *table.Table, headers []string) {
	var drop []string
	for _, h := range headers {
		if gridutil.PeriodLabel(h) == "" {
			drop = append(drop, h)
		}
	}
	t.Drop(drop...)
}
