package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/gridutil"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/gnames/tfingest/pkg/workbook"
)

// Sections of the Outcomes tab used in failures.
const (
	SectionOutcomes = "Outcome Indicators (excluding footfall)"
	SectionFootfall = "Footfall Indicator"
)

// Fixed names of footfall indicators.
const (
	FootfallOutcome = "Year on Year monthly % change in footfall"
	FootfallUnit    = "Year-on-year % change in monthly footfall"
)

// sectionHeading is a dropdown entry that names a group, not an outcome.
const sectionHeading = "*** ORIGINAL: ***"

// Columns of the outcome indicators table.
const (
	colOutcome         = 1
	colOutcomeUnit     = 2
	colOutcomeProject  = 3
	colOutcomeGeo      = 4
	colFirstYear       = 5
	colHigherFrequency = 15
)

var outcomeColumns = []string{
	schema.ColProjectID, schema.ColProgrammeID, schema.ColStartDate, schema.ColEndDate,
	"Outcome", "UnitofMeasurement", "GeographyIndicator", "Amount",
	schema.ColActualForecast, "Higher Frequency",
}

var yearRe = regexp.MustCompile(`\d{4}`)

// outcomes reads outcome indicators and footfall. Projects that are not
// in the project lookup cannot be mapped, and are returned as failures.
func (e *Extractor) outcomes(sub *submission) (*table.Table, []failure.Failure) {
	g, _ := sub.wb.Sheet(layout.SheetOutcomes)
	t, fails := e.indicatorOutcomes(sub, g)
	footfall, ffFails := e.footfallOutcomes(sub, g)
	fails = append(fails, ffFails...)
	if len(fails) > 0 {
		return nil, fails
	}
	t.Concat(footfall)
	return t, nil
}

func (e *Extractor) validProject(sub *submission, name string) bool {
	if name == multipleProjects {
		return true
	}
	_, ok := sub.projects[name]
	return ok
}

// linkProject returns Project ID and Programme ID of an outcome. Outcomes
// of several projects belong to the programme.
func linkProject(sub *submission, name string) (value.Value, value.Value) {
	if name == multipleProjects {
		return value.NullValue, value.Str(sub.programmeID)
	}
	return sub.projectID(name), value.NullValue
}

func (e *Extractor) indicatorOutcomes(
	sub *submission,
	g *workbook.Grid,
) (*table.Table, []failure.Failure) {
	t := table.New(schema.TableOutcomes, outcomeColumns...)
	var fails []failure.Failure
	var rows []int
	for r := 21; r < 41; r++ {
		rows = append(rows, r)
	}
	for r := 42; r < 52; r++ {
		rows = append(rows, r)
	}

	for _, r := range rows {
		if gridutil.IsEmpty(g.At(r, colOutcome)) || text(g, r, colOutcome) == sectionHeading {
			continue
		}
		project := text(g, r, colOutcomeProject)
		if e.l.OutcomeProjectRequired && gridutil.IsEmpty(g.At(r, colOutcomeProject)) {
			continue
		}
		if !e.validProject(sub, project) {
			fails = append(fails, failure.Generic{
				Table:    schema.TableOutcomes,
				Section:  SectionOutcomes,
				Column:   "Relevant project(s)",
				RowIndex: index(r),
				Message:  failure.MsgDropdown,
			})
			continue
		}
		projectID, programmeID := linkProject(sub, project)
		for k := range colHigherFrequency - colFirstYear {
			c := colFirstYear + k
			year := 2020 + k
			if y := yearRe.FindString(g.At(15, c).Text()); y != "" {
				year, _ = strconv.Atoi(y)
			}
			start := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
			end := time.Date(year+1, time.March, 31, 0, 0, 0, 0, time.UTC)
			t.AppendValues(index(r),
				projectID, programmeID,
				value.Time(start), value.Time(end),
				value.Str(text(g, r, colOutcome)), g.At(r, colOutcomeUnit), g.At(r, colOutcomeGeo),
				g.At(r, c),
				value.Str(e.state(text(g, 16, c), &end)),
				g.At(r, colHigherFrequency),
			)
		}
	}
	t.SortBy(schema.ColProjectID)
	return t, fails
}

func (e *Extractor) footfallOutcomes(
	sub *submission,
	g *workbook.Grid,
) (*table.Table, []failure.Failure) {
	t := table.New(schema.TableOutcomes, outcomeColumns...)
	var fails []failure.Failure
	for n := range layout.Footfall.Count {
		b := layout.Footfall.Block(n)
		row := b + 6
		if gridutil.IsEmpty(g.At(row, 1)) {
			continue
		}
		project := text(g, row, 1)
		if !e.validProject(sub, project) {
			fails = append(fails, failure.Generic{
				Table:     schema.TableOutcomes,
				Section:   SectionFootfall,
				CellIndex: fmt.Sprintf("B%d", index(row)+5),
				Message:   failure.MsgDropdown,
			})
			continue
		}
		projectID, programmeID := linkProject(sub, project)
		geo := g.At(row+5, 2)
		for y := range layout.FootfallYears.Count {
			off := layout.FootfallYears.Block(y)
			header := layout.Footfall.Start + off
			first := time.Date(2020+y, time.April, 1, 0, 0, 0, 0, time.UTC)
			for m := range 12 {
				c := 3 + m
				start, ok := g.At(header+4, c).AsTime()
				if !ok {
					start = first.AddDate(0, m, 0)
				}
				start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
				end := gridutil.MonthEnd(start)
				t.AppendValues(index(row),
					projectID, programmeID,
					value.Time(start), value.Time(end),
					value.Str(FootfallOutcome), value.Str(FootfallUnit), geo,
					g.At(row+off, c),
					value.Str(e.state(text(g, header+5, c), &end)),
					value.NullValue,
				)
			}
		}
	}
	t.SortBy(schema.ColProjectID)
	return t, fails
}

// trimColumn trims text values of a column.
func trimColumn(t *table.Table, col string) {
	for _, r := range t.Rows {
		if s, ok := r.Get(col).AsString(); ok {
			r.Cells[col] = value.Str(strings.TrimSpace(s))
		}
	}
}
