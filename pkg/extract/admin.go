package extract

import (
	"strings"

	"github.com/gnames/tfingest/pkg/gridutil"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
)

// Columns of "Section B" of the Project Admin tab.
const (
	colProjectName    = 4
	colTheme          = 5
	colMultiplicity   = 6
	colSingleLocation = 7
	colSingleLatLong  = 8
	colGIS            = 9
	colMultiLocation  = 10
	colMultiLatLong   = 11
)

// projectDetails reads "Section B" of the Project Admin tab.
func (e *Extractor) projectDetails(sub *submission) *table.Table {
	g, _ := sub.wb.Sheet(layout.SheetProjectAdmin)
	t := table.New(schema.TableProjectDetails,
		schema.ColProjectID, schema.ColProgrammeID, "Project Name",
		"Primary Intervention Theme", "Single or Multiple Locations", "Locations",
		"Postcodes", "GIS Provided", "Lat/Long")

	for r := 26; r < 46; r++ {
		name := g.At(r, colProjectName)
		if gridutil.IsEmpty(name) {
			continue
		}
		multiplicity := g.At(r, colMultiplicity)
		loc, latLong := colMultiLocation, colMultiLatLong
		if multiplicity.Text() == "Single" {
			loc, latLong = colSingleLocation, colSingleLatLong
		}
		locations := g.At(r, loc)
		gis := g.At(r, colGIS)
		if gis.Text() == gridutil.Unselected {
			gis = value.NullValue
		}
		t.AppendValues(index(r),
			sub.projectID(name.Text()),
			value.Str(sub.programmeID),
			name,
			g.At(r, colTheme),
			multiplicity,
			locations,
			value.Strings(gridutil.ExtractPostcodes(locations.Text())),
			gis,
			g.At(r, latLong),
		)
	}
	return t
}

// programmeProgress reads programme-wide questions and answers.
func (e *Extractor) programmeProgress(sub *submission) *table.Table {
	g, _ := sub.wb.Sheet(layout.SheetProgrammeProgress)
	t := table.New(schema.TableProgrammeProgress, "Question", "Answer", schema.ColProgrammeID)
	for i, r := 0, 6; r < 13; i, r = i+1, r+1 {
		if e.l.DropProgrammeQ6 && i == 5 {
			continue
		}
		t.AppendValues(index(r), g.At(r, 2), g.At(r, 3), value.Str(sub.programmeID))
	}
	return t
}

var progressRenames = map[string]string{
	"Start Date -\n mmm/yy (e.g. Dec-22)":        "Start Date",
	"Start Date -\r\n mmm/yy (e.g. Dec-22)":      "Start Date",
	"Start Date - mmm/yy (e.g. Dec-22)":          "Start Date",
	"Completion Date -\n mmm/yy (e.g. Dec-22)":   "Completion Date",
	"Completion Date -\r\n mmm/yy (e.g. Dec-22)": "Completion Date",
	"Completion Date - mmm/yy (e.g. Dec-22)":     "Completion Date",
}

// projectProgress reads the project progress summary. Columns are named
// by the header row of the table.
func (e *Extractor) projectProgress(sub *submission) *table.Table {
	g, _ := sub.wb.Sheet(layout.SheetProgrammeProgress)
	c0, c1 := 2, e.l.ProgressColumnsEnd
	header := make([]string, 0, c1-c0)
	for c := c0; c < c1; c++ {
		h := strings.TrimSpace(g.At(18, c).Text())
		if to, ok := progressRenames[h]; ok {
			h = to
		}
		header = append(header, h)
	}

	t := table.New(schema.TableProjectProgress, header...)
	for r := 19; r < 39; r++ {
		t.AppendValues(index(r), cells(g, r, c0, c1)...)
	}
	gridutil.DropEmptyRows(t, "Project Name")
	t.SetColumn(schema.ColProjectID, func(r table.Row) value.Value {
		return sub.projectID(r.Get("Project Name").Text())
	})
	t.Drop("Project Name")
	gridutil.ClearUnselected(t, value.Str(""))
	return t
}
