package extract

import (
	"strings"

	"github.com/gnames/tfingest/pkg/gridutil"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/gnames/tfingest/pkg/workbook"
)

// index converts a 0-based grid row to a spreadsheet row.
func index(row int) int { return row + 1 }

// text returns the trimmed display text of a cell.
func text(g *workbook.Grid, r, c int) string {
	return strings.TrimSpace(g.At(r, c).Text())
}

// cells returns values of columns c0 to c1 (exclusive) of a grid row.
func cells(g *workbook.Grid, r, c0, c1 int) []value.Value {
	res := make([]value.Value, 0, c1-c0)
	for c := c0; c < c1; c++ {
		res = append(res, g.At(r, c))
	}
	return res
}

// blockTitle strips the "Project X: " prefix of a section title.
func blockTitle(s string) string {
	_, name, ok := strings.Cut(s, ": ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(name)
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// placeDetails reads "Section A" of the Project Admin tab.
func (e *Extractor) placeDetails(wb workbook.Workbook) *table.Table {
	g, _ := wb.Sheet(layout.SheetProjectAdmin)
	t := table.New(schema.TablePlaceDetails, "Question", "Indicator", "Answer")
	var question []value.Value
	for r := 6; r < 21; r++ {
		question = append(question, g.At(r, 2))
	}
	filled := gridutil.ForwardFill(question)
	for i, r := 0, 6; r < 21; i, r = i+1, r+1 {
		t.AppendValues(index(r), value.Str(filled[i]), g.At(r, 3), g.At(r, 4))
	}
	return t
}

// answer returns the first answer to a question of Place Details.
func answer(places *table.Table, question string) string {
	for _, r := range places.Rows {
		if strings.TrimSpace(r.Get("Question").Text()) == question {
			return strings.TrimSpace(r.Get("Answer").Text())
		}
	}
	return ""
}

// projectLookup maps project names of a place to their identifiers.
func (e *Extractor) projectLookup(wb workbook.Workbook, fund, place string) map[string]string {
	g, _ := wb.Sheet(layout.SheetProjectIdentifiers)
	r0, r1, c := 3, g.Rows(), 1
	if fund == HighStreetsFund {
		r1, c = min(296, g.Rows()), 8
	}
	res := make(map[string]string)
	for r := r0; r < r1; r++ {
		if !sameName(text(g, r, c+1), place) {
			continue
		}
		name := text(g, r, c+2)
		if name == "" {
			continue
		}
		res[name] = text(g, r, c)
	}
	return res
}

// programmeID builds the programme identifier from the fund code and the
// place code of the "Place Identifiers" sheet.
func (e *Extractor) programmeID(wb workbook.Workbook, fund, place string) (string, error) {
	g, _ := wb.Sheet(layout.SheetPlaceIdentifiers)
	r0, r1, c := 2, g.Rows(), 1
	if fund == HighStreetsFund {
		r1, c = min(74, g.Rows()), 4
	}
	for r := r0; r < r1; r++ {
		if sameName(text(g, r, c), place) {
			return fund + "-" + text(g, r, c+1), nil
		}
	}
	return "", LookupError(layout.SheetPlaceIdentifiers, place)
}

// programme builds Programme_Ref and Organisation_Ref.
func (e *Extractor) programme(sub *submission) (*table.Table, *table.Table, error) {
	org, ok := e.rd.Organisation(sub.place)
	if !ok {
		return nil, nil, LookupError("reference places", sub.place)
	}
	p := table.New(schema.TableProgramme,
		schema.ColProgrammeID, "Programme Name", "FundType_ID", "Organisation")
	p.AppendValues(1,
		value.Str(sub.programmeID), value.Str(sub.place),
		value.Str(sub.fund), value.Str(org))

	o := table.New(schema.TableOrganisation, "Organisation", "Geography")
	o.AppendValues(1, value.Str(org), value.NullValue)
	return p, o, nil
}
