package extract

import (
	"slices"
	"strings"

	"github.com/gnames/tfingest/pkg/gridutil"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/refdata"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
)

// Output block rows relative to the block start.
var outputRows = [][2]int{{8, 11}, {12, 27}, {28, 38}}

// outputs reads the output indicators of every project.
func (e *Extractor) outputs(sub *submission) *table.Table {
	g, _ := sub.wb.Sheet(layout.SheetOutputs)
	c0, c1 := 4, 23
	h := layout.Outputs.Start
	headers := periodHeaders(cells(g, h+3, c0, c1), cells(g, h+5, c0, c1), cells(g, h+6, c0, c1))
	idVars := []string{schema.ColProjectID, "Output", "Unit of Measurement", "Additional Information"}

	wide := table.New(schema.TableOutputs, append(slices.Clone(idVars), headers...)...)
	for n := range len(sub.projects) {
		line := layout.Outputs.Block(n)
		id := sub.projectID(blockTitle(g.At(layout.OutputNames.Block(n), 2).Text()))
		for _, span := range outputRows {
			for r := line + span[0]; r < line+span[1]; r++ {
				vals := []value.Value{id, g.At(r, 2), g.At(r, 3), g.At(r, 24)}
				wide.AppendValues(index(r), append(vals, cells(g, r, c0, c1)...)...)
			}
		}
	}
	gridutil.DropEmptyRows(wide, "Output")
	trimColumn(wide, "Output")
	dropNonPeriods(wide, headers)

	res := e.unpivot(wide, idVars, "Amount", financialHalf)
	res.Select(schema.ColProjectID, schema.ColStartDate, schema.ColEndDate, "Output",
		"Unit of Measurement", schema.ColActualForecast, "Amount", "Additional Information")
	return res
}

// outputCategories maps every reported output to its category.
func outputCategories(outputs *table.Table, rd *refdata.Data) *table.Table {
	t := table.New(schema.TableOutputsRef, "Output Name", "Output Category")
	for i, name := range uniqueTexts(outputs, "Output") {
		t.AppendValues(i+1, value.Str(name), value.Str(rd.OutputCategory(name)))
	}
	return t
}

// outcomeCategories maps every reported outcome to its category.
func outcomeCategories(outcomes *table.Table, rd *refdata.Data) *table.Table {
	t := table.New(schema.TableOutcomeRef, "Outcome_Name", "Outcome_Category")
	for i, name := range uniqueTexts(outcomes, "Outcome") {
		t.AppendValues(i+1, value.Str(name), value.Str(rd.OutcomeCategory(name)))
	}
	return t
}

// uniqueTexts returns distinct non-blank texts of a column in order of
// appearance.
func uniqueTexts(t *table.Table, col string) []string {
	var res []string
	seen := make(map[string]struct{})
	for _, v := range t.Column(col) {
		s := strings.TrimSpace(v.Text())
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		res = append(res, s)
	}
	return res
}
