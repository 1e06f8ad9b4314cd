package extract

import (
	"slices"

	"github.com/gnames/tfingest/pkg/gridutil"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/gnames/tfingest/pkg/workbook"
)

// riskCells maps RiskColumns to sheet columns. Raw score columns J and N
// are skipped.
var riskCells = []int{2, 3, 4, 5, 6, 7, 8, 10, 11, 12, 14, 15}

// risks reads programme and project risk registers.
func (e *Extractor) risks(sub *submission) *table.Table {
	g, _ := sub.wb.Sheet(layout.SheetRiskRegister)
	t := table.New(schema.TableRisks,
		append([]string{schema.ColProgrammeID, schema.ColProjectID}, schema.RiskColumns...)...)

	programme := value.Str(sub.programmeID)
	for r := 11; r < 14; r++ {
		t.AppendValues(index(r), riskRow(g, r, programme, value.NullValue)...)
	}
	for n := range len(sub.projects) {
		line := layout.ProjectRisks.Block(n)
		id := sub.projectID(text(g, line, 3))
		for r := line + 4; r < line+7; r++ {
			t.AppendValues(index(r), riskRow(g, r, value.NullValue, id)...)
		}
	}

	if e.l.RiskNameRequired {
		gridutil.DropEmptyRows(t, "RiskName")
	} else {
		gridutil.DropEmptyRows(t, slices.Clone(schema.RiskColumns)...)
	}
	return t
}

func riskRow(g *workbook.Grid, r int, programme, project value.Value) []value.Value {
	res := make([]value.Value, 0, len(riskCells)+2)
	res = append(res, programme, project)
	for _, c := range riskCells {
		res = append(res, g.At(r, c))
	}
	return res
}
