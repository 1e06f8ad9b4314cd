package extract

import (
	"slices"
	"strings"

	"github.com/gnames/tfingest/pkg/gridutil"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
)

// Funding source names fixed by the template.
const (
	SourceTownsFund      = "Towns Fund"
	SourceCDELPrePayment = "Town Deals 5% CDEL Pre-Payment"
	SourceRDELPayment    = "Towns Fund RDEL Payment which is being utilised on TF project related activity"
	SourceRDELCommitted  = "How much of your RDEL forecast is contractually committed?"
)

// PredefinedFundingSources are the sources listed above "Other Funding
// Sources" in every funding profile.
var PredefinedFundingSources = []string{
	"Commercial Income",
	"How much of your CDEL forecast is contractually committed?",
	SourceRDELCommitted,
	SourceCDELPrePayment,
	"Towns Fund CDEL which is being utilised on TF project related activity " +
		"(For Town Deals, this excludes the 5% CDEL Pre-Payment)",
	SourceRDELPayment,
}

// hsUnusedSources are Towns Fund rows that do not apply to High Streets
// Fund returns.
var hsUnusedSources = []string{SourceCDELPrePayment, SourceRDELPayment, SourceRDELCommitted}

const programmeOnly = "Programme only"

// programmeManagement reads Town Deal programme management payments.
func (e *Extractor) programmeManagement(sub *submission) *table.Table {
	cols := []string{schema.ColProgrammeID, "Payment Type", "Spend for Reporting Period",
		schema.ColActualForecast, schema.ColStartDate, schema.ColEndDate}
	if sub.fund != TownDeal {
		return table.New(schema.TableProgrammeManagement, cols...)
	}
	g, _ := sub.wb.Sheet(layout.SheetFundingProfiles)
	c0, c1 := 6, 24
	headers := periodHeaders(cells(g, 22, c0, c1), cells(g, 23, c0, c1), cells(g, 24, c0, c1))

	wide := table.New(schema.TableProgrammeManagement,
		append([]string{schema.ColProgrammeID, "Payment Type"}, headers...)...)
	for r := 25; r < 27; r++ {
		vals := append([]value.Value{value.Str(sub.programmeID), g.At(r, 2)},
			cells(g, r, c0, c1)...)
		wide.AppendValues(index(r), vals...)
	}
	dropNonPeriods(wide, headers)

	res := e.unpivot(wide, []string{schema.ColProgrammeID, "Payment Type"},
		"Spend for Reporting Period", financialHalf)
	res.Select(cols...)
	return res
}

// fundingQuestions reads the Town Deal "Other/Early" funding questions.
func (e *Extractor) fundingQuestions(sub *submission) *table.Table {
	cols := []string{"Question", "Guidance Notes", "Indicator", "Response", schema.ColProgrammeID}
	t := table.New(schema.TableFundingQuestions, cols...)
	if sub.fund == HighStreetsFund {
		return t
	}
	g, _ := sub.wb.Sheet(layout.SheetFundingProfiles)

	// columns without a header are spacers
	var used []int
	for c := 2; c < 13; c++ {
		if !g.At(13, c).IsNull() {
			used = append(used, c)
		}
	}
	if len(used) < 2 {
		return t
	}
	qCol, notesCol := used[0], used[len(used)-1]
	indicators := used[1 : len(used)-1]

	response := func(v value.Value) value.Value {
		if gridutil.IsEmpty(v) {
			return value.Str("")
		}
		return value.Str(strings.TrimSpace(v.Text()))
	}
	programme := value.Str(sub.programmeID)

	// the first question has a single answer and no indicators
	t.AppendValues(index(14), g.At(14, qCol), g.At(14, notesCol), value.NullValue,
		response(g.At(14, used[1])), programme)
	for r := 15; r < 20; r++ {
		for _, c := range indicators {
			t.AppendValues(index(r), g.At(r, qCol), g.At(r, notesCol),
				value.Str(strings.TrimSpace(g.At(13, c).Text())), response(g.At(r, c)), programme)
		}
	}
	t.SortBy("Question", "Indicator")
	return t
}

// fundingComments reads the comment of every project funding profile.
func (e *Extractor) fundingComments(sub *submission) *table.Table {
	g, _ := sub.wb.Sheet(layout.SheetFundingProfiles)
	t := table.New(schema.TableFundingComments, schema.ColProjectID, "Comment")
	for n := range len(sub.projects) {
		b := layout.Funding.Block(n)
		name := blockTitle(g.At(b, 2).Text())
		r := b + layout.FundingCommentOffset
		t.AppendValues(index(r), sub.projectID(name), g.At(r, 2))
	}
	return t
}

// funding reads project funding profiles.
func (e *Extractor) funding(sub *submission) *table.Table {
	g, _ := sub.wb.Sheet(layout.SheetFundingProfiles)
	byProgramme := strings.TrimSpace(g.At(18, 4).Text()) == programmeOnly
	c0, c1 := 5, 25
	h := layout.Funding.Start
	headers := periodHeaders(cells(g, h+2, c0, c1), cells(g, h+3, c0, c1), cells(g, h+4, c0, c1))
	idVars := []string{schema.ColProjectID, "Funding Source Name", "Funding Source Type", "Secured"}

	wide := table.New(schema.TableFunding, append(slices.Clone(idVars), headers...)...)
	for n := range len(sub.projects) {
		b := layout.Funding.Block(n)
		id := sub.projectID(blockTitle(g.At(b, 2).Text()))
		var rows []int
		for r := b + 5; r < b+8; r++ {
			rows = append(rows, r)
		}
		rows = append(rows, b+9, b+10)
		towns := len(rows)
		for r := b + 17; r < b+22; r++ {
			rows = append(rows, r)
		}
		for i, r := range rows {
			typ := g.At(r, 3)
			if i < towns {
				typ = value.Str(SourceTownsFund)
			}
			vals := append([]value.Value{id, g.At(r, 2), typ, g.At(r, 4)}, cells(g, r, c0, c1)...)
			wide.AppendValues(index(r), vals...)
		}
	}
	gridutil.DropEmptyRows(wide, "Funding Source Name")
	dropNonPeriods(wide, headers)

	res := e.unpivot(wide, idVars, "Spend for Reporting Period", financialHalf)
	for _, r := range res.Rows {
		r.Cells["Funding Source Name"] = value.Str(strings.TrimSpace(r.Get("Funding Source Name").Text()))
	}
	res.Filter(func(r table.Row) bool {
		return !e.unusedFunding(r, sub.fund, byProgramme)
	})
	res.SortBy(schema.ColProjectID, "Funding Source Name")
	res.Select(schema.ColProjectID, "Funding Source Name", "Funding Source Type", "Secured",
		schema.ColStartDate, schema.ColEndDate, "Spend for Reporting Period", schema.ColActualForecast)
	return res
}

// unusedFunding reports Towns Fund cells that do not apply to a return.
func (e *Extractor) unusedFunding(r table.Row, fund string, byProgramme bool) bool {
	if r.Get("Funding Source Type").Text() != SourceTownsFund {
		return false
	}
	name := r.Get("Funding Source Name").Text()
	start, hasStart := r.Get(schema.ColStartDate).AsTime()
	_, hasEnd := r.Get(schema.ColEndDate).AsTime()
	if e.l.DropUndatedTownsFund && (!hasStart || !hasEnd) {
		return true
	}
	switch fund {
	case HighStreetsFund:
		if slices.Contains(hsUnusedSources, name) {
			return true
		}
		cut := e.l.HSForecastCutoff
		return cut != nil && hasStart && start.After(*cut)
	case TownDeal:
		return byProgramme && name == SourceCDELPrePayment
	}
	return false
}

// privateInvestments reads the PSI tab.
func (e *Extractor) privateInvestments(sub *submission) *table.Table {
	g, _ := sub.wb.Sheet(layout.SheetPSI)
	t := table.New(schema.TablePrivateInvestments,
		schema.ColProjectID, "Total Project Value", "Townsfund Funding",
		"Private Sector Funding Required", "Private Sector Funding Secured",
		"Additional Comments")
	for r := 12; r < 32; r++ {
		name := g.At(r, 3)
		if gridutil.IsEmpty(name) {
			continue
		}
		t.AppendValues(index(r), sub.projectID(name.Text()),
			g.At(r, 4), g.At(r, 5), g.At(r, 6), g.At(r, 7), g.At(r, 9))
	}
	return t
}
