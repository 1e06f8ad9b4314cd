package rules

import (
	"fmt"

	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/extract"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/refdata"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/value"
)

// Sections of form tabs used by rules.
const (
	SectionProjectDetails = "Project Details"
	SectionPSI            = "Private Sector Investment"
	SectionProgress       = "Projects Progress Summary"
	SectionSignOff        = "-"
	TableSignOff          = "Review & Sign-Off"
)

// PSIFundingGap requires a comment when required private funding is
// greater than secured funding.
func PSIFundingGap(c *Context) []failure.Failure {
	var res []failure.Failure
	for _, r := range c.tbl(schema.TablePrivateInvestments).Rows {
		req, ok1 := r.Get("Private Sector Funding Required").AsNumber()
		sec, ok2 := r.Get("Private Sector Funding Secured").AsNumber()
		if !ok1 || !ok2 || !req.GreaterThan(sec) || !r.Get("Additional Comments").IsBlank() {
			continue
		}
		res = append(res, failure.Generic{
			Table:    schema.TablePrivateInvestments,
			Section:  SectionPSI,
			Column:   "Additional Comments",
			Message:  failure.MsgBlankPSI,
			RowIndex: r.Index,
		})
	}
	return res
}

// PSINotNegative rejects negative private sector funding.
func PSINotNegative(c *Context) []failure.Failure {
	var res []failure.Failure
	t := c.tbl(schema.TablePrivateInvestments)
	for _, col := range []string{"Private Sector Funding Required", "Private Sector Funding Secured"} {
		for _, r := range t.Rows {
			d, ok := r.Get(col).AsNumber()
			if !ok || !d.IsNegative() {
				continue
			}
			res = append(res, failure.Generic{
				Table:    schema.TablePrivateInvestments,
				Section:  SectionPSI,
				Column:   col,
				Message:  failure.MsgNegativeNumber,
				RowIndex: r.Index,
			})
		}
	}
	return res
}

// Locations requires locations of projects, and a GIS answer for
// projects with multiple locations. Rows without a valid multiplicity are
// reported by schema validation.
func Locations(c *Context) []failure.Failure {
	var res []failure.Failure
	fail := func(col, msg string, row int) {
		res = append(res, failure.Generic{
			Table:    schema.TableProjectDetails,
			Section:  SectionProjectDetails,
			Column:   col,
			Message:  msg,
			RowIndex: row,
		})
	}
	rows := c.tbl(schema.TableProjectDetails).Rows
	for _, r := range rows {
		switch r.Get("Single or Multiple Locations").Text() {
		case "Single", "Multiple":
			if r.Get("Locations").IsBlank() {
				fail("Locations", failure.MsgBlank, r.Index)
			}
		}
	}
	yesNo := c.Ref.Enum(refdata.EnumYesNo)
	for _, r := range rows {
		if r.Get("Single or Multiple Locations").Text() != "Multiple" {
			continue
		}
		gis := r.Get("GIS Provided")
		switch {
		case gis.IsBlank():
			fail("GIS Provided", failure.MsgBlank, r.Index)
		case !isOneOf(gis, yesNo):
			fail("GIS Provided", failure.MsgDropdown, r.Index)
		}
	}
	return res
}

// Postcodes requires entered locations to contain a postcode.
func Postcodes(c *Context) []failure.Failure {
	var res []failure.Failure
	for _, r := range c.tbl(schema.TableProjectDetails).Rows {
		if r.Get("Locations").IsBlank() {
			continue
		}
		if pcs, _ := r.Get("Postcodes").AsList(); len(pcs) > 0 {
			continue
		}
		res = append(res, failure.Generic{
			Table:    schema.TableProjectDetails,
			Section:  SectionProjectDetails,
			Column:   "Postcodes",
			Message:  failure.MsgPostcode,
			RowIndex: r.Index,
		})
	}
	return res
}

// ProjectProgress requires a delay factor for delayed projects, and
// delivery stage and milestone for incomplete ones.
func ProjectProgress(c *Context) []failure.Failure {
	checks := []struct {
		col     string
		msg     string
		applies func(status string) bool
	}{
		{"Leading Factor of Delay", failure.MsgBlank, func(s string) bool {
			return s == StatusNotStarted || s == StatusDelayed
		}},
		{"Current Project Delivery Stage", failure.MsgBlankIfProjectIncomplete, incomplete},
		{"Most Important Upcoming Comms Milestone", failure.MsgBlankIfProjectIncomplete, incomplete},
		{"Date of Most Important Upcoming Comms Milestone (e.g. Dec-22)",
			failure.MsgBlankIfProjectIncomplete, incomplete},
	}

	var res []failure.Failure
	rows := c.tbl(schema.TableProjectProgress).Rows
	for _, ch := range checks {
		for _, r := range rows {
			if !ch.applies(r.Get("Project Delivery Status").Text()) || !r.Get(ch.col).IsBlank() {
				continue
			}
			res = append(res, failure.Generic{
				Table:    schema.TableProjectProgress,
				Section:  SectionProgress,
				Column:   ch.col,
				Message:  ch.msg,
				RowIndex: r.Index,
			})
		}
	}
	return res
}

func incomplete(status string) bool { return status != StatusCompleted }

// ProjectStart rejects projects that have not started although their
// start date is within or before the reporting period.
func ProjectStart(c *Context) []failure.Failure {
	var res []failure.Failure
	for _, r := range c.tbl(schema.TableProjectProgress).Rows {
		if r.Get("Project Delivery Status").Text() != StatusNotStarted {
			continue
		}
		start, ok := r.Get("Start Date").AsTime()
		if !ok || start.After(c.Layout.PeriodEnd) {
			continue
		}
		res = append(res, failure.Generic{
			Table:    schema.TableProjectProgress,
			Section:  SectionProgress,
			Column:   "Start Date",
			Message:  failure.MsgProjectStartMismatch,
			RowIndex: r.Index,
		})
	}
	return res
}

// signOffRows are grid rows of the town board chair and section 151
// officer names, roles and dates.
var signOffRows = []int{14, 15, 17, 7, 8, 10}

// SignOff requires names, roles and dates of the sign-off tab.
func SignOff(c *Context) []failure.Failure {
	g, ok := c.Workbook.Sheet(layout.SheetReviewSignOff)
	if !ok {
		return nil
	}
	var res []failure.Failure
	for _, r := range signOffRows {
		if !g.At(r, 2).IsBlank() {
			continue
		}
		res = append(res, failure.Generic{
			Table:     TableSignOff,
			Section:   SectionSignOff,
			CellIndex: fmt.Sprintf("C%d", r+1),
			Message:   failure.MsgBlank,
		})
	}
	return res
}

// ProjectOrProgramme requires outcomes and risks to belong to exactly
// one of a project or the programme.
func ProjectOrProgramme(c *Context) []failure.Failure {
	var res []failure.Failure
	for _, name := range []string{schema.TableOutcomes, schema.TableRisks} {
		for _, r := range firstByIndex(c.tbl(name).Rows) {
			if hasValue(r.Get(schema.ColProjectID)) != hasValue(r.Get(schema.ColProgrammeID)) {
				continue
			}
			res = append(res, failure.Generic{
				Table:    name,
				Section:  linkSection(name, r.Index),
				Column:   schema.ColProjectID,
				Message:  failure.MsgProjectOrProgramme,
				RowIndex: r.Index,
			})
		}
	}
	return res
}

func hasValue(v value.Value) bool { return !v.IsBlank() }

func linkSection(tableName string, row int) string {
	if tableName == schema.TableOutcomes {
		if row >= layout.FootfallFirstRow {
			return extract.SectionFootfall
		}
		return extract.SectionOutcomes
	}
	if n := layout.ProjectRisks.Number(row); n > 0 {
		return fmt.Sprintf("Project Risks - Project %d", n)
	}
	return "Programme Risks"
}
