package rules

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/tfingest/pkg/cast"
	"github.com/gnames/tfingest/pkg/extract"
	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/refdata"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/shopspring/decimal"
)

// Sections of the Funding Profiles tab.
const (
	SectionFunding          = "Project Funding Profiles"
	SectionFundingQuestions = `Towns Deal Only - "Other/Early" TD Funding`
)

func fundingSection(row int) string {
	return fmt.Sprintf("%s - Project %d", SectionFunding, layout.Funding.Number(row))
}

// otherSources returns funding rows entered under "Other Funding
// Sources", one per spreadsheet row.
func (c *Context) otherSources() []table.Row {
	var res []table.Row
	for _, r := range c.tbl(schema.TableFunding).Rows {
		if !slices.Contains(extract.PredefinedFundingSources, r.Get("Funding Source Name").Text()) {
			res = append(res, r)
		}
	}
	return firstByIndex(res)
}

// FundingSourceType requires "Other Funding Sources" to use a funding
// source category from the dropdown.
func FundingSourceType(c *Context) []failure.Failure {
	allowed := c.Ref.Enum(refdata.EnumFundingSourceCategory)
	var res []failure.Failure
	for _, r := range c.otherSources() {
		if isOneOf(r.Get("Funding Source Type"), allowed) {
			continue
		}
		res = append(res, failure.Generic{
			Table:    schema.TableFunding,
			Section:  fundingSection(r.Index),
			Column:   "Funding Source Type",
			Message:  failure.MsgDropdown,
			RowIndex: r.Index,
		})
	}
	return res
}

// OtherFundingSourceHS requires High Streets Fund returns to have at
// least one other funding source over all projects.
func OtherFundingSourceHS(c *Context) []failure.Failure {
	if c.fundType() != extract.HighStreetsFund || len(c.otherSources()) > 0 {
		return nil
	}
	return []failure.Failure{failure.Generic{
		Table:   schema.TableFunding,
		Section: SectionFunding,
		Column:  "Funding Source Type",
		Message: failure.MsgMissingOtherFundingSources,
	}}
}

// FundingSecured requires the Secured column of other funding sources.
func FundingSecured(c *Context) []failure.Failure {
	var res []failure.Failure
	for _, r := range c.otherSources() {
		if !r.Get("Secured").IsNull() {
			continue
		}
		res = append(res, failure.Generic{
			Table:    schema.TableFunding,
			Section:  fundingSection(r.Index),
			Column:   "Secured",
			Message:  failure.MsgBlank,
			RowIndex: r.Index,
		})
	}
	return res
}

// spend is the Towns Fund expenditure of one project.
type spend struct {
	cdel, rdel, total decimal.Decimal
}

// projectSpend sums Towns Fund spend of a project. It returns false when
// a figure is not a number.
func projectSpend(funding *table.Table, id string) (spend, bool) {
	var res spend
	for _, r := range funding.Rows {
		name := r.Get("Funding Source Name").Text()
		if r.Get(schema.ColProjectID).Text() != id ||
			r.Get("Funding Source Type").Text() != extract.SourceTownsFund ||
			strings.Contains(name, "contractually committed") {
			continue
		}
		v := r.Get("Spend for Reporting Period")
		if v.IsNull() {
			continue
		}
		d, ok := v.AsNumber()
		if !ok {
			return res, false
		}
		if strings.Contains(name, "CDEL") {
			res.cdel = res.cdel.Add(d)
		}
		if strings.Contains(name, "RDEL") {
			res.rdel = res.rdel.Add(d)
		}
		res.total = res.total.Add(d)
	}
	return res, true
}

// FundingSpent compares Towns Fund spend with allocations. Town Deal
// projects are checked per expense type, High Streets Fund programmes by
// their grand total. Ids without an allocation are not checked.
func FundingSpent(c *Context) []failure.Failure {
	ids := c.projectIDs()
	funding := c.tbl(schema.TableFunding)
	spends := make(map[string]spend, len(ids))
	for _, id := range ids {
		s, ok := projectSpend(funding, id)
		if !ok {
			return nil
		}
		spends[id] = s
	}

	var res []failure.Failure
	if c.fundType() == extract.HighStreetsFund {
		programme := c.tbl(schema.TableProgramme)
		if programme.Len() == 0 {
			return nil
		}
		total := decimal.Zero
		for _, s := range spends {
			total = total.Add(s.total)
		}
		programmeID := programme.Rows[0].Get(schema.ColProgrammeID).Text()
		alloc, ok := c.Ref.Allocation(programmeID, "Total")
		if !ok {
			slog.Debug("No allocation, spend not checked", "id", programmeID)
			return nil
		}
		if !total.Round(0).GreaterThan(alloc) {
			return nil
		}
		for _, id := range ids {
			res = append(res, failure.Generic{
				Table:    schema.TableFunding,
				Section:  SectionFunding,
				Column:   "Grand Total",
				Message:  failure.MsgOverspendProgramme,
				RowIndex: 17 + 28*projectNumber(id, ids),
			})
		}
		return res
	}

	for _, id := range ids {
		if _, ok := c.Ref.Allocation(id, "Total"); !ok {
			slog.Debug("No allocation, spend not checked", "id", id)
		}
	}
	for _, kind := range []string{"CDEL", "RDEL"} {
		for _, id := range ids {
			alloc, ok := c.Ref.Allocation(id, kind)
			if !ok {
				continue
			}
			spent := spends[id].cdel
			row := 13
			if kind == "RDEL" {
				spent, row = spends[id].rdel, 16
			}
			if !spent.Round(0).GreaterThan(alloc) {
				continue
			}
			n := projectNumber(id, ids)
			res = append(res, failure.Generic{
				Table:    schema.TableFunding,
				Section:  fmt.Sprintf("%s - Project %d", SectionFunding, n),
				Column:   "Grand Total",
				Message:  strings.ReplaceAll(failure.MsgOverspend, "{expense_type}", kind),
				RowIndex: row + 28*n,
			})
		}
	}
	return res
}

// Funding questions checked against dropdowns or for numbers.
var (
	dropdownQuestions = map[string]string{
		"Beyond these three funding types, have you received any payments for specific projects?": refdata.EnumYesNo,
		"Please confirm whether the amount utilised represents your entire allocation":            refdata.EnumYesNo,
		"Please select the option that best describes how the funding was, or will be, utilised":  refdata.EnumFundingUses,
	}
	numericQuestion = "Please indicate how much of your allocation has been utilised"
)

// FundingQuestions requires every funding question to be answered with a
// dropdown value or a number where the question needs one.
func FundingQuestions(c *Context) []failure.Failure {
	var res []failure.Failure
	for _, r := range c.tbl(schema.TableFundingQuestions).Rows {
		column := r.Get("Indicator").Text()
		if r.Get("Indicator").IsNull() {
			column = "All Columns"
		}
		question := strings.TrimSpace(r.Get("Question").Text())
		response := r.Get("Response")
		fail := func(msg string) {
			res = append(res, failure.Generic{
				Table:    schema.TableFundingQuestions,
				Section:  SectionFundingQuestions,
				Column:   column,
				Message:  msg,
				RowIndex: r.Index,
			})
		}

		switch {
		case response.IsBlank():
			fail(failure.MsgBlank)
		case dropdownQuestions[question] != "":
			if !isOneOf(response, c.Ref.Enum(dropdownQuestions[question])) {
				fail(failure.MsgDropdown)
			}
		case strings.HasPrefix(question, numericQuestion):
			if _, ok := cast.ParseNumber(response.Text()); !ok {
				fail(failure.MsgWrongTypeNumerical)
			}
		}
	}
	return res
}
