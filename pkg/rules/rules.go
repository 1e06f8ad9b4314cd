// Package rules holds business rules of Towns Fund returns that cannot be
// expressed by a table schema: cross-table checks, conditional
// requirements and checks against reference allocations.
//
// Rules run after schema validation succeeded, so they can rely on cast
// values and resolved foreign keys.
package rules

import (
	"slices"

	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/refdata"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/gnames/tfingest/pkg/workbook"
)

// Context is the data available to rules.
type Context struct {
	// Tables are the extracted, cast and validated tables.
	Tables table.Set

	// Workbook is the raw submitted workbook.
	Workbook workbook.Workbook

	Ref    *refdata.Data
	Layout layout.RoundLayout
}

// Rule checks a submission and returns failures it finds.
type Rule func(c *Context) []failure.Failure

// Project delivery statuses used by rules.
const (
	StatusNotStarted = "1. Not yet started"
	StatusDelayed    = "3. Ongoing - delayed"
	StatusCompleted  = "4. Completed"
)

// ForRound returns rules of a reporting round in the order they run.
func ForRound(round int) ([]Rule, error) {
	l, err := layout.ForRound(round)
	if err != nil {
		return nil, err
	}
	return ForLayout(l), nil
}

// ForLayout returns rules that apply to a round layout.
func ForLayout(l layout.RoundLayout) []Rule {
	res := []Rule{ProjectOrProgramme}
	if !l.Extended {
		return res
	}
	res = append(res,
		ProjectRisks,
		ProgrammeRisks,
		FundingSourceType,
		OtherFundingSourceHS,
		PSIFundingGap,
		Locations,
		FundingSpent,
		FundingSecured,
		PSINotNegative,
		Postcodes,
		ProjectProgress,
		FundingQuestions,
		SignOff,
	)
	if l.ProjectStartRule {
		res = append(res, ProjectStart)
	}
	return res
}

// Apply runs rules and concatenates their failures.
func Apply(c *Context, rules []Rule) []failure.Failure {
	var res []failure.Failure
	for _, r := range rules {
		res = append(res, r(c)...)
	}
	return res
}

// tbl returns a table by name, or an empty table.
func (c *Context) tbl(name string) *table.Table {
	if t, ok := c.Tables[name]; ok {
		return t
	}
	return table.New(name)
}

// projectIDs returns ids of Project Details in row order.
func (c *Context) projectIDs() []string {
	var res []string
	for _, v := range c.tbl(schema.TableProjectDetails).Column(schema.ColProjectID) {
		res = append(res, v.Text())
	}
	return res
}

// projectNumber returns the 1-based position of a project on the form.
func projectNumber(id string, ids []string) int {
	return slices.Index(ids, id) + 1
}

// fundType returns the fund type of the programme.
func (c *Context) fundType() string {
	p := c.tbl(schema.TableProgramme)
	if p.Len() == 0 {
		return ""
	}
	return p.Rows[0].Get("FundType_ID").Text()
}

// firstByIndex keeps the first row of every spreadsheet row, collapsing
// unpivoted rows.
func firstByIndex(rows []table.Row) []table.Row {
	seen := make(map[int]struct{})
	var res []table.Row
	for _, r := range rows {
		if _, ok := seen[r.Index]; ok {
			continue
		}
		seen[r.Index] = struct{}{}
		res = append(res, r)
	}
	return res
}

func isOneOf(v value.Value, allowed []string) bool {
	return slices.Contains(allowed, v.Text())
}
