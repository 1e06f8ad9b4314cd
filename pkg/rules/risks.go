package rules

import (
	"fmt"
	"slices"

	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/schema"
)

// MinProgrammeRisks is the smallest number of programme level risks.
const MinProgrammeRisks = 3

// ProjectRisks requires at least one risk for every project that is not
// completed.
func ProjectRisks(c *Context) []failure.Failure {
	ids := c.projectIDs()
	withRisks := make(map[string]bool)
	for _, v := range c.tbl(schema.TableRisks).Column(schema.ColProjectID) {
		if !v.IsBlank() {
			withRisks[v.Text()] = true
		}
	}
	completed := make(map[string]bool)
	for _, r := range c.tbl(schema.TableProjectProgress).Rows {
		if r.Get("Project Delivery Status").Text() == StatusCompleted {
			completed[r.Get(schema.ColProjectID).Text()] = true
		}
	}

	var missing []string
	for _, id := range ids {
		if !withRisks[id] && !completed[id] {
			missing = append(missing, id)
		}
	}
	slices.Sort(missing)

	var res []failure.Failure
	for _, id := range missing {
		n := projectNumber(id, ids)
		row := 13 + 8*n
		if n > 3 {
			row++
		}
		res = append(res, failure.Generic{
			Table:    schema.TableRisks,
			Section:  fmt.Sprintf("Project Risks - Project %d", n),
			Column:   "RiskName",
			Message:  failure.MsgProjectRisks,
			RowIndex: row,
		})
	}
	return res
}

// ProgrammeRisks requires MinProgrammeRisks programme level risks.
func ProgrammeRisks(c *Context) []failure.Failure {
	var n int
	for _, v := range c.tbl(schema.TableRisks).Column(schema.ColProgrammeID) {
		if !v.IsBlank() {
			n++
		}
	}
	if n >= MinProgrammeRisks {
		return nil
	}
	return []failure.Failure{failure.Generic{
		Table:    schema.TableRisks,
		Section:  "Programme Risks",
		Column:   "RiskName",
		Message:  failure.MsgProgrammeRisks,
		RowIndex: 10,
	}}
}
