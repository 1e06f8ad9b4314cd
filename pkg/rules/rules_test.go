package rules_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/gnames/tfingest/internal/iorefdata"
	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/refdata"
	"github.com/gnames/tfingest/pkg/rules"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/gnames/tfingest/pkg/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refData(t *testing.T) *refdata.Data {
	rd, err := iorefdata.Load("")
	require.Nil(t, err)
	rd.Allocations = []refdata.Allocation{
		{ID: "TD-BED-01", CDEL: "100", RDEL: "10", Total: "110"},
		{ID: "HS-HEA", Total: "50"},
	}
	require.Nil(t, rd.Build())
	return rd
}

func context(t *testing.T, fund string) *rules.Context {
	l, err := layout.ForRound(4)
	require.Nil(t, err)

	programmeID := "TD-BED"
	if fund == "HS" {
		programmeID = "HS-HEA"
	}
	programme := table.New(schema.TableProgramme, schema.ColProgrammeID, "FundType_ID")
	programme.AppendValues(1, value.Str(programmeID), value.Str(fund))

	details := table.New(schema.TableProjectDetails, schema.ColProjectID,
		"Single or Multiple Locations", "Locations", "Postcodes", "GIS Provided")
	details.AppendValues(27, value.Str("TD-BED-01"), value.Str("Single"),
		value.Str("BN9 0DF"), value.Strings([]string{"BN9 0DF"}), value.NullValue)
	details.AppendValues(28, value.Str("TD-BED-02"), value.Str("Multiple"),
		value.Str("SW1P 4DF"), value.Strings([]string{"SW1P 4DF"}), value.Str("Yes"))

	progress := table.New(schema.TableProjectProgress, schema.ColProjectID,
		"Project Delivery Status", "Start Date", "Leading Factor of Delay",
		"Current Project Delivery Stage", "Most Important Upcoming Comms Milestone",
		"Date of Most Important Upcoming Comms Milestone (e.g. Dec-22)")
	milestone := value.Time(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	progress.AppendValues(20, value.Str("TD-BED-01"), value.Str("2. Ongoing - on track"),
		value.Time(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)), value.NullValue,
		value.Str("Feasibility"), value.Str("Opening"), milestone)
	progress.AppendValues(21, value.Str("TD-BED-02"), value.Str(rules.StatusCompleted),
		value.Time(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)), value.NullValue,
		value.NullValue, value.NullValue, value.NullValue)

	risks := table.New(schema.TableRisks, schema.ColProgrammeID, schema.ColProjectID, "RiskName")
	for i := range 3 {
		risks.AppendValues(12+i, value.Str(programmeID), value.NullValue, value.Str("risk"))
	}
	risks.AppendValues(23, value.NullValue, value.Str("TD-BED-01"), value.Str("risk"))

	funding := table.New(schema.TableFunding, schema.ColProjectID, "Funding Source Name",
		"Funding Source Type", "Secured", "Spend for Reporting Period")
	funding.AppendValues(38, value.Str("TD-BED-01"),
		value.Str("Towns Fund CDEL which is being utilised on TF project related activity "+
			"(For Town Deals, this excludes the 5% CDEL Pre-Payment)"),
		value.Str("Towns Fund"), value.NullValue, value.Int(60))
	funding.AppendValues(50, value.Str("TD-BED-01"), value.Str("Council money"),
		value.Str("Local Authority"), value.Str("Yes"), value.Int(5))
	funding.AppendValues(50, value.Str("TD-BED-01"), value.Str("Council money"),
		value.Str("Local Authority"), value.Str("Yes"), value.Int(6))

	psi := table.New(schema.TablePrivateInvestments, schema.ColProjectID,
		"Private Sector Funding Required", "Private Sector Funding Secured", "Additional Comments")
	psi.AppendValues(13, value.Str("TD-BED-01"), value.Int(10), value.Int(10), value.NullValue)

	signOff := workbook.NewGrid(20, 3)
	for _, r := range []int{7, 8, 10, 14, 15, 17} {
		signOff.Set(r, 2, value.Str("filled"))
	}

	set := table.Set{}
	for _, tbl := range []*table.Table{programme, details, progress, risks, funding, psi,
		table.New(schema.TableOutcomes, schema.ColProjectID, schema.ColProgrammeID),
		table.New(schema.TableFundingQuestions, "Question", "Indicator", "Response"),
	} {
		set.Add(tbl)
	}
	return &rules.Context{
		Tables:   set,
		Workbook: workbook.Workbook{layout.SheetReviewSignOff: signOff},
		Ref:      refData(t),
		Layout:   l,
	}
}

func generic(t *testing.T, fs []failure.Failure) []failure.Generic {
	res := make([]failure.Generic, len(fs))
	for i, f := range fs {
		g, ok := f.(failure.Generic)
		require.True(t, ok)
		res[i] = g
	}
	return res
}

func TestCleanContext(t *testing.T) {
	c := context(t, "TD")
	rs, err := rules.ForRound(4)
	require.Nil(t, err)
	assert.Empty(t, rules.Apply(c, rs))
}

func TestForRound(t *testing.T) {
	tests := []struct {
		msg   string
		round int
		n     int
	}{
		{"round 3", 3, 1},
		{"round 4", 4, 14},
		{"round 5", 5, 14},
		{"round 6", 6, 15},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			rs, err := rules.ForRound(tt.round)
			require.Nil(t, err)
			assert.Len(t, rs, tt.n)
		})
	}
	_, err := rules.ForRound(7)
	assert.NotNil(t, err)
}

func TestRisks(t *testing.T) {
	c := context(t, "TD")
	c.Tables[schema.TableRisks].Filter(func(r table.Row) bool { return r.Index != 23 })
	c.Tables[schema.TableRisks].Rows = c.Tables[schema.TableRisks].Rows[1:]

	res := generic(t, rules.ProjectRisks(c))
	require.Len(t, res, 1)
	assert.Equal(t, "Project Risks - Project 1", res[0].Section)
	assert.Equal(t, 21, res[0].RowIndex)

	res = generic(t, rules.ProgrammeRisks(c))
	require.Len(t, res, 1)
	assert.Equal(t, 10, res[0].RowIndex)
	assert.Equal(t, failure.MsgProgrammeRisks, res[0].Message)
}

func TestFunding(t *testing.T) {
	c := context(t, "TD")
	funding := c.Tables[schema.TableFunding]
	funding.AppendValues(51, value.Str("TD-BED-01"), value.Str("Grants"),
		value.Str("Lottery"), value.NullValue, value.Int(1))

	res := generic(t, rules.FundingSourceType(c))
	require.Len(t, res, 1)
	assert.Equal(t, "Project Funding Profiles - Project 1", res[0].Section)
	assert.Equal(t, 51, res[0].RowIndex)

	res = generic(t, rules.FundingSecured(c))
	require.Len(t, res, 1)
	assert.Equal(t, "Secured", res[0].Column)

	funding.Rows[0].Cells["Spend for Reporting Period"] = value.Int(101)
	res = generic(t, rules.FundingSpent(c))
	require.Len(t, res, 1)
	assert.Equal(t, 41, res[0].RowIndex)
	assert.Contains(t, res[0].Message, "total CDEL amount")

	funding.Rows[0].Cells["Spend for Reporting Period"] = value.Str("lots")
	assert.Empty(t, rules.FundingSpent(c))
}

func TestFundingHS(t *testing.T) {
	c := context(t, "HS")
	c.Tables[schema.TableFunding].Filter(func(r table.Row) bool { return r.Index != 50 })
	res := generic(t, rules.OtherFundingSourceHS(c))
	require.Len(t, res, 1)
	assert.Equal(t, failure.MsgMissingOtherFundingSources, res[0].Message)

	res = generic(t, rules.FundingSpent(c))
	require.Len(t, res, 2)
	assert.Equal(t, 45, res[0].RowIndex)
	assert.Equal(t, 73, res[1].RowIndex)
}

func TestFundingSpentUnallocated(t *testing.T) {
	tests := []struct {
		msg     string
		fund    string
		edit    func(*rules.Context)
		logged  string
		skipped string
	}{
		{"town deal project", "TD", func(*rules.Context) {}, "id=TD-BED-02", "id=TD-BED-01"},
		{"high streets programme", "HS", func(c *rules.Context) {
			c.Tables[schema.TableProgramme].Rows[0].Cells[schema.ColProgrammeID] = value.Str("HS-NEW")
		}, "id=HS-NEW", "id=HS-HEA"},
	}

	def := slog.Default()
	defer slog.SetDefault(def)

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			buf := new(bytes.Buffer)
			slog.SetDefault(slog.New(slog.NewTextHandler(buf,
				&slog.HandlerOptions{Level: slog.LevelDebug})))

			c := context(t, tt.fund)
			tt.edit(c)
			assert.Empty(t, rules.FundingSpent(c))

			out := buf.String()
			assert.Contains(t, out, "No allocation")
			assert.Contains(t, out, tt.logged)
			assert.NotContains(t, out, tt.skipped)
		})
	}
}

func TestProjectDetails(t *testing.T) {
	c := context(t, "TD")
	details := c.Tables[schema.TableProjectDetails]
	details.Rows[0].Cells["Locations"] = value.Str("somewhere")
	details.Rows[0].Cells["Postcodes"] = value.Strings(nil)
	details.Rows[1].Cells["GIS Provided"] = value.Str("Maybe")

	res := generic(t, rules.Postcodes(c))
	require.Len(t, res, 1)
	assert.Equal(t, 27, res[0].RowIndex)

	res = generic(t, rules.Locations(c))
	require.Len(t, res, 1)
	assert.Equal(t, failure.MsgDropdown, res[0].Message)

	details.Rows[1].Cells["Locations"] = value.NullValue
	details.Rows[1].Cells["GIS Provided"] = value.NullValue
	res = generic(t, rules.Locations(c))
	require.Len(t, res, 2)
	assert.Equal(t, "Locations", res[0].Column)
	assert.Equal(t, "GIS Provided", res[1].Column)
}

func TestPSI(t *testing.T) {
	c := context(t, "TD")
	psi := c.Tables[schema.TablePrivateInvestments]
	psi.Rows[0].Cells["Private Sector Funding Required"] = value.Int(20)
	psi.Rows[0].Cells["Private Sector Funding Secured"] = value.Int(-1)

	res := generic(t, rules.PSIFundingGap(c))
	require.Len(t, res, 1)
	assert.Equal(t, failure.MsgBlankPSI, res[0].Message)

	res = generic(t, rules.PSINotNegative(c))
	require.Len(t, res, 1)
	assert.Equal(t, "Private Sector Funding Secured", res[0].Column)
}

func TestProjectProgress(t *testing.T) {
	c := context(t, "TD")
	progress := c.Tables[schema.TableProjectProgress]
	progress.Rows[0].Cells["Project Delivery Status"] = value.Str(rules.StatusNotStarted)
	progress.Rows[0].Cells["Current Project Delivery Stage"] = value.Str("")

	res := generic(t, rules.ProjectProgress(c))
	require.Len(t, res, 2)
	assert.Equal(t, "Leading Factor of Delay", res[0].Column)
	assert.Equal(t, failure.MsgBlankIfProjectIncomplete, res[1].Message)

	res = generic(t, rules.ProjectStart(c))
	require.Len(t, res, 1)
	assert.Equal(t, failure.MsgProjectStartMismatch, res[0].Message)

	progress.Rows[0].Cells["Start Date"] = value.Time(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, rules.ProjectStart(c))
}

func TestFundingQuestions(t *testing.T) {
	c := context(t, "TD")
	q := c.Tables[schema.TableFundingQuestions]
	q.AppendValues(15, value.Str("Beyond these three funding types, have you received any "+
		"payments for specific projects?"), value.NullValue, value.Str("Maybe"))
	q.AppendValues(16, value.Str("Please indicate how much of your allocation has been "+
		"utilised (in Â£s)"), value.Str("TDF"), value.Str("a lot"))
	q.AppendValues(17, value.Str("Please indicate how much of your allocation has been "+
		"utilised (in Â£s)"), value.Str("CDEL"), value.Str("£1,000"))
	q.AppendValues(18, value.Str("Other question"), value.Str("RDEL"), value.Str(""))

	res := generic(t, rules.FundingQuestions(c))
	require.Len(t, res, 3)
	assert.Equal(t, "All Columns", res[0].Column)
	assert.Equal(t, failure.MsgDropdown, res[0].Message)
	assert.Equal(t, failure.MsgWrongTypeNumerical, res[1].Message)
	assert.Equal(t, failure.MsgBlank, res[2].Message)
}

func TestSignOff(t *testing.T) {
	c := context(t, "TD")
	g, _ := c.Workbook.Sheet(layout.SheetReviewSignOff)
	g.Set(15, 2, value.Str(""))
	g.Set(8, 2, value.NullValue)

	res := generic(t, rules.SignOff(c))
	require.Len(t, res, 2)
	assert.Equal(t, "C16", res[0].CellIndex)
	assert.Equal(t, "C9", res[1].CellIndex)
}

func TestProjectOrProgramme(t *testing.T) {
	c := context(t, "TD")
	outcomes := c.Tables[schema.TableOutcomes]
	outcomes.AppendValues(22, value.Str("TD-BED-01"), value.NullValue)
	outcomes.AppendValues(22, value.Str("TD-BED-01"), value.NullValue)
	outcomes.AppendValues(23, value.NullValue, value.NullValue)
	outcomes.AppendValues(61, value.Str("TD-BED-01"), value.Str("TD-BED"))
	c.Tables[schema.TableRisks].AppendValues(24, value.NullValue, value.NullValue, value.Str("x"))

	res := generic(t, rules.ProjectOrProgramme(c))
	require.Len(t, res, 3)
	assert.Equal(t, "Outcome Indicators (excluding footfall)", res[0].Section)
	assert.Equal(t, "Footfall Indicator", res[1].Section)
	assert.Equal(t, "Project Risks - Project 1", res[2].Section)
}
