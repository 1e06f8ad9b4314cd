// Package layout describes where data lives in each round of the Towns Fund
// reporting template.
//
// Every round is a RoundLayout value. Later rounds are built from the
// round 4 layout with their deltas, so extractors, rules and the messenger
// never compare round numbers themselves.
package layout

import (
	"strings"
	"time"
)

// Sheet names of the reporting template.
const (
	SheetStartHere          = "1 - Start Here"
	SheetProjectAdmin       = "2 - Project Admin"
	SheetProgrammeProgress  = "3 - Programme Progress"
	SheetFundingProfiles    = "4a - Funding Profiles"
	SheetPSI                = "4b - PSI"
	SheetOutputs            = "5 - Project Outputs"
	SheetOutcomes           = "6 - Outcomes"
	SheetRiskRegister       = "7 - Risk Register"
	SheetReviewSignOff      = "8 - Review & Sign-Off"
	SheetProjectIdentifiers = "Project Identifiers"
	SheetPlaceIdentifiers   = "Place Identifiers"
)

// FormSheets are the sheets a submitted return is read from.
var FormSheets = []string{
	SheetStartHere, SheetProjectAdmin, SheetProgrammeProgress,
	SheetFundingProfiles, SheetPSI, SheetOutputs, SheetOutcomes,
	SheetRiskRegister, SheetReviewSignOff,
}

// Sections repeating down a sheet. Rows are 0-based grid rows of the
// whole sheet.
var (
	// Funding has one 28-row profile per project.
	Funding = SectionLayout{Start: 32, Stride: 28}

	// ProjectRisks has one 8-row block per project, with an extra hidden
	// row above the fourth project.
	ProjectRisks = SectionLayout{
		Start: 18, Stride: 8,
		Shifts: []Shift{{From: 3, Delta: 1}},
	}

	// Outputs has one 38-row block per project.
	Outputs = SectionLayout{Start: 15, Stride: 38}

	// OutputNames locates the "Project X: name" title of output blocks,
	// which sits one row lower from the second project on.
	OutputNames = SectionLayout{
		Start: 15, Stride: 38,
		Shifts: []Shift{{From: 1, Delta: 1}},
	}

	// Footfall has 15 indicator blocks of 32 rows each.
	Footfall = SectionLayout{Start: 53, Stride: 32, Count: 15}

	// FootfallYears are the six yearly rows of one footfall block,
	// relative to the block.
	FootfallYears = SectionLayout{Start: 0, Stride: 5, Count: 6}
)

// FundingCommentOffset is the row of a project comment relative to its
// funding profile.
const FundingCommentOffset = 26

// FootfallFirstRow is the first spreadsheet row of footfall outcomes.
// Rows above it belong to other outcome indicators.
const FootfallFirstRow = 60

// RoundLayout is the description of one reporting round.
type RoundLayout struct {
	// Round is the reporting round number.
	Round int

	// Period is the reporting period text as shown in the template.
	Period string

	// PeriodStart and PeriodEnd are the bounds of the observation period.
	// PeriodEnd is the last second of the period.
	PeriodStart, PeriodEnd time.Time

	// FormVersion is the template name expected in the "Start Here" tab.
	FormVersion string

	// FormVersionMessage and PeriodMessage are shown when the template
	// name or the period does not match.
	FormVersionMessage, PeriodMessage string

	// ProgressColumnsEnd is the exclusive end column of the Project
	// Progress table.
	ProgressColumnsEnd int

	// DropProgrammeQ6 removes the sixth Programme Progress question.
	DropProgrammeQ6 bool

	// RiskNameRequired drops risk rows without a name. When false, risk
	// rows are dropped only if all their data columns are empty.
	RiskNameRequired bool

	// OutcomeProjectRequired drops outcome rows without a project.
	OutcomeProjectRequired bool

	// DropUndatedTownsFund drops "Towns Fund" funding rows that fall
	// before 2020/21 or beyond 2025/26.
	DropUndatedTownsFund bool

	// HSForecastCutoff drops High Streets Fund "Towns Fund" rows starting
	// after it. Nil keeps every row.
	HSForecastCutoff *time.Time

	// Extended is true for the round 4 template family, which has a
	// stricter schema, pre-transformation authorisation and business rules.
	Extended bool

	// ProjectStartRule enables the check of "Not yet started" projects
	// against the reporting period.
	ProjectStartRule bool
}

// ActualCutoff is the date dividing actual and forecast figures.
func (l RoundLayout) ActualCutoff() time.Time {
	return l.PeriodEnd
}

// Rounds lists supported reporting rounds.
func Rounds() []int {
	return []int{3, 4, 5, 6}
}

// ForRound returns the layout of a reporting round.
func ForRound(round int) (RoundLayout, error) {
	switch round {
	case 3:
		l := base(round, "1 October 2022 to 31 March 2023")
		l.FormVersion = "Town Deals and Future High Streets Fund Reporting Template (v3.0)"
		l.FormVersionMessage = `Fund Name in the tab "1 - Start Here" must be "` +
			l.FormVersion + `".`
		l.PeriodMessage = `Reporting Period in the tab "1 - Start Here" must be "` +
			l.Period + `".`
		l.ProgressColumnsEnd = 13
		l.RiskNameRequired = true
		l.OutcomeProjectRequired = true
		l.HSForecastCutoff = cutoff(2023, 10, 1)
		return l, nil
	case 4:
		l := extended(round, "1 April 2023 to 30 September 2023")
		l.HSForecastCutoff = cutoff(2024, 4, 1)
		return l, nil
	case 5:
		l := extended(round, "1 October 2023 to 31 March 2024")
		l.HSForecastCutoff = cutoff(2024, 10, 1)
		return l, nil
	case 6:
		l := extended(round, "1 April 2024 to 30 September 2024")
		l.DropUndatedTownsFund = false
		l.ProjectStartRule = true
		return l, nil
	}
	return RoundLayout{}, UnknownRoundError(round)
}

func base(round int, period string) RoundLayout {
	start, end := parsePeriod(period)
	return RoundLayout{
		Round:                round,
		Period:               period,
		PeriodStart:          start,
		PeriodEnd:            end,
		DropUndatedTownsFund: true,
	}
}

func extended(round int, period string) RoundLayout {
	l := base(round, period)
	l.FormVersion = "Town Deals and Future High Streets Fund Reporting Template (v4.3)"
	l.FormVersionMessage = "The selected file must be the " + l.FormVersion + "."
	l.PeriodMessage = "Cell B6 in the “start here” tab must say “" + period +
		"”. Select this option from the dropdown list provided."
	l.ProgressColumnsEnd = 15
	l.DropProgrammeQ6 = true
	l.Extended = true
	return l
}

// parsePeriod converts "1 April 2024 to 30 September 2024" to its bounds.
// Periods are constants of this package, so a malformed one is a bug.
func parsePeriod(period string) (time.Time, time.Time) {
	startTxt, endTxt, _ := strings.Cut(period, " to ")
	start, err := time.Parse("2 January 2006", startTxt)
	if err != nil {
		panic(err)
	}
	end, err := time.Parse("2 January 2006", endTxt)
	if err != nil {
		panic(err)
	}
	end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return start, end
}

func cutoff(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
