package messenger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/tfingest/pkg/extract"
	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/rules"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/xuri/excelize/v2"
)

// Form tabs as they are named in messages.
const (
	SheetProjectAdmin      = "Project Admin"
	SheetProgrammeProgress = "Programme Progress"
	SheetFundingProfiles   = "Funding Profiles"
	SheetOutcomes          = "Outcomes"
	SheetOutputs           = "Project Outputs"
	SheetRiskRegister      = "Risk Register"
	SheetPSI               = "PSI"
	SheetReviewSignOff     = "Review & Sign-Off"
)

const (
	sectionFunding       = "Project Funding Profiles"
	sectionRisks         = "Programme / Project Risks"
	sectionOutcomesBoth  = "Outcome Indicators (excluding footfall) / Footfall Indicator"
	sectionOutcomesTyped = "Outcome Indicators (excluding footfall) and Footfall Indicator"
	sectionProgramme     = "Programme-Wide Progress Summary"

	formAmount = "Financial Year 2022/21 - Financial Year 2025/26"
	formUnit   = "Unit of Measurement"
	formGeo    = "Geography Indicator"
)

var tableSheets = map[string]string{
	schema.TableProjectDetails:      SheetProjectAdmin,
	schema.TablePlaceDetails:        SheetProjectAdmin,
	schema.TableProjectProgress:     SheetProgrammeProgress,
	schema.TableProgrammeProgress:   SheetProgrammeProgress,
	schema.TableFunding:             SheetFundingProfiles,
	schema.TableFundingQuestions:    SheetFundingProfiles,
	schema.TableFundingComments:     SheetFundingProfiles,
	schema.TableProgrammeManagement: SheetFundingProfiles,
	schema.TableOutcomes:            SheetOutcomes,
	schema.TableOutputs:             SheetOutputs,
	schema.TableRisks:               SheetRiskRegister,
	schema.TablePrivateInvestments:  SheetPSI,
	rules.TableSignOff:              SheetReviewSignOff,
}

// tableSections are used for columns without their own section.
var tableSections = map[string]string{
	schema.TableProjectDetails:      "Project Details",
	schema.TablePlaceDetails:        "Place Details",
	schema.TableProjectProgress:     "Projects Progress Summary",
	schema.TableProgrammeProgress:   sectionProgramme,
	schema.TableFunding:             sectionFunding,
	schema.TableFundingQuestions:    rules.SectionFundingQuestions,
	schema.TableFundingComments:     sectionFunding,
	schema.TableProgrammeManagement: "Programme Management",
	schema.TableOutcomes:            sectionOutcomesBoth,
	schema.TableOutputs:             "Project Outputs",
	schema.TableRisks:               sectionRisks,
	schema.TablePrivateInvestments:  "Private Sector Investment",
	rules.TableSignOff:              rules.SectionSignOff,
}

type formColumn struct {
	name, section string
}

var columnForms = map[string]formColumn{
	"Single or Multiple Locations": {
		"Does the project have a single location (e.g. one site) or multiple " +
			"(e.g. multiple sites or across a number of post codes)?",
		"Project Details",
	},
	"GIS Provided": {
		"Are you providing a GIS map (see guidance) with your return?", "Project Details",
	},
	"Answer":                         {"Answer", sectionProgramme},
	"Start Date":                     {"Start Date - mmm/yy (e.g. Dec-22)", "Projects Progress Summary"},
	"Completion Date":                {"Completion Date - mmm/yy (e.g. Dec-22)", "Projects Progress Summary"},
	"Current Project Delivery Stage": {"Current Project Delivery Stage", "Projects Progress Summary"},
	"Project Adjustment Request Status": {
		"Project Adjustment Request Status", "Projects Progress Summary",
	},
	"Project Delivery Status": {"Project Delivery Status", "Projects Progress Summary"},
	"Leading Factor of Delay": {"Leading Factor of Delay", "Projects Progress Summary"},
	"Delivery (RAG)":          {"Delivery (RAG)", "Projects Progress Summary"},
	"Spend (RAG)":             {"Spend (RAG)", "Projects Progress Summary"},
	"Risk (RAG)":              {"Risk (RAG)", "Projects Progress Summary"},
	"Commentary on Status and RAG Ratings": {
		"Commentary on Status and RAG Ratings", "Projects Progress Summary",
	},
	"Most Important Upcoming Comms Milestone": {
		"Most Important Upcoming Comms Milestone", "Projects Progress Summary",
	},
	"Date of Most Important Upcoming Comms Milestone (e.g. Dec-22)": {
		"Date of Most Important Upcoming Comms Milestone (e.g. Dec-22)",
		"Projects Progress Summary",
	},
	"Secured":                 {"Has this funding source been secured?", sectionFunding},
	"GeographyIndicator":      {formGeo, extract.SectionOutcomes},
	"RiskName":                {"Risk Name", sectionRisks},
	"RiskCategory":            {"Risk Category", sectionRisks},
	"Short Description":       {"Short description of the Risk", sectionRisks},
	"Full Description":        {"Full Description", sectionRisks},
	"Consequences":            {"Consequences", sectionRisks},
	"Pre-mitigatedImpact":     {"Pre-mitigated Impact", sectionRisks},
	"Pre-mitigatedLikelihood": {"Pre-mitigated Likelihood", sectionRisks},
	"Mitigatons":              {"Mitigations", sectionRisks},
	"PostMitigatedImpact":     {"Post-Mitigated Impact", sectionRisks},
	"PostMitigatedLikelihood": {"Post-mitigated Likelihood", sectionRisks},
	"Proximity":               {"Proximity", sectionRisks},
	"RiskOwnerRole":           {"Risk Owner/Role", sectionRisks},
	"Funding Source Name":     {"Funding Source Name", sectionFunding},
	"Funding Source Type":     {"Funding Source", sectionFunding},
	schema.ColStartDate:       {"H1 (Apr-Sep)", sectionFunding},
	schema.ColEndDate:         {"H2 (Oct-Mar)", sectionFunding},
	"Total Project Value":     {"Total Project Value (£)", "Private Sector Investment"},
	"Townsfund Funding":       {"Award From Townsfund (£)", "Private Sector Investment"},
	"Output":                  {"Indicator Name", "Project Outputs"},
	"Unit of Measurement":     {formUnit, "Project Outputs"},
	"UnitofMeasurement":       {formUnit, sectionOutcomesBoth},
	"Outcome":                 {"Indicator Name", sectionOutcomesBoth},
	"Project Name":            {"Project Name", "Project Details"},
	"Primary Intervention Theme": {
		"Primary Intervention Theme", "Project Details",
	},
	"Locations": {"Project Location(s) - Post Code (e.g. SW1P 4DF)", "Project Details"},
	"Lat/Long": {
		"Project Location - Lat/Long Coordinates (3.d.p e.g. 51.496, -0.129)",
		"Project Details",
	},
	"Private Sector Funding Required": {
		"Private Sector Funding Required", "Private Sector Investment",
	},
	"Private Sector Funding Secured": {
		"Private Sector Funding Secured", "Private Sector Investment",
	},
	"Spend for Reporting Period": {formAmount, sectionFunding},
	"Amount":                     {formAmount, "Project Outputs"},
}

// cellTemplates map columns of tables to spreadsheet column letters. The
// "{i}" placeholder is the spreadsheet row.
var cellTemplates = map[string]map[string]string{
	schema.TablePlaceDetails: {"Question": "C{i}", "Indicator": "D{i}", "Answer": "E{i}"},
	schema.TableProjectDetails: {
		"Project Name":                 "E{i}",
		"Primary Intervention Theme":   "F{i}",
		"Single or Multiple Locations": "G{i}",
		"Locations":                    "H{i} or K{i}",
		"Postcodes":                    "H{i} or K{i}",
		"Lat/Long":                     "I{i} or L{i}",
		"GIS Provided":                 "J{i}",
	},
	schema.TableProgrammeProgress: {"Question": "C{i}", "Answer": "D{i}"},
	schema.TableProjectProgress: {
		"Start Date":                              "D{i}",
		"Completion Date":                         "E{i}",
		"Current Project Delivery Stage":          "F{i}",
		"Project Delivery Status":                 "G{i}",
		"Leading Factor of Delay":                 "H{i}",
		"Project Adjustment Request Status":       "I{i}",
		"Delivery (RAG)":                          "J{i}",
		"Spend (RAG)":                             "K{i}",
		"Risk (RAG)":                              "L{i}",
		"Commentary on Status and RAG Ratings":    "M{i}",
		"Most Important Upcoming Comms Milestone": "N{i}",
		"Date of Most Important Upcoming Comms Milestone (e.g. Dec-22)": "O{i}",
	},
	schema.TableFundingQuestions: {
		"All Columns": "E{i}",
		"TD 5% CDEL Pre-Payment\n(Towns Fund FAQs p.46 - 49)": "E{i}",
		"TD RDEL Capacity Funding":                            "F{i}",
		"TD Accelerated Funding":                              "I{i}",
	},
	schema.TableFundingComments: {"Comment": "C{i} to E{i}"},
	schema.TableFunding: {
		"Funding Source Name":        "C{i}",
		"Funding Source Type":        "D{i}",
		"Secured":                    "E{i}",
		"Spend for Reporting Period": "F{i} to Y{i}",
		"Grand Total":                "Z{i}",
	},
	schema.TableProgrammeManagement: {
		"Payment Type":               "C{i}",
		"Spend for Reporting Period": "G{i} to X{i}",
	},
	schema.TablePrivateInvestments: {
		"Private Sector Funding Required": "G{i}",
		"Private Sector Funding Secured":  "H{i}",
		"Additional Comments":             "J{i}",
	},
	schema.TableOutputs: {
		"Output":                 "C{i}",
		"Unit of Measurement":    "D{i}",
		"Amount":                 "E{i} to W{i}",
		"Additional Information": "Y{i}",
	},
	schema.TableOutcomes: {
		schema.ColProjectID:   "D{i}",
		"Outcome":             "B{i}",
		"UnitofMeasurement":   "C{i}",
		"Relevant project(s)": "D{i}",
		"GeographyIndicator":  "E{i}",
		"Amount":              "F{i} to O{i}",
		"Higher Frequency":    "P{i}",
	},
	schema.TableRisks: {
		schema.ColProjectID:       "C{i}",
		"RiskName":                "C{i}",
		"RiskCategory":            "D{i}",
		"Short Description":       "E{i}",
		"Full Description":        "F{i}",
		"Consequences":            "G{i}",
		"Pre-mitigatedImpact":     "H{i}",
		"Pre-mitigatedLikelihood": "I{i}",
		"Mitigatons":              "K{i}",
		"PostMitigatedImpact":     "L{i}",
		"PostMitigatedLikelihood": "M{i}",
		"Proximity":               "O{i}",
		"RiskOwnerRole":           "P{i}",
	},
}

// idColumns are derived columns that have no cell in the form.
var idColumns = map[string]bool{
	schema.ColProjectID:      true,
	schema.ColProgrammeID:    true,
	schema.ColStartDate:      true,
	schema.ColEndDate:        true,
	schema.ColActualForecast: true,
}

// TownsFund is the messenger of Towns Fund returns.
type TownsFund struct{}

// NewTownsFund returns the Towns Fund messenger.
func NewTownsFund() TownsFund {
	return TownsFund{}
}

// ToMessage implements Messenger.
func (tf TownsFund) ToMessage(f failure.Failure) (Message, error) {
	switch f := f.(type) {
	case failure.NonUniqueCompositeKey:
		return tf.duplication(f)
	case failure.WrongType:
		return tf.wrongType(f)
	case failure.InvalidEnumValue:
		return tf.dropdown(f)
	case failure.NonNullableConstraint:
		return tf.blank(f)
	case failure.UnauthorisedSubmission:
		return Message{Description: f.String(), ErrorType: "UnauthorisedSubmissionFailure"}, nil
	case failure.Generic:
		return tf.generic(f)
	}
	return Message{}, UnknownFailureError(f)
}

func (tf TownsFund) sheet(tbl string) (string, error) {
	sheet, ok := tableSheets[tbl]
	if !ok {
		return "", UnknownTableError(tbl)
	}
	return sheet, nil
}

func (tf TownsFund) duplication(f failure.NonUniqueCompositeKey) (Message, error) {
	sheet, err := tf.sheet(f.Table)
	if err != nil {
		return Message{}, err
	}
	var section string
	switch sheet {
	case SheetFundingProfiles:
		section = fmt.Sprintf("Funding Profiles - Project %d", layout.Funding.Number(f.RowIndex))
	case SheetOutputs:
		section = fmt.Sprintf("Project Outputs - Project %d", layout.Outputs.Number(f.RowIndex))
	case SheetOutcomes:
		section = outcomeSection(f.RowIndex)
	case SheetRiskRegister:
		section = riskSection(f.Row.Get(schema.ColProjectID), f.RowIndex)
	default:
		return Message{}, UnknownTableError(f.Table)
	}

	var cells []string
	for _, col := range f.Columns {
		if idColumns[col] {
			continue
		}
		cells = append(cells, cellIndex(f.Table, col, f.RowIndex))
	}
	return Message{
		Sheet:       sheet,
		Section:     section,
		CellIndexes: cells,
		Description: failure.MsgDuplication,
		ErrorType:   "NonUniqueCompositeKeyFailure",
	}, nil
}

func (tf TownsFund) wrongType(f failure.WrongType) (Message, error) {
	sheet, err := tf.sheet(f.Table)
	if err != nil {
		return Message{}, err
	}
	_, section := columnForm(f.Table, f.Column)
	cell := cellIndex(f.Table, f.Column, f.RowIndex)
	if sheet == SheetOutcomes {
		section = sectionOutcomesTyped
		cell = outcomeCell(f.Row, f.RowIndex)
	}

	var desc string
	switch {
	case f.Expected == value.Date:
		desc = strings.ReplaceAll(failure.MsgWrongTypeDate, "{wrong_type}", kindText(f.Actual))
	case sheet == SheetPSI, sheet == SheetFundingProfiles:
		desc = failure.MsgWrongTypeCurrency
	case sheet == SheetOutputs, sheet == SheetOutcomes:
		desc = failure.MsgWrongTypeNumerical
	default:
		desc = failure.MsgWrongTypeUnknown
	}
	return Message{
		Sheet:       sheet,
		Section:     section,
		CellIndexes: []string{cell},
		Description: desc,
		ErrorType:   "WrongTypeFailure",
	}, nil
}

func (tf TownsFund) dropdown(f failure.InvalidEnumValue) (Message, error) {
	sheet, err := tf.sheet(f.Table)
	if err != nil {
		return Message{}, err
	}
	form, section := columnForm(f.Table, f.Column)

	if sheet == SheetOutcomes && f.Row.Get("UnitofMeasurement").Text() == extract.FootfallUnit {
		section = extract.SectionFootfall
		// the geography of a footfall block is five rows below its project
		if form == formGeo {
			return Message{
				Sheet:       sheet,
				Section:     section,
				CellIndexes: []string{fmt.Sprintf("C%d", f.RowIndex+5)},
				Description: failure.MsgDropdown,
				ErrorType:   "InvalidEnumValueFailure",
			}, nil
		}
	}
	if sheet == SheetRiskRegister {
		section = riskSection(f.Row.Get(schema.ColProjectID), f.RowIndex)
	}
	if section == sectionFunding {
		section = fmt.Sprintf("%s - Project %d", sectionFunding, layout.Funding.Number(f.RowIndex))
	}

	return Message{
		Sheet:       sheet,
		Section:     section,
		CellIndexes: []string{cellIndex(f.Table, f.Column, f.RowIndex)},
		Description: failure.MsgDropdown,
		ErrorType:   "InvalidEnumValueFailure",
	}, nil
}

func (tf TownsFund) blank(f failure.NonNullableConstraint) (Message, error) {
	sheet, err := tf.sheet(f.Table)
	if err != nil {
		return Message{}, err
	}
	form, section := columnForm(f.Table, f.Column)
	cell := cellIndex(f.Table, f.Column, f.RowIndex)

	desc := failure.MsgBlank
	switch sheet {
	case SheetOutputs:
		switch form {
		case formUnit:
			desc = failure.MsgBlankUnitOfMeasurement
		case formAmount:
			desc = failure.MsgBlankZero
		}
	case SheetOutcomes:
		switch form {
		case formUnit:
			desc = failure.MsgBlankUnitOfMeasurement
		case formAmount:
			section = sectionOutcomesBoth
			desc = failure.MsgBlankZero
			cell = outcomeCell(f.Row, f.RowIndex)
		}
	case SheetFundingProfiles:
		desc = failure.MsgBlankZero
	}
	return Message{
		Sheet:       sheet,
		Section:     section,
		CellIndexes: []string{cell},
		Description: desc,
		ErrorType:   "NonNullableConstraintFailure",
	}, nil
}

func (tf TownsFund) generic(f failure.Generic) (Message, error) {
	sheet, err := tf.sheet(f.Table)
	if err != nil {
		return Message{}, err
	}
	cell := f.CellIndex
	if cell == "" {
		cell = cellIndex(f.Table, f.Column, f.RowIndex)
	}
	return Message{
		Sheet:       sheet,
		Section:     f.Section,
		CellIndexes: []string{cell},
		Description: f.Message,
		ErrorType:   "GenericFailure",
	}, nil
}

// columnForm returns the form name and the section of a column. Columns
// that are not shown in the form take the section of their table.
func columnForm(tbl, col string) (string, string) {
	if fc, ok := columnForms[col]; ok {
		return fc.name, fc.section
	}
	return col, tableSections[tbl]
}

// cellIndex fills the cell template of a column. Row 0 leaves the row
// out, so a failure about a whole column gives its letter only.
func cellIndex(tbl, col string, row int) string {
	tmpl := cellTemplates[tbl][col]
	i := ""
	if row > 0 {
		i = strconv.Itoa(row)
	}
	return strings.ReplaceAll(tmpl, "{i}", i)
}

func outcomeSection(row int) string {
	if row < layout.FootfallFirstRow {
		return "Outcomes Indicators (excluding footfall)"
	}
	return extract.SectionFootfall
}

func riskSection(projectID value.Value, row int) string {
	if projectID.IsBlank() {
		return "Programme Risks"
	}
	return fmt.Sprintf("Project Risks - Project %d", layout.ProjectRisks.Number(row))
}

// outcomeCell locates the amount of an outcome row. Indicator outcomes
// have one column per financial year. Footfall outcomes have one column
// per month and one row group per financial year.
func outcomeCell(row failure.Values, idx int) string {
	start, ok := row.Get(schema.ColStartDate).AsTime()
	if !ok {
		return cellIndex(schema.TableOutcomes, "Amount", idx)
	}
	fy := financialYear(start) - 2020
	if idx >= layout.FootfallFirstRow {
		col := (int(start.Month())+8)%12 + 4
		r := idx + layout.FootfallYears.Block(fy)
		cell, _ := excelize.CoordinatesToCellName(col, r)
		return cell
	}
	cell, _ := excelize.CoordinatesToCellName(6+fy, idx)
	return cell
}

func financialYear(t time.Time) int {
	if t.Month() >= time.April {
		return t.Year()
	}
	return t.Year() - 1
}

func kindText(k value.Kind) string {
	switch k {
	case value.Date:
		return "a date"
	case value.Number:
		return "a number"
	case value.String:
		return "text"
	}
	return "an unknown datatype"
}
