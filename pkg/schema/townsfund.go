package schema

import (
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/refdata"
)

// Logical tables of a Towns Fund return.
const (
	TableSubmission          = "Submission_Ref"
	TableOrganisation        = "Organisation_Ref"
	TableProgramme           = "Programme_Ref"
	TablePlaceDetails        = "Place Details"
	TableProgrammeProgress   = "Programme Progress"
	TableProjectDetails      = "Project Details"
	TableProjectProgress     = "Project Progress"
	TableProgrammeManagement = "Programme Management"
	TableFundingQuestions    = "Funding Questions"
	TableFundingComments     = "Funding Comments"
	TableFunding             = "Funding"
	TablePrivateInvestments  = "Private Investments"
	TableOutputsRef          = "Outputs_Ref"
	TableOutputs             = "Output_Data"
	TableOutcomeRef          = "Outcome_Ref"
	TableOutcomes            = "Outcome_Data"
	TableRisks               = "RiskRegister"
)

// Columns shared by several tables.
const (
	ColProgrammeID    = "Programme ID"
	ColProjectID      = "Project ID"
	ColStartDate      = "Start_Date"
	ColEndDate        = "End_Date"
	ColActualForecast = "Actual/Forecast"
)

// RiskColumns are the data columns of RiskRegister.
var RiskColumns = []string{
	"RiskName", "RiskCategory", "Short Description", "Full Description",
	"Consequences", "Pre-mitigatedImpact", "Pre-mitigatedLikelihood",
	"Mitigatons", "PostMitigatedImpact", "PostMitigatedLikelihood",
	"Proximity", "RiskOwnerRole",
}

// TownsFund returns the checked schema of a reporting round. Dropdown
// values come from reference data.
func TownsFund(round int, rd *refdata.Data) (Schema, error) {
	l, err := layout.ForRound(round)
	if err != nil {
		return nil, err
	}
	b := builder{rd: rd, extended: l.Extended}
	s := b.build()
	if err = Check(s); err != nil {
		return nil, err
	}
	return s, nil
}

type builder struct {
	rd       *refdata.Data
	extended bool
}

func (b builder) enum(col, name string) Enum {
	return Enum{Column: col, Values: b.rd.Enum(name)}
}

// pick returns r4 for the round 4 template family and r3 otherwise.
func pick[T any](b builder, r3, r4 T) T {
	if b.extended {
		return r4
	}
	return r3
}

func projectFK() ForeignKey {
	return ForeignKey{Column: ColProjectID, ParentTable: TableProjectDetails, ParentPK: ColProjectID}
}

func programmeFK() ForeignKey {
	return ForeignKey{Column: ColProgrammeID, ParentTable: TableProgramme, ParentPK: ColProgrammeID}
}

func (b builder) build() Schema {
	return Schema{
		TableSubmission:          b.submission(),
		TableOrganisation:        b.organisation(),
		TableProgramme:           b.programme(),
		TableProgrammeProgress:   b.programmeProgress(),
		TablePlaceDetails:        b.placeDetails(),
		TableFundingQuestions:    b.fundingQuestions(),
		TableProjectDetails:      b.projectDetails(),
		TableProjectProgress:     b.projectProgress(),
		TableFunding:             b.funding(),
		TableFundingComments:     b.fundingComments(),
		TablePrivateInvestments:  b.privateInvestments(),
		TableOutputsRef:          b.outputsRef(),
		TableOutputs:             b.outputs(),
		TableOutcomeRef:          b.outcomeRef(),
		TableOutcomes:            b.outcomes(),
		TableRisks:               b.risks(),
		TableProgrammeManagement: b.programmeManagement(),
	}
}

func (b builder) submission() *Table {
	c := cols(Text, "Submission ID")
	c = append(c, cols(Date, "Submission Date", "Reporting Period Start", "Reporting Period End")...)
	c = append(c, Column{Name: "Reporting Round", Type: Integer}, Column{Name: "Run ID", Type: Text})
	return &Table{
		Columns: c,
		Uniques: []string{"Submission ID"},
		NonNullable: []string{
			"Submission ID", "Reporting Period Start", "Reporting Period End", "Reporting Round",
		},
	}
}

func (b builder) organisation() *Table {
	return &Table{
		Columns:     cols(Text, "Organisation", "Geography"),
		Uniques:     []string{"Organisation"},
		NonNullable: []string{"Organisation"},
	}
}

func (b builder) programme() *Table {
	return &Table{
		Columns: cols(Text, ColProgrammeID, "Programme Name", "FundType_ID", "Organisation"),
		Uniques: []string{ColProgrammeID},
		ForeignKeys: []ForeignKey{{
			Column: "Organisation", ParentTable: TableOrganisation, ParentPK: "Organisation",
		}},
		Enums:       []Enum{b.enum("FundType_ID", refdata.EnumFundTypeID)},
		NonNullable: []string{ColProgrammeID, "Programme Name", "FundType_ID", "Organisation"},
	}
}

func (b builder) programmeProgress() *Table {
	return &Table{
		Columns:     cols(Text, ColProgrammeID, "Question", "Answer"),
		ForeignKeys: []ForeignKey{programmeFK()},
		NonNullable: pick(b,
			[]string{ColProgrammeID, "Question"},
			[]string{ColProgrammeID, "Question", "Answer"},
		),
	}
}

func (b builder) placeDetails() *Table {
	return &Table{
		Columns:      cols(Text, ColProgrammeID, "Question", "Answer", "Indicator"),
		ForeignKeys:  []ForeignKey{programmeFK()},
		CompositeKey: pick(b, nil, []string{ColProgrammeID, "Question", "Indicator"}),
		NonNullable: pick(b,
			[]string{ColProgrammeID, "Question", "Indicator"},
			[]string{ColProgrammeID, "Question", "Indicator", "Answer"},
		),
	}
}

func (b builder) fundingQuestions() *Table {
	return &Table{
		TableNullable: true,
		Columns: cols(Text, ColProgrammeID, "Question", "Indicator", "Response",
			"Guidance Notes"),
		ForeignKeys:  []ForeignKey{programmeFK()},
		CompositeKey: pick(b, nil, []string{ColProgrammeID, "Question", "Indicator"}),
		NonNullable:  []string{ColProgrammeID, "Question"},
	}
}

func (b builder) projectDetails() *Table {
	c := cols(Text, ColProjectID, ColProgrammeID, "Project Name",
		"Primary Intervention Theme", "Single or Multiple Locations", "Locations")
	c = append(c, Column{Name: "Postcodes", Type: List})
	c = append(c, cols(Text, "GIS Provided", "Lat/Long")...)
	nonNull := []string{ColProjectID, ColProgrammeID, "Project Name",
		"Primary Intervention Theme", "Single or Multiple Locations"}
	return &Table{
		Columns:     c,
		Uniques:     []string{ColProjectID},
		ForeignKeys: []ForeignKey{programmeFK()},
		Enums: pick(b,
			[]Enum{
				b.enum("Single or Multiple Locations", refdata.EnumMultiplicity),
				b.enum("GIS Provided", refdata.EnumYesNo),
			},
			[]Enum{
				b.enum("Single or Multiple Locations", refdata.EnumMultiplicity),
				b.enum("Primary Intervention Theme", refdata.EnumInterventionTheme),
			},
		),
		NonNullable: pick(b, append(nonNull, "Locations"), nonNull),
	}
}

func (b builder) projectProgress() *Table {
	c := []Column{
		{Name: ColProjectID, Type: Text},
		{Name: "Start Date", Type: Date},
		{Name: "Completion Date", Type: Date},
	}
	if b.extended {
		c = append(c, Column{Name: "Current Project Delivery Stage", Type: Text})
	}
	c = append(c, cols(Text, "Project Delivery Status")...)
	if b.extended {
		c = append(c, Column{Name: "Leading Factor of Delay", Type: Text})
	}
	c = append(c, cols(Text, "Project Adjustment Request Status", "Delivery (RAG)",
		"Spend (RAG)", "Risk (RAG)", "Commentary on Status and RAG Ratings",
		"Most Important Upcoming Comms Milestone")...)
	c = append(c, Column{
		Name: "Date of Most Important Upcoming Comms Milestone (e.g. Dec-22)", Type: Date,
	})

	t := &Table{
		Columns:      c,
		Uniques:      []string{ColProjectID},
		ForeignKeys:  []ForeignKey{projectFK()},
		ProjectDates: []string{"Start Date", "Completion Date"},
	}
	rags := []Enum{
		b.enum("Delivery (RAG)", refdata.EnumRAG),
		b.enum("Spend (RAG)", refdata.EnumRAG),
		b.enum("Risk (RAG)", refdata.EnumRAG),
	}
	if !b.extended {
		t.Enums = append([]Enum{b.enum("Project Delivery Status", refdata.EnumDeliveryStatus)}, rags...)
		t.NonNullable = []string{ColProjectID}
		return t
	}
	t.Enums = append([]Enum{
		b.enum("Project Adjustment Request Status", refdata.EnumAdjustmentRequestStatus),
		b.enum("Current Project Delivery Stage", refdata.EnumDeliveryStage),
		b.enum("Project Delivery Status", refdata.EnumDeliveryStatus),
		b.enum("Leading Factor of Delay", refdata.EnumDelay),
	}, rags...)
	t.NonNullable = []string{
		ColProjectID, "Start Date", "Completion Date", "Project Delivery Status",
		"Project Adjustment Request Status", "Delivery (RAG)", "Spend (RAG)",
		"Risk (RAG)", "Commentary on Status and RAG Ratings",
	}
	return t
}

func (b builder) funding() *Table {
	c := cols(Text, ColProjectID, "Funding Source Name", "Funding Source Type", "Secured")
	c = append(c, cols(Date, ColStartDate, ColEndDate)...)
	c = append(c,
		Column{Name: "Spend for Reporting Period", Type: Number},
		Column{Name: ColActualForecast, Type: Text},
	)
	nonNull := []string{ColProjectID, "Funding Source Name", "Funding Source Type"}
	return &Table{
		Columns:     c,
		ForeignKeys: []ForeignKey{projectFK()},
		CompositeKey: pick(b, nil, []string{ColProjectID, "Funding Source Name",
			"Funding Source Type", "Secured", ColStartDate, ColEndDate}),
		Enums: []Enum{
			b.enum("Secured", refdata.EnumYesNo),
			b.enum(ColActualForecast, refdata.EnumState),
		},
		NonNullable: pick(b, nonNull, append(nonNull, "Spend for Reporting Period")),
	}
}

func (b builder) fundingComments() *Table {
	return &Table{
		Columns:     cols(Text, ColProjectID, "Comment"),
		ForeignKeys: []ForeignKey{projectFK()},
		NonNullable: []string{ColProjectID},
	}
}

func (b builder) privateInvestments() *Table {
	c := cols(Text, ColProjectID)
	c = append(c, cols(Number, "Total Project Value", "Townsfund Funding",
		"Private Sector Funding Required", "Private Sector Funding Secured")...)
	c = append(c, Column{Name: "Additional Comments", Type: Text})
	return &Table{
		Columns:     c,
		Uniques:     []string{ColProjectID},
		ForeignKeys: []ForeignKey{projectFK()},
		NonNullable: []string{ColProjectID, "Total Project Value", "Townsfund Funding"},
	}
}

func (b builder) outputsRef() *Table {
	return &Table{
		Columns:     cols(Text, "Output Name", "Output Category"),
		Uniques:     []string{"Output Name"},
		NonNullable: []string{"Output Name", "Output Category"},
	}
}

func (b builder) outputs() *Table {
	c := cols(Text, ColProjectID)
	c = append(c, cols(Date, ColStartDate, ColEndDate)...)
	c = append(c, cols(Text, "Output", "Unit of Measurement", ColActualForecast)...)
	c = append(c,
		Column{Name: "Amount", Type: Number},
		Column{Name: "Additional Information", Type: Text},
	)
	nonNull := []string{ColProjectID, ColStartDate, "Output", "Unit of Measurement"}
	return &Table{
		Columns: c,
		ForeignKeys: []ForeignKey{
			projectFK(),
			{Column: "Output", ParentTable: TableOutputsRef, ParentPK: "Output Name"},
		},
		CompositeKey: pick(b, nil, []string{ColProjectID, "Output", ColStartDate,
			ColEndDate, "Unit of Measurement", ColActualForecast}),
		Enums:       []Enum{b.enum(ColActualForecast, refdata.EnumState)},
		NonNullable: pick(b, nonNull, append(nonNull, "Amount")),
	}
}

func (b builder) outcomeRef() *Table {
	return &Table{
		TableNullable: true,
		Columns:       cols(Text, "Outcome_Name", "Outcome_Category"),
		Uniques:       []string{"Outcome_Name"},
		NonNullable:   []string{"Outcome_Name", "Outcome_Category"},
	}
}

func (b builder) outcomes() *Table {
	c := cols(Text, ColProjectID, ColProgrammeID)
	c = append(c, cols(Date, ColStartDate, ColEndDate)...)
	c = append(c, cols(Text, "Outcome", "UnitofMeasurement", "GeographyIndicator")...)
	c = append(c, Column{Name: "Amount", Type: Number})
	c = append(c, cols(Text, ColActualForecast, "Higher Frequency")...)
	nonNull := []string{ColStartDate, ColEndDate, "Outcome", "UnitofMeasurement",
		ColActualForecast}
	pf, gf := projectFK(), programmeFK()
	pf.Nullable, gf.Nullable = true, true
	return &Table{
		TableNullable: true,
		Columns:       c,
		ForeignKeys: []ForeignKey{
			pf, gf,
			{Column: "Outcome", ParentTable: TableOutcomeRef, ParentPK: "Outcome_Name"},
		},
		CompositeKey: pick(b, nil, []string{ColProjectID, "Outcome", ColStartDate,
			ColEndDate, "GeographyIndicator"}),
		Enums: []Enum{
			b.enum("GeographyIndicator", refdata.EnumGeographyIndicator),
			b.enum(ColActualForecast, refdata.EnumState),
		},
		NonNullable: pick(b, nonNull, append(nonNull, "Amount", "GeographyIndicator")),
	}
}

func (b builder) risks() *Table {
	c := cols(Text, ColProgrammeID, ColProjectID)
	c = append(c, cols(Text, RiskColumns...)...)
	pf, gf := projectFK(), programmeFK()
	pf.Nullable, gf.Nullable = true, true
	enums := []Enum{
		b.enum("Pre-mitigatedImpact", refdata.EnumImpact),
		b.enum("Pre-mitigatedLikelihood", refdata.EnumLikelihood),
		b.enum("PostMitigatedImpact", refdata.EnumImpact),
		b.enum("PostMitigatedLikelihood", refdata.EnumLikelihood),
		b.enum("Proximity", refdata.EnumProximity),
	}
	return &Table{
		TableNullable: true,
		Columns:       c,
		ForeignKeys:   []ForeignKey{pf, gf},
		CompositeKey:  pick(b, nil, []string{ColProgrammeID, ColProjectID, "RiskName"}),
		Enums: pick(b, enums,
			append([]Enum{b.enum("RiskCategory", refdata.EnumRiskCategory)}, enums...)),
		NonNullable: pick(b, []string{"RiskName"}, RiskColumns),
	}
}

func (b builder) programmeManagement() *Table {
	c := cols(Text, ColProgrammeID, "Payment Type")
	c = append(c, Column{Name: "Spend for Reporting Period", Type: Number})
	c = append(c, cols(Date, ColStartDate, ColEndDate)...)
	c = append(c, Column{Name: ColActualForecast, Type: Text})
	return &Table{
		TableNullable: true,
		Columns:       c,
	}
}
