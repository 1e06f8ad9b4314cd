package messenger_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/messenger"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month) value.Value {
	return value.Time(time.Date(y, m, 1, 0, 0, 0, 0, time.UTC))
}

func TestToMessage(t *testing.T) {
	tests := []struct {
		msg     string
		f       failure.Failure
		sheet   string
		section string
		cells   []string
		desc    string
	}{
		{
			"risk duplicate",
			failure.NonUniqueCompositeKey{
				Table:    "RiskRegister",
				Columns:  []string{"Programme ID", "Project ID", "RiskName"},
				RowIndex: 24,
				Row:      failure.Values{"Project ID": value.Str("TD-BED-01")},
			},
			"Risk Register", "Project Risks - Project 1", []string{"C24"},
			failure.MsgDuplication,
		},
		{
			"programme risk duplicate",
			failure.NonUniqueCompositeKey{
				Table:    "RiskRegister",
				Columns:  []string{"Programme ID", "Project ID", "RiskName"},
				RowIndex: 12,
			},
			"Risk Register", "Programme Risks", []string{"C12"},
			failure.MsgDuplication,
		},
		{
			"funding duplicate",
			failure.NonUniqueCompositeKey{
				Table: "Funding",
				Columns: []string{"Project ID", "Funding Source Name", "Funding Source Type",
					"Secured", "Start_Date", "End_Date"},
				RowIndex: 70,
			},
			"Funding Profiles", "Funding Profiles - Project 2", []string{"C70", "D70", "E70"},
			failure.MsgDuplication,
		},
		{
			"output duplicate",
			failure.NonUniqueCompositeKey{
				Table:    "Output_Data",
				Columns:  []string{"Project ID", "Output", "Unit of Measurement"},
				RowIndex: 62,
			},
			"Project Outputs", "Project Outputs - Project 2", []string{"C62", "D62"},
			failure.MsgDuplication,
		},
		{
			"footfall duplicate",
			failure.NonUniqueCompositeKey{
				Table: "Outcome_Data", Columns: []string{"Outcome"}, RowIndex: 60,
			},
			"Outcomes", "Footfall Indicator", []string{"B60"},
			failure.MsgDuplication,
		},
		{
			"wrong type date",
			failure.WrongType{
				Table: "Project Progress", Column: "Start Date", RowIndex: 22,
				Expected: value.Date, Actual: value.String,
			},
			"Programme Progress", "Projects Progress Summary", []string{"D22"},
			"You entered text instead of a date. Check the cell is formatted as a date, " +
				"for example, Dec-22 or Jun-23",
		},
		{
			"wrong type currency",
			failure.WrongType{
				Table: "Funding", Column: "Spend for Reporting Period", RowIndex: 38,
				Expected: value.Number, Actual: value.String,
			},
			"Funding Profiles", "Project Funding Profiles", []string{"F38 to Y38"},
			failure.MsgWrongTypeCurrency,
		},
		{
			"wrong type indicator outcome",
			failure.WrongType{
				Table: "Outcome_Data", Column: "Amount", RowIndex: 23,
				Expected: value.Number, Actual: value.String,
				Row: failure.Values{"Start_Date": date(2022, time.April)},
			},
			"Outcomes", "Outcome Indicators (excluding footfall) and Footfall Indicator",
			[]string{"H23"}, failure.MsgWrongTypeNumerical,
		},
		{
			"wrong type footfall",
			failure.WrongType{
				Table: "Outcome_Data", Column: "Amount", RowIndex: 60,
				Expected: value.Number, Actual: value.String,
				Row: failure.Values{"Start_Date": date(2023, time.January)},
			},
			"Outcomes", "Outcome Indicators (excluding footfall) and Footfall Indicator",
			[]string{"M70"}, failure.MsgWrongTypeNumerical,
		},
		{
			"dropdown risk",
			failure.InvalidEnumValue{
				Table: "RiskRegister", Column: "Proximity", RowIndex: 11,
			},
			"Risk Register", "Programme Risks", []string{"O11"}, failure.MsgDropdown,
		},
		{
			"dropdown funding",
			failure.InvalidEnumValue{Table: "Funding", Column: "Secured", RowIndex: 50},
			"Funding Profiles", "Project Funding Profiles - Project 1", []string{"E50"},
			failure.MsgDropdown,
		},
		{
			"dropdown footfall geography",
			failure.InvalidEnumValue{
				Table: "Outcome_Data", Column: "GeographyIndicator", RowIndex: 60,
				Row: failure.Values{
					"UnitofMeasurement": value.Str("Year-on-year % change in monthly footfall"),
				},
			},
			"Outcomes", "Footfall Indicator", []string{"C65"}, failure.MsgDropdown,
		},
		{
			"blank output unit",
			failure.NonNullableConstraint{
				Table: "Output_Data", Column: "Unit of Measurement", RowIndex: 25,
			},
			"Project Outputs", "Project Outputs", []string{"D25"},
			failure.MsgBlankUnitOfMeasurement,
		},
		{
			"blank outcome amount",
			failure.NonNullableConstraint{
				Table: "Outcome_Data", Column: "Amount", RowIndex: 22,
				Row: failure.Values{"Start_Date": date(2020, time.April)},
			},
			"Outcomes", "Outcome Indicators (excluding footfall) / Footfall Indicator",
			[]string{"F22"}, failure.MsgBlankZero,
		},
		{
			"blank funding",
			failure.NonNullableConstraint{
				Table: "Funding", Column: "Funding Source Type", RowIndex: 50,
			},
			"Funding Profiles", "Project Funding Profiles", []string{"D50"},
			failure.MsgBlankZero,
		},
		{
			"blank programme answer",
			failure.NonNullableConstraint{
				Table: "Programme Progress", Column: "Answer", RowIndex: 9,
			},
			"Programme Progress", "Programme-Wide Progress Summary", []string{"D9"},
			failure.MsgBlank,
		},
		{
			"generic with cell",
			failure.Generic{
				Table: "Review & Sign-Off", Section: "-", CellIndex: "C8",
				Message: "m",
			},
			"Review & Sign-Off", "-", []string{"C8"}, "m",
		},
		{
			"generic with column",
			failure.Generic{
				Table: "Project Details", Section: "Project Details",
				Column: "Postcodes", RowIndex: 14, Message: failure.MsgPostcode,
			},
			"Project Admin", "Project Details", []string{"H14 or K14"}, failure.MsgPostcode,
		},
		{
			"generic without row",
			failure.Generic{
				Table: "Funding", Section: "Project Funding Profiles",
				Column: "Funding Source Type", Message: "m",
			},
			"Funding Profiles", "Project Funding Profiles", []string{"D"}, "m",
		},
		{
			"unauthorised",
			failure.UnauthorisedSubmission{
				Descriptor: "Place Names", Entered: "Newark", Allowed: []string{"Bedford"},
			},
			"", "", nil,
			"You’re not authorised to submit for Newark. You can only submit for Bedford.",
		},
	}

	m := messenger.NewTownsFund()
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res, err := m.ToMessage(tt.f)
			require.Nil(t, err)
			assert.Equal(t, tt.sheet, res.Sheet)
			assert.Equal(t, tt.section, res.Section)
			assert.Equal(t, tt.cells, res.CellIndexes)
			assert.Equal(t, tt.desc, res.Description)
		})
	}
}

func TestUnknownFailure(t *testing.T) {
	m := messenger.NewTownsFund()
	_, err := m.ToMessage(failure.OrphanedRow{Table: "Funding"})
	assert.NotNil(t, err)

	_, err = m.ToMessage(failure.Generic{Table: "Nowhere"})
	assert.NotNil(t, err)

	_, err = messenger.FailuresToMessages(
		[]failure.Failure{failure.ExtraTable{Table: "x"}}, m)
	assert.NotNil(t, err)
}

func TestFailuresToMessages(t *testing.T) {
	dropdown := func(row int) failure.Failure {
		return failure.InvalidEnumValue{Table: "RiskRegister", Column: "Proximity", RowIndex: row}
	}
	fs := []failure.Failure{
		dropdown(12),
		dropdown(10),
		// melted rows repeat failures
		dropdown(10),
		dropdown(11),
		failure.NonNullableConstraint{Table: "RiskRegister", Column: "Proximity", RowIndex: 11},
		failure.Generic{
			Table: "Project Details", Section: "Project Details",
			Column: "Locations", RowIndex: 9, Message: failure.MsgBlank,
		},
		failure.InvalidEnumValue{Table: "Funding", Column: "Secured", RowIndex: 40},
	}

	res, err := messenger.FailuresToMessages(fs, messenger.NewTownsFund())
	require.Nil(t, err)
	require.Len(t, res, 4)

	byDesc := make(map[string]messenger.Message)
	for _, m := range res {
		byDesc[m.Sheet+"|"+m.Description] = m
	}

	drop := byDesc["Risk Register|"+failure.MsgDropdown]
	assert.Equal(t, "Programme Risks", drop.Section)
	assert.Equal(t, []string{"O10", "O12"}, drop.CellIndexes)
	assert.Equal(t, "O10, O12", drop.CellIndex())

	blank := byDesc["Risk Register|"+failure.MsgBlank]
	assert.Equal(t, []string{"O11"}, blank.CellIndexes)

	assert.Equal(t, []string{"H9 or K9"}, byDesc["Project Admin|"+failure.MsgBlank].CellIndexes)
}

func TestSortCells(t *testing.T) {
	cells := []string{"AA3", "C10", "B7", "C9", "AB1", "F33 to Y33", "E7"}
	messenger.SortCells(cells)
	assert.Equal(t, []string{"B7", "C9", "C10", "E7", "F33 to Y33", "AA3", "AB1"}, cells)
}

func TestMessageJSON(t *testing.T) {
	m := messenger.Message{
		Sheet: "PSI", Section: "Private Sector Investment",
		CellIndexes: []string{"J12", "J13"}, Description: "d", ErrorType: "GenericFailure",
	}
	bs, err := json.Marshal(m)
	require.Nil(t, err)
	assert.JSONEq(t, `{"sheet":"PSI","section":"Private Sector Investment",
		"cell_index":"J12, J13","description":"d","error_type":"GenericFailure"}`, string(bs))

	bs, err = json.Marshal(messenger.Message{Description: "d"})
	require.Nil(t, err)
	assert.JSONEq(t, `{"sheet":null,"section":null,"cell_index":null,
		"description":"d","error_type":""}`, string(bs))
}

func TestPreTransformationMessages(t *testing.T) {
	fs := []failure.Failure{
		failure.WrongInput{Message: "wrong period"},
		failure.NonNullableConstraint{Table: "Funding"},
		failure.MissingSheet{Message: "missing sheet"},
	}
	assert.Equal(t,
		[]string{"wrong period", "missing sheet"},
		messenger.PreTransformationMessages(fs))
}
