package layout_test

import (
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/pkg/errcode"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock(t *testing.T) {
	tests := []struct {
		msg     string
		section layout.SectionLayout
		n, row  int
	}{
		{"funding first", layout.Funding, 0, 32},
		{"funding third", layout.Funding, 2, 88},
		{"risks third", layout.ProjectRisks, 2, 34},
		{"risks fourth shifted", layout.ProjectRisks, 3, 43},
		{"risks fifth", layout.ProjectRisks, 4, 51},
		{"outputs second", layout.Outputs, 1, 53},
		{"output names first", layout.OutputNames, 0, 15},
		{"output names second", layout.OutputNames, 1, 54},
		{"footfall last", layout.Footfall, 14, 501},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.row, tt.section.Block(tt.n))
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		msg     string
		section layout.SectionLayout
		row, n  int
	}{
		{"above funding", layout.Funding, 30, 0},
		{"funding project 1", layout.Funding, 38, 1},
		{"funding project 2 title", layout.Funding, 61, 2},
		{"funding project 2 data", layout.Funding, 66, 2},
		{"risk project 1", layout.ProjectRisks, 23, 1},
		{"risk project 3", layout.ProjectRisks, 41, 3},
		{"risk hidden row", layout.ProjectRisks, 43, 3},
		{"risk project 4", layout.ProjectRisks, 48, 4},
		{"output project 2", layout.Outputs, 63, 2},
		{"footfall capacity", layout.Footfall, 10000, 15},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.n, tt.section.Number(tt.row))
		})
	}
}

func TestBlockNumberRoundTrip(t *testing.T) {
	sections := []layout.SectionLayout{
		layout.Funding, layout.ProjectRisks, layout.Outputs, layout.OutputNames,
	}
	for _, s := range sections {
		for n := range 20 {
			// spreadsheet row of the block start is grid row + 1
			assert.Equal(t, n+1, s.Number(s.Block(n)+1))
		}
	}
}

func TestForRound(t *testing.T) {
	tests := []struct {
		round          int
		period         string
		progressEnd    int
		extended, q6   bool
		undated, start bool
		cutoff         *time.Time
	}{
		{3, "1 October 2022 to 31 March 2023", 13, false, false, true, false,
			ptr(time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC))},
		{4, "1 April 2023 to 30 September 2023", 15, true, true, true, false,
			ptr(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))},
		{5, "1 October 2023 to 31 March 2024", 15, true, true, true, false,
			ptr(time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC))},
		{6, "1 April 2024 to 30 September 2024", 15, true, true, false, true, nil},
	}

	for _, tt := range tests {
		l, err := layout.ForRound(tt.round)
		require.Nil(t, err)
		assert.Equal(t, tt.round, l.Round)
		assert.Equal(t, tt.period, l.Period)
		assert.Equal(t, tt.progressEnd, l.ProgressColumnsEnd)
		assert.Equal(t, tt.extended, l.Extended)
		assert.Equal(t, tt.q6, l.DropProgrammeQ6)
		assert.Equal(t, tt.undated, l.DropUndatedTownsFund)
		assert.Equal(t, tt.start, l.ProjectStartRule)
		assert.Equal(t, tt.cutoff, l.HSForecastCutoff)
		assert.Equal(t, tt.round == 3, l.RiskNameRequired)
	}
}

func TestPeriodBounds(t *testing.T) {
	l, err := layout.ForRound(6)
	require.Nil(t, err)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), l.PeriodStart)
	assert.Equal(t, time.Date(2024, 9, 30, 23, 59, 59, 0, time.UTC), l.PeriodEnd)
	assert.Equal(t, l.PeriodEnd, l.ActualCutoff())
	assert.Contains(t, l.FormVersionMessage, "(v4.3)")
	assert.Contains(t, l.PeriodMessage, l.Period)
}

func TestUnknownRound(t *testing.T) {
	_, err := layout.ForRound(7)
	require.NotNil(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SchemaUnknownRoundError, gnErr.Code)
	assert.Equal(t, []any{7}, gnErr.Vars)
	assert.Contains(t, gnErr.Msg, "not supported")
}

func ptr(t time.Time) *time.Time { return &t }
