package initial_test

import (
	"testing"

	"github.com/gnames/tfingest/internal/iorefdata"
	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/initial"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/refdata"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/gnames/tfingest/pkg/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submission(t *testing.T, round int, fundType, place string) workbook.Workbook {
	l, err := layout.ForRound(round)
	require.Nil(t, err)
	wb := workbook.Workbook{}
	wb.Set(layout.SheetStartHere, 5, 1, value.Str(l.Period))
	wb.Set(layout.SheetStartHere, 7, 1, value.Str(l.FormVersion))
	wb.Set(layout.SheetProjectAdmin, 6, 4, value.Str(fundType))
	wb.Set(layout.SheetProjectAdmin, 7, 4, value.Str(place+" "))
	return wb
}

func checks(t *testing.T, round int) []initial.Check {
	rd, err := iorefdata.Load("")
	require.Nil(t, err)
	res, err := initial.ForRound(round, rd)
	require.Nil(t, err)
	return res
}

func TestValidatePasses(t *testing.T) {
	auth := initial.Auth{
		initial.AuthPlaceNames: {"Bedford"},
		initial.AuthFundTypes:  {refdata.FormTownDeal},
	}
	for _, round := range layout.Rounds() {
		wb := submission(t, round, refdata.FormTownDeal, "Bedford")
		assert.Empty(t, initial.Validate(wb, checks(t, round), auth))
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		msg   string
		round int
		edit  func(wb workbook.Workbook)
		auth  initial.Auth
		kind  any
		n     int
	}{
		{"missing sheet", 4, func(wb workbook.Workbook) {
			delete(wb, layout.SheetProjectAdmin)
		}, nil, failure.MissingSheet{}, 1},
		{"wrong period and version", 4, func(wb workbook.Workbook) {
			wb.Set(layout.SheetStartHere, 5, 1, value.Str("1 April 2020 to 30 September 2020"))
			wb.Set(layout.SheetStartHere, 7, 1, value.NullValue)
		}, nil, failure.WrongInput{}, 2},
		{"conflicting place", 4, func(wb workbook.Workbook) {
			wb.Set(layout.SheetProjectAdmin, 7, 4, value.Str("Heanor"))
		}, nil, failure.ConflictingInput{}, 1},
		{"round 3 has no conflict check", 3, func(wb workbook.Workbook) {
			wb.Set(layout.SheetProjectAdmin, 7, 4, value.Str("Heanor"))
		}, nil, nil, 0},
		{"unauthorised", 5, nil, initial.Auth{
			initial.AuthPlaceNames: {"Heanor", "Farnworth"},
			initial.AuthFundTypes:  {refdata.FormTownDeal},
		}, failure.UnauthorisedSubmission{}, 1},
		{"wrong input wins over auth", 6, func(wb workbook.Workbook) {
			wb.Set(layout.SheetStartHere, 7, 1, value.Str("v1"))
		}, initial.Auth{}, failure.WrongInput{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			wb := submission(t, tt.round, refdata.FormTownDeal, "Bedford")
			if tt.edit != nil {
				tt.edit(wb)
			}
			res := initial.Validate(wb, checks(t, tt.round), tt.auth)
			require.Len(t, res, tt.n)
			for _, f := range res {
				assert.IsType(t, tt.kind, f)
				assert.Equal(t, failure.PreTransformation, f.Kind())
			}
		})
	}
}

func TestUnauthorisedMessage(t *testing.T) {
	wb := submission(t, 4, refdata.FormTownDeal, "Bedford")
	auth := initial.Auth{
		initial.AuthPlaceNames: {"Heanor", "Farnworth"},
		initial.AuthFundTypes:  {refdata.FormTownDeal},
	}
	res := initial.Validate(wb, checks(t, 4), auth)
	require.Len(t, res, 1)
	assert.Equal(t, "You’re not authorised to submit for Bedford. You can only submit "+
		"for Heanor, Farnworth.", res[0].String())
}

func TestWrongInputDescriptor(t *testing.T) {
	wb := submission(t, 4, "Other_Fund", "Bedford")
	res := initial.Validate(wb, checks(t, 4), nil)
	require.Len(t, res, 1)
	wi, ok := res[0].(failure.WrongInput)
	require.True(t, ok)
	assert.Equal(t, "2 - Project Admin!E7", wi.Descriptor)
	assert.Equal(t, "Other_Fund", wi.Entered)
}
