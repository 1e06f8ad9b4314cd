// Package initial runs pre-transformation checks of a submitted workbook.
//
// The checks look at a few fixed cells: template version, reporting
// period, fund type and place. They run in batches, and the first batch
// with failures stops validation, because later batches depend on values
// checked earlier.
package initial

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/refdata"
	"github.com/gnames/tfingest/pkg/workbook"
	"github.com/xuri/excelize/v2"
)

// SheetMessage is shown when a template sheet is missing.
const SheetMessage = "The data return template you are submitting is not valid. " +
	"Please make sure you are submitting a valid template for Towns Fund. If you have " +
	"selected the wrong fund type, you can change the fund by returning to the " +
	"\"Submit monitoring and evaluation data dashboard\" and changing the fund type " +
	"to Towns Fund before continuing."

// Cells checked before extraction, as 0-based grid coordinates.
const (
	rowPeriod      = 5
	rowFormVersion = 7
	colStartHere   = 1
	rowFundType    = 6
	rowPlace       = 7
	colAdmin       = 4
)

// AuthType names a kind of authorisation.
type AuthType string

const (
	AuthPlaceNames AuthType = "Place Names"
	AuthFundTypes  AuthType = "Fund Types"
)

// Auth lists places and form fund types a submitter may report on.
type Auth map[AuthType][]string

// Check is a single pre-transformation check. Run returns nil when the
// check passes.
type Check interface {
	Run(wb workbook.Workbook, auth Auth) failure.Failure
	batch() int
}

// Batches in the order they run.
const (
	batchSheet = iota
	batchBasic
	batchConflicting
	batchAuth
)

// SheetCheck requires a sheet.
type SheetCheck struct {
	Sheet   string
	Message string
}

func (c SheetCheck) Run(wb workbook.Workbook, _ Auth) failure.Failure {
	if _, ok := wb.Sheet(c.Sheet); ok {
		return nil
	}
	return failure.MissingSheet{Sheet: c.Sheet, Message: c.Message}
}

func (SheetCheck) batch() int { return batchSheet }

// BasicCheck requires a cell to hold one of the expected values.
type BasicCheck struct {
	Sheet    string
	Row, Col int
	Expected []string
	Message  string
}

func (c BasicCheck) Run(wb workbook.Workbook, _ Auth) failure.Failure {
	v := cellText(wb, c.Sheet, c.Row, c.Col)
	if slices.Contains(c.Expected, v) {
		return nil
	}
	return failure.WrongInput{
		Descriptor: cellName(c.Sheet, c.Row, c.Col),
		Entered:    v,
		Expected:   c.Expected,
		Message:    c.Message,
	}
}

func (BasicCheck) batch() int { return batchBasic }

// ConflictingCheck requires a cell to agree with another cell through a
// mapping, for example a fund type allowed for a place.
type ConflictingCheck struct {
	Sheet              string
	Row, Col           int
	MappedRow, MappedC int
	Mapping            map[string][]string
	Message            string
}

func (c ConflictingCheck) Run(wb workbook.Workbook, _ Auth) failure.Failure {
	v := cellText(wb, c.Sheet, c.Row, c.Col)
	expected := c.Mapping[cellText(wb, c.Sheet, c.MappedRow, c.MappedC)]
	if slices.Contains(expected, v) {
		return nil
	}
	return failure.ConflictingInput{
		Descriptor: cellName(c.Sheet, c.Row, c.Col),
		Entered:    v,
		Expected:   expected,
		Message:    c.Message,
	}
}

func (ConflictingCheck) batch() int { return batchConflicting }

// AuthorisationCheck requires a cell to hold a value the submitter is
// authorised for.
type AuthorisationCheck struct {
	Sheet    string
	Row, Col int
	Type     AuthType
}

func (c AuthorisationCheck) Run(wb workbook.Workbook, auth Auth) failure.Failure {
	v := cellText(wb, c.Sheet, c.Row, c.Col)
	allowed := auth[c.Type]
	if slices.Contains(allowed, v) {
		return nil
	}
	return failure.UnauthorisedSubmission{
		Descriptor: string(c.Type),
		Entered:    v,
		Allowed:    allowed,
	}
}

func (AuthorisationCheck) batch() int { return batchAuth }

// Validate runs checks in batches and returns failures of the first
// failing batch. A missing sheet stops validation at once. Authorisation
// checks run only when auth is not nil.
func Validate(wb workbook.Workbook, checks []Check, auth Auth) []failure.Failure {
	for b := batchSheet; b <= batchAuth; b++ {
		if b == batchAuth && auth == nil {
			break
		}
		var res []failure.Failure
		for _, c := range checks {
			if c.batch() != b {
				continue
			}
			f := c.Run(wb, auth)
			if f == nil {
				continue
			}
			if b == batchSheet {
				return []failure.Failure{f}
			}
			res = append(res, f)
		}
		if len(res) > 0 {
			return res
		}
	}
	return nil
}

// ForRound returns checks of a reporting round.
func ForRound(round int, rd *refdata.Data) ([]Check, error) {
	l, err := layout.ForRound(round)
	if err != nil {
		return nil, err
	}
	return ForLayout(l, rd), nil
}

// ForLayout returns checks of a round layout. Conflicting and
// authorisation checks belong to the extended template.
func ForLayout(l layout.RoundLayout, rd *refdata.Data) []Check {
	fundTypes := []string{refdata.FormTownDeal, refdata.FormHighStreetsFund}
	res := []Check{
		SheetCheck{Sheet: layout.SheetStartHere, Message: SheetMessage},
		SheetCheck{Sheet: layout.SheetProjectAdmin, Message: SheetMessage},
		BasicCheck{
			Sheet: layout.SheetStartHere, Row: rowFormVersion, Col: colStartHere,
			Expected: []string{l.FormVersion}, Message: l.FormVersionMessage,
		},
		BasicCheck{
			Sheet: layout.SheetStartHere, Row: rowPeriod, Col: colStartHere,
			Expected: []string{l.Period}, Message: l.PeriodMessage,
		},
	}
	if !l.Extended {
		return append(res,
			BasicCheck{
				Sheet: layout.SheetProjectAdmin, Row: rowFundType, Col: colAdmin,
				Expected: fundTypes,
				Message: `Fund Type in the tab "2 - Project Admin" must be either ` +
					`"Town_Deal" or "Future_High_Street_Fund".`,
			},
			BasicCheck{
				Sheet: layout.SheetProjectAdmin, Row: rowPlace, Col: colAdmin,
				Expected: rd.PlaceNames(),
				Message: `Place Name in the tab "2 - Project Admin" must be selected ` +
					`from the dropdown list provided.`,
			},
		)
	}
	return append(res,
		BasicCheck{
			Sheet: layout.SheetProjectAdmin, Row: rowFundType, Col: colAdmin,
			Expected: fundTypes,
			Message: "Cell E7 in the “project admin” must contain a fund type from the " +
				"dropdown list provided. Do not enter your own content.",
		},
		BasicCheck{
			Sheet: layout.SheetProjectAdmin, Row: rowPlace, Col: colAdmin,
			Expected: rd.PlaceNames(),
			Message: "Cell E8 in the “project admin” must contain a place name from the " +
				"dropdown list provided. Do not enter your own content.",
		},
		ConflictingCheck{
			Sheet: layout.SheetProjectAdmin, Row: rowFundType, Col: colAdmin,
			MappedRow: rowPlace, MappedC: colAdmin,
			Mapping: rd.PlaceFundTypes(),
			Message: "We do not recognise the combination of fund type and place name in " +
				"cells E7 and E8 in “project admin”. Check the data is correct.",
		},
		AuthorisationCheck{
			Sheet: layout.SheetProjectAdmin, Row: rowFundType, Col: colAdmin,
			Type: AuthFundTypes,
		},
		AuthorisationCheck{
			Sheet: layout.SheetProjectAdmin, Row: rowPlace, Col: colAdmin,
			Type: AuthPlaceNames,
		},
	)
}

func cellText(wb workbook.Workbook, sheet string, r, c int) string {
	g, ok := wb.Sheet(sheet)
	if !ok {
		return ""
	}
	return strings.TrimSpace(g.At(r, c).Text())
}

func cellName(sheet string, r, c int) string {
	cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
	return fmt.Sprintf("%s!%s", sheet, cell)
}
