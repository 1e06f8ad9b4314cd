// Package extract reads the logical tables of a Towns Fund return from the
// sheets of a reporting template.
//
// The template has a fixed geometry described by pkg/layout. Repeating
// sections (one per project) are read for as many projects as the place
// has in the "Project Identifiers" sheet. Period columns are unpivoted,
// so every table row holds a single figure with its Start_Date, End_Date
// and Actual/Forecast state.
package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/gnames/gnuuid"
	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/refdata"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/gnames/tfingest/pkg/workbook"
	"github.com/google/uuid"
)

// Fund type codes.
const (
	TownDeal         = "TD"
	HighStreetsFund  = "HS"
	multipleProjects = "Multiple"
)

// Questions of the "Place Details" table the extraction depends on.
const (
	QuestionPlaceName = "Please select your place name"
	QuestionFundType  = "Are you filling this in for a Town Deal or Future High Street Fund?"
)

// Extractor reads tables of one reporting round.
type Extractor struct {
	l   layout.RoundLayout
	rd  *refdata.Data
	now func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// OptClock sets the source of the submission date.
func OptClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// New creates an Extractor for a round layout.
func New(l layout.RoundLayout, rd *refdata.Data, opts ...Option) *Extractor {
	e := &Extractor{l: l, rd: rd, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result holds extracted tables. When Failures is not empty, the
// submission cannot be mapped to tables and Tables is nil.
type Result struct {
	Tables   table.Set
	Failures []failure.Failure
}

// submission carries values shared by the extractors of one workbook.
type submission struct {
	wb          workbook.Workbook
	fund        string
	place       string
	programmeID string
	projects    map[string]string
}

// projectID returns the id of a project name, or Null for unknown names.
func (s *submission) projectID(name string) value.Value {
	if id, ok := s.projects[strings.TrimSpace(name)]; ok {
		return value.Str(id)
	}
	return value.NullValue
}

// Extract reads all tables of a workbook. It returns an error if a
// required sheet is missing or the place cannot be identified.
func (e *Extractor) Extract(wb workbook.Workbook) (Result, error) {
	var res Result
	for _, s := range append(layout.FormSheets,
		layout.SheetProjectIdentifiers, layout.SheetPlaceIdentifiers) {
		if _, ok := wb.Sheet(s); !ok {
			return res, MissingSheetError(s)
		}
	}

	places := e.placeDetails(wb)
	sub := &submission{wb: wb}
	var err error
	sub.place = answer(places, QuestionPlaceName)
	if sub.fund, err = fundCode(answer(places, QuestionFundType)); err != nil {
		return res, err
	}
	sub.projects = e.projectLookup(wb, sub.fund, sub.place)
	if sub.programmeID, err = e.programmeID(wb, sub.fund, sub.place); err != nil {
		return res, err
	}
	places.SetColumn(schema.ColProgrammeID, func(table.Row) value.Value {
		return value.Str(sub.programmeID)
	})

	programme, org, err := e.programme(sub)
	if err != nil {
		return res, err
	}

	outcomes, fails := e.outcomes(sub)
	if len(fails) > 0 {
		res.Failures = fails
		return res, nil
	}
	outputs := e.outputs(sub)

	set := table.Set{}
	for _, t := range []*table.Table{
		e.submissionRef(sub),
		places,
		programme,
		org,
		e.projectDetails(sub),
		e.programmeProgress(sub),
		e.projectProgress(sub),
		e.programmeManagement(sub),
		e.fundingQuestions(sub),
		e.fundingComments(sub),
		e.funding(sub),
		e.privateInvestments(sub),
		outputs,
		outputCategories(outputs, e.rd),
		outcomes,
		outcomeCategories(outcomes, e.rd),
		e.risks(sub),
	} {
		set.Add(t)
	}
	res.Tables = set
	return res, nil
}

func fundCode(formType string) (string, error) {
	switch strings.TrimSpace(formType) {
	case refdata.FormTownDeal:
		return TownDeal, nil
	case refdata.FormHighStreetsFund:
		return HighStreetsFund, nil
	}
	return "", UnknownFundTypeError(formType)
}

func (e *Extractor) submissionRef(sub *submission) *table.Table {
	run := uuid.New()
	key := fmt.Sprintf("%s|%d|%s", sub.programmeID, e.l.Round, run)
	id := fmt.Sprintf("S-R%02d-%s", e.l.Round,
		strings.ToUpper(gnuuid.New(key).String()[:8]))

	t := table.New(schema.TableSubmission,
		"Submission ID", "Submission Date", "Reporting Period Start",
		"Reporting Period End", "Reporting Round", "Run ID")
	t.AppendValues(1,
		value.Str(id),
		value.Time(e.now().UTC().Truncate(time.Second)),
		value.Time(e.l.PeriodStart),
		value.Time(e.l.PeriodEnd),
		value.Int(int64(e.l.Round)),
		value.Str(run.String()),
	)
	return t
}
