package pipeline

import (
	"encoding/json"

	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/messenger"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
)

// Status is the outcome of an ingest.
type Status int

const (
	// StatusUnknown is the status of an ingest that stopped with an error.
	StatusUnknown Status = iota

	// StatusSuccess means the workbook is valid.
	StatusSuccess

	// StatusInvalid means the submitter has to correct the workbook.
	StatusInvalid

	// StatusInternal means extracted tables do not fit the schema. It is
	// a fault of the extraction, not of the submission.
	StatusInternal
)

var statusNames = map[Status]string{
	StatusUnknown:  "unknown",
	StatusSuccess:  "success",
	StatusInvalid:  "invalid",
	StatusInternal: "internal error",
}

func (s Status) String() string {
	return statusNames[s]
}

// Details of results.
const (
	DetailSuccess  = "Spreadsheet successfully validated"
	DetailInvalid  = "Workbook validation failed"
	DetailInternal = "Internal ingest exception."
)

// Result is the outcome of one ingest.
type Result struct {
	Status Status
	Round  int

	// PreTransformationErrors are file level messages of failed
	// pre-transformation checks.
	PreTransformationErrors []string

	// ValidationErrors are cell addressed messages.
	ValidationErrors []messenger.Message

	// ID identifies an internal failure in logs.
	ID string

	// InternalErrors describe internal failures.
	InternalErrors []string

	// Metadata summarises a valid submission.
	Metadata Metadata

	// Tables are the validated tables of a valid submission.
	Tables table.Set
}

// Metadata describes a valid submission.
type Metadata struct {
	SubmissionID         string       `json:"submission_id"`
	ProgrammeID          string       `json:"programme_id"`
	ProgrammeName        string       `json:"programme_name"`
	FundTypeID           string       `json:"fund_type_id"`
	ReportingRound       int          `json:"reporting_round"`
	ReportingPeriodStart string       `json:"reporting_period_start"`
	ReportingPeriodEnd   string       `json:"reporting_period_end"`
	Tables               []TableCount `json:"tables"`
}

// TableCount is the number of rows of a table.
type TableCount struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
}

// Succeeded is true for a valid workbook.
func (r Result) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Detail returns a short description of the result.
func (r Result) Detail() string {
	switch r.Status {
	case StatusSuccess:
		return DetailSuccess
	case StatusInvalid:
		return DetailInvalid
	case StatusInternal:
		return DetailInternal
	}
	return ""
}

// Summary returns row counts of tables in the order of their names.
func (r Result) Summary() []TableCount {
	return counts(r.Tables)
}

func (r Result) preTransformation(fs []failure.Failure) Result {
	r.Status = StatusInvalid
	r.PreTransformationErrors = messenger.PreTransformationMessages(fs)
	return r
}

type resultJSON struct {
	Status                  string               `json:"status"`
	Detail                  string               `json:"detail"`
	PreTransformationErrors []string             `json:"pre_transformation_errors,omitempty"`
	ValidationErrors        *[]messenger.Message `json:"validation_errors,omitempty"`
	ID                      string               `json:"id,omitempty"`
	InternalErrors          []string             `json:"internal_errors,omitempty"`
	Metadata                *Metadata            `json:"metadata,omitempty"`
	Tables                  table.Set            `json:"tables,omitempty"`
}

// MarshalJSON renders the result in one of its shapes: pre-transformation
// errors, validation errors, internal errors or tables.
func (r Result) MarshalJSON() ([]byte, error) {
	res := resultJSON{Status: r.Status.String(), Detail: r.Detail()}
	switch r.Status {
	case StatusSuccess:
		res.Metadata = &r.Metadata
		res.Tables = r.Tables
	case StatusInvalid:
		msgs := r.ValidationErrors
		if msgs == nil {
			msgs = []messenger.Message{}
		}
		res.PreTransformationErrors = r.PreTransformationErrors
		res.ValidationErrors = &msgs
	case StatusInternal:
		res.ID = r.ID
		res.InternalErrors = r.InternalErrors
	}
	return json.Marshal(res)
}

func counts(set table.Set) []TableCount {
	res := make([]TableCount, 0, len(set))
	for _, name := range set.Names() {
		res = append(res, TableCount{Table: name, Rows: set[name].Len()})
	}
	return res
}

func metadata(set table.Set, round int) Metadata {
	res := Metadata{ReportingRound: round, Tables: counts(set)}
	if t, ok := set[schema.TableProgramme]; ok && t.Len() > 0 {
		r := t.Rows[0]
		res.ProgrammeID = r.Get(schema.ColProgrammeID).Text()
		res.ProgrammeName = r.Get("Programme Name").Text()
		res.FundTypeID = r.Get("FundType_ID").Text()
	}
	if t, ok := set[schema.TableSubmission]; ok && t.Len() > 0 {
		r := t.Rows[0]
		res.SubmissionID = r.Get("Submission ID").Text()
		res.ReportingPeriodStart = r.Get("Reporting Period Start").Text()
		res.ReportingPeriodEnd = r.Get("Reporting Period End").Text()
	}
	return res
}
