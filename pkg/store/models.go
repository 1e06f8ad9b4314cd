package store

import (
	"time"

	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/table"
	"gorm.io/gorm"
)

// Submission is a validated return of one programme for one reporting
// round.
type Submission struct {
	// ID is the submission identifier, for example "S-R04-1A2B3C4D".
	ID string `gorm:"type:varchar(32);primaryKey"`

	// ProgrammeID is the identifier of the reporting programme, for
	// example "TD-BED".
	ProgrammeID string `gorm:"type:varchar(32);not null;index"`

	// FundTypeID is "TD" or "HS".
	FundTypeID string `gorm:"type:varchar(8);not null"`

	// ReportingRound is the number of the reporting round.
	ReportingRound int `gorm:"not null;index"`

	// PeriodStart and PeriodEnd bound the reporting period.
	PeriodStart time.Time
	PeriodEnd   time.Time

	// IngestedAt is the time the submission was saved.
	IngestedAt time.Time `gorm:"autoCreateTime"`
}

// SubmissionRow is one row of a table of a submission. Cells are kept
// as a JSON object keyed by column names.
type SubmissionRow struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	SubmissionID string `gorm:"type:varchar(32);not null;index"`
	Table        string `gorm:"column:table_name;type:varchar(64);not null;index"`
	RowIndex     int    `gorm:"not null"`
	Payload      string `gorm:"type:jsonb;not null"`

	Submission Submission `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`
}

// AllModels returns all models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Submission{},
		&SubmissionRow{},
	}
}

// Migrate runs GORM AutoMigrate to create or update the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// SubmissionOf builds a Submission out of the reference tables of a
// valid table set.
func SubmissionOf(id string, tables table.Set) Submission {
	res := Submission{ID: id}
	if t, ok := tables[schema.TableProgramme]; ok && t.Len() > 0 {
		r := t.Rows[0]
		res.ProgrammeID = r.Get(schema.ColProgrammeID).Text()
		res.FundTypeID = r.Get("FundType_ID").Text()
	}
	if t, ok := tables[schema.TableSubmission]; ok && t.Len() > 0 {
		r := t.Rows[0]
		if d, ok := r.Get("Reporting Round").AsNumber(); ok {
			res.ReportingRound = int(d.IntPart())
		}
		res.PeriodStart, _ = r.Get("Reporting Period Start").AsTime()
		res.PeriodEnd, _ = r.Get("Reporting Period End").AsTime()
	}
	return res
}
