// Package store defines how validated submissions are persisted.
// Implementations live in internal/iostore.
package store

import (
	"context"

	"github.com/gnames/tfingest/pkg/table"
)

// Sink persists tables of valid submissions.
type Sink interface {
	// Save writes all tables of a submission. Either every table is
	// saved or none.
	Save(ctx context.Context, submissionID string, tables table.Set) error

	// Close releases resources of the sink.
	Close() error
}

// PostgreSQL tables created from models.
const (
	TableSubmissions    = "submissions"
	TableSubmissionRows = "submission_rows"
)
