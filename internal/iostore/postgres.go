package iostore

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/tfingest/pkg/db"
	"github.com/gnames/tfingest/pkg/store"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var rowColumns = []string{"submission_id", "table_name", "row_index", "payload"}

// PostgresSink saves submissions to the submissions and
// submission_rows tables.
type PostgresSink struct {
	operator  db.Operator
	batchSize int
}

// NewPostgresSink creates a sink on a connected operator. Rows are
// copied in batches of batchSize.
func NewPostgresSink(op db.Operator, batchSize int) *PostgresSink {
	if batchSize < 1 {
		batchSize = 5_000
	}
	return &PostgresSink{operator: op, batchSize: batchSize}
}

// Migrate creates or updates submission tables using GORM
// AutoMigrate.
func (s *PostgresSink) Migrate(ctx context.Context) error {
	pool := s.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := store.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateError(err)
	}
	return nil
}

// Save replaces a submission and its rows in one transaction.
func (s *PostgresSink) Save(
	ctx context.Context,
	submissionID string,
	tables table.Set,
) error {
	pool := s.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return SaveError(submissionID, err)
	}
	// no-op after commit
	defer func() { _ = tx.Rollback(ctx) }()

	sub := store.SubmissionOf(submissionID, tables)
	_, err = tx.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, sub.ID)
	if err != nil {
		return SaveError(submissionID, err)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO submissions
			(id, programme_id, fund_type_id, reporting_round,
			period_start, period_end, ingested_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`,
		sub.ID, sub.ProgrammeID, sub.FundTypeID, sub.ReportingRound,
		sub.PeriodStart, sub.PeriodEnd,
	)
	if err != nil {
		return SaveError(submissionID, err)
	}

	var count int64
	batch := make([][]any, 0, s.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{store.TableSubmissionRows},
			rowColumns,
			pgx.CopyFromRows(batch),
		)
		count += n
		batch = batch[:0]
		return err
	}

	for _, name := range tables.Names() {
		t := tables[name]
		for i, rec := range t.Records() {
			payload, err := json.Marshal(rec)
			if err != nil {
				return SaveError(submissionID, err)
			}
			batch = append(batch,
				[]any{submissionID, name, t.Rows[i].Index, string(payload)})
			if len(batch) < s.batchSize {
				continue
			}
			if err = flush(); err != nil {
				return SaveError(submissionID, err)
			}
		}
	}
	if err = flush(); err != nil {
		return SaveError(submissionID, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return SaveError(submissionID, err)
	}
	slog.Info("Saved submission to PostgreSQL",
		"submission", submissionID,
		"programme", sub.ProgrammeID,
		"rows", humanize.Comma(count),
	)
	return nil
}

// Close closes the connection pool of the operator.
func (s *PostgresSink) Close() error {
	return s.operator.Close()
}
