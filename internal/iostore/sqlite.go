package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/gnames/tfingest/pkg/store"
	"github.com/gnames/tfingest/pkg/table"
	"github.com/gnames/tfingest/pkg/value"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// SQLiteSink exports submissions to a SQLite file with one table per
// logical table.
type SQLiteSink struct {
	path string
	db   *sql.DB
}

// NewSQLiteSink opens or creates a SQLite file.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, SQLiteOpenError(path, err)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, SQLiteOpenError(path, err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	return &SQLiteSink{path: path, db: db}, nil
}

// Save replaces rows of a submission in every table of the set. Tables
// and missing columns are created on the fly.
func (s *SQLiteSink) Save(
	ctx context.Context,
	submissionID string,
	tables table.Set,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SQLiteWriteError(s.path, "", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	for _, name := range tables.Names() {
		t := tables[name]
		if err = s.prepareTable(ctx, tx, t); err != nil {
			return SQLiteWriteError(s.path, name, err)
		}
		if _, err = tx.ExecContext(ctx, store.DeleteSQL(name), submissionID); err != nil {
			return SQLiteWriteError(s.path, name, err)
		}
		if err = insertRows(ctx, tx, submissionID, t); err != nil {
			return SQLiteWriteError(s.path, name, err)
		}
		count += t.Len()
	}

	if err = tx.Commit(); err != nil {
		return SQLiteWriteError(s.path, "", err)
	}
	slog.Info("Exported submission to SQLite",
		"submission", submissionID,
		"path", s.path,
		"rows", count,
	)
	return nil
}

// Close closes the SQLite file.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// Columns returns the column names of an exported table.
func (s *SQLiteSink) Columns(ctx context.Context, name string) ([]string, error) {
	return columns(ctx, s.db, name)
}

func (s *SQLiteSink) prepareTable(ctx context.Context, tx *sql.Tx, t *table.Table) error {
	if _, err := tx.ExecContext(ctx, store.TableDDL(t.Name, t.Columns)); err != nil {
		return err
	}
	for _, idx := range store.IndexDDL(t.Name) {
		if _, err := tx.ExecContext(ctx, idx); err != nil {
			return err
		}
	}

	// tables of different rounds have different columns
	have, err := columns(ctx, tx, t.Name)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(have))
	for _, c := range have {
		seen[c] = struct{}{}
	}
	for _, c := range t.Columns {
		if _, ok := seen[c]; ok {
			continue
		}
		q := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT",
			store.Quote(t.Name), store.Quote(c))
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func columns(ctx context.Context, q querier, name string) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT name FROM pragma_table_info(?) ORDER BY cid", name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var col string
		if err = rows.Scan(&col); err != nil {
			return nil, err
		}
		res = append(res, col)
	}
	return res, rows.Err()
}

func insertRows(ctx context.Context, tx *sql.Tx, submissionID string, t *table.Table) error {
	stmt, err := tx.PrepareContext(ctx, store.InsertSQL(t.Name, t.Columns))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns)+2)
	for _, r := range t.Rows {
		args[0] = submissionID
		args[1] = r.Index
		for i, c := range t.Columns {
			args[i+2] = cellArg(r.Get(c))
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

func cellArg(v value.Value) any {
	if v.IsNull() {
		return nil
	}
	return v.Text()
}
