package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/pkg/errcode"
)

// ConnectionError creates an error for database connection
// failures.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database <em>%s</em> does not exist
  - Database configuration is incorrect

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify the database exists:
     <em>psql -h %s -U %s -l</em>
  3. Check your configuration file:
     <em>~/.config/tfingest/config.yaml</em>`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{database, host, port, host, user},
		Err: fmt.Errorf(
			"from %s: failed to connect to %s:%d/%s: %w",
			fn.Name(), host, port, database, err,
		),
	}
}

// NotConnectedError creates an error for database operations
// attempted before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without database connection"

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: not connected to database", fn.Name()),
	}
}

// TableExistsCheckError creates an error for failures of a table
// existence check.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("from %s: failed to check table %s: %w", fn.Name(), table, err),
	}
}

// GORMConnectionError creates an error for GORM connection
// failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: failed to connect with GORM: %w", fn.Name(), err),
	}
}

// MigrateError creates an error for schema migration failures.
func MigrateError(err error) error {
	msg := `Cannot migrate submission tables

<em>How to fix:</em>
  1. Check database user has CREATE and ALTER permissions
  2. Check database logs for details`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: failed to migrate schema: %w", fn.Name(), err),
	}
}

// SaveError creates an error for failures to save a submission to
// PostgreSQL.
func SaveError(submissionID string, err error) error {
	msg := `Cannot save submission <em>%s</em>

<em>How to fix:</em>
  1. Run <em>tfingest migrate</em> to create submission tables
  2. Check database logs for details`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBSaveError,
		Msg:  msg,
		Vars: []any{submissionID},
		Err: fmt.Errorf(
			"from %s: failed to save submission %s: %w",
			fn.Name(), submissionID, err,
		),
	}
}

// SQLiteOpenError creates an error for a SQLite file that cannot
// be opened.
func SQLiteOpenError(path string, err error) error {
	msg := "Cannot open SQLite file <em>%s</em>"

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SQLiteOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: failed to open sqlite %s: %w", fn.Name(), path, err),
	}
}

// SQLiteWriteError creates an error for failures to write a table
// to a SQLite file.
func SQLiteWriteError(path, table string, err error) error {
	msg := "Cannot write table <em>%s</em> to <em>%s</em>"

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SQLiteWriteError,
		Msg:  msg,
		Vars: []any{table, path},
		Err: fmt.Errorf(
			"from %s: failed to write %s to sqlite %s: %w",
			fn.Name(), table, path, err,
		),
	}
}
