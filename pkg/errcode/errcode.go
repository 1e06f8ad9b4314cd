// Package errcode enumerates error codes of tfingest program errors.
// Validation failures found in submitted workbooks are not program errors
// and do not have codes.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Workbook errors
	WorkbookOpenError
	WorkbookReadError
	WorkbookMissingSheetError

	// Reference data errors
	RefDataReadError
	RefDataDecodeError
	RefDataInvalidError

	// Schema errors
	SchemaInconsistentError
	SchemaUnknownRoundError
	SchemaUnknownTableError

	// Pipeline errors
	PipelineUnknownFundTypeError
	PipelineLookupError
	PipelineUnknownFailureError
	PipelineCanceledError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBGORMConnectionError
	DBMigrateError
	DBSaveError

	// SQLite export errors
	SQLiteOpenError
	SQLiteWriteError
)
