package ioxlsx

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/pkg/errcode"
)

// OpenError creates an error for a workbook that cannot be opened.
func OpenError(path string, err error) error {
	msg := `Cannot open workbook <em>%s</em>

<em>How to fix:</em>
  1. Check the file exists and is readable
  2. Make sure the file is an .xlsx workbook saved by Excel`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WorkbookOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: failed to open workbook %s: %w", fn.Name(), path, err),
	}
}

// ReadError creates an error for a sheet that cannot be read.
func ReadError(sheet string, err error) error {
	msg := "Cannot read sheet <em>%s</em> of the workbook"

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WorkbookReadError,
		Msg:  msg,
		Vars: []any{sheet},
		Err:  fmt.Errorf("from %s: failed to read sheet %s: %w", fn.Name(), sheet, err),
	}
}
