package schema

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/pkg/errcode"
)

func InconsistentError(table, reason string) error {
	msg := "Schema of table <em>%s</em> is inconsistent: %s"
	vars := []any{table, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaInconsistentError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), errors.New(reason)),
	}
}

// UnknownTableError is returned when a table is not declared in a
// schema.
func UnknownTableError(table string, known []string) error {
	msg := `Table <em>%s</em> is unknown

Known tables: %s`
	vars := []any{table, strings.Join(known, ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaUnknownTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown table %q", fn.Name(), table),
	}
}
