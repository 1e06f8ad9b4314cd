package messenger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/pkg/errcode"
	"github.com/gnames/tfingest/pkg/failure"
)

func UnknownFailureError(f failure.Failure) error {
	msg := "Failure <em>%T</em> cannot be turned into a message"
	vars := []any{f}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineUnknownFailureError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unsupported failure %T: %s", fn.Name(), f, f),
	}
}

func UnknownTableError(table string) error {
	msg := "Table <em>%s</em> has no form sheet"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineUnknownFailureError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no form sheet for table %q", fn.Name(), table),
	}
}
