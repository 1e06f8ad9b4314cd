package pipeline

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/pkg/errcode"
)

func CanceledError(stage string, err error) error {
	msg := "Ingest was canceled before <em>%s</em>"
	vars := []any{stage}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineCanceledError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: canceled before %s: %w", fn.Name(), stage, err),
	}
}
