package extract

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/pkg/errcode"
)

func MissingSheetError(sheet string) error {
	msg := "Workbook has no sheet <em>%s</em>"
	vars := []any{sheet}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WorkbookMissingSheetError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: missing sheet %q", fn.Name(), sheet),
	}
}

func UnknownFundTypeError(fundType string) error {
	msg := "Fund type <em>%s</em> is not recognised"
	vars := []any{fundType}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineUnknownFundTypeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown fund type %q", fn.Name(), fundType),
	}
}

func LookupError(source, place string) error {
	msg := "Place <em>%s</em> is not found in %s"
	vars := []any{place, source}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineLookupError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no %q in %s", fn.Name(), place, source),
	}
}
