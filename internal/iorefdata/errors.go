package iorefdata

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/pkg/errcode"
	"github.com/go-playground/validator/v10"
)

func ReadError(path string, err error) error {
	msg := "Cannot read reference data file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RefDataReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}

func DecodeError(source string, err error) error {
	msg := `Cannot parse reference data from <em>%s</em>

<em>How to fix:</em>
  1. Check the YAML syntax of the file
  2. Remove ingest.reference_file from config.yaml to use defaults`
	vars := []any{source}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RefDataDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot decode yaml: %w", fn.Name(), err),
	}
}

func InvalidError(source string, err error) error {
	msg := "Reference data from <em>%s</em> is invalid: %s"
	vars := []any{source, describe(err)}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RefDataInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: invalid reference data: %w", fn.Name(), err),
	}
}

func MissingEnumError(source, enum string) error {
	msg := "Reference data from <em>%s</em> has no values for enum <em>%s</em>"
	vars := []any{source, enum}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RefDataInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: enum %s is empty", fn.Name(), enum),
	}
}

// describe lists failed fields of a validation error.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	res := make([]string, len(verrs))
	for i, fe := range verrs {
		res[i] = fmt.Sprintf("field '%s' failed rule '%s'", fe.Namespace(), fe.Tag())
	}
	return strings.Join(res, "; ")
}
