package layout

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/pkg/errcode"
)

func UnknownRoundError(round int) error {
	msg := `Reporting round <em>%d</em> is not supported

<em>How to fix:</em>
  Use one of the rounds 3, 4, 5 or 6`
	vars := []any{round}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaUnknownRoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown round %d", fn.Name(), round),
	}
}
