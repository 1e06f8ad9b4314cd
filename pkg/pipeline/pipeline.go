// Package pipeline runs a submitted Towns Fund workbook through every
// ingest stage: pre-transformation checks, extraction, type casting,
// schema validation and business rules.
//
// Stages stop at the first one that finds problems. Problems of the
// submission are reported in the Result, a Go error always means a fault
// of the program or of its configuration.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/tfingest/pkg/cast"
	"github.com/gnames/tfingest/pkg/extract"
	"github.com/gnames/tfingest/pkg/failure"
	"github.com/gnames/tfingest/pkg/initial"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/messenger"
	"github.com/gnames/tfingest/pkg/refdata"
	"github.com/gnames/tfingest/pkg/rules"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/validate"
	"github.com/gnames/tfingest/pkg/workbook"
	"github.com/google/uuid"
)

// Ingester ingests workbooks against one set of reference data.
type Ingester struct {
	rd  *refdata.Data
	msg messenger.Messenger
	now func() time.Time
}

// Option configures an Ingester.
type Option func(*Ingester)

// OptMessenger sets the messenger that translates failures.
func OptMessenger(m messenger.Messenger) Option {
	return func(in *Ingester) {
		in.msg = m
	}
}

// OptClock sets the source of submission dates.
func OptClock(now func() time.Time) Option {
	return func(in *Ingester) {
		in.now = now
	}
}

// New creates an Ingester. By default failures are translated by the
// Towns Fund messenger.
func New(rd *refdata.Data, opts ...Option) *Ingester {
	res := &Ingester{
		rd:  rd,
		msg: messenger.NewTownsFund(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Ingest validates a workbook of a reporting round and returns its tables
// when it is valid. A nil auth skips authorisation checks.
func (in *Ingester) Ingest(
	ctx context.Context,
	wb workbook.Workbook,
	round int,
	auth initial.Auth,
) (Result, error) {
	res := Result{Round: round}
	l, err := layout.ForRound(round)
	if err != nil {
		return res, err
	}

	fs := initial.Validate(wb, initial.ForLayout(l, in.rd), auth)
	if len(fs) > 0 {
		slog.Info("Pre-transformation checks failed", "round", round, "failures", len(fs))
		return res.preTransformation(fs), nil
	}
	if err = canceled(ctx, "extraction"); err != nil {
		return res, err
	}

	ex := extract.New(l, in.rd, extract.OptClock(in.now))
	exRes, err := ex.Extract(wb)
	if err != nil {
		return res, err
	}
	if len(exRes.Failures) > 0 {
		return in.failed(res, exRes.Failures)
	}
	tables := exRes.Tables
	if err = canceled(ctx, "validation"); err != nil {
		return res, err
	}

	s, err := schema.TownsFund(round, in.rd)
	if err != nil {
		return res, err
	}
	cast.Normalize(tables, s)
	fs = validate.Validate(tables, s)
	if len(fs) > 0 {
		return in.failed(res, fs)
	}
	if err = canceled(ctx, "business rules"); err != nil {
		return res, err
	}

	rc := &rules.Context{Tables: tables, Workbook: wb, Ref: in.rd, Layout: l}
	fs = rules.Apply(rc, rules.ForLayout(l))
	if len(fs) > 0 {
		return in.failed(res, fs)
	}

	res.Status = StatusSuccess
	res.Tables = tables
	res.Metadata = metadata(tables, round)
	slog.Info("Workbook is valid",
		"round", round,
		"programme", res.Metadata.ProgrammeID,
		"submission", res.Metadata.SubmissionID,
	)
	return res, nil
}

// failed reports failures of extraction, validation or rules. Internal
// failures hide user failures.
func (in *Ingester) failed(res Result, fs []failure.Failure) (Result, error) {
	if internal := failure.Filter(fs, failure.Internal); len(internal) > 0 {
		res.Status = StatusInternal
		res.ID = uuid.NewString()
		res.InternalErrors = failure.Strings(internal)
		slog.Error("Internal ingest failure",
			"failure_id", res.ID,
			"round", res.Round,
			"internal_failures", res.InternalErrors,
		)
		return res, nil
	}

	msgs, err := messenger.FailuresToMessages(failure.Filter(fs, failure.User), in.msg)
	if err != nil {
		return res, err
	}
	res.Status = StatusInvalid
	res.ValidationErrors = msgs
	slog.Info("Workbook is invalid", "round", res.Round, "messages", len(msgs))
	return res, nil
}

func canceled(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return CanceledError(stage, err)
	}
	return nil
}
