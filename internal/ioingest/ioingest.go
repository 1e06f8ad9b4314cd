// Package ioingest runs reporting workbooks from files through the
// ingest pipeline and hands valid submissions to persistence sinks.
package ioingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnfmt"
	"github.com/gnames/tfingest/internal/ioxlsx"
	"github.com/gnames/tfingest/pkg/config"
	"github.com/gnames/tfingest/pkg/initial"
	"github.com/gnames/tfingest/pkg/pipeline"
	"github.com/gnames/tfingest/pkg/store"
	"golang.org/x/sync/errgroup"
)

// Report is the outcome of ingesting one file.
type Report struct {
	// Path is the path of the workbook file.
	Path string

	// Result is the pipeline result. It is empty when Err is set.
	Result pipeline.Result

	// Err is a program error that stopped the ingest of the file, for
	// example an unreadable workbook.
	Err error

	// Duration is the time spent on the file.
	Duration time.Duration
}

// Runner ingests workbook files.
type Runner struct {
	cfg   *config.Config
	ing   *pipeline.Ingester
	sinks []store.Sink
}

// New creates a Runner. Valid submissions are saved to every sink.
func New(cfg *config.Config, ing *pipeline.Ingester, sinks ...store.Sink) *Runner {
	return &Runner{cfg: cfg, ing: ing, sinks: sinks}
}

// Run ingests files concurrently, at most JobsNumber at once. Reports
// keep the order of paths. The error is not nil only when a sink fails or
// ctx is canceled.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Report, error) {
	start := time.Now()
	res := make([]Report, len(paths))

	var bar *pb.ProgressBar
	if len(paths) > 1 {
		bar = newProgressBar(len(paths), "Workbooks: ")
		defer bar.Finish()
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.cfg.JobsNumber, 1))
	for i, path := range paths {
		g.Go(func() error {
			rep, err := r.ingestFile(gCtx, path)
			res[i] = rep
			if bar != nil {
				bar.Increment()
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	slog.Info("Ingested workbooks",
		"files", len(paths),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}

func (r *Runner) ingestFile(ctx context.Context, path string) (Report, error) {
	start := time.Now()
	rep := Report{Path: path}

	wb, err := ioxlsx.Load(path)
	if err != nil {
		slog.Error("Cannot load workbook", "path", path, "error", err)
		rep.Err = err
		rep.Duration = time.Since(start)
		return rep, nil
	}

	res, err := r.ing.Ingest(ctx, wb, r.cfg.Ingest.Round, r.auth())
	if err != nil {
		slog.Error("Cannot ingest workbook", "path", path, "error", err)
		rep.Err = err
		rep.Duration = time.Since(start)
		return rep, ctx.Err()
	}
	rep.Result = res

	if res.Succeeded() {
		for _, s := range r.sinks {
			if err = s.Save(ctx, res.Metadata.SubmissionID, res.Tables); err != nil {
				rep.Err = err
				rep.Duration = time.Since(start)
				return rep, err
			}
		}
	}
	rep.Duration = time.Since(start)
	return rep, nil
}

func (r *Runner) auth() initial.Auth {
	ic := r.cfg.Ingest
	if !ic.HasAuth() {
		return nil
	}
	return initial.Auth{
		initial.AuthPlaceNames: ic.AuthPlaces,
		initial.AuthFundTypes:  ic.AuthFundTypes,
	}
}

// newProgressBar creates a new progress bar with consistent
// settings.
func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
