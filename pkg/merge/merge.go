// Package merge applies display-name corrections to an item collection.
//
// Rows whose key is not in the collection are skipped without error, rows
// that would not change anything are ignored, and the collection is saved
// once, after the whole batch, only if at least one record changed.
// Applying the same batch twice therefore writes nothing the second time.
package merge

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gvdb/itemctl/pkg/corrections"
	"github.com/gvdb/itemctl/pkg/errors"
	"github.com/gvdb/itemctl/pkg/logging"
	"github.com/gvdb/itemctl/pkg/records"
	"github.com/gvdb/itemctl/pkg/save"
)

// Engine applies correction batches through a records.Saver.
type Engine struct {
	saver    records.Saver
	saveOpts []save.Option
	toWriter bool
	path     string
	dryRun   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithDryRun computes the report without saving.
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) {
		e.dryRun = dryRun
	}
}

// WithPath names the destination in reports and errors. It does not change
// where the saver writes.
func WithPath(path string) Option {
	return func(e *Engine) {
		e.path = path
	}
}

// WithSaveOptions is passed to every save. A save.WithPath destination is
// also the path reported in results and errors. With save.WithWriter the
// rewritten document goes to the writer and Persisted stays false.
func WithSaveOptions(opts ...save.Option) Option {
	return func(e *Engine) {
		e.saveOpts = append(e.saveOpts, opts...)
	}
}

// NewEngine creates an engine saving through saver. A *records.Store is
// used as-is and its path is reported.
func NewEngine(saver records.Saver, opts ...Option) *Engine {
	e := &Engine{saver: saver}
	if s, ok := saver.(*records.Store); ok {
		e.path = s.Path()
	}
	for _, opt := range opts {
		opt(e)
	}
	target := save.Defaults().Apply(e.saveOpts...)
	if target.Path() != "" {
		e.path = target.Path()
	}
	e.toWriter = target.Writer() != nil
	return e
}

// Apply applies rows to c in order and saves c once if anything changed.
//
// When the save fails the returned report still lists the changes, with
// Persisted false, and the error is a *errors.SaveError.
func (e *Engine) Apply(ctx context.Context, c *records.Collection, rows []corrections.Row) (*Report, error) {
	ctx = logging.WithOperation(ctx, "merge")
	logger := logging.FromContext(ctx)

	report := &Report{Path: e.path, Rows: len(rows), DryRun: e.dryRun}
	index := c.Index()

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(errors.ErrCanceled, err)
		}

		rec, ok := index[row.Key]
		if !ok {
			report.Skipped++
			logger.Debug().Str("key", row.Key).Int("line", row.Line).Msg("No record for key, skipping row")
			continue
		}

		change, changed := diff(rec, row)
		if !changed {
			report.Unchanged++
			continue
		}
		if err := rec.SetNames(change.NewPrimary, change.NewSecondary); err != nil {
			return nil, errors.WrapValidation(row.Key, err)
		}
		report.Changes = append(report.Changes, change)
		logChange(logger, change)
	}

	if !report.HasChanges() {
		logger.Info().Int("rows", report.Rows).Int("skipped", report.Skipped).Msg("No updates found")
		return report, nil
	}
	if e.dryRun {
		logger.Info().Int("changes", len(report.Changes)).Msg("Dry run, collection not saved")
		return report, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(errors.ErrCanceled, err)
	}

	if err := e.saver.Save(c, e.saveOpts...); err != nil {
		logger.Error().
			Err(err).
			Int("changes", len(report.Changes)).
			Bool("persisted", false).
			Msg("Changes computed but not persisted")
		return report, errors.NewSaveError(e.path, len(report.Changes), err)
	}
	if e.toWriter {
		logger.Info().Int("changes", len(report.Changes)).Msg("Wrote rewritten document to preview writer")
		return report, nil
	}
	report.Persisted = true

	logger.Info().
		Int("changes", len(report.Changes)).
		Int("skipped", report.Skipped).
		Bool("persisted", true).
		Msg("Saved corrected names")
	return report, nil
}

// diff compares a record with a correction row after applying the
// secondary-name fallback.
func diff(rec *records.Record, row corrections.Row) (Change, bool) {
	change := Change{
		Key:          row.Key,
		Line:         row.Line,
		NewPrimary:   row.Primary,
		NewSecondary: row.EffectiveSecondary(),
		OldPrimary:   rec.Primary(),
		OldSecondary: rec.Secondary(),
	}
	changed := change.OldPrimary != change.NewPrimary || change.OldSecondary != change.NewSecondary
	return change, changed
}

func logChange(logger *zerolog.Logger, c Change) {
	logger.Debug().
		Str("key", c.Key).
		Str("old_primary", c.OldPrimary).
		Str("new_primary", c.NewPrimary).
		Str("old_secondary", c.OldSecondary).
		Str("new_secondary", c.NewSecondary).
		Msg("Record updated")
}
