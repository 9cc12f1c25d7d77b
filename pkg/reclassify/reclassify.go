// Package reclassify re-derives the subcategory of a filtered subset of
// items with a keyword classifier and writes the new labels back.
package reclassify

import (
	"context"

	"github.com/gvdb/itemctl/internal/matcher"
	"github.com/gvdb/itemctl/pkg/classifier"
	"github.com/gvdb/itemctl/pkg/errors"
	"github.com/gvdb/itemctl/pkg/logging"
	"github.com/gvdb/itemctl/pkg/records"
	"github.com/gvdb/itemctl/pkg/save"
)

// Filter selects the records to classify. Category and SubCategory match
// exactly; KeyPattern, when set, must also match the record key.
type Filter struct {
	Category    string
	SubCategory string
	KeyPattern  matcher.Matcher
}

// Match reports whether r belongs to the working subset.
func (f Filter) Match(r *records.Record) bool {
	if r.Category() != f.Category || r.SubCategory() != f.SubCategory {
		return false
	}
	return f.KeyPattern == nil || f.KeyPattern.Match(r.Key())
}

// Engine classifies and relabels records.
type Engine struct {
	classifier *classifier.Classifier
	saver      records.Saver
	saveOpts   []save.Option
	toWriter   bool
	path       string
	dryRun     bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithDryRun partitions the subset without mutating or saving.
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) {
		e.dryRun = dryRun
	}
}

// WithPath names the destination in results and errors.
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

// NewEngine creates an engine.
func NewEngine(cl *classifier.Classifier, saver records.Saver, opts ...Option) *Engine {
	e := &Engine{classifier: cl, saver: saver}
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

// Run partitions the records selected by f into reassigned and unchanged
// groups, relabels the reassigned ones and saves c once if there were any.
//
// A failed save returns the result alongside a *errors.SaveError; the
// records are relabelled in memory but not on disk.
func (e *Engine) Run(ctx context.Context, c *records.Collection, f Filter) (*Result, error) {
	ctx = logging.WithOperation(ctx, "reclassify")
	logger := logging.FromContext(ctx).With().
		Str("category", f.Category).
		Str("subcategory", f.SubCategory).
		Logger()
	if f.KeyPattern != nil {
		logger = logger.With().
			Str("key_pattern", f.KeyPattern.Pattern()).
			Stringer("pattern_type", f.KeyPattern.Type()).
			Logger()
	}

	selected := c.Filter(f.Match)
	result := &Result{
		Path:        e.path,
		Category:    f.Category,
		SubCategory: f.SubCategory,
		Selected:    len(selected),
		DryRun:      e.dryRun,
	}

	outcomes := make([]classifier.Outcome, len(selected))
	for i, r := range selected {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(errors.ErrCanceled, err)
		}
		out := e.classifier.Classify(r.DisplayName(), r.Key())
		outcomes[i] = out

		entry := Entry{
			Key:     r.Key(),
			Name:    r.DisplayName(),
			From:    r.SubCategory(),
			Keyword: out.Keyword,
			Outcome: out.String(),
		}
		if out.Reassign {
			entry.To = out.Label
			result.Reassigned = append(result.Reassigned, entry)
		} else {
			result.Unchanged = append(result.Unchanged, entry)
		}
	}

	logger.Info().
		Int("selected", result.Selected).
		Int("reassigned", len(result.Reassigned)).
		Int("unchanged", len(result.Unchanged)).
		Msg("Classified records")

	if len(result.Reassigned) == 0 {
		return result, nil
	}
	if e.dryRun {
		logger.Info().Msg("Dry run, collection not saved")
		return result, nil
	}

	for i, r := range selected {
		if !outcomes[i].Reassign {
			continue
		}
		if err := r.SetSubCategory(outcomes[i].Label); err != nil {
			return nil, errors.WrapValidation(r.Key(), err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Join(errors.ErrCanceled, err)
	}
	if err := e.saver.Save(c, e.saveOpts...); err != nil {
		logger.Error().
			Err(err).
			Int("changes", len(result.Reassigned)).
			Bool("persisted", false).
			Msg("Changes computed but not persisted")
		return result, errors.NewSaveError(e.path, len(result.Reassigned), err)
	}
	if e.toWriter {
		logger.Info().Int("changes", len(result.Reassigned)).Msg("Wrote rewritten document to preview writer")
		return result, nil
	}
	result.Persisted = true

	logger.Info().
		Int("changes", len(result.Reassigned)).
		Bool("persisted", true).
		Msg("Saved new subcategories")
	return result, nil
}
