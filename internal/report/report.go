// Package report renders the human-readable summaries printed after a merge
// or reclassification run.
package report

import (
	"fmt"
	"io"

	"github.com/gvdb/itemctl/internal/cmd/emoji"
	"github.com/gvdb/itemctl/pkg/merge"
	"github.com/gvdb/itemctl/pkg/reclassify"
)

// WriteMergeReport lists every change as "key: 'old' -> 'new'". A positive
// limit caps the listed lines and appends a count of the rest.
func WriteMergeReport(w io.Writer, r *merge.Report, limit int) error {
	p := &printer{w: w}
	if !r.HasChanges() {
		p.line("No updates found.")
		return p.err
	}

	p.line("Updated %d items:", len(r.Changes))
	for i, ch := range r.Changes {
		if limit > 0 && i == limit {
			p.line("  ... and %d more", len(r.Changes)-limit)
			break
		}
		p.line("  %s: '%s' -> '%s'", ch.Key, ch.OldPrimary, ch.NewPrimary)
	}
	return p.err
}

// WriteReclassifyReport prints the size of each group and up to sample
// example items from each.
func WriteReclassifyReport(w io.Writer, r *reclassify.Result, sample int) error {
	p := &printer{w: w}
	p.line("Found %d items in %s > %s", r.Selected, r.Category, r.SubCategory)
	if r.Selected == 0 {
		return p.err
	}

	label := "reassigned"
	if len(r.Reassigned) > 0 && r.Reassigned[0].To != "" {
		label = r.Reassigned[0].To
	}

	p.line("")
	p.line("Identified:")
	p.line("  %s: %d", label, len(r.Reassigned))
	p.line("  %s: %d", r.SubCategory, len(r.Unchanged))

	p.sample("Sample "+label+" items:", r.Reassigned, sample)
	p.sample("Sample "+r.SubCategory+" items:", r.Unchanged, sample)
	return p.err
}

// WriteStatus reports whether computed changes reached disk.
func WriteStatus(w io.Writer, persisted bool, path string) error {
	p := &printer{w: w}
	if persisted {
		p.line("%s Saved to %s", emoji.Success, path)
	} else {
		p.line("%s Changes computed but NOT saved to %s", emoji.Error, path)
	}
	return p.err
}

// WriteDryRun notes that a run stopped before saving.
func WriteDryRun(w io.Writer, changes int) error {
	p := &printer{w: w}
	p.line("%s Dry run: %d change(s) not written", emoji.Info, changes)
	return p.err
}

// printer keeps the first write error so callers check once at the end.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) sample(title string, entries []reclassify.Entry, n int) {
	if len(entries) == 0 {
		return
	}
	p.line("")
	p.line(title)
	for i, e := range entries {
		if n > 0 && i == n {
			break
		}
		p.line("  - %s (%s)", e.Name, e.Key)
	}
}
