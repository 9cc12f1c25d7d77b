package output

import (
	"strconv"

	"github.com/gvdb/itemctl/pkg/merge"
	"github.com/gvdb/itemctl/pkg/reclassify"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Table is the input to TableFormatter.
type Table struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// MergeTable lists the changes of a merge run, one row per record.
func MergeTable(r *merge.Report) Table {
	t := Table{
		Headers:         []string{"line", "icon_file", "old_name", "new_name", "new_secondary"},
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
	for _, ch := range r.Changes {
		line := "-"
		if ch.Line > 0 {
			line = strconv.Itoa(ch.Line)
		}
		t.Rows = append(t.Rows, []string{line, ch.Key, ch.OldPrimary, ch.NewPrimary, ch.NewSecondary})
	}
	return t
}

// ReclassifyTable lists every selected record with its outcome. Reassigned
// records come first.
func ReclassifyTable(r *reclassify.Result) Table {
	t := Table{Headers: []string{"icon_file", "name", "from", "to", "keyword"}}
	for _, group := range [][]reclassify.Entry{r.Reassigned, r.Unchanged} {
		for _, e := range group {
			to := e.To
			if to == "" {
				to = e.From
			}
			keyword := e.Keyword
			if keyword == "" {
				keyword = "-"
			}
			t.Rows = append(t.Rows, []string{e.Key, e.Name, e.From, to, keyword})
		}
	}
	return t
}
