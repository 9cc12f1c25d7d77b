package merge

import "fmt"

// Change is the before and after of one corrected record.
type Change struct {
	Key          string `json:"key" yaml:"key"`
	NewPrimary   string `json:"new_primary" yaml:"new_primary"`
	NewSecondary string `json:"new_secondary" yaml:"new_secondary"`
	OldPrimary   string `json:"old_primary" yaml:"old_primary"`
	OldSecondary string `json:"old_secondary" yaml:"old_secondary"`
	Line         int    `json:"line,omitempty" yaml:"line,omitempty"`
}

// Report summarises one merge run.
type Report struct {
	// Path is the collection the changes were written to.
	Path string `json:"path" yaml:"path"`
	// Rows is the number of correction rows processed.
	Rows int `json:"rows" yaml:"rows"`
	// Skipped counts rows whose key had no record.
	Skipped int `json:"skipped" yaml:"skipped"`
	// Unchanged counts rows that matched a record already holding their values.
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	// Changes lists changed records in row order.
	Changes []Change `json:"changes" yaml:"changes"`
	// Persisted is true once the changed collection has been saved.
	Persisted bool `json:"persisted" yaml:"persisted"`
	DryRun    bool `json:"dry_run" yaml:"dry_run"`
}

// HasChanges reports whether any record changed.
func (r *Report) HasChanges() bool {
	return len(r.Changes) > 0
}

// Summary returns a one-line description of the run.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d changed, %d unchanged, %d without matching record",
		len(r.Changes), r.Unchanged, r.Skipped)
}
