package reclassify

// Entry describes the classification of one selected record.
type Entry struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`
	// From is the subcategory the record had when selected.
	From string `json:"from" yaml:"from"`
	// To is the new subcategory; empty for unchanged records.
	To string `json:"to,omitempty" yaml:"to,omitempty"`
	// Keyword is the keyword that decided the outcome, if any.
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Outcome string `json:"outcome" yaml:"outcome"`
}

// Result is the outcome of one reclassification run. Reassigned and
// Unchanged partition the selected records, each in source order.
type Result struct {
	Path        string  `json:"path" yaml:"path"`
	Category    string  `json:"category" yaml:"category"`
	SubCategory string  `json:"subcategory" yaml:"subcategory"`
	Selected    int     `json:"selected" yaml:"selected"`
	Reassigned  []Entry `json:"reassigned" yaml:"reassigned"`
	Unchanged   []Entry `json:"unchanged" yaml:"unchanged"`
	Persisted   bool    `json:"persisted" yaml:"persisted"`
	DryRun      bool    `json:"dry_run" yaml:"dry_run"`
}

// HasChanges reports whether any record was reassigned.
func (r *Result) HasChanges() bool {
	return len(r.Reassigned) > 0
}
