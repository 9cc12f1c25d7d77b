// Package corrections reads display-name corrections from CSV files.
//
// Two layouts are supported and both normalise into []Row:
//
//   - positional: header-less "key,primary[,secondary]" rows
//   - reference: a header-bearing sheet with key, corrected primary and
//     corrected secondary columns matched by name
//
// A leading UTF-8 byte order mark is accepted in both layouts.
package corrections

import (
	"fmt"
	"strings"
)

// Row is one correction instruction for the record with the given key.
type Row struct {
	Key     string
	Primary string
	// Secondary is only meaningful when HasSecondary is true.
	Secondary    string
	HasSecondary bool
	// Line is the 1-based line of the row in its source file.
	Line int
}

// EffectiveSecondary returns the secondary name to apply, falling back to
// the primary name when the row has none.
func (r Row) EffectiveSecondary() string {
	if r.HasSecondary {
		return r.Secondary
	}
	return r.Primary
}

// Format identifies a CSV layout.
type Format int

const (
	// FormatPositional is the header-less key,primary[,secondary] layout.
	FormatPositional Format = iota
	// FormatReference is the header-bearing reference sheet layout.
	FormatReference
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatPositional:
		return "positional"
	case FormatReference:
		return "reference"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "positional", "a":
		return FormatPositional, nil
	case "reference", "header", "b":
		return FormatReference, nil
	default:
		return 0, fmt.Errorf("invalid csv format %q: must be one of: positional, reference", s)
	}
}
