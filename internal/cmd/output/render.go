package output

import "io"

// Render writes data as JSON or YAML, tbl as a table or markdown table, or calls text for
// the default line-oriented report. An empty format means text.
func Render(w io.Writer, format Format, data any, tbl Table, text func(io.Writer) error) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, data)
	case FormatTable, FormatMarkdown:
		return NewFormatter(format).Format(w, tbl)
	default:
		return text(w)
	}
}
