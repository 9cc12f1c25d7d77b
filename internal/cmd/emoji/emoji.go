// Package emoji provides the status symbols used in CLI output.
package emoji

const (
	// Success marks changes that were saved.
	Success = "✓"

	// Error marks failures, including changes that never reached disk.
	Error = "✗"

	// Warning marks skipped rows and other non-fatal issues.
	Warning = "!"

	// Info marks dry runs and informational notes.
	Info = "i"
)
