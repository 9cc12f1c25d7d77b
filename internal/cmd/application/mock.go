// Package application provides a test double for the command application
// interface.
package application

import (
	"github.com/rs/zerolog"

	"github.com/gvdb/itemctl/pkg/corrections"
	"github.com/gvdb/itemctl/pkg/records"
)

// Mock implements cmd/application.Application with fixed values. Zero
// fields fall back to package defaults.
type Mock struct {
	ItemsPath   string
	StrictKeys  bool
	Schema      records.Schema
	Reference   string
	Columns     corrections.HeaderColumns
	Template    string
	Groups      []corrections.TemplateGroup
	Format      string
	LoggerValue *zerolog.Logger
	VersionInfo string
}

// Store returns a store over ItemsPath.
func (m *Mock) Store() *records.Store {
	return records.NewStore(m.ItemsPath,
		records.WithSchema(m.Schema.WithDefaults()),
		records.WithStrictKeys(m.StrictKeys),
		records.WithLogger(m.Logger()),
	)
}

// ReferenceCSV returns Reference.
func (m *Mock) ReferenceCSV() string {
	return m.Reference
}

// HeaderColumns returns Columns or the reference sheet defaults.
func (m *Mock) HeaderColumns() corrections.HeaderColumns {
	if m.Columns == (corrections.HeaderColumns{}) {
		return corrections.DefaultHeaderColumns()
	}
	return m.Columns
}

// TemplatePath returns Template.
func (m *Mock) TemplatePath() string {
	return m.Template
}

// TemplateGroups returns Groups or the default groups.
func (m *Mock) TemplateGroups() []corrections.TemplateGroup {
	if len(m.Groups) == 0 {
		return corrections.DefaultTemplateGroups()
	}
	return m.Groups
}

// Logger returns LoggerValue or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerValue != nil {
		return m.LoggerValue
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// Version returns VersionInfo or "test".
func (m *Mock) Version() string {
	if m.VersionInfo == "" {
		return "test"
	}
	return m.VersionInfo
}

// Commit returns "unknown".
func (m *Mock) Commit() string {
	return "unknown"
}

// Date returns "unknown".
func (m *Mock) Date() string {
	return "unknown"
}

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string {
	return "test"
}
