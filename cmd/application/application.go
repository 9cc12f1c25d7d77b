// Package application provides the application interface for itemctl commands.
//
// Commands accept an Application rather than the concrete App so they can be
// tested against internal/cmd/application.Mock:
//
//	mock := &application.Mock{ItemsPath: filepath.Join(t.TempDir(), "items.json")}
//	cmd := merge.NewCommand(mock)
//	cmd.SetArgs([]string{"fixes.csv"})
package application

import (
	"github.com/rs/zerolog"

	"github.com/gvdb/itemctl/pkg/corrections"
	"github.com/gvdb/itemctl/pkg/records"
)

// Application provides what commands need from the running program.
type Application interface {
	// Store returns the item collection store configured by --items,
	// the config file and the field schema.
	Store() *records.Store

	// ReferenceCSV returns the default path of the reference correction sheet.
	ReferenceCSV() string

	// HeaderColumns returns the column names of the reference sheet.
	HeaderColumns() corrections.HeaderColumns

	// TemplatePath returns the default output path of the template command.
	TemplatePath() string

	// TemplateGroups returns the categories exported by the template command.
	TemplateGroups() []corrections.TemplateGroup

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (text, table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
