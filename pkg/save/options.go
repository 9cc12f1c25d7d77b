// Package save holds the options accepted by records.Store.Save.
package save

import (
	"io"

	"github.com/gvdb/itemctl/pkg/constants"
)

// Options is the configuration for save.
type Options struct {
	path   string
	writer io.Writer
	indent string
}

// Path returns the destination path. Empty means the store's own path.
func (s *Options) Path() string {
	return s.path
}

// Writer returns the writer for the save options.
func (s *Options) Writer() io.Writer {
	return s.writer
}

// Indent returns the indentation used for the JSON document.
func (s *Options) Indent() string {
	return s.indent
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		indent: constants.JSONIndent,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithPath for filesystem saves to a path other than the one loaded from.
func WithPath(path string) Option {
	return func(s *Options) {
		s.path = path
	}
}

// WithWriter sends the document to w instead of the filesystem.
func WithWriter(w io.Writer) Option {
	return func(s *Options) {
		s.writer = w
	}
}
