// Package records loads, indexes and rewrites the item collection.
//
// A Store is bound to one items.json path. Load parses the document into a
// Collection, the engines mutate records in memory, and Save rewrites the
// whole document in one temp-file-and-rename step.
package records

import (
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/gvdb/itemctl/internal/atomicfile"
	"github.com/gvdb/itemctl/pkg/errors"
	"github.com/gvdb/itemctl/pkg/logging"
	"github.com/gvdb/itemctl/pkg/save"
)

// Saver persists a collection. Store implements it; engines depend on the
// interface so a run can be previewed or tested without touching disk.
type Saver interface {
	Save(c *Collection, opts ...save.Option) error
}

// Store reads and writes one items document.
type Store struct {
	path       string
	schema     Schema
	strictKeys bool
	logger     *zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSchema overrides the field names.
func WithSchema(schema Schema) Option {
	return func(s *Store) {
		s.schema = schema
	}
}

// WithStrictKeys makes Load fail when a key occurs more than once.
func WithStrictKeys(strict bool) Option {
	return func(s *Store) {
		s.strictKeys = strict
	}
}

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a store for the document at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		schema: DefaultSchema(),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the document.
func (s *Store) Load() (*Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &errors.NotFoundError{Resource: "items file", ID: s.path, Err: err}
		}
		return nil, errors.NewIOError("read", s.path, err)
	}

	c, err := Parse(data, s.path, s.schema)
	if err != nil {
		return nil, err
	}

	if dups := c.Duplicates(); len(dups) > 0 {
		if s.strictKeys {
			return nil, &errors.DuplicateKeyError{Field: c.schema.Key, Keys: dups}
		}
		s.logger.Warn().
			Str("file", s.path).
			Strs("keys", dups).
			Msg("Duplicate keys in collection, the last occurrence wins")
	}

	s.logger.Debug().
		Str("file", s.path).
		Int("records", c.Len()).
		Msg("Loaded collection")
	return c, nil
}

// Save rewrites the full document. With save.WithWriter the document goes
// to the writer and the file is left alone.
func (s *Store) Save(c *Collection, opts ...save.Option) error {
	options := save.Defaults().Apply(opts...)
	data := c.Marshal(options.Indent())

	if w := options.Writer(); w != nil {
		if _, err := w.Write(data); err != nil {
			return errors.NewIOError("write", "", err)
		}
		return nil
	}

	path := options.Path()
	if path == "" {
		path = s.path
	}
	if err := atomicfile.WriteFile(path, data, 0); err != nil {
		return err
	}

	s.logger.Debug().
		Str("file", path).
		Int("records", c.Len()).
		Int("bytes", len(data)).
		Msg("Saved collection")
	return nil
}
