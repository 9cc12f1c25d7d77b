package records

import (
	"github.com/gvdb/itemctl/pkg/constants"
	"github.com/gvdb/itemctl/pkg/errors"
)

// Schema names the JSON fields the engines read and write. Every other
// field of an item is passed through untouched.
type Schema struct {
	Key         string `mapstructure:"key" yaml:"key"`
	Primary     string `mapstructure:"primary" yaml:"primary"`
	Secondary   string `mapstructure:"secondary" yaml:"secondary"`
	Category    string `mapstructure:"category" yaml:"category"`
	SubCategory string `mapstructure:"subcategory" yaml:"subcategory"`
	BaseName    string `mapstructure:"base_name" yaml:"base_name"`
}

// DefaultSchema returns the field names used by the game item database.
func DefaultSchema() Schema {
	return Schema{
		Key:         constants.FieldKey,
		Primary:     constants.FieldPrimary,
		Secondary:   constants.FieldSecondary,
		Category:    constants.FieldCategory,
		SubCategory: constants.FieldSubCategory,
		BaseName:    constants.FieldBaseName,
	}
}

// WithDefaults fills empty field names from DefaultSchema.
func (s Schema) WithDefaults() Schema {
	d := DefaultSchema()
	if s.Key == "" {
		s.Key = d.Key
	}
	if s.Primary == "" {
		s.Primary = d.Primary
	}
	if s.Secondary == "" {
		s.Secondary = d.Secondary
	}
	if s.Category == "" {
		s.Category = d.Category
	}
	if s.SubCategory == "" {
		s.SubCategory = d.SubCategory
	}
	if s.BaseName == "" {
		s.BaseName = d.BaseName
	}
	return s
}

// Validate rejects schemas where the key shares a field with a value the
// engines overwrite.
func (s Schema) Validate() error {
	if s.Key == "" {
		return errors.NewValidationError("fields.key", s.Key, "key field name is required")
	}
	for _, f := range []struct{ field, name string }{
		{"fields.primary", s.Primary},
		{"fields.secondary", s.Secondary},
		{"fields.subcategory", s.SubCategory},
	} {
		if f.name == s.Key {
			return errors.NewValidationError(f.field, f.name, "must differ from the key field")
		}
	}
	return nil
}
