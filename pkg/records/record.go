package records

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Record is one item object. The raw JSON is kept as loaded so unknown
// fields and field order survive a rewrite; setters edit it in place.
type Record struct {
	key    string
	raw    []byte
	schema *Schema
}

// Key returns the join key captured at load time.
func (r *Record) Key() string {
	return r.key
}

// Primary returns the primary display name, or "" when absent.
func (r *Record) Primary() string {
	return r.Get(r.schema.Primary)
}

// Secondary returns the secondary display name, or "" when absent.
func (r *Record) Secondary() string {
	return r.Get(r.schema.Secondary)
}

// Category returns the category, or "" when absent.
func (r *Record) Category() string {
	return r.Get(r.schema.Category)
}

// SubCategory returns the subcategory, or "" when absent.
func (r *Record) SubCategory() string {
	return r.Get(r.schema.SubCategory)
}

// BaseName returns the untranslated base name, or "" when absent.
func (r *Record) BaseName() string {
	return r.Get(r.schema.BaseName)
}

// DisplayName is the primary name, falling back to the base name.
func (r *Record) DisplayName() string {
	if name := r.Primary(); name != "" {
		return name
	}
	return r.BaseName()
}

// Get returns the string form of any top-level field. Null and missing
// fields read as "".
func (r *Record) Get(field string) string {
	res := gjson.GetBytes(r.raw, fieldPath(field))
	if res.Type == gjson.Null {
		return ""
	}
	return res.String()
}

// SetNames replaces both display names.
func (r *Record) SetNames(primary, secondary string) error {
	if err := r.Set(r.schema.Primary, primary); err != nil {
		return err
	}
	return r.Set(r.schema.Secondary, secondary)
}

// SetSubCategory replaces the subcategory.
func (r *Record) SetSubCategory(label string) error {
	return r.Set(r.schema.SubCategory, label)
}

// Set writes a string field. Existing fields keep their position, new
// fields are appended to the object.
func (r *Record) Set(field, value string) error {
	if field == r.schema.Key {
		return errKeyImmutable(field)
	}
	encoded, err := encodeString(value)
	if err != nil {
		return err
	}
	raw, err := sjson.SetRawBytes(r.raw, fieldPath(field), encoded)
	if err != nil {
		return err
	}
	r.raw = raw
	return nil
}

// JSON returns a copy of the record's raw object.
func (r *Record) JSON() []byte {
	return bytes.Clone(r.raw)
}

// fieldPath escapes a field name for gjson/sjson path syntax.
func fieldPath(field string) string {
	return gjson.Escape(field)
}

// encodeString renders s as a JSON string without escaping non-ASCII or
// HTML characters.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
