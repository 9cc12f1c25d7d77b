package records

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"golang.org/x/text/encoding/unicode"

	"github.com/gvdb/itemctl/pkg/errors"
)

// Collection is the ordered sequence of records in one items document.
type Collection struct {
	schema     *Schema
	records    []*Record
	duplicates []string
}

// Parse decodes an items document. source names the document in errors.
//
// The document must be a JSON array of objects, each with a non-empty
// string under the schema's key field. A leading UTF-8 BOM is ignored;
// any other invalid UTF-8 is a parse error.
func Parse(data []byte, source string, schema Schema) (*Collection, error) {
	schema = schema.WithDefaults()
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	if !utf8.Valid(data) {
		return nil, errors.NewParseError("json", source, "document is not valid UTF-8", nil)
	}
	data, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return nil, errors.WrapParse("json", source, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.NewParseError("json", source, "document is not valid JSON", nil)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, errors.NewParseError("json", source, "document is not an array", nil)
	}

	c := &Collection{schema: &schema}
	seen := make(map[string]int)
	keyPath := fieldPath(schema.Key)

	var perr error
	i := 0
	root.ForEach(func(_, v gjson.Result) bool {
		defer func() { i++ }()
		if !v.IsObject() {
			perr = errors.NewParseError("json", source, fmt.Sprintf("element %d is not an object", i), nil)
			return false
		}
		key := v.Get(keyPath)
		if key.Type != gjson.String || key.Str == "" {
			perr = errors.NewParseError("json", source,
				fmt.Sprintf("element %d has no string %q field", i, schema.Key), nil)
			return false
		}
		seen[key.Str]++
		if seen[key.Str] == 2 {
			c.duplicates = append(c.duplicates, key.Str)
		}
		c.records = append(c.records, &Record{
			key:    key.Str,
			raw:    []byte(v.Raw),
			schema: c.schema,
		})
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return c, nil
}

// Records returns the records in source order.
func (c *Collection) Records() []*Record {
	return c.records
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Schema returns the field names the collection was parsed with.
func (c *Collection) Schema() Schema {
	return *c.schema
}

// Index maps keys to records. When a key occurs more than once the later
// record wins; Duplicates lists such keys.
func (c *Collection) Index() map[string]*Record {
	idx := make(map[string]*Record, len(c.records))
	for _, r := range c.records {
		idx[r.key] = r
	}
	return idx
}

// Duplicates returns keys that occur more than once, in first-seen order.
func (c *Collection) Duplicates() []string {
	return c.duplicates
}

// Filter returns the records for which keep returns true, in source order.
func (c *Collection) Filter(keep func(*Record) bool) []*Record {
	var out []*Record
	for _, r := range c.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Marshal renders the collection as an indented JSON array with no trailing
// newline. Field order and string escapes of every object are kept as they
// are in memory.
func (c *Collection) Marshal(indent string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range c.records {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(r.raw)
	}
	buf.WriteByte(']')

	out := pretty.PrettyOptions(buf.Bytes(), &pretty.Options{
		Width:  0, // never pack arrays onto one line
		Indent: indent,
	})
	return bytes.TrimSuffix(out, []byte("\n"))
}

func errKeyImmutable(field string) error {
	return errors.NewValidationError(field, nil, "the key field cannot be modified")
}
