package corrections

import (
	"encoding/csv"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/gvdb/itemctl/pkg/records"
)

// TemplateGroup selects the records of one category for the template and
// names the reference images an editor should compare them against.
type TemplateGroup struct {
	Category   string   `mapstructure:"category" yaml:"category"`
	References []string `mapstructure:"references" yaml:"references"`
}

// DefaultTemplateGroups returns the categories whose names were checked
// against reference screenshots.
func DefaultTemplateGroups() []TemplateGroup {
	return []TemplateGroup{
		{Category: "Materials", References: []string{"LeatherandHides", "ThreadsandCanvas"}},
		{Category: "Armor", References: []string{"LegArmour_Shoes", "ChestArmour_v2", "GauntletsandShields", "HelmetsandShoulderArmour"}},
	}
}

// WriteTemplate writes an editable CSV with the current names of every
// record in the given groups, BOM-prefixed so spreadsheet tools detect
// UTF-8. It returns the number of item rows written.
//
// The header row reuses the collection's field names, so an edited template
// can be fed back as a positional CSV: its header never matches a key and
// the Notes column is ignored.
func WriteTemplate(w io.Writer, c *records.Collection, groups []TemplateGroup) (int, error) {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(bw)

	schema := c.Schema()
	if err := cw.Write([]string{schema.Key, schema.Primary, schema.Secondary, "Notes"}); err != nil {
		return 0, err
	}

	n := 0
	for _, g := range groups {
		note := "From: " + strings.Join(g.References, ", ")
		for _, r := range c.Records() {
			if r.Category() != g.Category {
				continue
			}
			if err := cw.Write([]string{r.Key(), r.Primary(), r.Secondary(), note}); err != nil {
				return n, err
			}
			n++
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return n, err
	}
	return n, bw.Close()
}
