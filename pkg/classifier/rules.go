package classifier

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/gvdb/itemctl/pkg/errors"
)

// Tier is the precedence class of a rule.
type Tier string

const (
	// TierExclude rules pin a record to its current label. They are checked
	// before any include rule and short-circuit classification.
	TierExclude Tier = "exclude"
	// TierInclude rules assign their label when no exclude rule matched.
	TierInclude Tier = "include"
)

// Rule is a keyword set with a tier and, for include rules, a target label.
type Rule struct {
	Tier     Tier     `yaml:"tier"`
	Label    string   `yaml:"label,omitempty"`
	Keywords []string `yaml:"keywords"`
}

// Ruleset is an ordered list of rules. Category and SubCategory, when set,
// name the subset of records the rules were written for.
type Ruleset struct {
	Category    string `yaml:"category,omitempty"`
	SubCategory string `yaml:"subcategory,omitempty"`
	Rules       []Rule `yaml:"rules"`
}

// Validate checks that every rule is usable.
func (rs Ruleset) Validate() error {
	if len(rs.Rules) == 0 {
		return errors.NewValidationError("rules", nil, "at least one rule is required")
	}
	for i, r := range rs.Rules {
		field := fmt.Sprintf("rules[%d]", i)
		switch r.Tier {
		case TierExclude:
		case TierInclude:
			if r.Label == "" {
				return errors.NewValidationError(field+".label", r.Label, "include rules need a label")
			}
		default:
			return errors.NewValidationError(field+".tier", r.Tier, `must be "exclude" or "include"`)
		}
		if len(r.Keywords) == 0 {
			return errors.NewValidationError(field+".keywords", nil, "at least one keyword is required")
		}
		for j, kw := range r.Keywords {
			if kw == "" {
				return errors.NewValidationError(fmt.Sprintf("%s.keywords[%d]", field, j), kw, "keyword is empty")
			}
		}
	}
	return nil
}

// ParseRuleset decodes a YAML rules document. Unknown fields are rejected.
func ParseRuleset(data []byte, source string) (Ruleset, error) {
	var rs Ruleset
	if err := yaml.UnmarshalWithOptions(data, &rs, yaml.Strict()); err != nil {
		return Ruleset{}, errors.WrapParse("yaml", source, err)
	}
	if err := rs.Validate(); err != nil {
		return Ruleset{}, err
	}
	return rs, nil
}

// LoadRuleset reads a YAML rules file.
func LoadRuleset(path string) (Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Ruleset{}, &errors.NotFoundError{Resource: "rules file", ID: path, Err: err}
		}
		return Ruleset{}, errors.NewIOError("read", path, err)
	}
	return ParseRuleset(data, path)
}

// LegsRuleset splits trousers out of Armor > Feet into a Legs subcategory.
// Footwear terms, and leggings sold together with boots, stay in Feet.
func LegsRuleset() Ruleset {
	return Ruleset{
		Category:    "Armor",
		SubCategory: "Feet",
		Rules: []Rule{
			{
				Tier: TierExclude,
				Keywords: []string{
					"boots", "shoes", "sabatons", "footwear", "sandals", "slippers",
					"leggingswithboots", "leggings with boots",
				},
			},
			{
				Tier:  TierInclude,
				Label: "Legs",
				Keywords: []string{
					"pants", "leggings", "leg guards", "legguards", "leg armor",
					"trousers", "breeches", "chausses", "hose",
				},
			},
		},
	}
}
