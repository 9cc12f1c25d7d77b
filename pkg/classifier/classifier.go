// Package classifier assigns a label to an item from its name and key using
// tiered keyword rules.
//
// Matching is plain substring containment on the lower-cased text
// "<name> <key>". Exclude rules are evaluated before include rules no matter
// where they appear in the ruleset, so "leggings with boots" stays put even
// though it contains "leggings".
package classifier

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Outcome is the result of classifying one record.
type Outcome struct {
	// Reassign is true when an include rule matched.
	Reassign bool
	// Label is the include rule's label; empty when Reassign is false.
	Label string
	// Keyword is the keyword that decided the outcome, exclude or include.
	// Empty when no rule matched.
	Keyword string
}

// String renders the outcome for logs and reports.
func (o Outcome) String() string {
	if o.Reassign {
		return "reassign(" + o.Label + ")"
	}
	return "unchanged"
}

type compiledRule struct {
	label    string
	keywords []string
}

// Classifier evaluates a validated ruleset. It holds no mutable state and is
// safe to share.
type Classifier struct {
	exclude []string
	include []compiledRule
}

// New compiles a ruleset.
func New(rs Ruleset) (*Classifier, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}

	c := &Classifier{}
	for _, r := range rs.Rules {
		keywords := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			keywords = append(keywords, lower(kw))
		}
		switch r.Tier {
		case TierExclude:
			c.exclude = append(c.exclude, keywords...)
		case TierInclude:
			c.include = append(c.include, compiledRule{label: r.Label, keywords: keywords})
		}
	}
	return c, nil
}

// MustNew is New for rulesets known to be valid, such as LegsRuleset.
func MustNew(rs Ruleset) *Classifier {
	c, err := New(rs)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify classifies a record by its display name and key.
func (c *Classifier) Classify(name, key string) Outcome {
	return c.ClassifyText(name + " " + key)
}

// ClassifyText classifies arbitrary text.
func (c *Classifier) ClassifyText(text string) Outcome {
	text = lower(strings.TrimSpace(text))
	if text == "" {
		return Outcome{}
	}

	for _, kw := range c.exclude {
		if strings.Contains(text, kw) {
			return Outcome{Keyword: kw}
		}
	}

	for _, r := range c.include {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return Outcome{Reassign: true, Label: r.label, Keyword: kw}
			}
		}
	}

	return Outcome{}
}

// lower folds s to lower case. A Caser keeps state, so one is made per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
