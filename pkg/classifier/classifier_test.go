package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvdb/itemctl/pkg/errors"
)

func TestClassifyLegsRuleset(t *testing.T) {
	c := MustNew(LegsRuleset())

	tests := []struct {
		name string
		item string
		key  string
		want Outcome
	}{
		{
			name: "leggings are reassigned",
			item: "Chain Leggings",
			key:  "b.png",
			want: Outcome{Reassign: true, Label: "Legs", Keyword: "leggings"},
		},
		{
			name: "leggings with boots stay",
			item: "Leather Leggings with Boots",
			key:  "a.png",
			want: Outcome{Keyword: "boots"},
		},
		{
			name: "combined icon name stays",
			item: "",
			key:  "icon_LeggingsWithBoots_03.png",
			want: Outcome{Keyword: "leggingswithboots"},
		},
		{
			name: "keyword found in the key only",
			item: "Heavy Set",
			key:  "icon_Trousers_01.png",
			want: Outcome{Reassign: true, Label: "Legs", Keyword: "trousers"},
		},
		{
			name: "multi-word keyword",
			item: "Iron Leg Guards",
			key:  "x.png",
			want: Outcome{Reassign: true, Label: "Legs", Keyword: "leg guards"},
		},
		{
			name: "substring match inside a word",
			item: "Woolen Hosen",
			key:  "x.png",
			want: Outcome{Reassign: true, Label: "Legs", Keyword: "hose"},
		},
		{
			name: "no keyword",
			item: "Iron Helmet",
			key:  "helm.png",
			want: Outcome{},
		},
		{
			name: "empty text",
			want: Outcome{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.item, tt.key))
		})
	}
}

func TestExclusionPrecedence(t *testing.T) {
	// Exclude rules win even when listed after the include rules.
	c, err := New(Ruleset{Rules: []Rule{
		{Tier: TierInclude, Label: "Legs", Keywords: []string{"leggings", "pants"}},
		{Tier: TierExclude, Keywords: []string{"boots"}},
	}})
	require.NoError(t, err)

	for _, include := range []string{"leggings", "pants"} {
		for _, text := range []string{
			include + " boots",
			"boots " + include,
			"LEATHER " + include + " WITH BOOTS",
		} {
			got := c.ClassifyText(text)
			assert.False(t, got.Reassign, "text %q", text)
			assert.Equal(t, "boots", got.Keyword)
		}
	}
}

func TestIncludeRulesInOrder(t *testing.T) {
	c, err := New(Ruleset{Rules: []Rule{
		{Tier: TierInclude, Label: "Legs", Keywords: []string{"greaves"}},
		{Tier: TierInclude, Label: "Feet", Keywords: []string{"greaves", "boots"}},
	}})
	require.NoError(t, err)

	assert.Equal(t, "Legs", c.ClassifyText("Bronze Greaves").Label)
	assert.Equal(t, "Feet", c.ClassifyText("Bronze Boots").Label)
}

func TestKeywordsAreCaseFolded(t *testing.T) {
	c, err := New(Ruleset{Rules: []Rule{
		{Tier: TierInclude, Label: "Legs", Keywords: []string{"Leggings"}},
	}})
	require.NoError(t, err)

	assert.True(t, c.ClassifyText("CHAIN LEGGINGS").Reassign)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "unchanged", Outcome{}.String())
	assert.Equal(t, "reassign(Legs)", Outcome{Reassign: true, Label: "Legs"}.String())
}

func TestRulesetValidate(t *testing.T) {
	tests := []struct {
		name  string
		rs    Ruleset
		field string
	}{
		{name: "empty", rs: Ruleset{}, field: "rules"},
		{name: "unknown tier", rs: Ruleset{Rules: []Rule{{Tier: "maybe", Keywords: []string{"x"}}}}, field: "rules[0].tier"},
		{name: "include without label", rs: Ruleset{Rules: []Rule{{Tier: TierInclude, Keywords: []string{"x"}}}}, field: "rules[0].label"},
		{name: "no keywords", rs: Ruleset{Rules: []Rule{{Tier: TierExclude}}}, field: "rules[0].keywords"},
		{name: "empty keyword", rs: Ruleset{Rules: []Rule{{Tier: TierExclude, Keywords: []string{"a", ""}}}}, field: "rules[0].keywords[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rs)
			var verr *errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestLoadRuleset(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "rules.yaml")
		doc := `category: Armor
subcategory: Feet
rules:
  - tier: exclude
    keywords: [boots, shoes]
  - tier: include
    label: Legs
    keywords:
      - pants
      - leg guards
`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		rs, err := LoadRuleset(path)
		require.NoError(t, err)
		assert.Equal(t, "Armor", rs.Category)
		assert.Equal(t, "Feet", rs.SubCategory)
		require.Len(t, rs.Rules, 2)
		assert.Equal(t, TierExclude, rs.Rules[0].Tier)
		assert.Equal(t, []string{"pants", "leg guards"}, rs.Rules[1].Keywords)
	})

	t.Run("unknown field", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rulez: []\n"), 0o644))

		_, err := LoadRuleset(path)
		assert.True(t, errors.IsParseError(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRuleset(filepath.Join(dir, "absent.yaml"))
		assert.True(t, errors.IsNotFound(err))
	})
}
