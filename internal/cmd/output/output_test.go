package output

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvdb/itemctl/pkg/merge"
	"github.com/gvdb/itemctl/pkg/reclassify"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "text", want: FormatText},
		{in: "TABLE", want: FormatTable},
		{in: "json", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "md", want: FormatMarkdown},
		{in: "markdown", want: FormatMarkdown},
		{in: "wide", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Icon File", Title("icon_file"))
	assert.Equal(t, "Keyword", Title("keyword"))
}

func sampleReport() *merge.Report {
	return &merge.Report{
		Path: "items.json",
		Changes: []merge.Change{
			{Key: "icon_Leather.png", NewPrimary: "Leather", NewSecondary: "Skóra", Line: 2},
			{Key: "icon_Silk.png", OldPrimary: "Silk", NewPrimary: "Fine Silk", NewSecondary: "Fine Silk"},
		},
	}
}

func TestMergeTable(t *testing.T) {
	table := MergeTable(sampleReport())
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2", "icon_Leather.png", "", "Leather", "Skóra"}, table.Rows[0])
	assert.Equal(t, "-", table.Rows[1][0])
	assert.Len(t, table.ColumnAlignment, len(table.Headers))
}

func TestReclassifyTable(t *testing.T) {
	table := ReclassifyTable(&reclassify.Result{
		Reassigned: []reclassify.Entry{{Key: "b.png", Name: "Chain Leggings", From: "Feet", To: "Legs", Keyword: "leggings"}},
		Unchanged:  []reclassify.Entry{{Key: "d.png", Name: "Wrap", From: "Feet"}},
	})
	assert.Equal(t, [][]string{
		{"b.png", "Chain Leggings", "Feet", "Legs", "leggings"},
		{"d.png", "Wrap", "Feet", "Feet", "-"},
	}, table.Rows)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, MergeTable(sampleReport())))
	out := buf.String()
	assert.Contains(t, out, "icon_Leather.png")
	assert.Contains(t, out, "Skóra")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"changes": 2}))
	assert.JSONEq(t, `{"changes":2}`, buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, sampleReport()))
	out := buf.String()
	assert.Contains(t, out, `"Skóra"`)
	assert.Contains(t, out, `"path": "items.json"`)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, sampleReport()))
	out := buf.String()
	assert.Contains(t, out, "path: items.json")
	assert.Contains(t, out, "key: icon_Leather.png")
}

func TestRender(t *testing.T) {
	text := func(w io.Writer) error {
		_, err := io.WriteString(w, "report\n")
		return err
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "", sampleReport(), MergeTable(sampleReport()), text))
	assert.Equal(t, "report\n", buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, FormatJSON, map[string]bool{"ok": true}, Table{}, text))
	assert.JSONEq(t, `{"ok":true}`, buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, FormatTable, nil, MergeTable(sampleReport()), text))
	assert.Contains(t, buf.String(), "icon_Silk.png")
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatMarkdown).Format(&buf, MergeTable(sampleReport())))
	out := buf.String()
	assert.Contains(t, out, "Icon File")
	assert.Contains(t, out, "icon_Leather.png")
	assert.Contains(t, out, "|")
}
