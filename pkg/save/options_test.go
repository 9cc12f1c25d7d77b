package save

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gvdb/itemctl/pkg/constants"
)

func TestDefaults(t *testing.T) {
	opts := Defaults().Apply()
	assert.Empty(t, opts.Path())
	assert.Nil(t, opts.Writer())
	assert.Equal(t, constants.JSONIndent, opts.Indent())
}

func TestApply(t *testing.T) {
	var buf bytes.Buffer
	opts := Defaults().Apply(
		WithPath("out/items.json"),
		WithWriter(&buf),
	)

	assert.Equal(t, "out/items.json", opts.Path())
	assert.Same(t, &buf, opts.Writer())
	assert.Equal(t, constants.JSONIndent, opts.Indent())
}
