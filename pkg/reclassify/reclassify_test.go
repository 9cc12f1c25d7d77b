package reclassify

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvdb/itemctl/internal/matcher"
	"github.com/gvdb/itemctl/pkg/classifier"
	"github.com/gvdb/itemctl/pkg/errors"
	"github.com/gvdb/itemctl/pkg/logging"
	"github.com/gvdb/itemctl/pkg/records"
	"github.com/gvdb/itemctl/pkg/save"
)

type countingSaver struct {
	calls int
	err   error
}

func (s *countingSaver) Save(*records.Collection, ...save.Option) error {
	s.calls++
	return s.err
}

const armorDoc = `[
	{"IconFile":"a.png","EnglishName":"Leather Leggings with Boots","Category":"Armor","SubCategory":"Feet"},
	{"IconFile":"b.png","EnglishName":"Chain Leggings","Category":"Armor","SubCategory":"Feet"},
	{"IconFile":"c.png","EnglishName":"Iron Sabatons","Category":"Armor","SubCategory":"Feet"},
	{"IconFile":"d.png","EnglishName":"Plain Wrap","Category":"Armor","SubCategory":"Feet"},
	{"IconFile":"icon_LegGuards_01.png","EnglishName":"","BaseName":"Leg Guards","Category":"Armor","SubCategory":"Feet"},
	{"IconFile":"e.png","EnglishName":"Wool Pants","Category":"Armor","SubCategory":"Chest"},
	{"IconFile":"f.png","EnglishName":"Silk Pants","Category":"Materials","SubCategory":"Feet"}
]`

func parse(t *testing.T, doc string) *records.Collection {
	t.Helper()
	c, err := records.Parse([]byte(doc), "items.json", records.DefaultSchema())
	require.NoError(t, err)
	return c
}

func testContext() context.Context {
	return logging.WithLogger(context.Background(), logging.NewNopLogger())
}

func legsEngine(saver records.Saver, opts ...Option) *Engine {
	return NewEngine(classifier.MustNew(classifier.LegsRuleset()), saver, opts...)
}

func feet() Filter {
	return Filter{Category: "Armor", SubCategory: "Feet"}
}

func keys(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

func TestRunPartitionsSubset(t *testing.T) {
	c := parse(t, armorDoc)
	saver := &countingSaver{}

	result, err := legsEngine(saver).Run(testContext(), c, feet())
	require.NoError(t, err)

	assert.Equal(t, 5, result.Selected)
	assert.Equal(t, []string{"b.png", "icon_LegGuards_01.png"}, keys(result.Reassigned))
	assert.Equal(t, []string{"a.png", "c.png", "d.png"}, keys(result.Unchanged))
	assert.Equal(t, result.Selected, len(result.Reassigned)+len(result.Unchanged))
	assert.Equal(t, 1, saver.calls)
	assert.True(t, result.Persisted)

	idx := c.Index()
	assert.Equal(t, "Feet", idx["a.png"].SubCategory())
	assert.Equal(t, "Legs", idx["b.png"].SubCategory())
	assert.Equal(t, "Feet", idx["c.png"].SubCategory())
	assert.Equal(t, "Legs", idx["icon_LegGuards_01.png"].SubCategory())
	assert.Equal(t, "Chest", idx["e.png"].SubCategory(), "other subcategories are not selected")
	assert.Equal(t, "Feet", idx["f.png"].SubCategory(), "other categories are not selected")
}

func TestRunEntries(t *testing.T) {
	c := parse(t, armorDoc)

	result, err := legsEngine(&countingSaver{}).Run(testContext(), c, feet())
	require.NoError(t, err)

	want := Entry{
		Key:     "b.png",
		Name:    "Chain Leggings",
		From:    "Feet",
		To:      "Legs",
		Keyword: "leggings",
		Outcome: "reassign(Legs)",
	}
	if diff := cmp.Diff(want, result.Reassigned[0]); diff != "" {
		t.Errorf("reassigned entry mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "Leg Guards", result.Reassigned[1].Name, "base name stands in for an empty display name")

	assert.Equal(t, "boots", result.Unchanged[0].Keyword)
	assert.Equal(t, "unchanged", result.Unchanged[0].Outcome)
	assert.Empty(t, result.Unchanged[0].To)
	assert.Empty(t, result.Unchanged[2].Keyword, "no rule matched")
}

func TestRunNothingReassigned(t *testing.T) {
	c := parse(t, `[{"IconFile":"a.png","EnglishName":"Boots","Category":"Armor","SubCategory":"Feet"}]`)
	saver := &countingSaver{}

	result, err := legsEngine(saver).Run(testContext(), c, feet())
	require.NoError(t, err)
	assert.False(t, result.HasChanges())
	assert.False(t, result.Persisted)
	assert.Zero(t, saver.calls)
}

func TestRunEmptySubset(t *testing.T) {
	c := parse(t, armorDoc)
	saver := &countingSaver{}

	result, err := legsEngine(saver).Run(testContext(), c, Filter{Category: "Armor", SubCategory: "Hands"})
	require.NoError(t, err)
	assert.Zero(t, result.Selected)
	assert.Empty(t, result.Reassigned)
	assert.Empty(t, result.Unchanged)
	assert.Zero(t, saver.calls)
}

func TestRunKeyPattern(t *testing.T) {
	c := parse(t, armorDoc)
	m, err := matcher.New(matcher.Auto, "icon_Leg*")
	require.NoError(t, err)

	f := feet()
	f.KeyPattern = m
	result, err := legsEngine(&countingSaver{}).Run(testContext(), c, f)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Selected)
	assert.Equal(t, []string{"icon_LegGuards_01.png"}, keys(result.Reassigned))
	assert.Equal(t, "Feet", c.Index()["b.png"].SubCategory())
}

func TestRunDryRun(t *testing.T) {
	c := parse(t, armorDoc)
	saver := &countingSaver{}

	result, err := legsEngine(saver, WithDryRun(true)).Run(testContext(), c, feet())
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Len(t, result.Reassigned, 2)
	assert.Zero(t, saver.calls)
	assert.Equal(t, "Feet", c.Index()["b.png"].SubCategory(), "dry run leaves records untouched")
}

func TestRunSaveFailure(t *testing.T) {
	c := parse(t, armorDoc)
	saver := &countingSaver{err: errors.NewIOError("rename", "items.json", os.ErrPermission)}

	result, err := legsEngine(saver, WithPath("items.json")).Run(testContext(), c, feet())
	require.Error(t, err)
	assert.True(t, errors.IsNotPersisted(err))

	var saveErr *errors.SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, 2, saveErr.Changes)
	assert.Equal(t, "items.json", saveErr.Path)

	require.NotNil(t, result)
	assert.False(t, result.Persisted)
}

func TestRunCanceled(t *testing.T) {
	c := parse(t, armorDoc)
	saver := &countingSaver{}

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	_, err := legsEngine(saver).Run(ctx, c, feet())
	assert.True(t, errors.IsCanceled(err))
	assert.Zero(t, saver.calls)
}

func TestRunWithStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(armorDoc), 0o644))

	store := records.NewStore(path, records.WithLogger(logging.NewNopLogger()))
	c, err := store.Load()
	require.NoError(t, err)

	result, err := legsEngine(store).Run(testContext(), c, feet())
	require.NoError(t, err)
	assert.Equal(t, path, result.Path)

	reloaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Legs", reloaded.Index()["b.png"].SubCategory())
	assert.Equal(t, "Feet", reloaded.Index()["a.png"].SubCategory())
	assert.Equal(t, 7, reloaded.Len())
}

func TestRunLogsOperationAndPattern(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	m, err := matcher.New(matcher.Auto, "icon_Leg*")
	require.NoError(t, err)
	f := feet()
	f.KeyPattern = m

	_, err = legsEngine(&countingSaver{}).Run(ctx, parse(t, armorDoc), f)
	require.NoError(t, err)

	tl.AssertContains(t, `"operation":"reclassify"`)
	tl.AssertContains(t, `"key_pattern":"icon_Leg*"`)
	tl.AssertContains(t, `"pattern_type":"glob"`)
}

func TestRunSaveToWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(armorDoc), 0o644))

	store := records.NewStore(path, records.WithLogger(logging.NewNopLogger()))
	c, err := store.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	result, err := legsEngine(store, WithSaveOptions(save.WithWriter(&buf))).Run(testContext(), c, feet())
	require.NoError(t, err)
	assert.False(t, result.Persisted)
	assert.Len(t, result.Reassigned, 2)
	assert.Contains(t, buf.String(), `"SubCategory": "Legs"`)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, armorDoc, string(onDisk))
}
