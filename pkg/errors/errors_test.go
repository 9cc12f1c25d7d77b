package errors_test

import (
	"errors"
	"io/fs"
	"testing"

	pkgerrors "github.com/gvdb/itemctl/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "items file", ID: "database/items.json"}
		assert.Equal(t, "items file database/items.json not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("keeps the os error reachable", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "csv file", ID: "x.csv", Err: fs.ErrNotExist}
		assert.True(t, pkgerrors.IsNotFound(err))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := errors.Join(errors.New("failed"), pkgerrors.NewNotFoundError("csv file", "x.csv"))
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("rules[0].tier", "sideways", "unknown tier")
		assert.Equal(t, "validation failed for field rules[0].tier: unknown tier", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty ruleset"}
		assert.Equal(t, "validation failed: empty ruleset", err.Error())
	})
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.ParseError
		want string
	}{
		{
			name: "file and line",
			err:  &pkgerrors.ParseError{Format: "csv", File: "fix.csv", Line: 3, Message: "bare quote"},
			want: "parse error in csv at fix.csv:3: bare quote",
		},
		{
			name: "file only",
			err:  &pkgerrors.ParseError{Format: "json", File: "items.json", Message: "not an array"},
			want: "parse error in json file items.json: not an array",
		},
		{
			name: "no file",
			err:  &pkgerrors.ParseError{Format: "yaml", Message: "bad indent"},
			want: "yaml parse error: bad indent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, pkgerrors.IsParseError(tt.err))
		})
	}
}

func TestSaveError(t *testing.T) {
	cause := pkgerrors.NewIOError("rename", "items.json", fs.ErrPermission)
	err := pkgerrors.NewSaveError("items.json", 3, cause)

	assert.Contains(t, err.Error(), "3 change(s) computed but not persisted")
	assert.True(t, pkgerrors.IsNotPersisted(err))
	assert.True(t, errors.Is(err, fs.ErrPermission))

	var ioErr *pkgerrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "rename", ioErr.Operation)
}

func TestDuplicateKeyError(t *testing.T) {
	err := &pkgerrors.DuplicateKeyError{Field: "IconFile", Keys: []string{"a.png", "b.png"}}
	assert.Equal(t, "duplicate IconFile values: a.png, b.png", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestConfigError(t *testing.T) {
	base := errors.New("bad value")
	err := pkgerrors.NewConfigError("fields", "key field is empty", base)
	assert.Equal(t, "configuration error in fields: key field is empty", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("json", "x", nil))
	assert.NoError(t, pkgerrors.WrapValidation("x", nil))

	base := errors.New("boom")
	assert.ErrorIs(t, pkgerrors.WrapIO("read", "x", base), base)
	assert.ErrorIs(t, pkgerrors.WrapParse("json", "x", base), base)
	assert.True(t, pkgerrors.IsValidationError(pkgerrors.WrapValidation("x", base)))
}
