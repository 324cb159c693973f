package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_LoadMissingFile(t *testing.T) {
	doc := NewDocument[map[string]int](filepath.Join(t.TempDir(), "missing.json"))

	m, err := doc.Load()

	assert.NoError(t, err)
	assert.Empty(t, m)
}

func TestDocument_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := NewDocument[map[string]int](path).Load()

	assert.NoError(t, err)
	assert.Empty(t, m)
}

func TestDocument_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewDocument[map[string]int](path).Load()

	assert.Error(t, err)
}

func TestDocument_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	doc := NewDocument[map[string]int](path)

	err := doc.Update(func(m *map[string]int) error {
		*m = map[string]int{"a": 1}
		return nil
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, string(data))

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDocument_UpdateErrorKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1}`), 0o644))
	doc := NewDocument[map[string]int](path)

	err := doc.Update(func(m *map[string]int) error {
		(*m)["a"] = 100
		return errors.New("abort")
	})
	assert.Error(t, err)

	m, err := doc.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, m["a"])
}
