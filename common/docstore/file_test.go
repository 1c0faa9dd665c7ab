package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/droidbay/catalog/common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), logger.New("error", "text"))
	require.NoError(t, err)
	return store
}

func TestFileStore_LoadMissingCollectionIsEmpty(t *testing.T) {
	store := newTestFileStore(t)

	var docs []doc
	require.NoError(t, store.Load(context.Background(), "apps", &docs))
	assert.Empty(t, docs)
}

func TestFileStore_ReplaceAndLoadRoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	in := []doc{{ID: "1", Name: "first"}, {ID: "2", Name: "second"}}
	require.NoError(t, store.Replace(ctx, "apps", in))

	var out []doc
	require.NoError(t, store.Load(ctx, "apps", &out))
	assert.Equal(t, in, out)
}

func TestFileStore_ReplaceOverwritesWholeCollection(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, "apps", []doc{{ID: "1"}, {ID: "2"}}))
	require.NoError(t, store.Replace(ctx, "apps", []doc{{ID: "3"}}))

	var out []doc
	require.NoError(t, store.Load(ctx, "apps", &out))
	require.Len(t, out, 1)
	assert.Equal(t, "3", out[0].ID)
}

func TestFileStore_LoadZeroByteFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, logger.New("error", "text"))
	require.NoError(t, err)

	// An interrupted external write can leave a zero-byte file behind
	require.NoError(t, os.WriteFile(filepath.Join(dir, "apps.json"), nil, 0o644))

	var docs []doc
	require.NoError(t, store.Load(context.Background(), "apps", &docs))
	assert.Empty(t, docs)
}

func TestFileStore_ReplaceLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, logger.New("error", "text"))
	require.NoError(t, err)

	require.NoError(t, store.Replace(context.Background(), "apps", []doc{{ID: "1"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "apps.json", filepath.Base(entries[0].Name()))
}
