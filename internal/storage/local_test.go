package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_StoreAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	ctx := context.Background()
	content := "fake png bytes"

	ref, err := store.Store(ctx, strings.NewReader(content), int64(len(content)), "image/png", "cover.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, URLPrefix), "reference should be a serveable URL path")
	assert.True(t, strings.HasSuffix(ref, ".png"), "reference should keep the original extension")

	data, err := os.ReadFile(filepath.Join(store.Dir(), strings.TrimPrefix(ref, URLPrefix)))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	require.NoError(t, store.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(store.Dir(), strings.TrimPrefix(ref, URLPrefix)))
	assert.True(t, os.IsNotExist(err), "file should be removed")
}

func TestLocalStorage_StoreUniqueNames(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	ref1, err := store.Store(ctx, strings.NewReader("a"), 1, "image/png", "same.png")
	require.NoError(t, err)
	ref2, err := store.Store(ctx, strings.NewReader("b"), 1, "image/png", "same.png")
	require.NoError(t, err)

	assert.NotEqual(t, ref1, ref2)
}

func TestLocalStorage_DeleteRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	assert.Error(t, store.Delete(ctx, "/uploads/../secret"))
	assert.Error(t, store.Delete(ctx, ""))
}
