package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImageName(t *testing.T) {
	for _, name := range []string{"a.jpeg", "a.jpg", "a.png", "a.gif", "a.webp", "A.PNG", "dir/photo.JPG"} {
		assert.NoError(t, ValidateImageName(name), name)
	}
	for _, name := range []string{"a.svg", "a.pdf", "a.exe", "a", ""} {
		assert.ErrorIs(t, ValidateImageName(name), ErrUnsupportedType, name)
	}
}

func TestDiskStoreSaveAndRemove(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "shirt.JPG", "image/jpeg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "/uploads/image-"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"), "extension is lowercased: %s", ref)

	name := strings.TrimPrefix(ref, "/uploads/")
	data, err := os.ReadFile(filepath.Join(store.dir, name))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	require.NoError(t, store.Remove(context.Background(), ref))
	_, err = os.Stat(filepath.Join(store.dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStoreSaveRejectsOversizedBody(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	body := bytes.NewReader(make([]byte, MaxImageSize+1))
	_, err = store.Save(context.Background(), "huge.png", "image/png", body)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	// The partial file is cleaned up.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiskStoreSaveAcceptsBodyAtCap(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	body := bytes.NewReader(make([]byte, MaxImageSize))
	ref, err := store.Save(context.Background(), "edge.png", "image/png", body)
	require.NoError(t, err)
	assert.NotEmpty(t, ref)
}

func TestDiskStoreSaveRejectsUnsupportedType(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "shirt.svg", "image/svg+xml", strings.NewReader("<svg/>"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDiskStoreGeneratesUniqueNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(context.Background(), "shirt.png", "image/png", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "shirt.png", "image/png", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDiskStoreRemoveTolerates(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	// Already gone.
	assert.NoError(t, store.Remove(context.Background(), "/uploads/image-missing.png"))
	// External URL from seeded data.
	assert.NoError(t, store.Remove(context.Background(), "https://cdn.example.com/shirt.png"))
}
