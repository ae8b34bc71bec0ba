package photos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogPhotos(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"Elvis.jpg", "marilyn monroe.PNG", "bob.webp", "notes.txt", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755))

	photos := NewCatalog(dir).Photos()
	require.Len(t, photos, 3)

	byAnswer := make(map[string]string, len(photos))
	for _, p := range photos {
		byAnswer[p.Answer] = p.Src
	}

	assert.Equal(t, "/photos/Elvis.jpg", byAnswer["elvis"])
	assert.Equal(t, "/photos/marilyn monroe.PNG", byAnswer["marilyn monroe"])
	assert.Equal(t, "/photos/bob.webp", byAnswer["bob"])
}

func TestCatalogPhotosRescansDirectory(t *testing.T) {
	dir := t.TempDir()
	catalog := NewCatalog(dir)

	assert.Empty(t, catalog.Photos())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.jpeg"), []byte("x"), 0o644))
	assert.Len(t, catalog.Photos(), 1)
}

func TestCatalogCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "photos")
	catalog := NewCatalog(dir)

	assert.Empty(t, catalog.Photos())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
