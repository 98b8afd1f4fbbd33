package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSave(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "documents", "reglamento interno.pdf", strings.NewReader("contenido"))
	require.NoError(t, err)

	// the URL joins cleanly even with a trailing slash on the base
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/documents/"), url)
	assert.False(t, strings.Contains(url, "//documents"))
	// spaces in the original name are not carried into the object name
	assert.True(t, strings.HasSuffix(url, "-reglamento_interno.pdf"), url)

	rel := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))
}

func TestDiskStoreSaveStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "http://files.local")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "users", "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)

	// only the base name survives, uploads cannot escape the folder
	assert.Contains(t, url, "/users/")
	assert.NotContains(t, url, "..")

	entries, err := os.ReadDir(filepath.Join(dir, "users"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "-passwd"))
}

func TestObjectNamesDoNotCollide(t *testing.T) {
	a := objectName("payments", "recibo.jpg")
	b := objectName("payments", "recibo.jpg")
	assert.NotEqual(t, a, b)
}
