package ingest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/cardforge/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeZip(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for entryName, content := range entries {
		entry, err := w.Create(entryName)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestResolveSingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "notes.md", "# Heading\n\nBody text.")

	r := NewResolver(nil, Options{})
	units, warnings, err := r.Resolve(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, units, 1)
	assert.Equal(t, "notes.md", units[0].SourceName)
	assert.Equal(t, FormatMarkdown, units[0].Format)
	assert.Equal(t, "# Heading\n\nBody text.", string(units[0].Data))
}

func TestResolveUnsupportedExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "image.png", "not a document")

	r := NewResolver(nil, Options{})
	_, _, err := r.Resolve(path)

	var fpErr *domain.FileProcessingError
	require.ErrorAs(t, err, &fpErr)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestResolveFileAgainstAllowList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "notes.md", "content")

	r := NewResolver(nil, Options{AllowedFormats: []Format{FormatText}})
	_, _, err := r.Resolve(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestResolveOversizedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "big.txt", "0123456789")

	r := NewResolver(nil, Options{MaxFileSize: 5})
	_, _, err := r.Resolve(path)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestResolveFolderSkipsUnsupported(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "alpha")
	writeFile(t, dir, "b.md", "beta")
	writeFile(t, dir, "c.exe", "binary junk")

	r := NewResolver(nil, Options{})
	units, warnings, err := r.Resolve(dir)
	require.NoError(t, err)
	assert.Len(t, units, 2)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "c.exe")
}

func TestResolveFolderOneLevelByDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "top.txt", "top")
	writeFile(t, dir, "nested/deep.txt", "deep")

	r := NewResolver(nil, Options{})
	units, _, err := r.Resolve(dir)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "top.txt", units[0].SourceName)

	recursive := NewResolver(nil, Options{Recurse: true})
	units, _, err = recursive.Resolve(dir)
	require.NoError(t, err)
	assert.Len(t, units, 2)
}

func TestResolveEmptyFolder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "junk.bin", "junk")

	r := NewResolver(nil, Options{})
	_, warnings, err := r.Resolve(dir)
	assert.ErrorIs(t, err, ErrNoInputFiles)
	assert.NotEmpty(t, warnings)
}

func TestResolveArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeZip(t, dir, "bundle.zip", map[string]string{
		"doc.txt":    "plain contents",
		"extra.yaml": "ignored: true",
	})

	r := NewResolver(nil, Options{})
	units, warnings, err := r.Resolve(path)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "doc.txt", units[0].SourceName)
	assert.Equal(t, "plain contents", string(units[0].Data))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "extra.yaml")
}

func TestResolveArchiveRejectsTraversal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeZip(t, dir, "evil.zip", map[string]string{
		"../escape.txt": "should never land outside",
	})

	r := NewResolver(nil, Options{})
	_, _, err := r.Resolve(path)
	assert.ErrorIs(t, err, ErrUnsafeArchivePath)
}

func TestResolveArchiveSizeCap(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	big := make([]byte, 64)
	for i := range big {
		big[i] = 'x'
	}
	path := writeZip(t, dir, "big.zip", map[string]string{
		"a.txt": string(big),
		"b.txt": string(big),
	})

	r := NewResolver(nil, Options{MaxArchiveSize: 100})
	_, _, err := r.Resolve(path)
	assert.ErrorIs(t, err, ErrArchiveTooLarge)
}

func TestResolveMissingPath(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil, Options{})
	_, _, err := r.Resolve(filepath.Join(t.TempDir(), "does-not-exist.txt"))

	var fpErr *domain.FileProcessingError
	assert.ErrorAs(t, err, &fpErr)
}
