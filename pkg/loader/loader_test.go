package loader

import (
	"bytes"
	"crypto/rand"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	content := []byte("hello from disk\n")
	path := writeFile(t, dir, "hello.txt", content)

	file, err := New(0).Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, content, file.Body)
	assert.Equal(t, int64(len(content)), file.Size)
	assert.False(t, file.Gzipped)
}

func TestLoad_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := New(0).Load(filepath.Join(dir, "missing.html"), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_GzipAboveThreshold(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte("abcdefgh"), 250) // 2000 bytes
	path := writeFile(t, dir, "big.txt", content)

	file, err := New(0).Load(path, true)
	require.NoError(t, err)

	assert.True(t, file.Gzipped)
	assert.Equal(t, int64(2000), file.Size)

	// The body must decompress back to the original bytes.
	gz, err := gzip.NewReader(bytes.NewReader(file.Body))
	require.NoError(t, err)
	decompressed, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, content, decompressed)
}

func TestLoad_NoGzipAtOrBelowThreshold(t *testing.T) {
	dir := t.TempDir()

	// Exactly the threshold: must stay raw even when the client asks.
	content := make([]byte, MinGzipSize)
	_, err := rand.Read(content)
	require.NoError(t, err)
	path := writeFile(t, dir, "small.bin", content)

	file, err := New(0).Load(path, true)
	require.NoError(t, err)

	assert.False(t, file.Gzipped)
	assert.Equal(t, content, file.Body)
}

func TestLoad_NoGzipWhenNotWanted(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte("x"), 4096)
	path := writeFile(t, dir, "big.txt", content)

	file, err := New(0).Load(path, false)
	require.NoError(t, err)

	assert.False(t, file.Gzipped)
	assert.Equal(t, content, file.Body)
}

func TestLoad_CustomThreshold(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte("y"), 512)
	path := writeFile(t, dir, "mid.txt", content)

	// Default threshold leaves a 512-byte file raw.
	file, err := New(0).Load(path, true)
	require.NoError(t, err)
	assert.False(t, file.Gzipped)

	// A lower threshold compresses it.
	file, err = New(256).Load(path, true)
	require.NoError(t, err)
	assert.True(t, file.Gzipped)
}
