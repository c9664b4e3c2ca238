package notes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNote(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadFile_UTF8(t *testing.T) {
	path := writeNote(t, "visit.txt", []byte("TPO roof, bay 3.\r\nActive drip at curb.\r\n"))

	got, err := ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "TPO roof, bay 3.\nActive drip at curb.\n", got)
}

func TestReadFile_StripsBOM(t *testing.T) {
	path := writeNote(t, "visit.txt", []byte("\xef\xbb\xbfPonding near drain"))

	got, err := ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "Ponding near drain", got)
}

func TestReadFile_Windows1252Fallback(t *testing.T) {
	// 0xE9 is not a valid UTF-8 sequence; in Windows-1252 it decodes
	// the way the dictation export meant it.
	path := writeNote(t, "visit.txt", []byte("caf\xe9 wing, 20\xb0 slope"))

	got, err := ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "café wing, 20° slope", got)
}

func TestReadFile_ExplicitEncoding(t *testing.T) {
	// latin1 is an alias resolved by htmlindex.
	path := writeNote(t, "visit.txt", []byte("caf\xe9 wing"))

	got, err := ReadFile(path, "latin1")
	require.NoError(t, err)
	assert.Equal(t, "café wing", got)
}

func TestReadFile_UnsupportedEncoding(t *testing.T) {
	path := writeNote(t, "visit.txt", []byte("anything"))

	_, err := ReadFile(path, "ebcdic-nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported encoding")
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.txt"), "")
	require.Error(t, err)
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.md", "c.TEXT", "skip.pdf", "notes.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.txt"), 0o755))

	got, err := ListDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "c.TEXT"),
	}, got)
}

func TestListDir_Missing(t *testing.T) {
	_, err := ListDir(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
