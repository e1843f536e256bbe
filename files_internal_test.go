package cartridge

import (
	"archive/zip"
	"bytes"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vanishedEntry файл, который был при обходе, но исчез до чтения
type vanishedEntry struct{}

func (vanishedEntry) Name() string               { return "gone.xml" }
func (vanishedEntry) IsDir() bool                { return false }
func (vanishedEntry) Type() fs.FileMode          { return 0 }
func (vanishedEntry) Info() (fs.FileInfo, error) { return vanishedInfo{}, nil }

type vanishedInfo struct{}

func (vanishedInfo) Name() string       { return "gone.xml" }
func (vanishedInfo) Size() int64        { return 10 }
func (vanishedInfo) Mode() fs.FileMode  { return 0644 }
func (vanishedInfo) ModTime() time.Time { return time.Time{} }
func (vanishedInfo) IsDir() bool        { return false }
func (vanishedInfo) Sys() interface{}   { return nil }

func TestAddEntry_VanishedFileIsWarning(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	var warnings []ArchiveWarning
	path := filepath.Join(t.TempDir(), "gone.xml")
	err := addEntry(archive, path, "gone.xml", vanishedEntry{}, func(w ArchiveWarning) {
		warnings = append(warnings, w)
	})
	require.NoError(t, err)
	require.NoError(t, archive.Close())

	require.Len(t, warnings, 1)
	assert.Equal(t, path, warnings[0].Path)
	assert.ErrorIs(t, warnings[0], fs.ErrNotExist)
}
