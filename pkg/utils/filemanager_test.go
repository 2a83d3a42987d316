package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestIsCSV(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.csv", true},
		{"A.CSV", true},
		{"dir/b.Csv", true},
		{"readme.txt", false},
		{"a.csv.bak", false},
		{"csv", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCSV(tt.path), tt.path)
	}
}

func TestIsXLSX(t *testing.T) {
	assert.True(t, IsXLSX("book.xlsx"))
	assert.True(t, IsXLSX("BOOK.XLSX"))
	assert.False(t, IsXLSX("book.xls"))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "a.json"), OutputPath("out", "a.csv"))
	assert.Equal(t, filepath.Join("out", "a.json"), OutputPath("out", filepath.Join("data", "2024", "a.csv")))
	assert.Equal(t, filepath.Join("out", "a.b.json"), OutputPath("out", "a.b.CSV"))
	assert.Equal(t, "a.json", OutputPath(".", "a.csv"))

	fm := NewFileManager("json", false)
	assert.Equal(t, filepath.Join("json", "x.json"), fm.OutputPath("x.xlsx"))
}

func TestDiscoverFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.csv"))
	touch(t, filepath.Join(root, "a.csv"))
	touch(t, filepath.Join(root, "readme.txt"))
	touch(t, filepath.Join(root, "sub", "c.csv"))
	touch(t, filepath.Join(root, "sub", "deeper", "d.csv"))

	top, err := DiscoverFiles(root, false)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.csv"),
		filepath.Join(root, "b.csv"),
		filepath.Join(root, "readme.txt"),
	}, top)

	all, err := NewFileManager("", true).Discover(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.csv"),
		filepath.Join(root, "b.csv"),
		filepath.Join(root, "readme.txt"),
		filepath.Join(root, "sub", "c.csv"),
		filepath.Join(root, "sub", "deeper", "d.csv"),
	}, all)
}

func TestDiscoverFiles_MissingRoot(t *testing.T) {
	_, err := DiscoverFiles(filepath.Join(t.TempDir(), "missing"), true)
	assert.Error(t, err)
}

func TestFileChecks(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.csv")
	touch(t, file)

	assert.True(t, FileExists(file))
	assert.True(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "nope")))

	assert.True(t, IsFile(file))
	assert.False(t, IsFile(dir))
	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(file))
}
