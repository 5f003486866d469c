package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("PA-3200", SanitizeFileName("PA-3200"))
	assert.Equal("PA-3200_series", SanitizeFileName("PA-3200/series"))
	assert.Equal("vm_series_10.1", SanitizeFileName("vm series: 10.1"))
	assert.Equal("_", SanitizeFileName(""))
	assert.Equal("_", SanitizeFileName(".."))
}

func TestFileSha256(t *testing.T) {
	assert := assert.New(t)
	filePath := filepath.Join(t.TempDir(), "image")
	require.NoError(t, os.WriteFile(filePath, []byte("abc"), os.ModePerm))

	checksum, err := FileSha256(filePath)
	assert.NoError(err)
	assert.Equal("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", checksum)

	_, err = FileSha256(filepath.Join(t.TempDir(), "missing"))
	assert.Error(err)
}

func TestFileExists(t *testing.T) {
	assert := assert.New(t)
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "file")
	require.NoError(t, os.WriteFile(filePath, []byte{}, os.ModePerm))

	exists, err := FileExists(filePath)
	assert.NoError(err)
	assert.True(exists)

	exists, err = FileExists(filepath.Join(tempDir, "missing"))
	assert.NoError(err)
	assert.False(exists)

	// Directories are not files
	exists, err = FileExists(tempDir)
	assert.NoError(err)
	assert.False(exists)
}

func TestSearchFiles(t *testing.T) {
	assert := assert.New(t)
	tempDir := t.TempDir()
	for _, file := range []string{"a.json", "sub/b.yaml", "sub/deep/c.json", "d.txt"} {
		filePath := filepath.Join(tempDir, filepath.FromSlash(file))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), os.ModePerm))
		require.NoError(t, os.WriteFile(filePath, []byte{}, os.ModePerm))
	}

	files, err := SearchFiles(tempDir, []string{"**/*.json", "*.json"})
	assert.NoError(err)
	assert.Equal([]string{
		filepath.Join(tempDir, "a.json"),
		filepath.Join(tempDir, "sub", "deep", "c.json"),
	}, files)

	files, err = SearchFiles(tempDir, []string{"sub/*.{json,yaml}"})
	assert.NoError(err)
	assert.Equal([]string{filepath.Join(tempDir, "sub", "b.yaml")}, files)

	_, err = SearchFiles(tempDir, []string{"[a-"})
	assert.Error(err)
}

func TestFilePathMatchesPattern(t *testing.T) {
	assert := assert.New(t)

	isMatch, err := FilePathMatchesPattern("releases/vm.json")
	assert.NoError(err)
	assert.True(isMatch)

	isMatch, err = FilePathMatchesPattern("releases/vm.json", "**/*.yaml", "releases/*.json")
	assert.NoError(err)
	assert.True(isMatch)

	isMatch, err = FilePathMatchesPattern("releases/vm.json", "*.json")
	assert.NoError(err)
	assert.False(isMatch)
}
