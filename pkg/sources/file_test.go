package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), os.ModePerm))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseReleasesJsonWithComments(t *testing.T) {
	assert := assert.New(t)

	releases, err := parseReleases([]byte(`[
		// Exported from the support portal
		{"platform": "vm", "versionNumber": "10.1.0", "fileName": "PanOS_vm-10.1.0", "shA256Checksum": "aa"},
		{"platform": "vm", "versionNumber": "10.1.3-h1", "fileName": "PanOS_vm-10.1.3-h1", "sha256Checksum": "bb"}
	]`), ".json")
	require.NoError(t, err)
	require.Len(t, releases, 2)
	assert.Equal("aa", releases[0].Sha256Checksum)
	assert.Equal("10.1.3-h1", releases[1].VersionNumber)
	assert.Equal("bb", releases[1].Sha256Checksum)
}

func TestParseReleasesYaml(t *testing.T) {
	assert := assert.New(t)

	releases, err := parseReleases([]byte(`
- platform: "3000"
  versionNumber: 9.1.0
  fileName: PanOS_3000-9.1.0
  sha256Checksum: cc
`), ".yml")
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Equal("3000", releases[0].Platform)
	assert.Equal("9.1.0", releases[0].VersionNumber)
	assert.Equal("PanOS_3000-9.1.0", releases[0].FileName)
}

func TestParseReleasesInvalid(t *testing.T) {
	_, err := parseReleases([]byte(`{"versionNumber": "10.1.0"}`), ".json")
	assert.Error(t, err)
}

func TestFileSourceGlob(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "exports", "vm.json"), `[{"platform": "vm", "versionNumber": "10.1.0", "fileName": "PanOS_vm-10.1.0"}]`)
	writeTestFile(t, filepath.Join(dir, "exports", "nested", "3000.yaml"), "- {platform: \"3000\", versionNumber: 9.1.0, fileName: PanOS_3000-9.1.0}\n")
	writeTestFile(t, filepath.Join(dir, "exports", "ignored.txt"), "ignored")

	source := NewFileSource(&common.SourceSettings{
		FileSourceSettings: &common.FileSourceSettings{
			Patterns: []string{filepath.Join(dir, "exports", "**", "*.{json,yaml}")},
		},
	})
	releases, err := source.FetchReleases(context.Background())
	require.NoError(t, err)
	assert.Equal([]string{"9.1.0", "10.1.0"}, releaseVersions(releases))
}

func TestFileSourceDirectPath(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "input.json")
	writeTestFile(t, path, `[{"versionNumber": "10.1.0", "fileName": "PanOS_vm-10.1.0"}]`)

	source := NewFileSource(&common.SourceSettings{
		Platform:           "vm",
		FileSourceSettings: &common.FileSourceSettings{Patterns: []string{path}},
	})
	releases, err := source.FetchReleases(context.Background())
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Equal("vm", releases[0].Platform)
}

func TestFileSourceMissingFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	for _, pattern := range []string{filepath.Join(dir, "missing.json"), filepath.Join(dir, "*.json")} {
		source := NewFileSource(&common.SourceSettings{
			FileSourceSettings: &common.FileSourceSettings{Patterns: []string{pattern}},
		})
		_, err := source.FetchReleases(context.Background())
		assert.Error(err, pattern)
	}
}
