package config

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/roemer/gover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSearch(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	for _, fileToCreate := range []string{"fwcatalog.json", "fwcatalog.yaml", "fwcatalog.yml", "folder/fwcatalog.json", "folder/fwcatalog.yml"} {
		fullPath := filepath.Join(dir, fileToCreate)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), os.ModePerm))
		require.NoError(t, os.WriteFile(fullPath, []byte("{}"), 0o644))
		searchPath := filepath.Join(filepath.Dir(fullPath), "fwcatalog")
		foundPath, err := SearchConfigFileFromPath(searchPath)
		assert.NoError(err)
		assert.Equal(fullPath, foundPath)
		require.NoError(t, os.Remove(fullPath))
	}

	foundPath, err := SearchConfigFileFromPath(filepath.Join(dir, "missing"))
	assert.NoError(err)
	assert.Empty(foundPath)
}

func TestLoadWithPresets(t *testing.T) {
	assert := assert.New(t)

	configPath := filepath.Join(t.TempDir(), "fwcatalog.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
extends:
  - defaults
  - xlsx
minimumFamily: 9.0
sources:
  - type: file
    versioning: preset:panos
    file:
      patterns:
        - exports/*.json
`), 0o644))

	config, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(9.0, config.GetMinimumFamily())
	assert.Equal([]common.OutputFormat{common.OUTPUT_FORMAT_CSV, common.OUTPUT_FORMAT_XLSX}, config.GetOutputFormats())
	assert.True(*config.IncludeHeader)
	ttl, err := config.GetCacheTtl()
	assert.NoError(err)
	assert.Equal(10*time.Minute, ttl)
	require.Len(t, config.Sources, 1)
	assert.Contains(config.VersioningPresets, "panos")

	settings, err := config.ToCommonSourceSettings(config.Sources[0], nil, nil)
	require.NoError(t, err)
	assert.Equal(config.VersioningPresets["panos"], settings.Versioning)
	assert.Equal([]string{"exports/*.json"}, settings.FileSourceSettings.Patterns)
}

func TestLoadJsonWithRelativeExtends(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yml"), []byte("outputDir: catalogs\n"), 0o644))
	configPath := filepath.Join(dir, "fwcatalog.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"extends": ["local:base"], "includeHeader": false}`), 0o644))

	config, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal("catalogs", config.OutputDir)
	assert.False(*config.IncludeHeader)
	assert.Equal(common.DefaultMinimumFamily, config.GetMinimumFamily())
}

func TestLoadPanosPreset(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("PANOS_DEVICE", "fw1.example.com")
	t.Setenv("PANOS_SCP_PROFILE", "backup")
	config, err := Load("preset:panos")
	require.NoError(t, err)
	source := config.GetSourceConfigById("panos-device")
	require.NotNil(t, source)

	settings, err := config.ToCommonSourceSettings(source, nil, nil)
	require.NoError(t, err)
	assert.Equal("fw1.example.com", settings.PanosSourceSettings.Device)
	assert.Equal("backup", settings.PanosSourceSettings.ScpProfile)
	assert.Equal("^PanOS_", settings.FileNamePattern)
}

func TestPanosVersioningPreset(t *testing.T) {
	assert := assert.New(t)

	config, err := Load("preset:defaults")
	require.NoError(t, err)
	settings, err := config.ToCommonSourceSettings(&SourceConfig{Versioning: "preset:panos"}, nil, nil)
	require.NoError(t, err)
	versionRegex := regexp.MustCompile(settings.Versioning)

	for _, versionString := range []string{"10.1.0", "10.1.3-h1", "8.1.0.4", "11.0.2-h4"} {
		_, err := gover.ParseVersionFromRegex(versionString, versionRegex)
		assert.NoError(err, versionString)
	}
	for _, versionString := range []string{"10.1", "10.1.x", "latest"} {
		_, err := gover.ParseVersionFromRegex(versionString, versionRegex)
		assert.ErrorIs(err, gover.ErrNoMatch, versionString)
	}

	matches := versionRegex.FindStringSubmatch("8.1.0.4")
	assert.Equal("4", matches[versionRegex.SubexpIndex("s4")])
}

func TestLoadErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(err)

	_, err = Load("preset:missing")
	assert.Error(err)

	_, err = Load("other:thing")
	assert.ErrorContains(err, "unknown config type")

	configPath := filepath.Join(t.TempDir(), "fwcatalog.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("sources:\n  - id: a\n"), 0o644))
	_, err = Load(configPath)
	assert.ErrorContains(err, "has no type")
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	negative := -1.0
	assert.Error((&RootConfig{MinimumFamily: &negative}).Validate())
	assert.Error((&RootConfig{OutputFormats: []common.OutputFormat{"pdf"}}).Validate())
	assert.Error((&RootConfig{CacheTtl: "soon"}).Validate())
	assert.Error((&RootConfig{Sources: []*SourceConfig{
		{Id: "a", Type: common.SOURCE_TYPE_FILE},
		{Id: "a", Type: common.SOURCE_TYPE_FILE},
	}}).Validate())
	assert.ErrorContains((&RootConfig{Sources: []*SourceConfig{
		{Id: "images", Type: common.SOURCE_TYPE_ARTIFACTORY},
	}}).Validate(), "source 'images' of type artifactory needs an extractVersion regexp")
	assert.ErrorContains((&RootConfig{Sources: []*SourceConfig{
		{Type: common.SOURCE_TYPE_ARTIFACTORY},
	}}).Validate(), "source '#1' of type artifactory")
	assert.NoError((&RootConfig{Sources: []*SourceConfig{
		{Id: "images", Type: common.SOURCE_TYPE_ARTIFACTORY, ExtractVersion: `^PanOS_vm-(.+)$`},
	}}).Validate())
	assert.Error((&RootConfig{Publish: &PublishConfig{Type: "svn"}}).Validate())
	assert.Error((&RootConfig{Publish: &PublishConfig{Type: common.PUBLISHER_TYPE_GITHUB}}).Validate())
	assert.NoError((&RootConfig{Publish: &PublishConfig{Type: common.PUBLISHER_TYPE_GIT}}).Validate())
	assert.NoError((&RootConfig{}).Validate())
}

func TestPublishSettings(t *testing.T) {
	assert := assert.New(t)

	config := &RootConfig{}
	assert.False(config.IsPublishEnabled())
	change := config.NewCatalogChange()
	assert.Equal(DefaultPublishBranchName, change.BranchName)
	assert.Equal(DefaultPublishTitle, change.Title)

	config = &RootConfig{Publish: &PublishConfig{
		Type:       common.PUBLISHER_TYPE_GITLAB,
		Token:      "${GITLAB_TOKEN}",
		Project:    "group/catalogs",
		BranchName: "catalogs/update",
	}}
	assert.True(config.IsPublishEnabled())
	settings := config.ToPublisherSettings(nil)
	assert.Equal(common.PUBLISHER_TYPE_GITLAB, settings.Publisher)
	assert.Equal("group/catalogs", settings.Project)
	assert.Equal("main", settings.BaseBranch)
	change = config.NewCatalogChange()
	assert.Equal("catalogs/update", change.BranchName)
	assert.Equal(DefaultPublishTitle, change.Title)
}

func TestUnknownVersioningPreset(t *testing.T) {
	config := &RootConfig{}
	_, err := config.ToCommonSourceSettings(&SourceConfig{Versioning: "preset:unknown"}, nil, nil)
	assert.Error(t, err)
}
