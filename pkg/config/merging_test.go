package config

import (
	"testing"

	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/stretchr/testify/assert"
)

func TestMergeVersioningPresets(t *testing.T) {
	assert := assert.New(t)

	configA := &RootConfig{
		VersioningPresets: map[string]string{
			"a_key":         "a_value",
			"overwrite_key": "overwrite_value_a",
		},
	}
	configB := &RootConfig{
		VersioningPresets: map[string]string{
			"b_key":         "b_value",
			"overwrite_key": "overwrite_value_b",
		},
	}
	merged := configA.MergeWithAsCopy(configB)

	assert.Len(merged.VersioningPresets, 3)
	assert.Equal("a_value", merged.VersioningPresets["a_key"])
	assert.Equal("b_value", merged.VersioningPresets["b_key"])
	assert.Equal("overwrite_value_b", merged.VersioningPresets["overwrite_key"])
}

func TestMergeExtends(t *testing.T) {
	assert := assert.New(t)

	configA := &RootConfig{
		Extends: []string{"extend_a", "extend_both"},
	}
	configB := &RootConfig{
		Extends: []string{"extend_b", "extend_both"},
	}
	merged := configA.MergeWithAsCopy(configB)

	assert.Equal([]string{"extend_a", "extend_both", "extend_b"}, merged.Extends)
}

func TestMergeScalars(t *testing.T) {
	assert := assert.New(t)

	minimumA := 7.1
	minimumB := 9.0
	configA := &RootConfig{
		MinimumFamily: &minimumA,
		OutputDir:     "a",
		CacheDir:      "cache_a",
		CacheTtl:      "10m",
		IncludeHeader: common.TruePtr,
		OutputFormats: []common.OutputFormat{common.OUTPUT_FORMAT_CSV},
	}
	configB := &RootConfig{
		MinimumFamily: &minimumB,
		OutputDir:     "b",
		OutputFormats: []common.OutputFormat{common.OUTPUT_FORMAT_XLSX, common.OUTPUT_FORMAT_CSV},
	}
	merged := configA.MergeWithAsCopy(configB)

	assert.Equal(9.0, merged.GetMinimumFamily())
	assert.Equal("b", merged.OutputDir)
	assert.Equal("cache_a", merged.CacheDir)
	assert.Equal("10m", merged.CacheTtl)
	assert.True(*merged.IncludeHeader)
	assert.Equal([]common.OutputFormat{common.OUTPUT_FORMAT_CSV, common.OUTPUT_FORMAT_XLSX}, merged.OutputFormats)
}

func TestMergeSources(t *testing.T) {
	assert := assert.New(t)

	configA := &RootConfig{
		Sources: []*SourceConfig{
			{
				Id:   "device",
				Type: common.SOURCE_TYPE_PANOS,
				Panos: &PanosSourceConfig{
					Device:     "fw1",
					ScpProfile: "backup",
				},
			},
			{
				Type: common.SOURCE_TYPE_FILE,
				File: &FileSourceConfig{Patterns: []string{"a.json"}},
			},
		},
	}
	configB := &RootConfig{
		Sources: []*SourceConfig{
			{
				Id:       "device",
				Disabled: common.TruePtr,
				Panos: &PanosSourceConfig{
					Device: "fw2",
				},
			},
			{
				Type: common.SOURCE_TYPE_FILE,
				File: &FileSourceConfig{Patterns: []string{"b.json"}},
			},
		},
	}
	merged := configA.MergeWithAsCopy(configB)

	// Sources without id are never merged
	assert.Len(merged.Sources, 3)
	device := merged.GetSourceConfigById("device")
	assert.NotNil(device)
	assert.Equal(common.SOURCE_TYPE_PANOS, device.Type)
	assert.True(*device.Disabled)
	assert.Equal("fw2", device.Panos.Device)
	assert.Equal("backup", device.Panos.ScpProfile)
	assert.Len(merged.GetEnabledSources(), 2)

	// The inputs are not modified
	assert.Equal("fw1", configA.Sources[0].Panos.Device)
}

func TestMergeHostRulesAndHooks(t *testing.T) {
	assert := assert.New(t)

	configA := &RootConfig{
		HostRules: []*common.HostRule{{MatchHost: "a"}},
		Hooks:     &HooksConfig{AfterWrite: []string{"git add ."}},
	}
	configB := &RootConfig{
		HostRules: []*common.HostRule{{MatchHost: "b"}},
		Hooks:     &HooksConfig{AfterWrite: []string{"git commit -m catalogs"}},
	}
	merged := configA.MergeWithAsCopy(configB)

	assert.Len(merged.HostRules, 2)
	assert.Equal([]string{"git add .", "git commit -m catalogs"}, merged.GetAfterWriteHooks())
}

func TestMergePublish(t *testing.T) {
	assert := assert.New(t)

	configA := &RootConfig{Publish: &PublishConfig{Type: common.PUBLISHER_TYPE_GIT, BaseBranch: "develop", Title: "Catalogs"}}
	configB := &RootConfig{Publish: &PublishConfig{Type: common.PUBLISHER_TYPE_GITHUB, Project: "owner/catalogs"}}

	merged := configA.MergeWithAsCopy(configB)
	assert.Equal(common.PUBLISHER_TYPE_GITHUB, merged.Publish.Type)
	assert.Equal("owner/catalogs", merged.Publish.Project)
	assert.Equal("develop", merged.Publish.BaseBranch)
	assert.Equal("Catalogs", merged.Publish.Title)

	// The configs that were merged are not changed
	assert.Equal(common.PUBLISHER_TYPE_GIT, configA.Publish.Type)
}
