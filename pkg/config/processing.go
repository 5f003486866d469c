package config

import (
	"fmt"
	"time"

	"github.com/roemer/fwcatalog/pkg/cache"
	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/samber/lo"
)

const (
	DefaultPublishBaseBranch = "main"
	DefaultPublishBranchName = "fwcatalog/catalogs"
	DefaultPublishTitle      = "Update firmware catalogs"
)

// Gets the minimum family or the default if none is configured.
func (config *RootConfig) GetMinimumFamily() float64 {
	if config.MinimumFamily == nil {
		return common.DefaultMinimumFamily
	}
	return *config.MinimumFamily
}

// Gets the output formats or csv if none are configured.
func (config *RootConfig) GetOutputFormats() []common.OutputFormat {
	if len(config.OutputFormats) == 0 {
		return []common.OutputFormat{common.OUTPUT_FORMAT_CSV}
	}
	return config.OutputFormats
}

// Parses the cache ttl or returns the default if none is configured.
func (config *RootConfig) GetCacheTtl() (time.Duration, error) {
	if config.CacheTtl == "" {
		return cache.DefaultTtl, nil
	}
	ttl, err := time.ParseDuration(config.CacheTtl)
	if err != nil {
		return 0, fmt.Errorf("invalid cacheTtl '%s': %w", config.CacheTtl, err)
	}
	return ttl, nil
}

// Gets the commands to run after the catalogs are written.
func (config *RootConfig) GetAfterWriteHooks() []string {
	if config.Hooks == nil {
		return nil
	}
	return config.Hooks.AfterWrite
}

// Checks if the written catalogs should be published.
func (config *RootConfig) IsPublishEnabled() bool {
	return config.Publish != nil && config.Publish.Type != ""
}

// Gets the base branch for publishing or main if none is configured.
func (config *RootConfig) GetPublishBaseBranch() string {
	if config.Publish == nil || config.Publish.BaseBranch == "" {
		return DefaultPublishBaseBranch
	}
	return config.Publish.BaseBranch
}

// Gets all sources which are not disabled.
func (config *RootConfig) GetEnabledSources() []*SourceConfig {
	return lo.Filter(config.Sources, func(source *SourceConfig, _ int) bool {
		return source.Disabled == nil || !*source.Disabled
	})
}

func (config *RootConfig) GetSourceConfigById(sourceId string) *SourceConfig {
	sourceConfig, _ := lo.Find(config.Sources, func(sourceConfig *SourceConfig) bool { return sourceConfig.Id == sourceId })
	return sourceConfig
}

// Checks the config for values that would fail later on.
func (config *RootConfig) Validate() error {
	if config.MinimumFamily != nil && *config.MinimumFamily < 0 {
		return fmt.Errorf("minimumFamily must not be negative")
	}
	for _, format := range config.OutputFormats {
		if format != common.OUTPUT_FORMAT_CSV && format != common.OUTPUT_FORMAT_XLSX {
			return fmt.Errorf("unknown output format '%s'", format)
		}
	}
	if _, err := config.GetCacheTtl(); err != nil {
		return err
	}
	if config.IsPublishEnabled() {
		switch config.Publish.Type {
		case common.PUBLISHER_TYPE_GIT, common.PUBLISHER_TYPE_NOOP:
		case common.PUBLISHER_TYPE_GITEA, common.PUBLISHER_TYPE_GITHUB, common.PUBLISHER_TYPE_GITLAB:
			if config.Publish.Project == "" {
				return fmt.Errorf("publisher '%s' needs a project", config.Publish.Type)
			}
		default:
			return fmt.Errorf("unknown publisher '%s'", config.Publish.Type)
		}
	}
	seenIds := map[string]bool{}
	for index, source := range config.Sources {
		if source.Type == "" {
			return fmt.Errorf("source #%d has no type", index+1)
		}
		if source.Id != "" {
			if seenIds[source.Id] {
				return fmt.Errorf("duplicate source id '%s'", source.Id)
			}
			seenIds[source.Id] = true
		}
		if source.Type == common.SOURCE_TYPE_ARTIFACTORY && source.ExtractVersion == "" {
			return fmt.Errorf("source '%s' of type %s needs an extractVersion regexp to get the version from the file name", sourceIdOrIndex(source.Id, index), source.Type)
		}
	}
	return nil
}

func sourceIdOrIndex(id string, index int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("#%d", index+1)
}
