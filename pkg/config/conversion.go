package config

import (
	"log/slog"
	"os"

	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/roemer/fwcatalog/pkg/presets"
	"github.com/roemer/fwcatalog/pkg/writers"
	"github.com/samber/lo"
)

// Converts the source config into the settings used by the sources. Versioning presets are resolved.
func (cfg *RootConfig) ToCommonSourceSettings(sourceConfig *SourceConfig, logger *slog.Logger, releaseCache common.ICache) (*common.SourceSettings, error) {
	versioning, err := presets.ResolveVersioning(sourceConfig.Versioning, cfg.VersioningPresets)
	if err != nil {
		return nil, err
	}
	settings := &common.SourceSettings{
		Logger:            logger,
		Cache:             releaseCache,
		HostRules:         cfg.HostRules,
		Id:                sourceConfig.Id,
		Platform:          sourceConfig.Platform,
		FileNamePattern:   sourceConfig.FileNamePattern,
		Versioning:        versioning,
		ExtractVersion:    sourceConfig.ExtractVersion,
		IgnoreNonMatching: sourceConfig.IgnoreNonMatching,
	}
	if sourceConfig.File != nil {
		settings.FileSourceSettings = &common.FileSourceSettings{
			Patterns: sourceConfig.File.Patterns,
		}
	}
	if sourceConfig.Panos != nil {
		settings.PanosSourceSettings = &common.PanosSourceSettings{
			Device:     os.ExpandEnv(sourceConfig.Panos.Device),
			ApiKey:     sourceConfig.Panos.ApiKey,
			ScpProfile: os.ExpandEnv(sourceConfig.Panos.ScpProfile),
			ScpPath:    os.ExpandEnv(sourceConfig.Panos.ScpPath),
			Download:   sourceConfig.Panos.Download,
			Insecure:   sourceConfig.Panos.Insecure,
		}
	}
	if sourceConfig.Artifactory != nil {
		settings.ArtifactorySourceSettings = &common.ArtifactorySourceSettings{
			Url:     sourceConfig.Artifactory.Url,
			Pattern: sourceConfig.Artifactory.Pattern,
		}
	}
	if sourceConfig.GitLab != nil {
		settings.GitLabPackagesSourceSettings = &common.GitLabPackagesSourceSettings{
			Url:         sourceConfig.GitLab.Url,
			Project:     sourceConfig.GitLab.Project,
			PackageName: sourceConfig.GitLab.PackageName,
		}
	}
	return settings, nil
}

func (cfg *RootConfig) ToWriterSettings(logger *slog.Logger) *writers.WriterSettings {
	return &writers.WriterSettings{
		Logger:        logger,
		IncludeHeader: cfg.IncludeHeader != nil && *cfg.IncludeHeader,
	}
}

// Converts the publish config into the settings used by the publishers.
func (cfg *RootConfig) ToPublisherSettings(logger *slog.Logger) *common.PublisherSettings {
	publishConfig := cfg.Publish
	if publishConfig == nil {
		publishConfig = &PublishConfig{}
	}
	return &common.PublisherSettings{
		Logger:     logger,
		Publisher:  publishConfig.Type,
		Token:      publishConfig.Token,
		Endpoint:   publishConfig.Endpoint,
		Project:    publishConfig.Project,
		GitAuthor:  publishConfig.GitAuthor,
		BaseBranch: cfg.GetPublishBaseBranch(),
	}
}

// Creates an empty change with the configured branch and title.
func (cfg *RootConfig) NewCatalogChange() *common.CatalogChange {
	change := &common.CatalogChange{
		BranchName: DefaultPublishBranchName,
		Title:      DefaultPublishTitle,
		Files:      []string{},
		Catalogs:   []*common.Catalog{},
	}
	if cfg.Publish != nil {
		change.BranchName = lo.CoalesceOrEmpty(cfg.Publish.BranchName, change.BranchName)
		change.Title = lo.CoalesceOrEmpty(cfg.Publish.Title, change.Title)
	}
	return change
}
