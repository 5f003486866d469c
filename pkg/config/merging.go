package config

import (
	"maps"
	"slices"

	"github.com/samber/lo"
)

func (configA *RootConfig) MergeWithAsCopy(configB *RootConfig) *RootConfig {
	merged := &RootConfig{}
	merged.MergeWith(configA)
	merged.MergeWith(configB)
	return merged
}

func (configA *RootConfig) MergeWith(configB *RootConfig) {
	if configB == nil {
		return
	}
	// Extends
	configA.Extends = lo.Union(configA.Extends, configB.Extends)
	// MinimumFamily
	if configB.MinimumFamily != nil {
		configA.MinimumFamily = configB.MinimumFamily
	}
	// OutputDir
	if configB.OutputDir != "" {
		configA.OutputDir = configB.OutputDir
	}
	// OutputFormats
	configA.OutputFormats = lo.Union(configA.OutputFormats, configB.OutputFormats)
	// IncludeHeader
	if configB.IncludeHeader != nil {
		configA.IncludeHeader = configB.IncludeHeader
	}
	// CacheDir
	if configB.CacheDir != "" {
		configA.CacheDir = configB.CacheDir
	}
	// CacheTtl
	if configB.CacheTtl != "" {
		configA.CacheTtl = configB.CacheTtl
	}
	// VersioningPresets
	if configA.VersioningPresets == nil {
		configA.VersioningPresets = map[string]string{}
	}
	maps.Copy(configA.VersioningPresets, configB.VersioningPresets)
	// Sources
	if configA.Sources == nil {
		configA.Sources = []*SourceConfig{}
	}
	for _, sourceB := range configB.Sources {
		// Search for an existing source with the same id
		sourceAIndex := slices.IndexFunc(configA.Sources, func(s *SourceConfig) bool { return s.Id != "" && s.Id == sourceB.Id })
		if sourceAIndex >= 0 {
			// Found one so merge it
			configA.Sources[sourceAIndex].MergeWith(sourceB)
		} else {
			// Not found, so add it
			newSource := &SourceConfig{}
			newSource.MergeWith(sourceB)
			configA.Sources = append(configA.Sources, newSource)
		}
	}
	// Host Rules
	configA.HostRules = append(configA.HostRules, configB.HostRules...)
	// Hooks
	if configB.Hooks != nil {
		if configA.Hooks == nil {
			configA.Hooks = &HooksConfig{}
		}
		configA.Hooks.AfterWrite = append(configA.Hooks.AfterWrite, configB.Hooks.AfterWrite...)
	}
	// Publish
	if configB.Publish != nil {
		if configA.Publish == nil {
			configA.Publish = &PublishConfig{}
		}
		configA.Publish.MergeWith(configB.Publish)
	}
}

func (sourceA *SourceConfig) MergeWith(sourceB *SourceConfig) {
	if sourceB == nil {
		return
	}
	// Id
	if sourceB.Id != "" {
		sourceA.Id = sourceB.Id
	}
	// Type
	if sourceB.Type != "" {
		sourceA.Type = sourceB.Type
	}
	// Disabled
	if sourceB.Disabled != nil {
		sourceA.Disabled = sourceB.Disabled
	}
	// Platform
	if sourceB.Platform != "" {
		sourceA.Platform = sourceB.Platform
	}
	// FileNamePattern
	if sourceB.FileNamePattern != "" {
		sourceA.FileNamePattern = sourceB.FileNamePattern
	}
	// Versioning
	if sourceB.Versioning != "" {
		sourceA.Versioning = sourceB.Versioning
	}
	// ExtractVersion
	if sourceB.ExtractVersion != "" {
		sourceA.ExtractVersion = sourceB.ExtractVersion
	}
	// IgnoreNonMatching
	if sourceB.IgnoreNonMatching != nil {
		sourceA.IgnoreNonMatching = sourceB.IgnoreNonMatching
	}
	// File
	if sourceB.File != nil {
		if sourceA.File == nil {
			sourceA.File = &FileSourceConfig{}
		}
		sourceA.File.Patterns = lo.Union(sourceA.File.Patterns, sourceB.File.Patterns)
	}
	// Panos
	if sourceB.Panos != nil {
		if sourceA.Panos == nil {
			sourceA.Panos = &PanosSourceConfig{}
		}
		sourceA.Panos.MergeWith(sourceB.Panos)
	}
	// Artifactory
	if sourceB.Artifactory != nil {
		if sourceA.Artifactory == nil {
			sourceA.Artifactory = &ArtifactorySourceConfig{}
		}
		if sourceB.Artifactory.Url != "" {
			sourceA.Artifactory.Url = sourceB.Artifactory.Url
		}
		if sourceB.Artifactory.Pattern != "" {
			sourceA.Artifactory.Pattern = sourceB.Artifactory.Pattern
		}
	}
	// GitLab
	if sourceB.GitLab != nil {
		if sourceA.GitLab == nil {
			sourceA.GitLab = &GitLabSourceConfig{}
		}
		if sourceB.GitLab.Url != "" {
			sourceA.GitLab.Url = sourceB.GitLab.Url
		}
		if sourceB.GitLab.Project != "" {
			sourceA.GitLab.Project = sourceB.GitLab.Project
		}
		if sourceB.GitLab.PackageName != "" {
			sourceA.GitLab.PackageName = sourceB.GitLab.PackageName
		}
	}
}

func (panosA *PanosSourceConfig) MergeWith(panosB *PanosSourceConfig) {
	if panosB == nil {
		return
	}
	if panosB.Device != "" {
		panosA.Device = panosB.Device
	}
	if panosB.ApiKey != "" {
		panosA.ApiKey = panosB.ApiKey
	}
	if panosB.ScpProfile != "" {
		panosA.ScpProfile = panosB.ScpProfile
	}
	if panosB.ScpPath != "" {
		panosA.ScpPath = panosB.ScpPath
	}
	if panosB.Download != nil {
		panosA.Download = panosB.Download
	}
	if panosB.Insecure != nil {
		panosA.Insecure = panosB.Insecure
	}
}

func (publishA *PublishConfig) MergeWith(publishB *PublishConfig) {
	if publishB == nil {
		return
	}
	if publishB.Type != "" {
		publishA.Type = publishB.Type
	}
	if publishB.Token != "" {
		publishA.Token = publishB.Token
	}
	if publishB.Endpoint != "" {
		publishA.Endpoint = publishB.Endpoint
	}
	if publishB.Project != "" {
		publishA.Project = publishB.Project
	}
	if publishB.GitAuthor != "" {
		publishA.GitAuthor = publishB.GitAuthor
	}
	if publishB.BaseBranch != "" {
		publishA.BaseBranch = publishB.BaseBranch
	}
	if publishB.BranchName != "" {
		publishA.BranchName = publishB.BranchName
	}
	if publishB.Title != "" {
		publishA.Title = publishB.Title
	}
}
