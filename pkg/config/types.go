package config

import (
	"github.com/roemer/fwcatalog/pkg/common"
)

// This type represents the fwcatalog config object.
type RootConfig struct {
	// A list of presets to also load before loading this config. All configs are merged together.
	Extends []string `json:"extends" yaml:"extends"`
	// The oldest family (major.minor) that is still written to the catalogs. Defaults to 7.1.
	MinimumFamily *float64 `json:"minimumFamily" yaml:"minimumFamily"`
	// The directory where the catalogs are written to.
	OutputDir string `json:"outputDir" yaml:"outputDir"`
	// The formats to write the catalogs in. Defaults to csv.
	OutputFormats []common.OutputFormat `json:"outputFormats" yaml:"outputFormats"`
	// Flag to write the column names as first row of csv files.
	IncludeHeader *bool `json:"includeHeader" yaml:"includeHeader"`
	// The directory for cached releases. Caching is disabled if empty.
	CacheDir string `json:"cacheDir" yaml:"cacheDir"`
	// The time cached releases are valid (eg. 10m).
	CacheTtl string `json:"cacheTtl" yaml:"cacheTtl"`
	// A map of presets for versionings that can be used and referenced.
	VersioningPresets map[string]string `json:"versioningPresets" yaml:"versioningPresets"`
	// A list of sources which deliver the releases.
	Sources []*SourceConfig `json:"sources" yaml:"sources"`
	// A list of rules that can apply to hosts.
	HostRules []*common.HostRule `json:"hostRules" yaml:"hostRules"`
	// Commands that are run at certain points.
	Hooks *HooksConfig `json:"hooks" yaml:"hooks"`
	// Settings to commit the written catalogs and open a PR/MR.
	Publish *PublishConfig `json:"publish" yaml:"publish"`
}

// This type represents a source with its settings.
type SourceConfig struct {
	Id   string            `json:"id" yaml:"id"`
	Type common.SourceType `json:"type" yaml:"type"`
	// A flag that allows disabling individual sources.
	Disabled *bool `json:"disabled" yaml:"disabled"`
	// The platform assigned to releases which do not carry one.
	Platform string `json:"platform" yaml:"platform"`
	// A regexp the file name of a release must match.
	FileNamePattern string `json:"fileNamePattern" yaml:"fileNamePattern"`
	// Defines the regexp to use to check the versions. See gover for more details.
	Versioning string `json:"versioning" yaml:"versioning"`
	// An optional regexp that is used to extract the version from the file name.
	ExtractVersion string `json:"extractVersion" yaml:"extractVersion"`
	// A flag to indicate if releases that do not match the versioning should be ignored or give an error.
	IgnoreNonMatching *bool `json:"ignoreNonMatching" yaml:"ignoreNonMatching"`
	// Specific settings for the file source
	File *FileSourceConfig `json:"file" yaml:"file"`
	// Specific settings for the panos source
	Panos *PanosSourceConfig `json:"panos" yaml:"panos"`
	// Specific settings for the artifactory source
	Artifactory *ArtifactorySourceConfig `json:"artifactory" yaml:"artifactory"`
	// Specific settings for the gitlab-packages source
	GitLab *GitLabSourceConfig `json:"gitlab" yaml:"gitlab"`
}

type FileSourceConfig struct {
	Patterns []string `json:"patterns" yaml:"patterns"`
}

type PanosSourceConfig struct {
	Device     string `json:"device" yaml:"device"`
	ApiKey     string `json:"apiKey" yaml:"apiKey"`
	ScpProfile string `json:"scpProfile" yaml:"scpProfile"`
	ScpPath    string `json:"scpPath" yaml:"scpPath"`
	Download   *bool  `json:"download" yaml:"download"`
	Insecure   *bool  `json:"insecure" yaml:"insecure"`
}

type ArtifactorySourceConfig struct {
	Url     string `json:"url" yaml:"url"`
	Pattern string `json:"pattern" yaml:"pattern"`
}

type GitLabSourceConfig struct {
	Url         string `json:"url" yaml:"url"`
	Project     string `json:"project" yaml:"project"`
	PackageName string `json:"packageName" yaml:"packageName"`
}

type HooksConfig struct {
	// Commands that are run in the output directory after all catalogs are written.
	AfterWrite []string `json:"afterWrite" yaml:"afterWrite"`
}

type PublishConfig struct {
	// The type of the publisher. Publishing is disabled if empty.
	Type common.PublisherType `json:"type" yaml:"type"`
	// The token to interact with the platform. Is expanded from environment variables.
	Token string `json:"token" yaml:"token"`
	// The api endpoint of the platform. Defaults to the public instance.
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	// The project (eg. owner/repository) which holds the catalogs.
	Project string `json:"project" yaml:"project"`
	// The author used for commits (eg. "Name <mail>").
	GitAuthor string `json:"gitAuthor" yaml:"gitAuthor"`
	// The branch the PR/MR targets. Defaults to main.
	BaseBranch string `json:"baseBranch" yaml:"baseBranch"`
	// The branch the catalogs are committed to.
	BranchName string `json:"branchName" yaml:"branchName"`
	// The title of the commit and the PR/MR.
	Title string `json:"title" yaml:"title"`
}
