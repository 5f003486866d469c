package common

import (
	"log/slog"
	"os"
)

// This struct contains settings relevant for sources.
type SourceSettings struct {
	// The logger to use for the source.
	Logger *slog.Logger
	// An optional cache for the fetched releases.
	Cache ICache
	// Host rules that might apply when using this source.
	HostRules []*HostRule
	// The id of the source.
	Id string
	// The platform assigned to releases which do not carry one.
	Platform string
	// A regexp a release file name must match to be kept. Empty keeps all releases.
	FileNamePattern string
	// Defines the regexp used to check the version strings. See https://github.com/Roemer/gover for more details.
	Versioning string
	// An optional regexp with one capture group that extracts the version from a file name.
	ExtractVersion string
	// A flag to indicate if releases that do not match the versioning should be ignored or give an error.
	IgnoreNonMatching *bool
	// Settings for the FileSource.
	FileSourceSettings *FileSourceSettings
	// Settings for the PanosSource.
	PanosSourceSettings *PanosSourceSettings
	// Settings for the ArtifactorySource.
	ArtifactorySourceSettings *ArtifactorySourceSettings
	// Settings for the GitLabPackagesSource.
	GitLabPackagesSourceSettings *GitLabPackagesSourceSettings
}

// Settings relevant for the file source.
type FileSourceSettings struct {
	// Glob patterns of the release list files to read.
	Patterns []string
}

// Settings relevant for the PAN-OS device source.
type PanosSourceSettings struct {
	// The hostname or address of the firewall or Panorama.
	Device string
	// The API key for the device. Is expanded from environment variables.
	ApiKey string
	// The name of the SCP profile configured on the device.
	ScpProfile string
	// The directory where the device exports the images to.
	ScpPath string
	// Flag to allow downloading and exporting missing images. Defaults to true.
	Download *bool
	// Flag to skip the verification of the device certificate.
	Insecure *bool
}

// Expands the api key with environment variables.
func (s *PanosSourceSettings) ApiKeyExpanded() string {
	return os.ExpandEnv(s.ApiKey)
}

// Settings relevant for the Artifactory source.
type ArtifactorySourceSettings struct {
	// The url of the Artifactory instance.
	Url string
	// The search pattern (eg. firmware-local/panos/*).
	Pattern string
}

// Settings relevant for the GitLab packages source.
type GitLabPackagesSourceSettings struct {
	// The api url of the GitLab instance. Defaults to https://gitlab.com/api/v4.
	Url string
	// The path or id of the project which holds the packages.
	Project string
	// The name of the package.
	PackageName string
}
