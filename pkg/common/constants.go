package common

var TruePtr *bool = &[]bool{true}[0]
var FalsePtr *bool = &[]bool{false}[0]

type SourceType string

const (
	SOURCE_TYPE_ARTIFACTORY     SourceType = "artifactory"
	SOURCE_TYPE_FILE            SourceType = "file"
	SOURCE_TYPE_GITLAB_PACKAGES SourceType = "gitlab-packages"
	SOURCE_TYPE_PANOS           SourceType = "panos"
)

type OutputFormat string

const (
	OUTPUT_FORMAT_CSV  OutputFormat = "csv"
	OUTPUT_FORMAT_XLSX OutputFormat = "xlsx"
)

type ReleaseType string

const (
	RELEASE_TYPE_FEATURE     ReleaseType = "Feature"
	RELEASE_TYPE_MAINTENANCE ReleaseType = "Maintenance"
)

// The oldest release family that is still written to a catalog.
const DefaultMinimumFamily = 7.1

type PublisherType string

const (
	PUBLISHER_TYPE_GIT    PublisherType = "git"
	PUBLISHER_TYPE_GITEA  PublisherType = "gitea"
	PUBLISHER_TYPE_GITHUB PublisherType = "github"
	PUBLISHER_TYPE_GITLAB PublisherType = "gitlab"
	PUBLISHER_TYPE_NOOP   PublisherType = "noop"
)
