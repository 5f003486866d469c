package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/jfrog/jfrog-client-go/artifactory"
	"github.com/jfrog/jfrog-client-go/artifactory/auth"
	"github.com/jfrog/jfrog-client-go/artifactory/services"
	artifactory_config "github.com/jfrog/jfrog-client-go/config"
	"github.com/jfrog/jfrog-client-go/http/httpclient"
	"github.com/roemer/fwcatalog/pkg/common"
)

// A source which searches firmware images in an Artifactory repository.
// The version is extracted from the file name with the extractVersion regexp.
type ArtifactorySource struct {
	*sourceBase
}

func NewArtifactorySource(settings *common.SourceSettings) common.ISource {
	newSource := &ArtifactorySource{
		sourceBase: newSourceBase(common.SOURCE_TYPE_ARTIFACTORY, settings),
	}
	newSource.impl = newSource
	return newSource
}

func (s *ArtifactorySource) GetReleases(ctx context.Context) ([]*common.RawRelease, error) {
	artifactorySettings := s.settings.ArtifactorySourceSettings
	if artifactorySettings == nil || artifactorySettings.Url == "" {
		return nil, fmt.Errorf("no url for Artifactory for source '%s'", s.Id())
	}
	if artifactorySettings.Pattern == "" {
		return nil, fmt.Errorf("no search pattern for Artifactory for source '%s'", s.Id())
	}

	// Get a host rule if any was defined
	relevantHostRule := s.getHostRuleForHost(artifactorySettings.Url)
	token := ""
	user := ""
	password := ""
	if relevantHostRule != nil {
		token = relevantHostRule.TokenExpanded()
		user = relevantHostRule.UsernameExpanded()
		password = relevantHostRule.PasswordExpanded()
	}

	// Create the client
	artifactoryManager, err := s.createManager(ctx, artifactorySettings.Url, token, user, password)
	if err != nil {
		return nil, err
	}

	// Search with the pattern
	params := services.NewSearchParams()
	params.Pattern = artifactorySettings.Pattern
	items, err := s.getSearchResults(artifactoryManager, params)
	if err != nil {
		return nil, err
	}

	// Build the list of releases
	releases := []*common.RawRelease{}
	for _, item := range items {
		releases = append(releases, &common.RawRelease{
			FileName:       item.Name,
			Sha256Checksum: item.Sha256,
		})
	}
	return releases, nil
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

type artifactorySearchResultItem struct {
	Repo     string    `json:"repo"`
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Modified time.Time `json:"modified"`
	Type     string    `json:"type"`
	Size     int       `json:"size"`
	Sha256   string    `json:"sha256"`
}

func (s *ArtifactorySource) createManager(ctx context.Context, baseUrl string, token string, user string, password string) (artifactory.ArtifactoryServicesManager, error) {
	artifactoryDetails := auth.NewArtifactoryDetails()
	artifactoryDetails.SetUrl(baseUrl)

	// Set authentication info
	if len(user) > 0 {
		artifactoryDetails.SetUser(user)
	}
	if len(password) > 0 {
		artifactoryDetails.SetPassword(password)
	}
	if len(token) > 0 {
		if httpclient.IsApiKey(token) {
			artifactoryDetails.SetApiKey(token)
		} else {
			artifactoryDetails.SetAccessToken(token)
		}
	}

	configBuilder, err := artifactory_config.NewConfigBuilder().
		SetServiceDetails(artifactoryDetails).
		SetContext(ctx).
		Build()
	if err != nil {
		return nil, err
	}

	return artifactory.New(configBuilder)
}

func (s *ArtifactorySource) getSearchResults(artifactoryManager artifactory.ArtifactoryServicesManager, searchParams services.SearchParams) ([]*artifactorySearchResultItem, error) {
	searchResultItems := []*artifactorySearchResultItem{}

	reader, err := artifactoryManager.SearchFiles(searchParams)
	if err != nil {
		return searchResultItems, err
	}
	defer reader.Close()

	// Read the items from the reader
	for searchResultItem := new(artifactorySearchResultItem); reader.NextRecord(searchResultItem) == nil; searchResultItem = new(artifactorySearchResultItem) {
		if searchResultItem.Type == "folder" {
			continue
		}
		searchResultItems = append(searchResultItems, searchResultItem)
	}
	return searchResultItems, nil
}
