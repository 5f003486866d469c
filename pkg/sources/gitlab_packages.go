package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/roemer/fwcatalog/pkg/common"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const defaultGitLabApiUrl = "https://gitlab.com/api/v4"

// A source which reads firmware images from the generic package registry of a GitLab project.
// Each package version is a firmware version, each package file an image.
type GitLabPackagesSource struct {
	*sourceBase
}

func NewGitLabPackagesSource(settings *common.SourceSettings) common.ISource {
	newSource := &GitLabPackagesSource{
		sourceBase: newSourceBase(common.SOURCE_TYPE_GITLAB_PACKAGES, settings),
	}
	newSource.impl = newSource
	return newSource
}

func (s *GitLabPackagesSource) GetReleases(ctx context.Context) ([]*common.RawRelease, error) {
	gitLabSettings := s.settings.GitLabPackagesSourceSettings
	if gitLabSettings == nil || gitLabSettings.Project == "" || gitLabSettings.PackageName == "" {
		return nil, fmt.Errorf("no project or package name for GitLab packages for source '%s'", s.Id())
	}

	client, err := s.createClient(gitLabSettings.Url)
	if err != nil {
		return nil, err
	}

	gitLabPackages, err := s.listPackages(ctx, client, gitLabSettings)
	if err != nil {
		return nil, err
	}

	releases := []*common.RawRelease{}
	for _, gitLabPackage := range gitLabPackages {
		packageFiles, err := s.listPackageFiles(ctx, client, gitLabSettings.Project, gitLabPackage)
		if err != nil {
			return nil, err
		}
		for _, packageFile := range packageFiles {
			releases = append(releases, &common.RawRelease{
				VersionNumber:  gitLabPackage.Version,
				FileName:       packageFile.FileName,
				Sha256Checksum: packageFile.FileSHA256,
			})
		}
	}
	s.logger.Debug(fmt.Sprintf("Found %d package file(s) in %d package version(s)", len(releases), len(gitLabPackages)))
	return releases, nil
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

// Gets all versions of the package, following the pages.
func (s *GitLabPackagesSource) listPackages(ctx context.Context, client *gitlab.Client, gitLabSettings *common.GitLabPackagesSourceSettings) ([]*gitlab.Package, error) {
	options := &gitlab.ListProjectPackagesOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100, Page: 1},
		PackageName: gitlab.Ptr(gitLabSettings.PackageName),
	}
	allPackages := []*gitlab.Package{}
	for {
		gitLabPackages, resp, err := client.Packages.ListProjectPackages(gitLabSettings.Project, options, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed listing the packages of '%s': %w", gitLabSettings.Project, err)
		}
		allPackages = append(allPackages, gitLabPackages...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		options.Page++
	}
	return allPackages, nil
}

// Gets all files of the package, following the pages.
func (s *GitLabPackagesSource) listPackageFiles(ctx context.Context, client *gitlab.Client, project string, gitLabPackage *gitlab.Package) ([]*gitlab.PackageFile, error) {
	options := &gitlab.ListPackageFilesOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100, Page: 1},
	}
	allFiles := []*gitlab.PackageFile{}
	for {
		packageFiles, resp, err := client.Packages.ListPackageFiles(project, gitLabPackage.ID, options, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed listing the files of package '%s' %s: %w", gitLabPackage.Name, gitLabPackage.Version, err)
		}
		allFiles = append(allFiles, packageFiles...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		options.Page++
	}
	return allFiles, nil
}

func (s *GitLabPackagesSource) createClient(apiUrl string) (*gitlab.Client, error) {
	if apiUrl == "" {
		apiUrl = defaultGitLabApiUrl
	}
	apiUrl = strings.TrimSuffix(apiUrl, "/")

	// Get a host rule if any was defined
	relevantHostRule := s.getHostRuleForHost(apiUrl)
	token := ""
	if relevantHostRule != nil {
		token = relevantHostRule.TokenExpanded()
	}

	// Create the client
	return gitlab.NewClient(token, gitlab.WithBaseURL(apiUrl))
}
