package publishers

import (
	"context"
	"fmt"

	"github.com/roemer/fwcatalog/pkg/common"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

type GitlabPublisher struct {
	*GitPublisher
}

func NewGitlabPublisher(settings *common.PublisherSettings) *GitlabPublisher {
	publisher := &GitlabPublisher{
		GitPublisher: NewGitPublisher(settings),
	}
	return publisher
}

func (p *GitlabPublisher) Type() common.PublisherType {
	return common.PUBLISHER_TYPE_GITLAB
}

func (p *GitlabPublisher) NotifyChanges(ctx context.Context, change *common.CatalogChange) error {
	if p.settings.Project == "" {
		return fmt.Errorf("no project defined")
	}

	// Create the client
	client, err := p.createClient()
	if err != nil {
		return err
	}

	content := change.Description()

	// Search for an existing MR
	mergeRequests, _, err := client.MergeRequests.ListProjectMergeRequests(p.settings.Project, &gitlab.ListProjectMergeRequestsOptions{
		SourceBranch: gitlab.Ptr(change.BranchName),
		TargetBranch: gitlab.Ptr(p.settings.BaseBranch),
		State:        gitlab.Ptr("opened"),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return err
	}

	if len(mergeRequests) > 0 {
		p.logger.Info(fmt.Sprintf("MR already exists: %s", mergeRequests[0].WebURL))

		// Update the MR if something changed
		if mergeRequests[0].Title != change.Title || mergeRequests[0].Description != content {
			p.logger.Debug("Updating MR")
			if _, _, err := client.MergeRequests.UpdateMergeRequest(p.settings.Project, mergeRequests[0].IID, &gitlab.UpdateMergeRequestOptions{
				Title:       gitlab.Ptr(change.Title),
				Description: gitlab.Ptr(content),
			}, gitlab.WithContext(ctx)); err != nil {
				return err
			}
		}
		return nil
	}

	mr, _, err := client.MergeRequests.CreateMergeRequest(p.settings.Project, &gitlab.CreateMergeRequestOptions{
		Title:        gitlab.Ptr(change.Title),
		Description:  gitlab.Ptr(content),
		SourceBranch: gitlab.Ptr(change.BranchName),
		TargetBranch: gitlab.Ptr(p.settings.BaseBranch),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return err
	}
	p.logger.Info(fmt.Sprintf("Created MR: %s", mr.WebURL))
	return nil
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

func (p *GitlabPublisher) createClient() (*gitlab.Client, error) {
	if p.settings.Token == "" {
		return nil, fmt.Errorf("no publisher token defined")
	}
	endpoint := "https://gitlab.com/api/v4"
	if p.settings.Endpoint != "" {
		endpoint = p.settings.EndpointExpanded()
	}
	return gitlab.NewClient(p.settings.TokenExpanded(), gitlab.WithBaseURL(endpoint))
}
