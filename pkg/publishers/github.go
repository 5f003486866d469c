package publishers

import (
	"context"
	"fmt"

	"github.com/google/go-github/v80/github"
	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/samber/lo"
)

type GitHubPublisher struct {
	*GitPublisher
}

func NewGitHubPublisher(settings *common.PublisherSettings) *GitHubPublisher {
	publisher := &GitHubPublisher{
		GitPublisher: NewGitPublisher(settings),
	}
	return publisher
}

func (p *GitHubPublisher) Type() common.PublisherType {
	return common.PUBLISHER_TYPE_GITHUB
}

func (p *GitHubPublisher) NotifyChanges(ctx context.Context, change *common.CatalogChange) error {
	// Prepare the data for the API
	owner, repository, err := (&common.Project{Path: p.settings.Project}).SplitPath()
	if err != nil {
		return err
	}

	// Create the client
	client, err := p.createClient()
	if err != nil {
		return err
	}

	content := change.Description()

	// Search for an existing PR
	existingRequests, _, err := client.PullRequests.List(ctx, owner, repository, &github.PullRequestListOptions{
		Head:  fmt.Sprintf("%s:%s", owner, change.BranchName),
		Base:  p.settings.BaseBranch,
		State: "open",
	})
	if err != nil {
		return err
	}

	// Make sure that the returned list really contains the branch
	existingPr, prExists := lo.Find(existingRequests, func(pr *github.PullRequest) bool { return pr.GetHead().GetRef() == change.BranchName })
	if prExists {
		p.logger.Info(fmt.Sprintf("PR already exists: %s", existingPr.GetHTMLURL()))

		// Update the PR if something changed
		if existingPr.GetTitle() != change.Title || existingPr.GetBody() != content {
			p.logger.Debug("Updating PR")
			if _, _, err := client.PullRequests.Edit(ctx, owner, repository, existingPr.GetNumber(), &github.PullRequest{
				Title: github.Ptr(change.Title),
				Body:  github.Ptr(content),
			}); err != nil {
				return err
			}
		}
		return nil
	}

	// Create the PR
	pr, _, err := client.PullRequests.Create(ctx, owner, repository, &github.NewPullRequest{
		Title: github.Ptr(change.Title),
		Body:  github.Ptr(content),
		Head:  github.Ptr(change.BranchName),
		Base:  github.Ptr(p.settings.BaseBranch),
	})
	if err != nil {
		return err
	}
	p.logger.Info(fmt.Sprintf("Created PR: %s", pr.GetHTMLURL()))
	return nil
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

func (p *GitHubPublisher) createClient() (*github.Client, error) {
	if p.settings.Token == "" {
		return nil, fmt.Errorf("no publisher token defined")
	}
	client := github.NewClient(nil).WithAuthToken(p.settings.TokenExpanded())
	if p.settings.Endpoint != "" {
		endpoint := p.settings.EndpointExpanded()
		return client.WithEnterpriseURLs(endpoint, endpoint)
	}
	return client, nil
}
