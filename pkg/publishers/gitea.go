package publishers

import (
	"context"
	"fmt"

	"code.gitea.io/sdk/gitea"
	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/samber/lo"
)

type GiteaPublisher struct {
	*GitPublisher
}

func NewGiteaPublisher(settings *common.PublisherSettings) *GiteaPublisher {
	publisher := &GiteaPublisher{
		GitPublisher: NewGitPublisher(settings),
	}
	publisher.authorLookup = publisher.LookupAuthor
	return publisher
}

func (p *GiteaPublisher) Type() common.PublisherType {
	return common.PUBLISHER_TYPE_GITEA
}

func (p *GiteaPublisher) LookupAuthor(ctx context.Context) (string, string, error) {
	client, err := p.createClient(ctx)
	if err != nil {
		return "", "", err
	}
	user, _, err := client.GetMyUserInfo()
	if err != nil {
		return "", "", err
	}
	return lo.CoalesceOrEmpty(user.FullName, user.UserName), user.Email, nil
}

func (p *GiteaPublisher) NotifyChanges(ctx context.Context, change *common.CatalogChange) error {
	// Prepare the data for the API
	owner, repository, err := (&common.Project{Path: p.settings.Project}).SplitPath()
	if err != nil {
		return err
	}

	// Create the client
	client, err := p.createClient(ctx)
	if err != nil {
		return err
	}

	content := change.Description()

	// Search for an existing PR
	pullRequests, _, err := client.ListRepoPullRequests(owner, repository, gitea.ListPullRequestsOptions{
		State: gitea.StateOpen,
	})
	if err != nil {
		return err
	}
	existingPr, prExists := lo.Find(pullRequests, func(pr *gitea.PullRequest) bool {
		return pr.Head != nil && pr.Base != nil && pr.Head.Ref == change.BranchName && pr.Base.Ref == p.settings.BaseBranch
	})
	if prExists {
		p.logger.Info(fmt.Sprintf("PR already exists: %s", existingPr.HTMLURL))

		// Update the PR if something changed
		if existingPr.Title != change.Title || existingPr.Body != content {
			p.logger.Debug("Updating PR")
			if _, _, err := client.EditPullRequest(owner, repository, existingPr.Index, gitea.EditPullRequestOption{
				Title: change.Title,
				Body:  gitea.OptionalString(content),
			}); err != nil {
				return err
			}
		}
		return nil
	}

	// Create the PR
	pr, _, err := client.CreatePullRequest(owner, repository, gitea.CreatePullRequestOption{
		Title: change.Title,
		Body:  content,
		Head:  change.BranchName,
		Base:  p.settings.BaseBranch,
	})
	if err != nil {
		return err
	}
	p.logger.Info(fmt.Sprintf("Created PR: %s", pr.HTMLURL))
	return nil
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

func (p *GiteaPublisher) createClient(ctx context.Context) (*gitea.Client, error) {
	if p.settings.Token == "" {
		return nil, fmt.Errorf("no publisher token defined")
	}
	endpoint := "https://gitea.com"
	if p.settings.Endpoint != "" {
		endpoint = p.settings.EndpointExpanded()
	}
	return gitea.NewClient(endpoint, gitea.SetToken(p.settings.TokenExpanded()), gitea.SetContext(ctx))
}
