package publishers

import (
	"context"
	"fmt"
	"regexp"

	"github.com/roemer/fwcatalog/pkg/common"
)

var authorRegex = regexp.MustCompile(`^(?P<name>[^<>]+?)(?:\s*<(?P<email>.*?)>)?$`)

type GitPublisher struct {
	*publisherBase
}

func NewGitPublisher(settings *common.PublisherSettings) *GitPublisher {
	publisher := &GitPublisher{
		publisherBase: newPublisherBase(settings),
	}
	return publisher
}

func (p *GitPublisher) Type() common.PublisherType {
	return common.PUBLISHER_TYPE_GIT
}

func (p *GitPublisher) LookupAuthor(ctx context.Context) (string, string, error) {
	return "fwcatalog-bot", "bot@fwcatalog.local", nil
}

func (p *GitPublisher) HasLocalChanges(change *common.CatalogChange) (bool, error) {
	args := append([]string{"status", "--porcelain", "--"}, change.Files...)
	stdOut, _, err := p.git().Run(args...)
	if err != nil {
		return false, err
	}
	return len(stdOut) > 0, nil
}

func (p *GitPublisher) PrepareForChanges(change *common.CatalogChange) error {
	p.logger.Debug(fmt.Sprintf("Creating branch '%s'", change.BranchName))
	_, _, err := p.git().Run("checkout", "-B", change.BranchName)
	return err
}

func (p *GitPublisher) SubmitChanges(ctx context.Context, change *common.CatalogChange) error {
	args := append([]string{"add", "--"}, change.Files...)
	if _, _, err := p.git().Run(args...); err != nil {
		return err
	}

	// Use the configured author or the one of the platform
	var name, email string
	if p.settings.GitAuthor != "" {
		name, email = splitAuthor(p.settings.GitAuthor)
	} else {
		var err error
		if name, email, err = p.lookupAuthor(ctx); err != nil {
			return err
		}
	}
	_, _, err := p.git().Run("-c", "user.name="+name, "-c", "user.email="+email, "commit", "--message="+change.Title)
	return err
}

func (p *GitPublisher) IsNewOrChanged(change *common.CatalogChange) (bool, error) {
	stdOut, _, err := p.git().Run("ls-remote", "--heads", p.getRemoteName(), change.BranchName)
	if err != nil {
		return false, err
	}
	if len(stdOut) == 0 {
		// The branch does not exist
		return true, nil
	}
	// The branch exists, get the diff
	if _, _, err := p.git().Run("fetch", p.getRemoteName(), change.BranchName); err != nil {
		return false, err
	}
	stdOut, _, err = p.git().Run("diff", "--name-status", "FETCH_HEAD", "HEAD")
	if err != nil {
		return false, err
	}
	return len(stdOut) > 0, nil
}

func (p *GitPublisher) PublishChanges(change *common.CatalogChange) error {
	_, _, err := p.git().Run("push", "-u", p.getRemoteName(), "HEAD", "--force")
	return err
}

func (p *GitPublisher) NotifyChanges(ctx context.Context, change *common.CatalogChange) error {
	// Not available
	return nil
}

func (p *GitPublisher) ResetToBase(baseBranch string) error {
	_, _, err := p.git().Run("checkout", baseBranch)
	return err
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

func (p *GitPublisher) git() common.GitRunner {
	return common.Git.InDirectory(p.settings.WorkingDirectory)
}

func (p *GitPublisher) getRemoteName() string {
	return "origin"
}

// Uses the author lookup of the embedding publisher if there is one.
func (p *GitPublisher) lookupAuthor(ctx context.Context) (string, string, error) {
	if p.authorLookup != nil {
		return p.authorLookup(ctx)
	}
	return p.LookupAuthor(ctx)
}

func splitAuthor(author string) (string, string) {
	matches := authorRegex.FindStringSubmatch(author)
	if matches == nil {
		return author, ""
	}
	return matches[authorRegex.SubexpIndex("name")], matches[authorRegex.SubexpIndex("email")]
}
