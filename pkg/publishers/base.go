package publishers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roemer/fwcatalog/pkg/common"
)

type IPublisher interface {
	// Returns the type of the publisher
	Type() common.PublisherType
	// Looks up the author to use for commits.
	LookupAuthor(ctx context.Context) (string, string, error)
	// Checks if the catalog files differ from the checked in state.
	HasLocalChanges(change *common.CatalogChange) (bool, error)
	// Prepares the repository to accept changes.
	PrepareForChanges(change *common.CatalogChange) error
	// Commits the changes to the repository locally.
	SubmitChanges(ctx context.Context, change *common.CatalogChange) error
	// Checks if the remote already has the same changes.
	IsNewOrChanged(change *common.CatalogChange) (bool, error)
	// Publishes the changes to the remote location.
	PublishChanges(change *common.CatalogChange) error
	// Notifies the remote about the changes with eg. MRs/PRs.
	NotifyChanges(ctx context.Context, change *common.CatalogChange) error
	// Resets the repository to the base branch.
	ResetToBase(baseBranch string) error
}

type publisherBase struct {
	logger       *slog.Logger
	settings     *common.PublisherSettings
	authorLookup func(ctx context.Context) (string, string, error)
}

func newPublisherBase(settings *common.PublisherSettings) *publisherBase {
	return &publisherBase{
		logger:   settings.Logger.With(slog.String("publisher", string(settings.Publisher))),
		settings: settings,
	}
}

func GetPublisher(settings *common.PublisherSettings) (IPublisher, error) {
	switch settings.Publisher {
	case common.PUBLISHER_TYPE_GIT:
		return NewGitPublisher(settings), nil
	case common.PUBLISHER_TYPE_GITEA:
		return NewGiteaPublisher(settings), nil
	case common.PUBLISHER_TYPE_GITHUB:
		return NewGitHubPublisher(settings), nil
	case common.PUBLISHER_TYPE_GITLAB:
		return NewGitlabPublisher(settings), nil
	case common.PUBLISHER_TYPE_NOOP:
		return NewNoopPublisher(settings), nil
	}
	return nil, fmt.Errorf("no publisher defined for '%s'", settings.Publisher)
}

// Commits the changed catalogs to the change branch, pushes them and notifies the remote.
// The repository is switched back to the base branch afterwards.
func Publish(ctx context.Context, publisher IPublisher, baseBranch string, change *common.CatalogChange, logger *slog.Logger) error {
	if len(change.Files) == 0 {
		logger.Debug("No catalog files to publish")
		return nil
	}
	hasChanges, err := publisher.HasLocalChanges(change)
	if err != nil {
		return err
	}
	if !hasChanges {
		logger.Info("Catalogs are unchanged, nothing to publish")
		return nil
	}

	if err := publisher.PrepareForChanges(change); err != nil {
		return err
	}
	publishErr := submitAndPublish(ctx, publisher, change, logger)
	if err := publisher.ResetToBase(baseBranch); err != nil {
		if publishErr != nil {
			return fmt.Errorf("%w (resetting to base also failed: %s)", publishErr, err)
		}
		return err
	}
	return publishErr
}

func submitAndPublish(ctx context.Context, publisher IPublisher, change *common.CatalogChange, logger *slog.Logger) error {
	if err := publisher.SubmitChanges(ctx, change); err != nil {
		return err
	}
	isNewOrChanged, err := publisher.IsNewOrChanged(change)
	if err != nil {
		return err
	}
	if !isNewOrChanged {
		logger.Info(fmt.Sprintf("Branch '%s' is already up to date", change.BranchName))
		return nil
	}
	logger.Info(fmt.Sprintf("Publishing catalogs to branch '%s'", change.BranchName))
	if err := publisher.PublishChanges(change); err != nil {
		return err
	}
	return publisher.NotifyChanges(ctx, change)
}
