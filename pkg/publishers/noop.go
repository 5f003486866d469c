package publishers

import (
	"context"

	"github.com/roemer/fwcatalog/pkg/common"
)

// A publisher that only logs what would be published.
type NoopPublisher struct {
	*publisherBase
}

func NewNoopPublisher(settings *common.PublisherSettings) IPublisher {
	publisher := &NoopPublisher{
		publisherBase: newPublisherBase(settings),
	}
	return publisher
}

func (p *NoopPublisher) Type() common.PublisherType {
	return common.PUBLISHER_TYPE_NOOP
}

func (p *NoopPublisher) LookupAuthor(ctx context.Context) (string, string, error) {
	return "", "", nil
}

func (p *NoopPublisher) HasLocalChanges(change *common.CatalogChange) (bool, error) {
	return true, nil
}

func (p *NoopPublisher) PrepareForChanges(change *common.CatalogChange) error {
	return nil
}

func (p *NoopPublisher) SubmitChanges(ctx context.Context, change *common.CatalogChange) error {
	return nil
}

func (p *NoopPublisher) IsNewOrChanged(change *common.CatalogChange) (bool, error) {
	return true, nil
}

func (p *NoopPublisher) PublishChanges(change *common.CatalogChange) error {
	p.logger.Info("Would publish the catalogs", "branch", change.BranchName, "files", len(change.Files))
	return nil
}

func (p *NoopPublisher) NotifyChanges(ctx context.Context, change *common.CatalogChange) error {
	return nil
}

func (p *NoopPublisher) ResetToBase(baseBranch string) error {
	return nil
}
