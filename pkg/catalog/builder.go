package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Builds the ordered and classified catalogs from raw releases.
type Builder struct {
	logger        *slog.Logger
	minimumFamily float64
}

// The outcome of building the catalog of a single platform.
type PlatformResult struct {
	Platform string
	Catalog  *common.Catalog
	Err      error
}

func NewBuilder(logger *slog.Logger, minimumFamily float64) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		logger:        logger.With(slog.String("component", "catalog")),
		minimumFamily: minimumFamily,
	}
}

// Builds the catalog of a single platform. All releases are treated as belonging to the given platform.
func (b *Builder) Build(platform string, releases []*common.RawRelease) (*common.Catalog, error) {
	if len(releases) == 0 {
		return nil, &common.EmptyInputError{Platform: platform, Reason: "no releases given"}
	}

	// Parse all versions, a single bad one invalidates the whole order
	keys := make([]*VersionKey, len(releases))
	for i, release := range releases {
		key, err := ParseVersion(release.VersionNumber)
		if err != nil {
			return nil, fmt.Errorf("failed building catalog for platform '%s': %w", platform, err)
		}
		keys[i] = key
	}

	ranked := rankKeys(keys)
	if duplicates := len(ranked) - len(lo.UniqBy(ranked, func(r *rankedRelease) string { return r.key.Raw })); duplicates > 0 {
		b.logger.Debug(fmt.Sprintf("Platform '%s' contains %d duplicate version(s)", platform, duplicates))
	}

	catalog := &common.Catalog{Platform: platform, Entries: []*common.CatalogEntry{}}
	for _, r := range ranked {
		family, releaseType, err := Classify(r.key)
		if err != nil {
			return nil, fmt.Errorf("failed building catalog for platform '%s': %w", platform, err)
		}
		familyValue, err := FamilyValue(family)
		if err != nil {
			return nil, fmt.Errorf("failed building catalog for platform '%s': %w", platform, err)
		}
		if familyValue < b.minimumFamily {
			continue
		}
		release := releases[r.position]
		catalog.Entries = append(catalog.Entries, &common.CatalogEntry{
			SequenceIndex:  r.sequenceIndex,
			VersionNumber:  release.VersionNumber,
			Family:         family,
			ReleaseType:    releaseType,
			FileName:       release.FileName,
			Sha256Checksum: release.Sha256Checksum,
		})
	}

	if len(catalog.Entries) == 0 {
		return nil, &common.EmptyInputError{Platform: platform, Reason: fmt.Sprintf("no release of family %v or newer", b.minimumFamily)}
	}
	b.logger.Debug(fmt.Sprintf("Built catalog for platform '%s' with %d of %d releases", platform, len(catalog.Entries), len(releases)))
	return catalog, nil
}

// Partitions the releases by platform and builds the catalogs in parallel.
// The results are sorted by platform. A failing platform does not affect the others.
func (b *Builder) BuildAll(ctx context.Context, releases []*common.RawRelease) ([]*PlatformResult, error) {
	if len(releases) == 0 {
		return nil, &common.EmptyInputError{Reason: "no releases given"}
	}

	partitions := lo.GroupBy(releases, func(release *common.RawRelease) string { return release.Platform })
	platforms := lo.Keys(partitions)
	slices.Sort(platforms)

	results := make([]*PlatformResult, len(platforms))
	g, ctx := errgroup.WithContext(ctx)
	for i, platform := range platforms {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			catalog, err := b.Build(platform, partitions[platform])
			results[i] = &PlatformResult{Platform: platform, Catalog: catalog, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
