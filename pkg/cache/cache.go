package cache

import (
	"log/slog"
	"time"

	"github.com/roemer/fwcatalog/pkg/common"
)

// The time releases stay valid in the cache when nothing else is configured.
const DefaultTtl = 10 * time.Minute

// A two level cache for releases: an in-memory layer in front of a file cache.
type ReleaseCache struct {
	memoryCache *memoryCache
	fileCache   *fileCache
}

func NewReleaseCache(cacheDir string, ttl time.Duration, logger *slog.Logger) *ReleaseCache {
	if ttl <= 0 {
		ttl = DefaultTtl
	}
	return &ReleaseCache{
		memoryCache: newMemoryCache(),
		fileCache: &fileCache{
			CacheDir: cacheDir,
			Ttl:      ttl,
			Logger:   logger,
		},
	}
}

func (c *ReleaseCache) Get(sourceType common.SourceType, cacheIdentifier string) ([]*common.RawRelease, error) {
	if releases := c.memoryCache.Get(sourceType, cacheIdentifier); releases != nil {
		return releases, nil
	}
	releases, err := c.fileCache.Get(sourceType, cacheIdentifier)
	if err != nil {
		return nil, err
	}
	if releases != nil {
		c.memoryCache.Set(sourceType, cacheIdentifier, releases)
	}
	return releases, nil
}

func (c *ReleaseCache) Set(sourceType common.SourceType, cacheIdentifier string, releases []*common.RawRelease) error {
	c.memoryCache.Set(sourceType, cacheIdentifier, releases)
	return c.fileCache.Set(sourceType, cacheIdentifier, releases)
}
