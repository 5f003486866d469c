package cache

import (
	"slices"
	"sync"

	"github.com/roemer/fwcatalog/pkg/common"
)

type memoryCache struct {
	mu      sync.RWMutex
	entries map[common.SourceType]map[string][]*common.RawRelease
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[common.SourceType]map[string][]*common.RawRelease{}}
}

func (cache *memoryCache) Get(sourceType common.SourceType, identifier string) []*common.RawRelease {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	entriesForSource, ok := cache.entries[sourceType]
	if !ok {
		return nil
	}
	entriesForId, ok := entriesForSource[identifier]
	if !ok {
		return nil
	}
	return cloneReleases(entriesForId)
}

func (cache *memoryCache) Set(sourceType common.SourceType, identifier string, releases []*common.RawRelease) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if _, ok := cache.entries[sourceType]; !ok {
		cache.entries[sourceType] = map[string][]*common.RawRelease{}
	}
	cache.entries[sourceType][identifier] = cloneReleases(releases)
}

// Copies the releases so callers can modify them without touching the cache.
func cloneReleases(releases []*common.RawRelease) []*common.RawRelease {
	cloned := slices.Clone(releases)
	for i, release := range cloned {
		copied := *release
		cloned[i] = &copied
	}
	return cloned
}
