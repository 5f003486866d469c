package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/samber/lo"
)

var cacheIdentifierCleanupRegex = regexp.MustCompile(`[^a-zA-Z0-9*,\. ]+`)

type fileCache struct {
	CacheDir string
	Ttl      time.Duration
	Logger   *slog.Logger
}

func (c *fileCache) Get(sourceType common.SourceType, cacheIdentifier string) ([]*common.RawRelease, error) {
	cacheFilePath := c.getCacheFilePath(sourceType, cacheIdentifier)
	// Check if the file exists and if so, open and read it
	fileDescriptor, err := os.Open(cacheFilePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error reading the cache file '%s': %w", cacheFilePath, err)
	}
	defer fileDescriptor.Close()
	var dataObject cacheInfo
	if err := json.NewDecoder(fileDescriptor).Decode(&dataObject); err != nil {
		return nil, fmt.Errorf("error converting the cache file '%s' to json: %w", cacheFilePath, err)
	}
	if dataObject.ExpiresAt.Before(time.Now()) {
		c.Logger.Debug(fmt.Sprintf("Cache file '%s' expired at %s", cacheFilePath, dataObject.ExpiresAt.Format(time.RFC3339)))
		return nil, nil
	}
	if dataObject.CacheIdentifier != cacheIdentifier {
		// The identifier does not match (cleaned identifier might lead to a duplicate)
		c.Logger.Warn(fmt.Sprintf("Cache identifier mismatch for file '%s': expected '%s', got '%s'", cacheFilePath, cacheIdentifier, dataObject.CacheIdentifier))
		return nil, nil
	}
	mappedReleases := lo.Map(dataObject.Releases, func(item *cacheRelease, index int) *common.RawRelease {
		return &common.RawRelease{
			Platform:       item.Platform,
			VersionNumber:  item.VersionNumber,
			FileName:       item.FileName,
			Sha256Checksum: item.Sha256Checksum,
		}
	})
	return mappedReleases, nil
}

func (c *fileCache) Set(sourceType common.SourceType, cacheIdentifier string, releases []*common.RawRelease) error {
	cacheFilePath := c.getCacheFilePath(sourceType, cacheIdentifier)
	if err := os.MkdirAll(filepath.Dir(cacheFilePath), os.ModePerm); err != nil {
		return fmt.Errorf("error creating the cache directory for file '%s': %w", cacheFilePath, err)
	}
	fileDescriptor, err := os.Create(cacheFilePath)
	if err != nil {
		return fmt.Errorf("error creating the cache file '%s': %w", cacheFilePath, err)
	}
	defer fileDescriptor.Close()
	mappedReleases := lo.Map(releases, func(item *common.RawRelease, index int) *cacheRelease {
		return &cacheRelease{
			Platform:       item.Platform,
			VersionNumber:  item.VersionNumber,
			FileName:       item.FileName,
			Sha256Checksum: item.Sha256Checksum,
		}
	})
	now := time.Now()
	dataObject := cacheInfo{
		SourceType:      sourceType,
		CacheIdentifier: cacheIdentifier,
		FetchedAt:       now,
		ExpiresAt:       now.Add(c.Ttl),
		Releases:        mappedReleases,
	}
	encoder := json.NewEncoder(fileDescriptor)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&dataObject); err != nil {
		return fmt.Errorf("error writing the cache file '%s': %w", cacheFilePath, err)
	}
	return nil
}

func (c *fileCache) getCacheFilePath(sourceType common.SourceType, cacheIdentifier string) string {
	clearedIdentifier := cacheIdentifierCleanupRegex.ReplaceAllString(cacheIdentifier, "-")
	return filepath.Join(c.CacheDir, string(sourceType), clearedIdentifier+".json")
}
