package cache

import (
	"time"

	"github.com/roemer/fwcatalog/pkg/common"
)

type cacheInfo struct {
	SourceType      common.SourceType `json:"sourceType"`
	CacheIdentifier string            `json:"cacheIdentifier"`
	FetchedAt       time.Time         `json:"fetchedAt"`
	ExpiresAt       time.Time         `json:"expiresAt"`
	Releases        []*cacheRelease   `json:"releases"`
}

type cacheRelease struct {
	Platform       string `json:"platform"`
	VersionNumber  string `json:"versionNumber"`
	FileName       string `json:"fileName"`
	Sha256Checksum string `json:"sha256Checksum"`
}
