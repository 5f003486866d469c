package cache

import (
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseCacheRoundtrip(t *testing.T) {
	assert := assert.New(t)

	cacheDir := t.TempDir()
	releases := []*common.RawRelease{
		{Platform: "vm", VersionNumber: "10.1.0", FileName: "PanOS_vm-10.1.0", Sha256Checksum: "aa"},
	}

	c := NewReleaseCache(cacheDir, time.Minute, slog.Default())
	cached, err := c.Get(common.SOURCE_TYPE_PANOS, "fw1")
	assert.NoError(err)
	assert.Nil(cached)

	require.NoError(t, c.Set(common.SOURCE_TYPE_PANOS, "fw1", releases))

	// A fresh cache only has the file layer
	fresh := NewReleaseCache(cacheDir, time.Minute, slog.Default())
	cached, err = fresh.Get(common.SOURCE_TYPE_PANOS, "fw1")
	assert.NoError(err)
	assert.Equal(releases, cached)

	// Returned releases are copies
	cached[0].Platform = "changed"
	cached, err = fresh.Get(common.SOURCE_TYPE_PANOS, "fw1")
	assert.NoError(err)
	assert.Equal("vm", cached[0].Platform)
}

func TestFileCacheExpired(t *testing.T) {
	assert := assert.New(t)

	c := &fileCache{CacheDir: t.TempDir(), Ttl: -time.Minute, Logger: slog.Default()}
	require.NoError(t, c.Set(common.SOURCE_TYPE_FILE, "expired", []*common.RawRelease{{VersionNumber: "10.0.0"}}))
	cached, err := c.Get(common.SOURCE_TYPE_FILE, "expired")
	assert.NoError(err)
	assert.Nil(cached)
}

func TestFileCacheIdentifierMismatch(t *testing.T) {
	assert := assert.New(t)

	c := &fileCache{CacheDir: t.TempDir(), Ttl: time.Minute, Logger: slog.Default()}
	require.NoError(t, c.Set(common.SOURCE_TYPE_FILE, "a/b", []*common.RawRelease{{VersionNumber: "10.0.0"}}))
	// "a:b" is cleaned to the same file name as "a/b"
	assert.Equal(c.getCacheFilePath(common.SOURCE_TYPE_FILE, "a/b"), c.getCacheFilePath(common.SOURCE_TYPE_FILE, "a:b"))
	cached, err := c.Get(common.SOURCE_TYPE_FILE, "a:b")
	assert.NoError(err)
	assert.Nil(cached)
}

func TestFileCacheFormat(t *testing.T) {
	assert := assert.New(t)

	c := &fileCache{CacheDir: t.TempDir(), Ttl: time.Minute, Logger: slog.Default()}
	require.NoError(t, c.Set(common.SOURCE_TYPE_FILE, "format", []*common.RawRelease{{Platform: "vm", VersionNumber: "10.0.0"}}))
	content, err := os.ReadFile(c.getCacheFilePath(common.SOURCE_TYPE_FILE, "format"))
	require.NoError(t, err)
	var info cacheInfo
	require.NoError(t, json.Unmarshal(content, &info))
	assert.Equal(common.SOURCE_TYPE_FILE, info.SourceType)
	assert.Equal("format", info.CacheIdentifier)
	assert.Len(info.Releases, 1)
	assert.True(info.ExpiresAt.After(info.FetchedAt))
}
