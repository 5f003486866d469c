package common

import "context"

// This is the interface that needs to be implemented by all sources.
type ISource interface {
	// Gets the id of the source.
	Id() string
	// Gets the type of the source.
	Type() SourceType
	// Gets the raw releases directly from the source.
	GetReleases(ctx context.Context) ([]*RawRelease, error)
	// Gets the releases (from the cache if possible) and applies the configured filters.
	FetchReleases(ctx context.Context) ([]*RawRelease, error)
}

// This is the interface that needs to be implemented by all catalog writers.
type IWriter interface {
	// Gets the format the writer produces.
	Format() OutputFormat
	// Writes the catalog into the given directory and returns the path of the written file.
	Write(outputDir string, catalog *Catalog) (string, error)
}

type ICache interface {
	// Gets the cached releases for the given source type and identifier.
	Get(sourceType SourceType, cacheIdentifier string) ([]*RawRelease, error)
	// Sets the cached releases for the given source type and identifier.
	Set(sourceType SourceType, cacheIdentifier string, releases []*RawRelease) error
}
