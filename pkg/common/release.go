package common

import (
	"fmt"
	"strconv"
)

// A release as delivered by a source, before it is ranked and classified.
type RawRelease struct {
	// The product or platform identifier (eg. a hardware or VM series).
	Platform string `json:"platform" yaml:"platform"`
	// The dotted/hyphenated version string (eg. 10.1.3-h1).
	VersionNumber string `json:"versionNumber" yaml:"versionNumber"`
	// The name of the firmware image file.
	FileName string `json:"fileName" yaml:"fileName"`
	// The hex encoded sha256 digest of the image file.
	Sha256Checksum string `json:"sha256Checksum" yaml:"sha256Checksum"`
}

func (r *RawRelease) String() string {
	return fmt.Sprintf("{platform: %s, version: %s, file: %s}", r.Platform, r.VersionNumber, r.FileName)
}

// A single row of a catalog.
type CatalogEntry struct {
	SequenceIndex  int
	VersionNumber  string
	Family         string
	ReleaseType    ReleaseType
	FileName       string
	Sha256Checksum string
}

// Returns the entry as a row with the columns in the persisted order.
func (e *CatalogEntry) Row() []string {
	return []string{
		strconv.Itoa(e.SequenceIndex),
		e.VersionNumber,
		e.Family,
		string(e.ReleaseType),
		e.FileName,
		e.Sha256Checksum,
	}
}

// The column names of a catalog row.
var CatalogColumns = []string{"sequenceIndex", "versionNumber", "family", "releaseType", "fileName", "sha256Checksum"}

// The ordered catalog of a single platform.
type Catalog struct {
	Platform string
	Entries  []*CatalogEntry
}
