package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogEntryRow(t *testing.T) {
	assert := assert.New(t)

	entry := &CatalogEntry{
		SequenceIndex:  12,
		VersionNumber:  "10.1.3-h1",
		Family:         "10.1",
		ReleaseType:    RELEASE_TYPE_MAINTENANCE,
		FileName:       "PanOS_vm-10.1.3-h1",
		Sha256Checksum: "abc",
	}
	assert.Equal([]string{"12", "10.1.3-h1", "10.1", "Maintenance", "PanOS_vm-10.1.3-h1", "abc"}, entry.Row())
	assert.Len(CatalogColumns, len(entry.Row()))
}

func TestErrorMessages(t *testing.T) {
	assert := assert.New(t)

	assert.EqualError(&MalformedVersionError{Version: "10.x", Reason: "too few segments"}, "malformed version '10.x': too few segments")
	assert.EqualError(&EmptyInputError{Reason: "no releases given"}, "no releases: no releases given")
	assert.EqualError(&EmptyInputError{Platform: "vm", Reason: "no releases given"}, "no releases for platform 'vm': no releases given")
}

func TestHostRules(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("FWCATALOG_TEST_TOKEN", "secret")

	hostRules := []*HostRule{
		{MatchHost: ""},
		{MatchHost: "gitlab.example.com", Token: "${FWCATALOG_TEST_TOKEN}"},
		{MatchHost: "example.com", Username: "user"},
	}
	hostRule := FindHostRule(hostRules, "https://gitlab.example.com/api/v4")
	assert.NotNil(hostRule)
	assert.Equal("secret", hostRule.TokenExpanded())

	hostRule = FindHostRule(hostRules, "https://artifactory.example.com")
	assert.NotNil(hostRule)
	assert.Equal("user", hostRule.UsernameExpanded())

	assert.Nil(FindHostRule(hostRules, "https://other.org"))
}

func TestCatalogChangeDescription(t *testing.T) {
	assert := assert.New(t)

	change := &CatalogChange{Catalogs: []*Catalog{
		{Platform: "pa-220", Entries: []*CatalogEntry{{VersionNumber: "10.1.0"}, {VersionNumber: "10.1.2"}}},
		{Platform: "vm", Entries: []*CatalogEntry{}},
	}}
	assert.Equal("| Platform | Releases | Newest version |\n"+
		"|---|---|---|\n"+
		"| pa-220 | 2 | 10.1.2 |\n"+
		"| vm | 0 |  |\n", change.Description())
}

func TestProjectSplitPath(t *testing.T) {
	assert := assert.New(t)

	owner, repository, err := (&Project{Path: "owner/catalogs"}).SplitPath()
	assert.NoError(err)
	assert.Equal("owner", owner)
	assert.Equal("catalogs", repository)

	_, _, err = (&Project{Path: "catalogs"}).SplitPath()
	assert.Error(err)
}
