package common

import (
	"fmt"
	"strings"
)

// The written catalogs that should be published together.
type CatalogChange struct {
	// The branch the catalogs are committed to.
	BranchName string
	// The title used for the commit and the PR/MR.
	Title string
	// The paths of the written catalog files.
	Files []string
	// The catalogs that were written.
	Catalogs []*Catalog
}

// Builds the markdown description of the change.
func (c *CatalogChange) Description() string {
	var sb strings.Builder
	sb.WriteString("| Platform | Releases | Newest version |\n")
	sb.WriteString("|---|---|---|\n")
	for _, catalog := range c.Catalogs {
		newest := ""
		if len(catalog.Entries) > 0 {
			newest = catalog.Entries[len(catalog.Entries)-1].VersionNumber
		}
		sb.WriteString(fmt.Sprintf("| %s | %d | %s |\n", catalog.Platform, len(catalog.Entries), newest))
	}
	return sb.String()
}
