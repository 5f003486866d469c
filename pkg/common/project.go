package common

import (
	"fmt"
	"strings"
)

type Project struct {
	Path string
}

// Splits the path into "owner" and "repository"
func (p *Project) SplitPath() (string, string, error) {
	owner, repository, found := strings.Cut(p.Path, "/")
	if !found || owner == "" || repository == "" {
		return "", "", fmt.Errorf("project path '%s' is not in the form 'owner/repository'", p.Path)
	}
	return owner, repository, nil
}
