package common

import (
	"log/slog"
	"os"
)

type PublisherSettings struct {
	// The logger to use for the publisher.
	Logger *slog.Logger
	// The type of the publisher.
	Publisher PublisherType
	// The token which is used to interact with the platform. Is expanded from environment variables.
	Token string
	// The endpoint to use when interacting with the platform.
	Endpoint string
	// The project (eg. owner/repository) which holds the catalogs.
	Project string
	// The author to use when interacting with git.
	GitAuthor string
	// The name of the base branch.
	BaseBranch string
	// The directory of the git repository. Defaults to the current directory.
	WorkingDirectory string
}

func (ps *PublisherSettings) TokenExpanded() string {
	return os.ExpandEnv(ps.Token)
}

func (ps *PublisherSettings) EndpointExpanded() string {
	return os.ExpandEnv(ps.Endpoint)
}
