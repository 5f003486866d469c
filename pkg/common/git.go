package common

import (
	"fmt"
	"strings"

	"github.com/roemer/goext"
)

type GitRunner struct {
	workingDirectory string
}

var Git GitRunner = GitRunner{workingDirectory: "."}

// Returns a runner that executes git in the given directory.
func (g GitRunner) InDirectory(directory string) GitRunner {
	if directory == "" {
		directory = "."
	}
	return GitRunner{workingDirectory: directory}
}

func (g GitRunner) Run(arguments ...string) (string, string, error) {
	outStr, errStr, err := goext.CmdRunners.Default.WithWorkingDirectory(g.workingDirectory).RunGetOutput("git", arguments...)
	outStr, errStr = g.processOutputString(outStr), g.processOutputString(errStr)
	if err != nil {
		err = fmt.Errorf("git command failed: error: %w, stderr: %s", err, errStr)
	}
	return outStr, errStr, err
}

func (g GitRunner) processOutputString(value string) string {
	return strings.TrimRight(value, "\r\n")
}
