package common

import "fmt"

// Returned when a version string (or the family derived from it) cannot be parsed.
type MalformedVersionError struct {
	Version string
	Reason  string
}

func (e *MalformedVersionError) Error() string {
	return fmt.Sprintf("malformed version '%s': %s", e.Version, e.Reason)
}

// Returned when there are no releases to build a catalog from.
type EmptyInputError struct {
	Platform string
	Reason   string
}

func (e *EmptyInputError) Error() string {
	if e.Platform == "" {
		return fmt.Sprintf("no releases: %s", e.Reason)
	}
	return fmt.Sprintf("no releases for platform '%s': %s", e.Platform, e.Reason)
}
