package catalog

import (
	"strconv"
	"strings"

	"github.com/roemer/fwcatalog/pkg/common"
)

// Returns the family label (major.minor) taken verbatim from the raw version string.
func Family(version string) (string, error) {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return "", &common.MalformedVersionError{Version: version, Reason: "no major.minor family"}
	}
	return parts[0] + "." + parts[1], nil
}

// Returns the numeric value of a family label.
func FamilyValue(family string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(family), 64)
	if err != nil {
		return 0, &common.MalformedVersionError{Version: family, Reason: "family is not a number"}
	}
	return value, nil
}

// Derives the family and the release type of the given key.
func Classify(key *VersionKey) (string, common.ReleaseType, error) {
	family, err := Family(key.Raw)
	if err != nil {
		return "", "", err
	}
	// Compare the raw segment so "00" is not treated as a feature release
	if key.segments[2] == "0" {
		return family, common.RELEASE_TYPE_FEATURE, nil
	}
	return family, common.RELEASE_TYPE_MAINTENANCE, nil
}
