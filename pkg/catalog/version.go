package catalog

import (
	"cmp"
	"regexp"
	"strconv"
	"strings"

	"github.com/roemer/fwcatalog/pkg/common"
)

// The marker used for versions without a hotfix segment.
const candidateMarker = "candidate"

// The maximum number of segments a version is split into. The last one keeps the remainder.
const maxVersionSegments = 4

var segmentSeparatorRegex = regexp.MustCompile(`[.\-]`)
var digitsRegex = regexp.MustCompile(`^[0-9]+$`)
var numericHotfixRegex = regexp.MustCompile(`^([^0-9]*)([0-9]+)$`)

// The comparable key of a version string.
type VersionKey struct {
	Major       int
	Minor       int
	Maintenance int
	// The raw 4th segment, empty for candidates.
	Hotfix string
	// Set for versions with exactly three segments.
	IsCandidate bool
	// The original version string.
	Raw string

	segments     []string
	hotfixClass  int
	hotfixPrefix string
	hotfixNumber int
}

const (
	hotfixClassCandidate = iota
	hotfixClassNumeric
	hotfixClassOther
)

// Splits the version string on dots and hyphens into at most 4 segments.
func splitVersion(version string) []string {
	return segmentSeparatorRegex.Split(version, maxVersionSegments)
}

// Parses the given version string into a comparable key.
func ParseVersion(version string) (*VersionKey, error) {
	segments := splitVersion(version)
	if len(segments) < 3 {
		return nil, &common.MalformedVersionError{Version: version, Reason: "expected at least 3 segments"}
	}

	numbers := [3]int{}
	for i := range 3 {
		// Surrounding whitespace is allowed, signs are not
		segment := strings.TrimSpace(segments[i])
		if !digitsRegex.MatchString(segment) {
			return nil, &common.MalformedVersionError{Version: version, Reason: "segment '" + segments[i] + "' is not a non-negative integer"}
		}
		number, err := strconv.Atoi(segment)
		if err != nil {
			return nil, &common.MalformedVersionError{Version: version, Reason: err.Error()}
		}
		numbers[i] = number
		segments[i] = segment
	}

	key := &VersionKey{
		Major:       numbers[0],
		Minor:       numbers[1],
		Maintenance: numbers[2],
		Raw:         version,
		segments:    segments,
	}
	if len(segments) == 3 {
		key.IsCandidate = true
		key.hotfixClass = hotfixClassCandidate
		return key, nil
	}

	key.Hotfix = segments[3]
	key.hotfixClass = hotfixClassOther
	if m := numericHotfixRegex.FindStringSubmatch(key.Hotfix); m != nil {
		if number, err := strconv.Atoi(m[2]); err == nil {
			key.hotfixClass = hotfixClassNumeric
			key.hotfixPrefix = m[1]
			key.hotfixNumber = number
		}
	}
	return key, nil
}

// The marker segment of the key: "candidate" or the raw hotfix.
func (k *VersionKey) Marker() string {
	if k.IsCandidate {
		return candidateMarker
	}
	return k.Hotfix
}

func (k *VersionKey) String() string {
	return k.Raw
}

// Compares two keys. Candidates sort before hotfixes of the same triple,
// numeric hotfixes (h1, h12) compare by number and all other hotfixes compare as text after them.
func CompareVersionKeys(a, b *VersionKey) int {
	if c := cmp.Compare(a.Major, b.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Maintenance, b.Maintenance); c != 0 {
		return c
	}
	if c := cmp.Compare(a.hotfixClass, b.hotfixClass); c != 0 {
		return c
	}
	if a.hotfixClass == hotfixClassNumeric {
		if c := strings.Compare(a.hotfixPrefix, b.hotfixPrefix); c != 0 {
			return c
		}
		if c := cmp.Compare(a.hotfixNumber, b.hotfixNumber); c != 0 {
			return c
		}
	}
	return strings.Compare(a.Hotfix, b.Hotfix)
}
