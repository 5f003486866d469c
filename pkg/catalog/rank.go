package catalog

import (
	"slices"
)

// A parsed release together with its position in the input.
type rankedRelease struct {
	position      int
	key           *VersionKey
	sequenceIndex int
}

// Returns the 1-based sequence index of every key, in the order of the given keys.
// The input order breaks ties. Keys sharing the same raw version all get the index of the last of them.
func Rank(keys []*VersionKey) []int {
	ranked := rankKeys(keys)
	indices := make([]int, len(keys))
	for _, r := range ranked {
		indices[r.position] = r.sequenceIndex
	}
	return indices
}

func rankKeys(keys []*VersionKey) []*rankedRelease {
	ranked := make([]*rankedRelease, len(keys))
	for i, key := range keys {
		ranked[i] = &rankedRelease{position: i, key: key}
	}
	slices.SortStableFunc(ranked, func(a, b *rankedRelease) int {
		return CompareVersionKeys(a.key, b.key)
	})

	// Dense rank by sorted position
	lastIndexByVersion := map[string]int{}
	for i, r := range ranked {
		r.sequenceIndex = i + 1
		lastIndexByVersion[r.key.Raw] = r.sequenceIndex
	}
	// Identical version strings share the index of the last occurrence
	for _, r := range ranked {
		r.sequenceIndex = lastIndexByVersion[r.key.Raw]
	}
	return ranked
}
