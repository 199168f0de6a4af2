package domain

import "sort"

const (
	// GoalkeeperSlots is the number of keepers every roster carries on top of
	// the outfield shape.
	GoalkeeperSlots = 1

	// StandardRosterSize is the expected roster for a canonical formation.
	StandardRosterSize = 11
)

// canonicalFormations maps each recognised formation token to its outfield count.
var canonicalFormations = map[string]int{
	"4-3-3":   10,
	"4-4-2":   10,
	"4-2-3-1": 10,
	"3-5-2":   10,
	"3-4-3":   10,
	"5-3-2":   10,
	"4-5-1":   10,
}

// CanonicalFormations returns the recognised formation tokens in sorted order.
func CanonicalFormations() []string {
	tokens := make([]string, 0, len(canonicalFormations))
	for token := range canonicalFormations {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

func IsCanonicalFormation(formation string) bool {
	_, ok := canonicalFormations[formation]
	return ok
}

// ExpectedRosterSize returns the roster size a canonical formation requires.
// Custom formations report ok=false: they carry no size bound.
func ExpectedRosterSize(formation string) (int, bool) {
	outfield, ok := canonicalFormations[formation]
	if !ok {
		return 0, false
	}
	return outfield + GoalkeeperSlots, true
}

