package session

import (
	"strings"
)

// ordinalWords maps Vietnamese and English ordinal phrases to a 1-based
// index, used to resolve turns like "cái thứ hai" / "the second one"
// against coretypes.RecentResults (§9 reference-resolution DESIGN NOTE).
var ordinalWords = map[string]int{
	"thứ nhất": 1, "đầu tiên": 1, "cái đầu": 1, "first": 1, "1st": 1,
	"thứ hai": 2, "cái thứ 2": 2, "second": 2, "2nd": 2,
	"thứ ba": 3, "third": 3, "3rd": 3,
	"thứ tư": 4, "fourth": 4, "4th": 4,
	"thứ năm": 5, "fifth": 5, "5th": 5,
	"cuối cùng": -1, "last": -1,
}

// Candidate is anything reference resolution can pick from: a recent spot,
// hotel, or food record reduced to the fields resolution needs.
type Candidate struct {
	ID   string
	Name string
}

// ResolveReference finds which of candidates the user means by an ordinal
// phrase ("thứ hai"), a name substring ("Bà Nà"), or — failing both — the
// best fuzzy name match at or above a 0.6 token-overlap score. Returns
// ok=false when nothing clears the threshold.
func ResolveReference(utterance string, candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	u := strings.ToLower(strings.TrimSpace(utterance))

	if idx, ok := matchOrdinal(u); ok {
		pos := idx
		if idx < 0 {
			pos = len(candidates)
		}
		if pos >= 1 && pos <= len(candidates) {
			return candidates[pos-1], true
		}
	}

	for _, c := range candidates {
		if c.Name != "" && strings.Contains(u, strings.ToLower(c.Name)) {
			return c, true
		}
	}

	best := Candidate{}
	bestScore := 0.0
	for _, c := range candidates {
		score := fuzzyScore(u, strings.ToLower(c.Name))
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	if bestScore >= 0.6 {
		return best, true
	}
	return Candidate{}, false
}

func matchOrdinal(u string) (int, bool) {
	for phrase, idx := range ordinalWords {
		if strings.Contains(u, phrase) {
			return idx, true
		}
	}
	return 0, false
}

// fuzzyScore is a token-overlap ratio (Jaccard over whitespace-split
// tokens) — deliberately simple; no third-party string-distance library
// appears anywhere in the example pack, so this stays on stdlib strings
// (see DESIGN.md).
func fuzzyScore(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	intersection := 0
	for t := range ta {
		if tb[t] {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	fields := strings.Fields(s)
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
