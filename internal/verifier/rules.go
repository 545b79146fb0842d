// Package verifier implements the Itinerary Verifier (C7, §4.4.7): a
// two-phase check of a finalized itinerary — deterministic rule-based
// time-of-day validation, followed by an LLM-as-critic pass for soft
// constraints the rule table can't express — plus an auto-fix pass that
// relocates activities that fail the rule phase.
package verifier

import "strings"

// categoryTimeConstraints maps a spot category to the time slots it's
// acceptable to visit in. Categories absent from this table carry no
// rule-phase constraint.
var categoryTimeConstraints = map[string][]string{
	"night_market": {"evening", "night"},
	"nightlife":    {"evening", "night"},
	"bar":          {"evening", "night"},
	"club":         {"night"},
	"night_food":   {"evening", "night"},
	"chợ_đêm":      {"evening", "night"},
	"phố_đêm":      {"evening", "night"},

	"sunrise":        {"early_morning"},
	"morning_market":  {"early_morning", "morning"},
	"chợ_sáng":       {"early_morning", "morning"},
	"temple":         {"morning", "afternoon"},
	"pagoda":         {"morning", "afternoon"},
	"chùa":           {"morning", "afternoon"},

	"beach":          {"morning", "afternoon"},
	"beach_swimming": {"morning", "afternoon"},
	"biển":           {"morning", "afternoon"},
	"bãi_biển":       {"morning", "afternoon"},

	"sunset_view":      {"afternoon", "evening"},
	"sunset":           {"afternoon", "evening"},
	"ngắm_hoàng_hôn":   {"afternoon", "evening"},

	"museum":     {"morning", "afternoon", "evening"},
	"shopping":   {"morning", "afternoon", "evening"},
	"landmark":   {"morning", "afternoon", "evening"},
	"park":       {"morning", "afternoon", "evening"},
	"theme_park": {"morning", "afternoon"},
	"amusement":  {"morning", "afternoon", "evening"},
}

// nameTimePatterns catches spots whose category is missing or wrong but
// whose name gives away a time constraint anyway.
var nameTimePatterns = []struct {
	pattern string
	slots   []string
}{
	{"chợ đêm", []string{"evening", "night"}},
	{"night market", []string{"evening", "night"}},
	{"phố đêm", []string{"evening", "night"}},
	{"bar ", []string{"evening", "night"}},
	{"quán bar", []string{"evening", "night"}},
	{"club", []string{"night"}},
	{"bình minh", []string{"early_morning"}},
	{"sunrise", []string{"early_morning"}},
	{"chợ sáng", []string{"early_morning", "morning"}},
	{"hoàng hôn", []string{"afternoon", "evening"}},
	{"sunset", []string{"afternoon", "evening"}},
}

// timeSlotBounds is the 6-slot time-of-day table (24h hour ranges,
// end-exclusive).
var timeSlotBounds = []struct {
	slot     string
	from, to int
}{
	{"early_morning", 5, 7},
	{"morning", 7, 11},
	{"midday", 11, 14},
	{"afternoon", 14, 17},
	{"evening", 17, 21},
	{"night", 21, 24},
}

// timeToSlot converts an "HH:MM" time string into one of the 6 slots,
// defaulting to "morning" when the time is missing or unparsable.
func timeToSlot(timeStr string) string {
	if timeStr == "" {
		return "morning"
	}
	hourPart, _, found := strings.Cut(timeStr, ":")
	if !found {
		return "morning"
	}
	hour := 0
	for _, r := range hourPart {
		if r < '0' || r > '9' {
			return "morning"
		}
		hour = hour*10 + int(r-'0')
	}
	for _, b := range timeSlotBounds {
		if hour >= b.from && hour < b.to {
			return b.slot
		}
	}
	return "night"
}

func slotContains(slots []string, target string) bool {
	for _, s := range slots {
		if s == target {
			return true
		}
	}
	return false
}
