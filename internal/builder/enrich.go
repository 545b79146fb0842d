// Package builder is the Interactive Itinerary Builder (C6): a turn-by-turn
// per-day spot selection sub-dialog with an auto-generate escape hatch —
// grounded on original_source's SpotSelectorHandler (category/best-time
// enrichment tables, default-spot diversity heuristic) generalized from its
// table-select UI to the ordinal/name-token step machine described by the
// decision core's design.
package builder

import "strings"

// categoryBestTime mirrors SpotSelectorHandler.CATEGORY_BEST_TIME.
var categoryBestTime = map[string][]string{
	"night_market": {"evening", "night"},
	"nightlife":    {"evening", "night"},
	"bar":          {"evening", "night"},
	"cho_dem":      {"evening", "night"},
	"beach":        {"morning", "afternoon"},
	"bien":         {"morning", "afternoon"},
	"temple":       {"morning", "afternoon"},
	"pagoda":       {"morning", "afternoon"},
	"chua":         {"morning", "afternoon"},
	"museum":       {"morning", "afternoon"},
	"park":         {"morning", "afternoon", "evening"},
	"theme_park":   {"morning", "afternoon"},
	"sunset":       {"afternoon", "evening"},
	"sunrise":      {"early_morning"},
	"shopping":     {"afternoon", "evening"},
	"restaurant":   {"morning", "afternoon", "evening"},
	"cafe":         {"morning", "afternoon", "evening"},
	"landmark":     {"morning", "afternoon", "evening"},
}

// categoryDuration mirrors SpotSelectorHandler.CATEGORY_DURATION (minutes).
var categoryDuration = map[string]int{
	"beach":        120,
	"museum":       90,
	"temple":       60,
	"pagoda":       60,
	"theme_park":   240,
	"park":         90,
	"shopping":     120,
	"restaurant":   60,
	"night_market": 90,
	"landmark":     45,
	"cafe":         60,
	"bar":          120,
}

// bestVisitTime derives a best_visit_time slot list for a spot missing one,
// falling back to name-based sunrise/sunset/night-market heuristics and
// finally an all-day default.
func bestVisitTime(category, name string) []string {
	category = strings.ToLower(category)
	if times, ok := categoryBestTime[category]; ok {
		return times
	}
	for catKey, times := range categoryBestTime {
		if strings.Contains(category, catKey) || strings.Contains(catKey, category) {
			return times
		}
	}

	lowerName := strings.ToLower(name)
	switch {
	case strings.Contains(lowerName, "chợ đêm"), strings.Contains(lowerName, "cho dem"), strings.Contains(lowerName, "night market"):
		return []string{"evening", "night"}
	case strings.Contains(lowerName, "bình minh"), strings.Contains(lowerName, "binh minh"), strings.Contains(lowerName, "sunrise"):
		return []string{"early_morning"}
	case strings.Contains(lowerName, "hoàng hôn"), strings.Contains(lowerName, "hoang hon"), strings.Contains(lowerName, "sunset"):
		return []string{"afternoon", "evening"}
	}

	return []string{"morning", "afternoon", "evening"}
}

// avgDurationMinutes derives an estimated visit duration for a category.
func avgDurationMinutes(category string) int {
	if d, ok := categoryDuration[strings.ToLower(category)]; ok {
		return d
	}
	return 60
}
