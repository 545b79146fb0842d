package verifier

import (
	"strconv"
	"strings"

	"travelcore/internal/coretypes"
)

// band is one of the three auto-fix redistribution periods (§4.4.7).
type band int

const (
	bandMorning band = iota
	bandAfternoon
	bandEvening
)

// bandTimes is the display time assigned to the first activity of each band;
// AutoFix doesn't track a time field on SelectedSpot, so this is surfaced
// only through the change log, not stored.
var bandTimes = map[band]string{
	bandMorning:   "08:00",
	bandAfternoon: "12:30",
	bandEvening:   "17:00",
}

// AutoFix resolves error-severity issues by relocating each offending spot
// to its expected band (move-to-front for morning/early_morning, move-to-end
// for evening/night), then redistributes every day that received a fix
// across the three periods by category classification — bar/nightlife to
// evening, sunset to afternoon, sunrise to morning, everything else
// round-robin — so the whole day stays balanced rather than just the
// flagged activity (§4.4.7 "auto-fix redistribution"). Warnings are left
// untouched. Returns a deep copy of days with fixes applied plus a
// human-readable change log.
func AutoFix(days []coretypes.ItineraryDay, issues []coretypes.Issue) ([]coretypes.ItineraryDay, []string) {
	fixed := cloneDays(days)
	var changes []string
	touchedDays := map[int]bool{}

	for _, issue := range issues {
		if issue.Severity != coretypes.SeverityError {
			continue
		}
		if issue.Type != "time_of_day_mismatch" {
			continue
		}
		if msg, ok := tryFixTimeSlot(fixed, issue); ok {
			changes = append(changes, msg)
			touchedDays[issue.Day] = true
		}
	}

	for i := range fixed {
		if touchedDays[fixed[i].Day] {
			redistributeDay(&fixed[i])
		}
	}

	return fixed, changes
}

func cloneDays(days []coretypes.ItineraryDay) []coretypes.ItineraryDay {
	out := make([]coretypes.ItineraryDay, len(days))
	for i, d := range days {
		spots := make([]coretypes.SelectedSpot, len(d.Spots))
		copy(spots, d.Spots)
		out[i] = coretypes.ItineraryDay{Day: d.Day, Spots: spots}
	}
	return out
}

func tryFixTimeSlot(days []coretypes.ItineraryDay, issue coretypes.Issue) (string, bool) {
	dayIdx := -1
	for i, d := range days {
		if d.Day == issue.Day {
			dayIdx = i
			break
		}
	}
	if dayIdx == -1 {
		return "", false
	}

	spots := days[dayIdx].Spots
	targetIdx := -1
	for i, s := range spots {
		name := s.SpotID
		if name == "" {
			name = s.Name
		}
		if s.Name == issue.SpotName || name == issue.SpotID {
			targetIdx = i
			break
		}
	}
	if targetIdx == -1 {
		return "", false
	}

	activity := spots[targetIdx]
	rest := append(append([]coretypes.SelectedSpot{}, spots[:targetIdx]...), spots[targetIdx+1:]...)

	switch {
	case slotContains(issue.ExpectedSlots, "evening") || slotContains(issue.ExpectedSlots, "night"):
		days[dayIdx].Spots = append(rest, activity)
		return "Đã chuyển '" + issue.SpotName + "' sang buổi tối ngày " + strconv.Itoa(issue.Day), true
	case slotContains(issue.ExpectedSlots, "morning") || slotContains(issue.ExpectedSlots, "early_morning"):
		days[dayIdx].Spots = append([]coretypes.SelectedSpot{activity}, rest...)
		return "Đã chuyển '" + issue.SpotName + "' sang buổi sáng ngày " + strconv.Itoa(issue.Day), true
	}

	return "", false
}

// redistributeDay stably reorders a day's spots into morning/afternoon/
// evening bands by category/name classification, round-robining
// unclassified spots across the three bands to keep each day balanced.
func redistributeDay(day *coretypes.ItineraryDay) {
	buckets := [3][]coretypes.SelectedSpot{}
	roundRobin := 0

	for _, spot := range day.Spots {
		b, classified := classifyBand(spot.Category, spot.Name)
		if !classified {
			b = band(roundRobin % 3)
			roundRobin++
		}
		buckets[b] = append(buckets[b], spot)
	}

	ordered := make([]coretypes.SelectedSpot, 0, len(day.Spots))
	ordered = append(ordered, buckets[bandMorning]...)
	ordered = append(ordered, buckets[bandAfternoon]...)
	ordered = append(ordered, buckets[bandEvening]...)
	day.Spots = ordered
}

// classifyBand assigns a spot to its redistribution band: bar/nightlife to
// evening, sunset to afternoon, sunrise to morning. Everything else is
// unclassified (round-robin candidate).
func classifyBand(category, name string) (band, bool) {
	cat := strings.ToLower(category)
	lowerName := strings.ToLower(name)

	switch {
	case cat == "bar" || cat == "nightlife" || cat == "club" || cat == "night_market" || cat == "night_food" ||
		strings.Contains(lowerName, "bar") || strings.Contains(lowerName, "club") || strings.Contains(lowerName, "chợ đêm"):
		return bandEvening, true
	case cat == "sunset" || cat == "sunset_view" || strings.Contains(lowerName, "hoàng hôn") || strings.Contains(lowerName, "sunset"):
		return bandAfternoon, true
	case cat == "sunrise" || strings.Contains(lowerName, "bình minh") || strings.Contains(lowerName, "sunrise"):
		return bandMorning, true
	}
	return bandMorning, false
}
