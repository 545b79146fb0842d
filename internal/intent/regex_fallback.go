package intent

import (
	"regexp"
	"strconv"
	"strings"

	"travelcore/internal/coretypes"
)

var durationDigitPattern = regexp.MustCompile(`(\d+)\s*(ngày|ngay|day)`)
var moreSpotsPattern = regexp.MustCompile(`(thêm|them|nữa|more)\s+(địa điểm|dia diem|chỗ|cho|spot)`)
var moreHotelsPattern = regexp.MustCompile(`(thêm|them|nữa|more)\s+(khách sạn|khach san|hotel)`)
var moreFoodPattern = regexp.MustCompile(`(thêm|them|nữa|more)\s+(quán|quan|món|mon|food)`)
var offtopicPattern = regexp.MustCompile(`\b(thời tiết|thoi tiet|weather|tỷ giá|ty gia|bóng đá|bong da|chính trị|chinh tri)\b`)
var greetingPattern = regexp.MustCompile(`\b(xin chào|hello|chào bạn|hey|chào nhé|chao)\b`)
var farewellPattern = regexp.MustCompile(`\b(tạm biệt|tam biet|bye|hẹn gặp lại|hen gap lai)\b`)
var thanksPattern = regexp.MustCompile(`\b(cảm ơn|cam on|thanks|thank you)\b`)

// extractWithRegex is the last-resort path when no LLM client is configured
// or the LLM call failed: pattern tables over intentPatterns, plus a few
// dedicated regexes for duration, known locations, budget level and the
// "more X" / off-topic / greeting / farewell / thanks short-circuits —
// grounded on original_source's IntentExtractor._extract_with_regex and its
// MORE_PATTERNS / OFFTOPIC_PATTERNS tables.
func extractWithRegex(query string, slots coretypes.Slots) *coretypes.IntentRecord {
	lower := strings.ToLower(query)

	rec := &coretypes.IntentRecord{
		Location:      slots.Destination,
		Duration:      slots.Duration,
		Budget:        slots.Budget,
		BudgetLevel:   slots.BudgetLevel,
		PeopleCount:   slots.PeopleCount,
		CompanionType: slots.CompanionType,
		Interests:     slots.Interests,
		Confidence:    0.5,
	}

	switch {
	case moreSpotsPattern.MatchString(lower):
		rec.PrimaryIntent = coretypes.IntentMoreSpots
	case moreHotelsPattern.MatchString(lower):
		rec.PrimaryIntent = coretypes.IntentMoreHotels
	case moreFoodPattern.MatchString(lower):
		rec.PrimaryIntent = coretypes.IntentMoreFood
	case offtopicPattern.MatchString(lower):
		rec.PrimaryIntent = coretypes.IntentChitchat
		rec.Confidence = 0.6
	case farewellPattern.MatchString(lower):
		rec.PrimaryIntent = coretypes.IntentFarewell
		rec.Confidence = 0.9
	case thanksPattern.MatchString(lower):
		rec.PrimaryIntent = coretypes.IntentThanks
		rec.Confidence = 0.9
	case greetingPattern.MatchString(lower):
		rec.PrimaryIntent = coretypes.IntentGreeting
		rec.Confidence = 0.9
	default:
		rec.PrimaryIntent = matchIntentPattern(lower)
	}

	if loc := matchKnownLocation(query); loc != "" {
		rec.Location = loc
	}
	if d, ok := matchDuration(lower); ok {
		rec.Duration = d
	}
	if lvl, ok := matchBudgetLevel(lower); ok {
		rec.BudgetLevel = lvl
	}
	if ct, people, ok := matchCompanion(lower); ok {
		rec.CompanionType = ct
		if rec.PeopleCount == 0 {
			rec.PeopleCount = people
		}
	}
	if rec.PeopleCount == 0 {
		rec.PeopleCount = 1
	}

	return rec
}

// matchIntentPattern walks intentPatterns in the coretypes precedence order
// so the first intent whose phrase list matches wins, instead of map
// iteration order (which Go deliberately randomizes).
func matchIntentPattern(lower string) coretypes.PrimaryIntent {
	for _, candidate := range []coretypes.PrimaryIntent{
		coretypes.IntentBookHotel,
		coretypes.IntentCalculateCost,
		coretypes.IntentShowItinerary,
		coretypes.IntentUpdatePeopleCount,
		coretypes.IntentGetPlaceDetails,
		coretypes.IntentGetLocationTips,
		coretypes.IntentFindHotel,
		coretypes.IntentFindSpot,
		coretypes.IntentFindFood,
		coretypes.IntentPlanTrip,
		coretypes.IntentGreeting,
	} {
		if containsAny(lower, intentPatterns[candidate]) {
			return candidate
		}
	}
	return coretypes.IntentGeneralQA
}

func matchKnownLocation(query string) string {
	lower := strings.ToLower(query)
	for _, loc := range knownLocations {
		if strings.Contains(lower, strings.ToLower(loc)) {
			return loc
		}
	}
	return ""
}

func matchDuration(lower string) (int, bool) {
	m := durationDigitPattern.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func matchBudgetLevel(lower string) (coretypes.BudgetLevel, bool) {
	for lvl, phrases := range budgetLevelKeywords {
		if containsAny(lower, phrases) {
			return lvl, true
		}
	}
	return "", false
}

func matchCompanion(lower string) (coretypes.CompanionType, int, bool) {
	for ct, entries := range companionKeywords {
		for _, e := range entries {
			if strings.Contains(lower, e.phrase) {
				return ct, e.people, true
			}
		}
	}
	return "", 0, false
}
