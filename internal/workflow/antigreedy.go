package workflow

import (
	"strings"

	"travelcore/internal/coretypes"
)

// builderBypassIntents are never short-circuited into the builder's
// continuation handler, even while the builder is active — these are
// read-only or orthogonal intents that should answer immediately.
var builderBypassIntents = map[coretypes.PrimaryIntent]bool{
	coretypes.IntentCalculateCost:      true,
	coretypes.IntentGetDistance:        true,
	coretypes.IntentGetDirections:      true,
	coretypes.IntentGetWeatherForecast: true,
	coretypes.IntentShowItinerary:      true,
	coretypes.IntentBookHotel:          true,
	coretypes.IntentGetLocationTips:    true,
	coretypes.IntentGetPlaceDetails:    true,
}

var foodTokens = []string{
	"ăn", "an", "quán", "quan", "món", "mon", "nhà hàng", "nha hang",
	"phở", "pho", "bún", "bun", "hải sản", "hai san", "đặc sản", "dac san",
}

// ShouldShortCircuitToBuilder implements the first Anti-Greedy rule (§4.5):
// while the builder is mid-flow and the state hasn't already finalized,
// route the turn to the builder's own continuation handler unless the
// intent is in the bypass set.
func ShouldShortCircuitToBuilder(c *coretypes.Context, rec *coretypes.IntentRecord) bool {
	if c.Builder == nil {
		return false
	}
	if c.Workflow.State != coretypes.StateChoosingSpots && c.Workflow.State != coretypes.StateGatheringInfo {
		return false
	}
	if c.Workflow.State == coretypes.StateFinalized {
		return false
	}
	return !builderBypassIntents[rec.PrimaryIntent]
}

// ApplyAntiGreedyRules mutates rec's sub-intents in place per §4.5's second
// and third rules, and reports whether a backtrack to CHOOSING_SPOTS should
// happen (the fourth rule).
func ApplyAntiGreedyRules(c *coretypes.Context, rec *coretypes.IntentRecord, utterance string) (backtrack bool) {
	if rec.PrimaryIntent == coretypes.IntentPlanTrip && c.Workflow.State == coretypes.StateInitial {
		rec.SubIntents = rec.RemoveSubIntents(coretypes.IntentFindHotel, coretypes.IntentFindFood)
	}

	if c.Workflow.State == coretypes.StateChoosingHotel {
		if !containsFoodToken(utterance) {
			rec.SubIntents = rec.RemoveSubIntents(coretypes.IntentFindFood)
		}

		if signalsSpotModification(utterance) {
			backtrack = true
		}
	}

	return backtrack
}

func containsFoodToken(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, tok := range foodTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

var spotModificationTokens = []string{
	"thêm địa điểm", "them dia diem", "đổi địa điểm", "doi dia diem",
	"sửa lịch trình", "sua lich trinh", "chọn lại địa điểm", "chon lai dia diem",
	"thêm chỗ", "them cho", "bỏ bớt", "bo bot",
}

func signalsSpotModification(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, tok := range spotModificationTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
