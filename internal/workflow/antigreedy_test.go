package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"travelcore/internal/coretypes"
)

func TestShouldShortCircuitToBuilderWhenActive(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Builder = &coretypes.ItineraryBuilderState{}
	c.Workflow.State = coretypes.StateChoosingSpots

	rec := &coretypes.IntentRecord{PrimaryIntent: coretypes.IntentFindSpot}
	require.True(t, ShouldShortCircuitToBuilder(c, rec))
}

func TestShouldShortCircuitToBuilderBypassesKnownIntents(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Builder = &coretypes.ItineraryBuilderState{}
	c.Workflow.State = coretypes.StateChoosingSpots

	rec := &coretypes.IntentRecord{PrimaryIntent: coretypes.IntentCalculateCost}
	require.False(t, ShouldShortCircuitToBuilder(c, rec))
}

func TestShouldShortCircuitToBuilderNoBuilder(t *testing.T) {
	c := coretypes.NewContext("s1")
	rec := &coretypes.IntentRecord{PrimaryIntent: coretypes.IntentFindSpot}
	require.False(t, ShouldShortCircuitToBuilder(c, rec))
}

func TestApplyAntiGreedyRulesDropsHotelFoodOnFreshPlanTrip(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Workflow.State = coretypes.StateInitial

	rec := &coretypes.IntentRecord{
		PrimaryIntent: coretypes.IntentPlanTrip,
		SubIntents:    []coretypes.PrimaryIntent{coretypes.IntentFindHotel, coretypes.IntentFindFood, coretypes.IntentFindSpot},
	}
	ApplyAntiGreedyRules(c, rec, "lập kế hoạch đi Đà Nẵng")

	require.False(t, rec.HasSubIntent(coretypes.IntentFindHotel))
	require.False(t, rec.HasSubIntent(coretypes.IntentFindFood))
	require.True(t, rec.HasSubIntent(coretypes.IntentFindSpot))
}

func TestApplyAntiGreedyRulesKeepsFoodWhenUtteranceMentionsFood(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Workflow.State = coretypes.StateChoosingHotel

	rec := &coretypes.IntentRecord{SubIntents: []coretypes.PrimaryIntent{coretypes.IntentFindFood}}
	ApplyAntiGreedyRules(c, rec, "gợi ý quán ăn ngon gần khách sạn")

	require.True(t, rec.HasSubIntent(coretypes.IntentFindFood))
}

func TestApplyAntiGreedyRulesDropsFoodWithoutFoodTokens(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Workflow.State = coretypes.StateChoosingHotel

	rec := &coretypes.IntentRecord{SubIntents: []coretypes.PrimaryIntent{coretypes.IntentFindFood}}
	ApplyAntiGreedyRules(c, rec, "khách sạn này có hồ bơi không")

	require.False(t, rec.HasSubIntent(coretypes.IntentFindFood))
}

func TestApplyAntiGreedyRulesDetectsBacktrack(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Workflow.State = coretypes.StateChoosingHotel

	rec := &coretypes.IntentRecord{}
	backtrack := ApplyAntiGreedyRules(c, rec, "tôi muốn thêm địa điểm nữa")
	require.True(t, backtrack)
}
