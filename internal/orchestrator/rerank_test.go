package orchestrator

import (
	"testing"

	"travelcore/internal/coretypes"
)

func TestStageQualitySpotsRewardsRichRecords(t *testing.T) {
	records := []map[string]any{
		{"name": "A", "description": "nice", "rating": 4.5},
		{"name": "B"},
	}
	got := stageQuality(coretypes.StageSpots, records, nil)
	if got <= 0 || got > 1 {
		t.Fatalf("expected score in (0,1], got %v", got)
	}
}

func TestStageQualityCostRequiresTotal(t *testing.T) {
	if got := stageQuality(coretypes.StageCost, nil, map[string]any{"total": int64(100)}); got != 0.8 {
		t.Errorf("expected 0.8 when total present, got %v", got)
	}
	if got := stageQuality(coretypes.StageCost, nil, map[string]any{"note": "x"}); got != 0 {
		t.Errorf("expected 0 when total absent, got %v", got)
	}
}

func TestItineraryQualityEmptyIsZero(t *testing.T) {
	if got := itineraryQuality(nil); got != 0 {
		t.Errorf("expected 0 for no days, got %v", got)
	}
}

func TestReRankOnlySwitchesWhenFarAheadOrPrimaryWeak(t *testing.T) {
	scores := map[coretypes.PipelineStage]float64{
		coretypes.StageSpots:  0.1,
		coretypes.StageHotels: 0.9,
	}
	if got := reRank(coretypes.StageSpots, scores); got != coretypes.StageHotels {
		t.Errorf("expected hotels to win when spots score is weak, got %v", got)
	}

	close := map[coretypes.PipelineStage]float64{
		coretypes.StageSpots:  0.5,
		coretypes.StageHotels: 0.8,
	}
	if got := reRank(coretypes.StageSpots, close); got != coretypes.StageSpots {
		t.Errorf("expected primary to stick when gap is under 0.4, got %v", got)
	}
}

func TestStageToIntentIsInverseOfPrimaryStageForIntent(t *testing.T) {
	pairs := []coretypes.PrimaryIntent{
		coretypes.IntentFindSpot,
		coretypes.IntentFindHotel,
		coretypes.IntentFindFood,
		coretypes.IntentPlanTrip,
		coretypes.IntentCalculateCost,
	}
	for _, intent := range pairs {
		stage := primaryStageForIntent(intent)
		if got := stageToIntent(stage); got != intent {
			t.Errorf("stageToIntent(primaryStageForIntent(%v)) = %v, want %v", intent, got, intent)
		}
	}
}
