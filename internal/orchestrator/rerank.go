package orchestrator

import "travelcore/internal/coretypes"

// stageQuality scores a just-finished stage's data per §4.1's intent
// re-ranking formulas, used both by the streaming path (to decide whether a
// non-primary stage should supply the final reply) and directly testable in
// isolation.
func stageQuality(stage coretypes.PipelineStage, records []map[string]any, extra map[string]any) float64 {
	switch stage {
	case coretypes.StageSpots:
		return recordQuality(records, 10, hasDescriptionAndRating)
	case coretypes.StageHotels:
		return recordQuality(records, 8, hasPriceAndRating)
	case coretypes.StageFood:
		return clamp01(float64(len(records)) / 5)
	case coretypes.StageItinerary:
		return itineraryQuality(records)
	case coretypes.StageCost:
		if len(extra) > 0 {
			if _, ok := extra["total"]; ok {
				return 0.8
			}
		}
		return 0
	default:
		return 0
	}
}

// recordQuality is count/cap clamped to [0,1] plus a bonus for the fraction
// of records that are "rich" per isRich, matching the spec's
// "min(count/N,1) + bonus for non-empty description+rating" shape.
func recordQuality(records []map[string]any, cap int, isRich func(map[string]any) bool) float64 {
	if len(records) == 0 {
		return 0
	}
	base := clamp01(float64(len(records)) / float64(cap))
	rich := 0
	for _, r := range records {
		if isRich(r) {
			rich++
		}
	}
	bonus := 0.2 * (float64(rich) / float64(len(records)))
	return clamp01(base + bonus)
}

func hasDescriptionAndRating(r map[string]any) bool {
	desc, _ := r["description"].(string)
	_, hasRating := r["rating"]
	return desc != "" && hasRating
}

func hasPriceAndRating(r map[string]any) bool {
	_, hasPrice := r["price"]
	_, hasRating := r["rating"]
	return hasPrice && hasRating
}

// itineraryQuality is min(days_with_activities/3,1) plus a flat bonus for
// having any itinerary at all.
func itineraryQuality(days []map[string]any) float64 {
	if len(days) == 0 {
		return 0
	}
	withActivities := 0
	for _, d := range days {
		if acts, ok := d["activities"].([]map[string]any); ok && len(acts) > 0 {
			withActivities++
		}
	}
	base := clamp01(float64(withActivities) / 3)
	return clamp01(base + 0.1)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// reRank picks the best-scoring non-primary stage to serve as the final
// reply instead of primaryStage's, per §4.1: it only qualifies when its
// score exceeds 0.7 AND either the primary's score is below 0.2 or the gap
// between them exceeds 0.4. Returns primaryStage unchanged when nothing
// qualifies.
func reRank(primaryStage coretypes.PipelineStage, scores map[coretypes.PipelineStage]float64) coretypes.PipelineStage {
	primaryScore := scores[primaryStage]
	best := primaryStage
	bestScore := primaryScore

	for stage, score := range scores {
		if stage == primaryStage {
			continue
		}
		if score <= 0.7 {
			continue
		}
		if primaryScore >= 0.2 && score-primaryScore <= 0.4 {
			continue
		}
		if score > bestScore {
			best = stage
			bestScore = score
		}
	}
	return best
}

// primaryStageForIntent maps a primary intent to the pipeline stage its own
// result would normally come from, for re-ranking comparison.
func primaryStageForIntent(intent coretypes.PrimaryIntent) coretypes.PipelineStage {
	switch intent {
	case coretypes.IntentFindSpot:
		return coretypes.StageSpots
	case coretypes.IntentFindHotel, coretypes.IntentBookHotel:
		return coretypes.StageHotels
	case coretypes.IntentFindFood:
		return coretypes.StageFood
	case coretypes.IntentPlanTrip:
		return coretypes.StageItinerary
	case coretypes.IntentCalculateCost:
		return coretypes.StageCost
	default:
		return coretypes.StageDiscovery
	}
}

// stageToIntent is primaryStageForIntent's inverse, used to pick the
// substitute single-intent formatter once re-ranking selects a stage.
func stageToIntent(stage coretypes.PipelineStage) coretypes.PrimaryIntent {
	switch stage {
	case coretypes.StageSpots:
		return coretypes.IntentFindSpot
	case coretypes.StageHotels:
		return coretypes.IntentFindHotel
	case coretypes.StageFood:
		return coretypes.IntentFindFood
	case coretypes.StageItinerary:
		return coretypes.IntentPlanTrip
	case coretypes.StageCost:
		return coretypes.IntentCalculateCost
	default:
		return coretypes.IntentGeneralQA
	}
}
