package aggregator

import (
	"testing"

	"travelcore/internal/coretypes"
)

func TestAggregateSingleIntentNoResultsReturnsUINone(t *testing.T) {
	chunk := Aggregate([]coretypes.PrimaryIntent{coretypes.IntentFindHotel}, Data{}, Options{Location: "Đà Nẵng"})
	if chunk.UIType != coretypes.UINone {
		t.Errorf("expected UINone for empty hotel results, got %v", chunk.UIType)
	}
	if chunk.Reply == "" {
		t.Error("expected a non-empty reply even when nothing was found")
	}
}

func TestAggregateSingleIntentHotelsPopulatesCards(t *testing.T) {
	hotels := []map[string]any{
		{"name": "Mường Thanh", "price": int64(1_200_000), "rating": float64(8.0)},
	}
	chunk := Aggregate([]coretypes.PrimaryIntent{coretypes.IntentFindHotel}, Data{Hotels: hotels}, Options{Location: "Đà Nẵng"})

	if chunk.Reply == "" {
		t.Fatal("expected non-empty reply")
	}
	if chunk.UIType != coretypes.UIHotelCards {
		t.Errorf("expected UIHotelCards, got %v", chunk.UIType)
	}
	cleaned, ok := chunk.UIData["hotels"].([]map[string]any)
	if !ok || len(cleaned) != 1 {
		t.Fatalf("expected one cleaned hotel, got %+v", chunk.UIData["hotels"])
	}
	if cleaned[0]["rating"] != 4.0 {
		t.Errorf("expected rating halved from 8.0 to 4.0, got %v", cleaned[0]["rating"])
	}
}

func TestAggregateMultiIntentOrdersSectionsAndSkipsHeaderWhileStreaming(t *testing.T) {
	data := Data{
		Spots:     []map[string]any{{"name": "Bà Nà Hills", "rating": float64(4.5)}},
		Hotels:    []map[string]any{{"name": "Mường Thanh", "price": int64(1_000_000)}},
		Itinerary: []map[string]any{{"day": 1, "activities": []map[string]any{{"time": "08:00", "activity": "Tham quan"}}}},
	}

	streaming := Aggregate(
		[]coretypes.PrimaryIntent{coretypes.IntentPlanTrip, coretypes.IntentFindHotel},
		data,
		Options{Location: "Hội An", Duration: 2, Streaming: true},
	)
	if containsSubstring(streaming.Reply, "Chuyến du lịch") {
		t.Error("expected header to be omitted while streaming")
	}

	unary := Aggregate(
		[]coretypes.PrimaryIntent{coretypes.IntentPlanTrip, coretypes.IntentFindHotel},
		data,
		Options{Location: "Hội An", Duration: 2},
	)
	if !containsSubstring(unary.Reply, "Chuyến du lịch") {
		t.Error("expected header present in non-streaming reply")
	}
	if unary.UIType != coretypes.UIComprehensive {
		t.Errorf("expected UIComprehensive for multi-intent, got %v", unary.UIType)
	}
}

func TestCleanHotelNormalizesTenScaleRating(t *testing.T) {
	cleaned := CleanHotel(map[string]any{"name": "X", "rating": float64(9.0), "price": int64(500_000)})
	if cleaned["rating"] != 4.5 {
		t.Errorf("expected 9.0/10 to normalize to 4.5/5, got %v", cleaned["rating"])
	}
}

func TestCleanSpotFallsBackToDefaultImage(t *testing.T) {
	cleaned := CleanSpot(map[string]any{"name": "X"})
	if cleaned["image"] != defaultSpotImage {
		t.Errorf("expected default spot image fallback, got %v", cleaned["image"])
	}
}

func containsSubstring(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
