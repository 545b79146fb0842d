package orchestrator

import (
	"context"
	"testing"

	"travelcore/internal/coretypes"
	"travelcore/internal/experts"
	"travelcore/internal/intent"
)

func newTestOrchestrator() *Orchestrator {
	spot := &fakeExpert{expertType: "spot", data: []map[string]any{
		{"id": "s1", "name": "Bà Nà Hills", "description": "Khu du lịch", "rating": 4.5, "lat": 15.9, "lng": 107.9},
	}}
	hotel := &fakeExpert{expertType: "hotel", data: []map[string]any{
		{"id": "h1", "name": "Mường Thanh", "price": int64(1_000_000), "rating": 4.0},
	}}
	dispatcher := experts.NewDispatcher(spot, hotel, nil, nil, nil, nil)
	return &Orchestrator{
		Intent:     intent.New(nil),
		Dispatcher: dispatcher,
	}
}

func TestTurnGreetingShortCircuitsWithoutTouchingPlanner(t *testing.T) {
	o := newTestOrchestrator()
	result, err := o.Turn(context.Background(), "sess-1", "xin chào")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Chunk.UIType != coretypes.UIGreeting {
		t.Errorf("expected UIGreeting, got %v", result.Chunk.UIType)
	}
	if result.Chunk.Status != coretypes.StatusComplete {
		t.Errorf("expected StatusComplete, got %v", result.Chunk.Status)
	}
}

func TestTurnCalculateCostBlockedWithoutSelectedHotel(t *testing.T) {
	o := newTestOrchestrator()
	result, err := o.Turn(context.Background(), "sess-2", "tính chi phí chuyến đi giúp mình")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Chunk.Status != coretypes.StatusBlocked {
		t.Errorf("expected StatusBlocked without a selected hotel, got %v", result.Chunk.Status)
	}
}

func TestTurnFindSpotRunsThroughPlannerAndAggregator(t *testing.T) {
	o := newTestOrchestrator()
	result, err := o.Turn(context.Background(), "sess-3", "tìm địa điểm du lịch ở Đà Nẵng")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Chunk.Reply == "" {
		t.Error("expected a non-empty reply")
	}
	if len(result.Context.Recent.LastSpots) == 0 {
		t.Error("expected the dispatched spot to be cached into recent results")
	}
}

func TestTurnPlanTripWithoutDestinationPromptsForIt(t *testing.T) {
	o := newTestOrchestrator()
	result, err := o.Turn(context.Background(), "sess-4", "bắt đầu lên kế hoạch du lịch giúp mình")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Context.Builder != nil {
		t.Error("expected builder not to start without a destination")
	}
	if result.Chunk.Reply == "" {
		t.Error("expected a prompt for the missing destination")
	}
}
