package orchestrator

import (
	"context"
	"testing"

	"travelcore/internal/coretypes"
)

func TestStreamEmitsExactlyOneCompleteChunkLast(t *testing.T) {
	o := newTestOrchestrator()

	var chunks []*coretypes.ResponseChunk
	_, err := o.Stream(context.Background(), "sess-stream-1", "tìm địa điểm du lịch và khách sạn ở Đà Nẵng", func(c *coretypes.ResponseChunk) {
		chunks = append(chunks, c)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected at least one emitted chunk")
	}

	completeCount := 0
	for i, c := range chunks {
		if c.Status == coretypes.StatusComplete {
			completeCount++
			if i != len(chunks)-1 {
				t.Errorf("expected the complete chunk to be last, found it at index %d of %d", i, len(chunks))
			}
		}
	}
	if completeCount != 1 {
		t.Errorf("expected exactly one complete chunk, got %d", completeCount)
	}
}

func TestStreamPriorityBreakStopsAfterFirstNonEmptyStage(t *testing.T) {
	o := newTestOrchestrator()

	var chunks []*coretypes.ResponseChunk
	_, err := o.Stream(context.Background(), "sess-stream-2", "tìm địa điểm du lịch và khách sạn ở Đà Nẵng", func(c *coretypes.ResponseChunk) {
		chunks = append(chunks, c)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	partials := 0
	for _, c := range chunks {
		if c.Status == coretypes.StatusPartial {
			partials++
		}
	}
	if partials > 1 {
		t.Errorf("expected priority-break mode (fresh context starts at INITIAL) to stop after the first non-empty stage, got %d partial chunks", partials)
	}
}
