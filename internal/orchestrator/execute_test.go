package orchestrator

import (
	"context"
	"fmt"
	"testing"

	"travelcore/internal/aggregator"
	"travelcore/internal/coretypes"
	"travelcore/internal/experts"
)

type fakeExpert struct {
	expertType string
	data       []map[string]any
	fail       bool
	panics     bool
}

func (f *fakeExpert) ExpertType() string { return f.expertType }

func (f *fakeExpert) Execute(ctx context.Context, query string, params map[string]any) *coretypes.ExpertResult {
	if f.panics {
		panic("boom")
	}
	if f.fail {
		return coretypes.Failure(f.expertType, fmt.Errorf("synthetic failure"), 0)
	}
	return &coretypes.ExpertResult{ExpertType: f.expertType, Success: true, Data: f.data}
}

func TestExecutePlanIsolatesOneFailingExpert(t *testing.T) {
	spot := &fakeExpert{expertType: "spot", data: []map[string]any{{"name": "Bà Nà Hills"}}}
	hotel := &fakeExpert{expertType: "hotel", fail: true}
	dispatcher := experts.NewDispatcher(spot, hotel, nil, nil, nil, nil)

	plan := &coretypes.ExecutionPlan{Tasks: []*coretypes.SubTask{
		{TaskID: "s1", TaskType: coretypes.TaskFindSpots, Priority: 0},
		{TaskID: "h1", TaskType: coretypes.TaskFindHotels, Priority: 0},
	}}

	results := executePlan(context.Background(), dispatcher, plan)
	if !results["s1"].Success {
		t.Errorf("expected spots task to succeed, got %+v", results["s1"])
	}
	if results["h1"].Success {
		t.Error("expected hotel task to fail")
	}

	data := collectData(plan, results)
	if len(data.Spots) != 1 {
		t.Errorf("expected one spot collected despite the sibling failure, got %d", len(data.Spots))
	}
	if len(data.Hotels) != 0 {
		t.Errorf("expected no hotels collected from the failed task, got %d", len(data.Hotels))
	}
}

func TestRunTasksParallelRecoversFromPanickingExpert(t *testing.T) {
	spot := &fakeExpert{expertType: "spot", panics: true}
	dispatcher := experts.NewDispatcher(spot, nil, nil, nil, nil, nil)

	plan := &coretypes.ExecutionPlan{Tasks: []*coretypes.SubTask{
		{TaskID: "s1", TaskType: coretypes.TaskFindSpots, Priority: 0},
	}}

	results := runTasksParallel(context.Background(), dispatcher, plan.Tasks, nil, plan)
	if results["s1"].Success {
		t.Fatal("expected panic to surface as a failure result, not propagate")
	}
}

func TestMergeIntoContextPushesOnlyNonEmptyBuckets(t *testing.T) {
	c := coretypes.NewContext("sess-1")
	mergeIntoContext(c, aggregator.Data{Spots: []map[string]any{{"name": "Bà Nà Hills"}}})
	if len(c.Recent.LastSpots) != 1 {
		t.Errorf("expected one recent spot pushed, got %d", len(c.Recent.LastSpots))
	}
	if len(c.Recent.LastHotels) != 0 {
		t.Errorf("expected no recent hotels pushed, got %d", len(c.Recent.LastHotels))
	}
}
