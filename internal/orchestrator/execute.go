package orchestrator

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"travelcore/internal/aggregator"
	"travelcore/internal/coretypes"
	"travelcore/internal/experts"
)

// executePlan runs every task in plan, one priority level at a time, fanning
// each level out concurrently via runTasksParallel (§4.9: within-stage
// concurrent, across-stage sequential — priority level doubles as the
// dependency barrier since the Planner only ever makes a task depend on a
// lower-priority one). Results accumulate across levels so later levels'
// injectDependencies sees every earlier level's output.
func executePlan(ctx context.Context, dispatcher *experts.Dispatcher, plan *coretypes.ExecutionPlan) map[string]*coretypes.ExpertResult {
	results := make(map[string]*coretypes.ExpertResult, len(plan.Tasks))
	for _, level := range plan.GetParallelTasks() {
		levelResults := runTasksParallel(ctx, dispatcher, level, results, plan)
		for id, r := range levelResults {
			results[id] = r
		}
	}
	return results
}

// runTasksParallel dispatches every task in tasks concurrently via
// errgroup.WithContext, generalizing the fan-out/fan-in pattern
// profile_service.go uses for independent sub-queries. Dispatch already
// turns expert errors and panics into a failure ExpertResult, so no
// goroutine here ever returns a non-nil error — one failing expert never
// cancels its siblings (§4.1's failure-isolation guarantee).
func runTasksParallel(ctx context.Context, dispatcher *experts.Dispatcher, tasks []*coretypes.SubTask, priorResults map[string]*coretypes.ExpertResult, plan *coretypes.ExecutionPlan) map[string]*coretypes.ExpertResult {
	out := make(map[string]*coretypes.ExpertResult, len(tasks))
	if len(tasks) == 0 {
		return out
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			result := dispatcher.Dispatch(gctx, task, priorResults, plan)
			mu.Lock()
			out[task.TaskID] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// collectData folds a finished task set's results into the aggregator's
// Data shape, skipping failed or missing results, by task type rather than
// task id so a replanned task still lands in the right bucket.
func collectData(plan *coretypes.ExecutionPlan, results map[string]*coretypes.ExpertResult) aggregator.Data {
	var data aggregator.Data
	for _, task := range plan.Tasks {
		res, ok := results[task.TaskID]
		if !ok || res == nil || !res.Success {
			continue
		}
		switch task.TaskType {
		case coretypes.TaskFindSpots:
			data.Spots = append(data.Spots, res.Data...)
		case coretypes.TaskFindHotels:
			data.Hotels = append(data.Hotels, res.Data...)
		case coretypes.TaskFindFood:
			data.Food = append(data.Food, res.Data...)
		case coretypes.TaskCreateItinerary:
			data.Itinerary = append(data.Itinerary, res.Data...)
		case coretypes.TaskCalculateCost:
			if len(res.Data) > 0 {
				data.Costs = res.Data[0]
			}
		}
	}
	return data
}

// mergeIntoContext pushes freshly fetched candidates into the recent-result
// caches so later ordinal/name references ("cái thứ 2") can resolve against
// them (§4.1 step 10).
func mergeIntoContext(c *coretypes.Context, data aggregator.Data) {
	if len(data.Spots) > 0 {
		c.Recent.PushRecentSpots(data.Spots)
	}
	if len(data.Hotels) > 0 {
		c.Recent.PushRecentHotels(data.Hotels)
	}
	if len(data.Food) > 0 {
		c.Recent.PushRecentFoods(data.Food)
	}
}
