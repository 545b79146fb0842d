package experts

import (
	"context"
	"fmt"
	"time"

	"travelcore/internal/coretypes"
	"travelcore/internal/telemetry"
)

// Expert is the common contract every expert in this package implements —
// the uniform envelope contract of §4.4.
type Expert interface {
	ExpertType() string
	Execute(ctx context.Context, query string, params map[string]any) *coretypes.ExpertResult
}

// resultKeyByTaskType maps a finished task's type to the canonical parameter key
// its output is injected under for any downstream task that depends on it
// (itinerary/cost tasks read spots_data/food_data/hotel_data).
var resultKeyByTaskType = map[coretypes.TaskType]string{
	coretypes.TaskFindSpots:  "spots_data",
	coretypes.TaskFindHotels: "hotel_data",
	coretypes.TaskFindFood:   "food_data",
}

// Dispatcher owns the fixed task_type → expert registry and runs a single
// sub-task, injecting any dependency results into its parameters under
// their canonical key before calling the expert (§4.4's dispatcher
// contract). A panicking expert is recovered into a failure envelope,
// generalizing internal/http/middleware's Recovery handler from an HTTP
// response to an ExpertResult.
type Dispatcher struct {
	registry map[coretypes.TaskType]Expert
}

func NewDispatcher(spot, hotel, food, itinerary, cost, info Expert) *Dispatcher {
	return &Dispatcher{
		registry: map[coretypes.TaskType]Expert{
			coretypes.TaskFindSpots:       spot,
			coretypes.TaskFindHotels:      hotel,
			coretypes.TaskFindFood:        food,
			coretypes.TaskCreateItinerary: itinerary,
			coretypes.TaskCalculateCost:   cost,
			coretypes.TaskGeneralInfo:     info,
		},
	}
}

// Dispatch runs one sub-task, injecting the results of any tasks it
// depends on into its parameters first.
func (d *Dispatcher) Dispatch(ctx context.Context, task *coretypes.SubTask, priorResults map[string]*coretypes.ExpertResult, plan *coretypes.ExecutionPlan) (result *coretypes.ExpertResult) {
	start := time.Now()

	expert, ok := d.registry[task.TaskType]
	if !ok || expert == nil {
		return coretypes.Failure(string(task.TaskType), fmt.Errorf("no expert registered for task type %q", task.TaskType), time.Since(start).Milliseconds())
	}

	params := injectDependencies(task, priorResults, plan)

	defer func() {
		telemetry.ObserveExpert(expert.ExpertType(), result != nil && result.Success, time.Since(start))
	}()
	defer func() {
		if r := recover(); r != nil {
			result = coretypes.Failure(expert.ExpertType(), fmt.Errorf("expert panic: %v", r), time.Since(start).Milliseconds())
		}
	}()

	return expert.Execute(ctx, task.ReformulatedQuery, params)
}

// injectDependencies copies a task's parameters and adds, for each
// dependency id, the finished expert's Data slice under the canonical key
// for that dependency's task type.
func injectDependencies(task *coretypes.SubTask, priorResults map[string]*coretypes.ExpertResult, plan *coretypes.ExecutionPlan) map[string]any {
	params := make(map[string]any, len(task.Parameters)+len(task.DependsOn))
	for k, v := range task.Parameters {
		params[k] = v
	}

	for _, depID := range task.DependsOn {
		depResult, ok := priorResults[depID]
		if !ok || depResult == nil || !depResult.Success {
			continue
		}
		depTask := plan.TaskByID(depID)
		if depTask == nil {
			continue
		}
		key, ok := resultKeyByTaskType[depTask.TaskType]
		if !ok {
			continue
		}
		params[key] = depResult.Data
	}

	return params
}
