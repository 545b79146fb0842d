package orchestrator

import (
	"context"
	"time"

	"travelcore/internal/aggregator"
	"travelcore/internal/coretypes"
	"travelcore/internal/planner"
	"travelcore/internal/workflow"
)

// priorityBreakStates are the workflow states where streaming stops after
// the first stage that yields any content (§4.1 "priority-break mode") —
// the traveler is still mid-flow picking spots or a hotel, so piling on
// every other stage's section in the same turn would bury the one thing
// they're waiting on.
var priorityBreakStates = map[coretypes.WorkflowState]bool{
	coretypes.StateInitial:       true,
	coretypes.StateChoosingSpots: true,
	coretypes.StateChoosingHotel: true,
}

// Stream runs one turn stage-by-stage, emitting a partial chunk after each
// non-empty pipeline stage and a final complete chunk at the end (§4.1,
// §4.9, §5's ordering guarantee). Its front matter — restore, extract,
// merge, anti-greedy, short-circuit, guard, special-intent, builder-start —
// mirrors Turn exactly; only the planner execution differs.
func (o *Orchestrator) Stream(ctx context.Context, sessionID, message string, emit func(*coretypes.ResponseChunk)) (*TurnResult, error) {
	start := time.Now()

	c, err := o.restoreContext(ctx, sessionID)
	if err != nil {
		c = coretypes.NewContext(sessionID)
	}
	c.AppendChatHistory("user", message)

	rec, err := o.Intent.Extract(ctx, message, c.Slots)
	if err != nil {
		rec = &coretypes.IntentRecord{PrimaryIntent: coretypes.IntentGeneralQA}
	}
	mergeSlots(c, rec)
	resolveBudget(ctx, o.Budget, c, message)

	if backtrack := workflow.ApplyAntiGreedyRules(c, rec, message); backtrack {
		workflow.Backtrack(c)
	}

	if workflow.ShouldShortCircuitToBuilder(c, rec) {
		chunk := o.continueBuilder(ctx, c, message)
		final := o.finish(ctx, c, chunk, rec, start)
		emit(final.Chunk)
		return final, nil
	}

	if guard := workflow.CheckGuard(c, rec.PrimaryIntent); !guard.Allowed {
		chunk := &coretypes.ResponseChunk{Reply: guard.Prompt, UIType: coretypes.UIText, Status: coretypes.StatusBlocked}
		final := o.finish(ctx, c, chunk, rec, start)
		emit(final.Chunk)
		return final, nil
	}

	if chunk, handled := o.handleSpecialIntent(ctx, c, rec, message); handled {
		final := o.finish(ctx, c, chunk, rec, start)
		emit(final.Chunk)
		return final, nil
	}

	if rec.PrimaryIntent == coretypes.IntentPlanTrip && c.Builder == nil {
		chunk := o.startBuilder(ctx, c, rec)
		final := o.finish(ctx, c, chunk, rec, start)
		emit(final.Chunk)
		return final, nil
	}

	plan := planner.Plan(rec)
	breakAfterFirst := priorityBreakStates[c.Workflow.State]

	results := make(map[string]*coretypes.ExpertResult, len(plan.Tasks))
	var collected aggregator.Data
	scores := map[coretypes.PipelineStage]float64{}

	for _, stage := range coretypes.StageOrder {
		tasks := tasksForStage(plan, stage)
		if len(tasks) == 0 {
			continue
		}

		levelResults := runTasksParallel(ctx, o.Dispatcher, tasks, results, plan)
		for id, r := range levelResults {
			results[id] = r
		}

		stageData := collectData(&coretypes.ExecutionPlan{Tasks: tasks}, levelResults)
		mergeData(&collected, stageData)

		records, extra := stageRecords(stage, stageData)
		scores[stage] = stageQuality(stage, records, extra)

		if !hasContent(stageData) {
			continue
		}

		partial := aggregator.Aggregate(allIntents(rec), stageData, aggregateOptions(c))
		partial.Status = coretypes.StatusPartial
		decorate(partial, c, rec, start)
		emit(partial)

		if breakAfterFirst {
			break
		}
	}

	mergeIntoContext(c, collected)
	workflow.ApplyTransitionTriggers(c, rec, false, false, c.Selections.SelectedHotel != nil)

	finalIntents := allIntents(rec)
	if len(finalIntents) == 1 {
		primaryStage := primaryStageForIntent(finalIntents[0])
		if chosen := reRank(primaryStage, scores); chosen != primaryStage {
			rerankedIntent := stageToIntent(chosen)
			finalIntents = []coretypes.PrimaryIntent{rerankedIntent}
			rerecord := *rec
			rerecord.PrimaryIntent = rerankedIntent
			rec = &rerecord
		}
	}

	chunk := aggregator.Aggregate(finalIntents, collected, aggregateOptions(c))
	final := o.finish(ctx, c, chunk, rec, start)
	emit(final.Chunk)
	return final, nil
}

func tasksForStage(plan *coretypes.ExecutionPlan, stage coretypes.PipelineStage) []*coretypes.SubTask {
	var out []*coretypes.SubTask
	for _, t := range plan.Tasks {
		if t.Stage() == stage {
			out = append(out, t)
		}
	}
	return out
}

// mergeData accumulates one stage's aggregator.Data into the running total
// collected across the whole turn.
func mergeData(total *aggregator.Data, stage aggregator.Data) {
	total.Spots = append(total.Spots, stage.Spots...)
	total.Hotels = append(total.Hotels, stage.Hotels...)
	total.Food = append(total.Food, stage.Food...)
	total.Itinerary = append(total.Itinerary, stage.Itinerary...)
	if len(stage.Costs) > 0 {
		total.Costs = stage.Costs
	}
}

func hasContent(d aggregator.Data) bool {
	return len(d.Spots) > 0 || len(d.Hotels) > 0 || len(d.Food) > 0 || len(d.Itinerary) > 0 || len(d.Costs) > 0
}

// stageRecords picks the records/extra map stageQuality should score for a
// given pipeline stage's slice of aggregator.Data.
func stageRecords(stage coretypes.PipelineStage, d aggregator.Data) ([]map[string]any, map[string]any) {
	switch stage {
	case coretypes.StageSpots:
		return d.Spots, nil
	case coretypes.StageHotels:
		return d.Hotels, nil
	case coretypes.StageFood:
		return d.Food, nil
	case coretypes.StageItinerary:
		return d.Itinerary, nil
	case coretypes.StageCost:
		return nil, d.Costs
	default:
		return nil, nil
	}
}
