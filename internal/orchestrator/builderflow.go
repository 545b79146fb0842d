package orchestrator

import (
	"context"

	"travelcore/internal/aggregator"
	"travelcore/internal/builder"
	"travelcore/internal/coretypes"
	"travelcore/internal/experts"
	"travelcore/internal/verifier"
	"travelcore/internal/workflow"
)

// startBuilder seeds a brand-new builder sub-dialog for a plan_trip turn
// (§4.6 "Entering the builder"). It requires destination and duration, and
// otherwise prompts for them before touching the builder at all.
func (o *Orchestrator) startBuilder(ctx context.Context, c *coretypes.Context, rec *coretypes.IntentRecord) *coretypes.ResponseChunk {
	if rec.Location != "" {
		c.Slots.Destination = rec.Location
	}
	if rec.Duration > 0 {
		c.Slots.Duration = rec.Duration
	}
	if c.Slots.Destination == "" {
		return &coretypes.ResponseChunk{Reply: "Bạn muốn đi du lịch ở đâu?", UIType: coretypes.UIText}
	}
	if c.Slots.Duration <= 0 {
		return &coretypes.ResponseChunk{Reply: "Bạn dự định đi trong bao nhiêu ngày?", UIType: coretypes.UIText}
	}

	candidates := fetchSpotCandidates(ctx, o.Dispatcher, c.Slots.Destination, rec.Interests)
	builder.Init(c, c.Slots.Destination, c.Slots.Duration, c.Slots.Budget, c.Slots.PeopleCount)
	workflow.ApplyTransitionTriggers(c, rec, true, false, false)

	if c.Builder.WaitingForStartDate {
		c.Builder.AvailableSpots = candidates
		return &coretypes.ResponseChunk{Reply: "Bạn dự định khởi hành ngày nào? (hoặc trả lời \"không biết\" để mình gợi ý)", UIType: coretypes.UIText}
	}

	step := builder.OfferDay(c, candidates)
	return stepToChunk(step)
}

// continueBuilder routes an in-flow turn to the builder's start-date step or
// its main per-day input handler, depending on which sub-step is pending
// (§4.6 steps 1-4).
func (o *Orchestrator) continueBuilder(ctx context.Context, c *coretypes.Context, utterance string) *coretypes.ResponseChunk {
	b := c.Builder
	var step builder.StepResult
	if b.WaitingForStartDate || b.WaitingForMonth {
		step = builder.HandleStartDate(ctx, c, utterance, o.Weather)
	} else {
		step = builder.HandleInput(c, utterance)
	}
	return o.afterBuilderStep(ctx, c, step)
}

// afterBuilderStep dispatches on a StepResult's terminal flags: abandonment
// (plain cancel or "auto"), verification-ready (the last day was just
// filled), or a plain mid-flow reply (§4.6 steps 4-5).
func (o *Orchestrator) afterBuilderStep(ctx context.Context, c *coretypes.Context, step builder.StepResult) *coretypes.ResponseChunk {
	switch {
	case step.Abandoned && step.AutoGenerate:
		return o.autoGenerateItinerary(ctx, c)
	case step.Abandoned:
		c.Builder = nil
		return &coretypes.ResponseChunk{Reply: "Đã huỷ việc lập lịch trình chi tiết. Bạn muốn mình giúp gì khác không?", UIType: coretypes.UIText}
	case step.NeedsVerify:
		return o.finalizeItinerary(ctx, c)
	default:
		return stepToChunk(step)
	}
}

// autoGenerateItinerary replaces the builder's step-by-step flow with one
// LLM-proposed full plan (§4.6 "Auto-generate mode").
func (o *Orchestrator) autoGenerateItinerary(ctx context.Context, c *coretypes.Context) *coretypes.ResponseChunk {
	b := c.Builder
	state, err := builder.AutoGenerate(ctx, o.LLM, b.Location, b.TotalDays, b.Budget, b.AvailableSpots)
	if err != nil {
		c.Builder = nil
		return &coretypes.ResponseChunk{Reply: "Mình chưa thể tự động lập lịch trình lúc này, bạn thử chọn từng địa điểm nhé.", UIType: coretypes.UIText, Status: coretypes.StatusError}
	}
	c.Builder = state
	return o.finalizeItinerary(ctx, c)
}

// finalizeItinerary converts the builder's day plan into a LastItinerary,
// runs the Verifier, auto-fixes on a Fail verdict, clears the builder, and
// hands the traveler a hotel selection prompt (§4.6 step 6, §4.4.7).
func (o *Orchestrator) finalizeItinerary(ctx context.Context, c *coretypes.Context) *coretypes.ResponseChunk {
	b := c.Builder
	days := make([]coretypes.ItineraryDay, 0, len(b.DaysPlan))
	for day := 1; day <= b.TotalDays; day++ {
		days = append(days, coretypes.ItineraryDay{Day: day, Spots: b.DaysPlan[day]})
	}

	result := verifier.Verify(ctx, o.LLM, days)
	if result.Verdict == coretypes.VerdictFail {
		fixed, changes := verifier.AutoFix(days, result.Issues)
		days = fixed
		result.AutoFixed = true
		result.Issues = append(result.Issues, issuesFromChanges(changes)...)
	}

	c.LastItinerary = &coretypes.LastItinerary{
		Location:     b.Location,
		Duration:     b.TotalDays,
		Days:         days,
		Verification: result,
	}
	c.Workflow.State = coretypes.StateChoosingHotel
	c.Builder = nil

	hotels := fetchHotelCandidates(ctx, o.Dispatcher, c.LastItinerary.Location, c.Slots.Budget, c.Slots.BudgetLevel)
	c.Recent.PushRecentHotels(hotels)
	cleanedHotels := make([]map[string]any, 0, len(hotels))
	for _, h := range hotels {
		cleanedHotels = append(cleanedHotels, aggregator.CleanHotel(h))
	}

	return &coretypes.ResponseChunk{
		Reply:  "Lịch trình đã hoàn tất! Bây giờ hãy chọn một khách sạn cho chuyến đi nhé.",
		UIType: coretypes.UIHotelCards,
		UIData: map[string]any{"itinerary": c.LastItinerary, "hotels": cleanedHotels},
	}
}

// issuesFromChanges wraps AutoFix's human-readable change log into Issue
// records purely so they surface through the same Issues list the caller
// already renders; severity is Warning since these are already-applied fixes.
func issuesFromChanges(changes []string) []coretypes.Issue {
	out := make([]coretypes.Issue, 0, len(changes))
	for _, msg := range changes {
		out = append(out, coretypes.Issue{Type: "auto_fixed", Severity: coretypes.SeverityWarning, Reason: msg})
	}
	return out
}

func fetchSpotCandidates(ctx context.Context, dispatcher *experts.Dispatcher, location string, interests []string) []map[string]any {
	task := &coretypes.SubTask{
		TaskID:     "spots_adhoc",
		TaskType:   coretypes.TaskFindSpots,
		Parameters: map[string]any{"location": location, "interests": interests, "limit": 20},
	}
	plan := &coretypes.ExecutionPlan{Tasks: []*coretypes.SubTask{task}}
	result := dispatcher.Dispatch(ctx, task, nil, plan)
	if !result.Success {
		return nil
	}
	return result.Data
}

func fetchHotelCandidates(ctx context.Context, dispatcher *experts.Dispatcher, location string, budget int64, level coretypes.BudgetLevel) []map[string]any {
	task := &coretypes.SubTask{
		TaskID:     "hotels_adhoc",
		TaskType:   coretypes.TaskFindHotels,
		Parameters: map[string]any{"location": location, "budget": budget, "budget_level": level},
	}
	plan := &coretypes.ExecutionPlan{Tasks: []*coretypes.SubTask{task}}
	result := dispatcher.Dispatch(ctx, task, nil, plan)
	if !result.Success {
		return nil
	}
	return result.Data
}

func stepToChunk(step builder.StepResult) *coretypes.ResponseChunk {
	return &coretypes.ResponseChunk{
		Reply:  step.Reply,
		UIType: step.UIType,
		UIData: step.UIData,
		Status: coretypes.StatusPartial,
	}
}
