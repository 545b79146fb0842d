// Package orchestrator is the Master Orchestrator (C9): the single entry
// point that runs one conversational turn end to end — intent extraction,
// the Anti-Greedy flow-control gate, the StateGuard matrix, special-intent
// short-circuits, planning, stage-grouped expert execution, and response
// aggregation. No original_source file owns this logic (the Python source
// inlines the equivalent of all of this into its top-level chat handler);
// it is wired here from the already-grounded internal/intent,
// internal/workflow, internal/planner, internal/experts, internal/builder,
// internal/verifier and internal/aggregator packages, per spec §4.1 and
// §4.9 — the same re-architecture precedent internal/workflow/guard.go
// already documents for the StateGuard matrix.
package orchestrator

import (
	"context"
	"time"

	"travelcore/internal/aggregator"
	"travelcore/internal/coretypes"
	"travelcore/internal/experts"
	"travelcore/internal/intent"
	"travelcore/internal/llm"
	"travelcore/internal/planner"
	"travelcore/internal/session"
	"travelcore/internal/telemetry"
	"travelcore/internal/weather"
	"travelcore/internal/workflow"
)

// Orchestrator wires every decision-core component into one per-turn entry
// point. The document store, dispatcher, LLM client and weather client are
// process-wide singletons safe for concurrent use across sessions (§5);
// Context is the only per-session mutable state, and a single session's
// turns are expected to be serialized by the caller.
type Orchestrator struct {
	Intent     *intent.Extractor
	Dispatcher *experts.Dispatcher
	Budget     *experts.BudgetParser
	LLM        llm.Client // used by the Builder's auto-generate mode and the Verifier's critic pass
	Weather    weather.Client
	Sessions   *session.Store
}

// TurnResult is one turn's output: the Response Chunk plus the Context the
// caller should persist (the orchestrator already does this itself when
// Sessions is set, but callers that don't use the Store still get it back).
type TurnResult struct {
	Chunk   *coretypes.ResponseChunk
	Context *coretypes.Context
}

// Turn runs one non-streaming conversational turn (§4.1's numbered
// algorithm).
func (o *Orchestrator) Turn(ctx context.Context, sessionID, message string) (*TurnResult, error) {
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
		return o.finish(ctx, c, chunk, rec, start), nil
	}

	if guard := workflow.CheckGuard(c, rec.PrimaryIntent); !guard.Allowed {
		chunk := &coretypes.ResponseChunk{Reply: guard.Prompt, UIType: coretypes.UIText, Status: coretypes.StatusBlocked}
		return o.finish(ctx, c, chunk, rec, start), nil
	}

	if chunk, handled := o.handleSpecialIntent(ctx, c, rec, message); handled {
		return o.finish(ctx, c, chunk, rec, start), nil
	}

	if rec.PrimaryIntent == coretypes.IntentPlanTrip && c.Builder == nil {
		chunk := o.startBuilder(ctx, c, rec)
		return o.finish(ctx, c, chunk, rec, start), nil
	}

	plan := planner.Plan(rec)
	results := executePlan(ctx, o.Dispatcher, plan)
	data := collectData(plan, results)
	mergeIntoContext(c, data)
	workflow.ApplyTransitionTriggers(c, rec, false, false, c.Selections.SelectedHotel != nil)

	chunk := aggregator.Aggregate(allIntents(rec), data, aggregateOptions(c))
	return o.finish(ctx, c, chunk, rec, start), nil
}

func (o *Orchestrator) restoreContext(ctx context.Context, sessionID string) (*coretypes.Context, error) {
	if o.Sessions == nil {
		return coretypes.NewContext(sessionID), nil
	}
	return o.Sessions.Load(ctx, sessionID)
}

// decorate attaches the metadata envelope, execution time and a Context
// snapshot to chunk. Called both for the final chunk of a turn and for
// every partial chunk of a streamed one, so every chunk a caller sees
// carries an independent, monotonically-growing Context snapshot (§5).
func decorate(chunk *coretypes.ResponseChunk, c *coretypes.Context, rec *coretypes.IntentRecord, start time.Time) *coretypes.ResponseChunk {
	chunk.Metadata = coretypes.MetadataEnvelope{
		Intent:          rec.PrimaryIntent,
		SubIntents:      rec.SubIntents,
		Entities:        coretypes.EntitiesFromContext(c),
		Confidence:      rec.Confidence,
		WorkflowState:   c.Workflow.State,
		FlowAction:      rec.FlowAction,
		ContextRelation: rec.ContextRelation,
	}
	chunk.ExecutionTimeMs = time.Since(start).Milliseconds()
	if snapshot, err := c.Clone(); err == nil {
		chunk.Context = snapshot
	}
	return chunk
}

// finish appends the assistant's reply to chat history, decorates the
// chunk, persists the Context if a Store is configured, and returns the
// TurnResult (§4.1 step 11 / §6's persistence contract).
func (o *Orchestrator) finish(ctx context.Context, c *coretypes.Context, chunk *coretypes.ResponseChunk, rec *coretypes.IntentRecord, start time.Time) *TurnResult {
	if chunk.Status == "" {
		chunk.Status = coretypes.StatusComplete
	}
	c.AppendChatHistory("assistant", chunk.Reply)
	decorate(chunk, c, rec, start)
	telemetry.ObserveTurn(string(rec.PrimaryIntent), string(chunk.Status), time.Since(start))

	if o.Sessions != nil {
		_ = o.Sessions.Save(ctx, c)
	}

	return &TurnResult{Chunk: chunk, Context: c}
}
