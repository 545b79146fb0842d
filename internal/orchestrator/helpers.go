package orchestrator

import (
	"context"

	"travelcore/internal/aggregator"
	"travelcore/internal/coretypes"
	"travelcore/internal/experts"
	"travelcore/internal/session"
)

// mergeSlots folds a freshly extracted IntentRecord's slots into the running
// Context per §4.1 step 5: destination/duration always override when newly
// present, everything else only overrides when the extractor actually
// surfaced a new value this turn.
func mergeSlots(c *coretypes.Context, rec *coretypes.IntentRecord) {
	if rec.Location != "" {
		c.Slots.Destination = rec.Location
	}
	if rec.Duration > 0 {
		c.Slots.Duration = rec.Duration
	}
	if rec.Budget > 0 {
		c.Slots.Budget = rec.Budget
	}
	if rec.BudgetLevel != "" {
		c.Slots.BudgetLevel = rec.BudgetLevel
	}
	if rec.PeopleCount > 0 {
		c.Slots.PeopleCount = rec.PeopleCount
	}
	if rec.CompanionType != "" {
		c.Slots.CompanionType = rec.CompanionType
	}
	if len(rec.Interests) > 0 {
		c.Slots.Interests = rec.Interests
	}
	c.Workflow.LastIntent = rec.PrimaryIntent
}

// resolveBudget fills in Slots.Budget from a free-text mention ("khoảng 5
// triệu") when the extractor didn't already resolve a numeric budget this
// turn, using the same cascade the Hotel/Food experts would otherwise apply
// independently per-query (§4.2's budget-resolution note).
func resolveBudget(ctx context.Context, parser *experts.BudgetParser, c *coretypes.Context, utterance string) {
	if c.Slots.Budget > 0 || parser == nil {
		return
	}
	r := parser.Parse(ctx, utterance, string(c.Slots.BudgetLevel))
	switch {
	case r.MaxPrice > 0:
		c.Slots.Budget = int64(r.MaxPrice)
	case r.MinPrice > 0:
		c.Slots.Budget = int64(r.MinPrice)
	}
}

// allIntents returns rec's primary intent plus its deduplicated sub-intents,
// in precedence order, for the aggregator's multi-intent path.
func allIntents(rec *coretypes.IntentRecord) []coretypes.PrimaryIntent {
	out := []coretypes.PrimaryIntent{rec.PrimaryIntent}
	seen := map[coretypes.PrimaryIntent]bool{rec.PrimaryIntent: true}
	for _, s := range rec.SubIntents {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func aggregateOptions(c *coretypes.Context) aggregator.Options {
	return aggregator.Options{
		Location:    c.Slots.Destination,
		Duration:    c.Slots.Duration,
		Budget:      string(c.Slots.BudgetLevel),
		PeopleCount: c.Slots.PeopleCount,
	}
}

// hotelCandidates reduces a slice of raw records to the Candidate shape
// session.ResolveReference expects.
func hotelCandidates(records []map[string]any) []session.Candidate {
	out := make([]session.Candidate, 0, len(records))
	for _, r := range records {
		id, _ := r["id"].(string)
		name, _ := r["name"].(string)
		out = append(out, session.Candidate{ID: id, Name: name})
	}
	return out
}

func findByID(records []map[string]any, id string) (map[string]any, bool) {
	for _, r := range records {
		if rid, _ := r["id"].(string); rid == id && id != "" {
			return r, true
		}
	}
	return nil, false
}

// findByName resolves name against records' Candidate projection and
// returns the matching raw record.
func findByName(records []map[string]any, name string) (map[string]any, bool) {
	match, ok := session.ResolveReference(name, hotelCandidates(records))
	if !ok {
		return nil, false
	}
	return findByID(records, match.ID)
}

func latLng(record map[string]any) (lat, lng float64, ok bool) {
	lat, latOK := toFloatOrch(record["lat"])
	lng, lngOK := toFloatOrch(record["lng"])
	return lat, lng, latOK && lngOK
}

func toFloatOrch(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func toInt64Cost(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	}
	return 0, false
}

func stringFieldOr(m map[string]any, key, fallback string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
