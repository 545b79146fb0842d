package coretypes

// IntentRecord is produced once per turn by the Multi-Intent Extractor (§3).
// It never persists beyond the turn, but its slots may be promoted into the
// Context.
type IntentRecord struct {
	PrimaryIntent   PrimaryIntent   `json:"primary_intent"`
	SubIntents      []PrimaryIntent `json:"sub_intents"`
	Location        string          `json:"location,omitempty"`
	Duration        int             `json:"duration,omitempty"`
	Budget          int64           `json:"budget,omitempty"`
	BudgetLevel     BudgetLevel     `json:"budget_level,omitempty"`
	PeopleCount     int             `json:"people_count,omitempty"`
	CompanionType   CompanionType   `json:"companion_type,omitempty"`
	Interests       []string        `json:"interests,omitempty"`
	Keywords        []string        `json:"keywords,omitempty"`
	FlowAction      FlowAction      `json:"flow_action,omitempty"`
	ContextRelation ContextRelation `json:"context_relation,omitempty"`
	Confidence      float64         `json:"confidence"`

	// Accommodation mirrors the original extractor's "required|optional|none"
	// field (ported from original_source), used by the Planner to decide
	// whether to emit a find_hotels task for plan_trip.
	Accommodation string `json:"accommodation,omitempty"`

	// Extraction-path specific extras, never serialized onto Context.
	SelectedHotelName string `json:"selected_hotel_name,omitempty"`
	EntityNames       []string `json:"entity_names,omitempty"`
}

// HasSubIntent reports whether intent is present among SubIntents.
func (r *IntentRecord) HasSubIntent(intent PrimaryIntent) bool {
	for _, s := range r.SubIntents {
		if s == intent {
			return true
		}
	}
	return false
}

// RemoveSubIntents returns a copy of SubIntents with the given intents dropped.
func (r *IntentRecord) RemoveSubIntents(drop ...PrimaryIntent) []PrimaryIntent {
	dropSet := make(map[PrimaryIntent]bool, len(drop))
	for _, d := range drop {
		dropSet[d] = true
	}
	out := make([]PrimaryIntent, 0, len(r.SubIntents))
	for _, s := range r.SubIntents {
		if !dropSet[s] {
			out = append(out, s)
		}
	}
	return out
}
