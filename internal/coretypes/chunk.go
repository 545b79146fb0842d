package coretypes

// MetadataEnvelope is attached to every Response Chunk (§6).
type MetadataEnvelope struct {
	Intent         PrimaryIntent   `json:"intent"`
	SubIntents     []PrimaryIntent `json:"sub_intents,omitempty"`
	Entities       Entities        `json:"entities"`
	Confidence     float64         `json:"confidence"`
	WorkflowState  WorkflowState   `json:"workflow_state"`
	FlowAction     FlowAction      `json:"flow_action,omitempty"`
	ContextRelation ContextRelation `json:"context_relation,omitempty"`
}

// Entities is the slot snapshot carried in the metadata envelope.
type Entities struct {
	Destination   string        `json:"destination,omitempty"`
	Duration      int           `json:"duration,omitempty"`
	PeopleCount   int           `json:"people_count,omitempty"`
	Budget        int64         `json:"budget,omitempty"`
	BudgetLevel   BudgetLevel   `json:"budget_level,omitempty"`
	Interests     []string      `json:"interests,omitempty"`
	CompanionType CompanionType `json:"companion_type,omitempty"`
}

// ResponseChunk is streamed (or, for a unary turn, singly returned) to the
// caller (§3, §6).
type ResponseChunk struct {
	Reply           string           `json:"reply"`
	UIType          UIType           `json:"ui_type"`
	UIData          map[string]any   `json:"ui_data,omitempty"`
	Status          ChunkStatus      `json:"status"`
	Metadata        MetadataEnvelope `json:"metadata"`
	Context         *Context         `json:"context,omitempty"`
	ExecutionTimeMs int64            `json:"execution_time_ms"`
}

// EntitiesFromContext builds the metadata Entities snapshot from a Context's
// slots.
func EntitiesFromContext(c *Context) Entities {
	return Entities{
		Destination:   c.Slots.Destination,
		Duration:      c.Slots.Duration,
		PeopleCount:   c.Slots.PeopleCount,
		Budget:        c.Slots.Budget,
		BudgetLevel:   c.Slots.BudgetLevel,
		Interests:     c.Slots.Interests,
		CompanionType: c.Slots.CompanionType,
	}
}
