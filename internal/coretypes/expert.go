package coretypes

// ExpertResult is the uniform envelope every expert returns (§3). Data
// records are always JSON-serializable maps with non-serializable fields
// (embeddings, internal ids) stripped before egress.
type ExpertResult struct {
	ExpertType      string           `json:"expert_type"`
	Success         bool             `json:"success"`
	Data            []map[string]any `json:"data"`
	Summary         string           `json:"summary,omitempty"`
	Error           string           `json:"error,omitempty"`
	ExecutionTimeMs int64            `json:"execution_time_ms"`
	Metadata        map[string]any   `json:"metadata,omitempty"`
}

// Failure builds a failure envelope, used by the dispatcher for any expert
// error or timeout (§4.4, §7).
func Failure(expertType string, err error, elapsedMs int64) *ExpertResult {
	return &ExpertResult{
		ExpertType:      expertType,
		Success:         false,
		Data:            []map[string]any{},
		Error:           err.Error(),
		ExecutionTimeMs: elapsedMs,
	}
}

// Issue is one verification problem found for an itinerary activity (§3).
type Issue struct {
	Type           string `json:"type"`
	SpotID         string `json:"spot_id"`
	SpotName       string `json:"spot_name"`
	CurrentSlot    string `json:"current_slot"`
	ExpectedSlots  []string `json:"expected_slots"`
	Day            int    `json:"day"`
	Severity       IssueSeverity `json:"severity"`
	Reason         string `json:"reason"`
	SuggestedFix   string `json:"suggested_fix,omitempty"`
}

// SuggestedMove is a proposed relocation of an activity.
type SuggestedMove struct {
	SpotID   string `json:"spot_id"`
	FromDay  int    `json:"from_day"`
	ToDay    int    `json:"to_day"`
	ToSlot   string `json:"to_slot"`
}

// VerificationResult is the Itinerary Verifier's output (§3).
type VerificationResult struct {
	Verdict         Verdict         `json:"verdict"`
	Issues          []Issue         `json:"issues"`
	SuggestedMoves  []SuggestedMove `json:"suggested_moves,omitempty"`
	AutoFixed       bool            `json:"auto_fixed"`
	FixedItinerary  *LastItinerary  `json:"fixed_itinerary,omitempty"`
}
