// Package intent is the Multi-Intent Extractor (C3): pre-LLM high-confidence
// pattern checks, an LLM JSON extraction pass, and a regex fallback —
// grounded on original_source's IntentExtractor (FPT AI / Saola client,
// here generalized to the llm.Client interface).
package intent

import (
	"context"
	"strings"

	"travelcore/internal/coretypes"
	"travelcore/internal/llm"
)

// Extractor turns a raw utterance plus the running Slots into an
// IntentRecord (§3).
type Extractor struct {
	llm llm.Client
}

// New builds an Extractor. llmClient may be nil, in which case every turn
// goes through the regex fallback only (useful for tests / degraded mode).
func New(llmClient llm.Client) *Extractor {
	return &Extractor{llm: llmClient}
}

// Extract resolves query against the current Slots (§4.1, §4.2).
func (e *Extractor) Extract(ctx context.Context, query string, slots coretypes.Slots) (*coretypes.IntentRecord, error) {
	lower := strings.ToLower(query)

	if isBookingRequest(lower) {
		return &coretypes.IntentRecord{
			PrimaryIntent: coretypes.IntentBookHotel,
			Location:      slots.Destination,
			SelectedHotelName: extractHotelName(query),
			Confidence:    0.95,
		}, nil
	}

	if isBudgetCalculationRequest(lower) {
		return &coretypes.IntentRecord{
			PrimaryIntent: coretypes.IntentCalculateCost,
			Location:      slots.Destination,
			Duration:      slots.Duration,
			Budget:        slots.Budget,
			Confidence:    0.95,
		}, nil
	}

	if e.llm != nil {
		rec, err := e.extractWithLLM(ctx, query, slots)
		if err == nil {
			return rec, nil
		}
	}

	return extractWithRegex(query, slots), nil
}

func isBookingRequest(lower string) bool {
	return containsAny(lower, bookingPhrases) && containsAny(lower, hotelWords)
}

func isBudgetCalculationRequest(lower string) bool {
	if !containsAny(lower, budgetCalcPhrases) && !containsAny(lower, costPhrases) {
		return false
	}
	return !containsAny(lower, planCreationPhrases)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func extractHotelName(query string) string {
	lower := strings.ToLower(query)
	for _, marker := range []string{"khách sạn", "khach san", "hotel", "resort", "homestay"} {
		if idx := strings.Index(lower, marker); idx >= 0 {
			return strings.TrimSpace(query[idx+len(marker):])
		}
	}
	return ""
}
