package intent

import (
	"context"
	"fmt"

	"travelcore/internal/coretypes"
)

const systemPrompt = `Bạn là chuyên gia NLU cho hệ thống du lịch Việt Nam. Phân tích câu hỏi và trích xuất thông tin có cấu trúc.

Suy luận thông minh:
- "cùng bạn gái/bạn trai" = 2 người (couple)
- "cùng gia đình" = 4 người (family)
- "cùng bạn bè" = 4 người (friends)
- "một mình" = 1 người (solo)
- "3 ngày 2 đêm" = 3 ngày
- "cuối tuần" = 2 ngày

Trả về JSON:
{
  "intent": "show_itinerary|plan_trip|find_spot|find_hotel|find_food|book_hotel|calculate_cost|update_people_count|get_place_details|get_location_tips|greeting|chitchat|thanks|farewell|more_spots|more_hotels|more_food|general_qa",
  "location": "tên tỉnh/thành phố" | null,
  "duration": số ngày | null,
  "budget": tổng ngân sách VNĐ | null,
  "budget_level": "tiết kiệm|trung bình|sang trọng" | null,
  "people_count": số người,
  "companion_type": "solo|couple|family|friends|business" | null,
  "interests": ["..."],
  "keywords": ["..."],
  "confidence": 0.0-1.0
}

CHỈ trả về JSON, không giải thích.`

func (e *Extractor) extractWithLLM(ctx context.Context, query string, slots coretypes.Slots) (*coretypes.IntentRecord, error) {
	prompt := fmt.Sprintf("Query: %q%s", query, contextSuffix(slots))

	result, err := e.llm.ExtractJSON(ctx, prompt, systemPrompt)
	if err != nil {
		return nil, err
	}

	rec := &coretypes.IntentRecord{
		PrimaryIntent: coretypes.PrimaryIntent(stringOr(result["intent"], "general_qa")),
		Location:      stringOr(result["location"], slots.Destination),
		Duration:      intOr(result["duration"], slots.Duration),
		Budget:        int64Or(result["budget"], slots.Budget),
		BudgetLevel:   coretypes.BudgetLevel(stringOr(result["budget_level"], string(slots.BudgetLevel))),
		PeopleCount:   intOr(result["people_count"], slots.PeopleCount),
		CompanionType: coretypes.CompanionType(stringOr(result["companion_type"], string(slots.CompanionType))),
		Interests:     stringSliceOr(result["interests"], slots.Interests),
		Keywords:      stringSliceOr(result["keywords"], nil),
		Confidence:    floatOr(result["confidence"], 0.8),
	}
	if rec.PeopleCount == 0 {
		rec.PeopleCount = 1
	}
	return rec, nil
}

func contextSuffix(slots coretypes.Slots) string {
	if slots.Destination == "" && slots.Duration == 0 && slots.PeopleCount == 0 {
		return ""
	}
	s := "\nContext hiện tại:"
	if slots.Destination != "" {
		s += fmt.Sprintf(" Điểm đến: %s.", slots.Destination)
	}
	if slots.Duration > 0 {
		s += fmt.Sprintf(" Thời gian: %d ngày.", slots.Duration)
	}
	if slots.PeopleCount > 0 {
		s += fmt.Sprintf(" Số người: %d.", slots.PeopleCount)
	}
	return s
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func intOr(v any, fallback int) int {
	if f, ok := v.(float64); ok && f > 0 {
		return int(f)
	}
	return fallback
}

func int64Or(v any, fallback int64) int64 {
	if f, ok := v.(float64); ok && f > 0 {
		return int64(f)
	}
	return fallback
}

func floatOr(v any, fallback float64) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return fallback
}

func stringSliceOr(v any, fallback []string) []string {
	list, ok := v.([]any)
	if !ok {
		return fallback
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
