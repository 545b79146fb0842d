package builder

import (
	"context"
	"strings"

	"travelcore/internal/coretypes"
	"travelcore/internal/llm"
)

// ProposedDay is one day of an LLM auto-generated plan.
type ProposedDay struct {
	Day   int `json:"day"`
	Spots []struct {
		Name    string `json:"name"`
		Session string `json:"session"`
	} `json:"spots"`
}

// ProposedPlan is the shape the LLM must return for auto-generate mode
// (§4.6 "Auto-generate mode").
type ProposedPlan struct {
	Days                []ProposedDay `json:"days"`
	TotalEstimatedCost   int64         `json:"total_estimated_cost"`
	Reasoning            string        `json:"reasoning"`
}

const autoGenerateSystemPrompt = `Bạn là chuyên gia lập lịch trình du lịch Việt Nam. Đề xuất lịch trình đầy đủ.
Trả về JSON: {"days": [{"day": 1, "spots": [{"name": "...", "session": "morning|afternoon|evening"}]}], "total_estimated_cost": số tiền, "reasoning": "..."}
CHỈ trả về JSON.`

// AutoGenerate substitutes an LLM call that proposes a full itinerary when
// the builder is entered with (location, duration, budget) already known,
// or the user types "auto". Each proposed spot name is fuzzy-mapped to a
// candidate spot record; unmapped names become placeholder entries.
func AutoGenerate(ctx context.Context, client llm.Client, location string, duration int, budget int64, candidates []map[string]any) (*coretypes.ItineraryBuilderState, error) {
	prompt := "Lập lịch trình " + location + " cho kỳ nghỉ."
	result, err := client.ExtractJSON(ctx, prompt, autoGenerateSystemPrompt)
	if err != nil {
		return nil, err
	}

	days := map[int][]coretypes.SelectedSpot{}
	rawDays, _ := result["days"].([]any)
	for _, rd := range rawDays {
		dayMap, ok := rd.(map[string]any)
		if !ok {
			continue
		}
		dayNum := intField(dayMap["day"])
		rawSpots, _ := dayMap["spots"].([]any)
		for _, rs := range rawSpots {
			spotMap, ok := rs.(map[string]any)
			if !ok {
				continue
			}
			name, _ := spotMap["name"].(string)
			days[dayNum] = append(days[dayNum], mapProposedSpot(name, dayNum, candidates))
		}
	}

	return &coretypes.ItineraryBuilderState{
		Location:         location,
		TotalDays:        duration,
		CurrentDay:       duration + 1,
		DaysPlan:         days,
		Budget:           budget,
		AutoGenerateMode: true,
	}, nil
}

func intField(v any) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return 0
}

// mapProposedSpot fuzzy-maps a proposed spot name onto a candidate record,
// falling back to a placeholder entry when no candidate scores at least 0.5.
func mapProposedSpot(name string, day int, candidates []map[string]any) coretypes.SelectedSpot {
	best := -1.0
	var bestCand map[string]any
	for _, cand := range candidates {
		candName, _ := cand["name"].(string)
		score := nameOverlapScore(name, candName)
		if score > best {
			best = score
			bestCand = cand
		}
	}

	if bestCand != nil && best >= 0.5 {
		id, _ := bestCand["id"].(string)
		lat, _ := bestCand["lat"].(float64)
		lng, _ := bestCand["lng"].(float64)
		image, _ := bestCand["image"].(string)
		category, _ := bestCand["category"].(string)
		return coretypes.SelectedSpot{SpotID: id, Name: name, Day: day, Lat: lat, Lng: lng, Image: image, Category: category}
	}

	return coretypes.SelectedSpot{Name: name, Day: day, Placeholder: true}
}

func nameOverlapScore(a, b string) float64 {
	ta := tokenize(a)
	tb := tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	matches := 0
	for tok := range ta {
		if tb[tok] {
			matches++
		}
	}
	union := len(ta) + len(tb) - matches
	if union == 0 {
		return 0
	}
	return float64(matches) / float64(union)
}

func tokenize(s string) map[string]bool {
	out := map[string]bool{}
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		out[tok] = true
	}
	return out
}

const otherCostBudgetCap = 0.7

// ChooseHotelWithinBudget picks the hotel that best fits the per-night cap
// derived from (budget - food - transport - activities) / nights, falling
// back to the cheapest hotel with a budget_warning when none fit, and
// scales down otherCosts by (budget*0.7)/otherCosts when they would exceed
// 70% of the total budget (§4.6 "Auto-generate mode").
func ChooseHotelWithinBudget(budget int64, nights int, otherCosts int64, hotels []map[string]any) (chosen map[string]any, warning string, scaledOtherCosts int64) {
	scaledOtherCosts = otherCosts
	if nights < 1 {
		nights = 1
	}

	if otherCosts > 0 && float64(otherCosts) > float64(budget)*otherCostBudgetCap {
		factor := float64(budget) * otherCostBudgetCap / float64(otherCosts)
		scaledOtherCosts = int64(float64(otherCosts) * factor)
	}

	perNightCap := (budget - scaledOtherCosts) / int64(nights)

	var best map[string]any
	var bestPrice int64 = -1
	var cheapest map[string]any
	var cheapestPrice int64 = -1

	for _, h := range hotels {
		price := priceField(h)
		if cheapest == nil || price < cheapestPrice {
			cheapest = h
			cheapestPrice = price
		}
		if price <= perNightCap && (best == nil || price > bestPrice) {
			best = h
			bestPrice = price
		}
	}

	if best != nil {
		return best, "", scaledOtherCosts
	}
	if cheapest != nil {
		return cheapest, "Không có khách sạn nào vừa ngân sách; đã chọn khách sạn rẻ nhất hiện có.", scaledOtherCosts
	}
	return nil, "Không tìm thấy khách sạn phù hợp.", scaledOtherCosts
}

func priceField(h map[string]any) int64 {
	switch v := h["price"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
