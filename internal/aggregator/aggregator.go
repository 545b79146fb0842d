// Package aggregator implements the Response Aggregator (C8, §4.7): it
// turns raw expert output into the single reply text / ui_type / ui_data
// shape a Response Chunk carries, picking a single-intent formatter when
// there's only one active intent and a multi-section comprehensive layout
// otherwise. Grounded on
// original_source/.../app/services/response_aggregator.py.
package aggregator

import (
	"fmt"
	"strings"

	"travelcore/internal/coretypes"
)

// Data is the per-intent expert output the aggregator assembles, mirroring
// response_aggregator.py's aggregated_data dict.
type Data struct {
	Spots     []map[string]any
	Hotels    []map[string]any
	Food      []map[string]any
	Itinerary []map[string]any
	Costs     map[string]any
}

// Options carries the slots the aggregator needs for headers and cost
// fallbacks, independent of coretypes.Context so this package stays
// decoupled from the orchestrator's session state.
type Options struct {
	Location    string
	Duration    int
	Budget      string
	PeopleCount int
	Streaming   bool
}

// Aggregate combines one or more intents' expert data into a Response
// Chunk (response_aggregator.py's ResponseAggregator.aggregate).
func Aggregate(intents []coretypes.PrimaryIntent, data Data, opts Options) *coretypes.ResponseChunk {
	location := opts.Location
	if location == "" {
		location = "khu vực này"
	}

	if len(intents) == 1 {
		return formatSingleIntent(intents[0], data, location, opts)
	}
	return formatMultiIntent(intents, data, location, opts)
}

func formatSingleIntent(intent coretypes.PrimaryIntent, data Data, location string, opts Options) *coretypes.ResponseChunk {
	switch intent {
	case coretypes.IntentFindHotel:
		return formatHotels(data.Hotels, location)
	case coretypes.IntentFindSpot:
		return formatSpots(data.Spots, location)
	case coretypes.IntentFindFood:
		return formatFood(data.Food, location)
	case coretypes.IntentPlanTrip:
		return formatItinerary(data, location, opts)
	case coretypes.IntentCalculateCost:
		return formatCost(data.Costs, location)
	default:
		return &coretypes.ResponseChunk{
			Reply:  "Xin lỗi, mình chưa hiểu câu hỏi này.",
			UIType: coretypes.UINone,
			Status: coretypes.StatusComplete,
		}
	}
}

func formatHotels(hotels []map[string]any, location string) *coretypes.ResponseChunk {
	if len(hotels) == 0 {
		return &coretypes.ResponseChunk{
			Reply:  fmt.Sprintf("❌ Không tìm thấy khách sạn ở %s", location),
			UIType: coretypes.UINone,
			Status: coretypes.StatusComplete,
		}
	}

	cleaned := cleanAll(hotels, CleanHotel, 5)
	reply := fmt.Sprintf("🏨 Tìm thấy **%d khách sạn** tại %s:\n\n_Chọn khách sạn bên dưới để xem chi tiết hoặc đặt phòng._", len(cleaned), location)

	return &coretypes.ResponseChunk{
		Reply:  reply,
		UIType: coretypes.UIHotelCards,
		UIData: map[string]any{
			"hotels": cleaned,
			"actions": []map[string]any{
				{"label": "🔍 Xem thêm khách sạn", "action": "more_hotels"},
				{"label": "💰 So sánh giá", "action": "compare_prices"},
				{"label": "📍 Tìm địa điểm gần đây", "action": "find_spots"},
			},
		},
		Status: coretypes.StatusComplete,
	}
}

func formatSpots(spots []map[string]any, location string) *coretypes.ResponseChunk {
	if len(spots) == 0 {
		return &coretypes.ResponseChunk{
			Reply:  fmt.Sprintf("❌ Không tìm thấy địa điểm ở %s", location),
			UIType: coretypes.UINone,
			Status: coretypes.StatusComplete,
		}
	}

	cleaned := cleanAll(spots, CleanSpot, 6)
	reply := fmt.Sprintf("📍 Tìm thấy **%d địa điểm** tại %s:\n\n_Chọn địa điểm bên dưới để xem chi tiết._", len(cleaned), location)

	return &coretypes.ResponseChunk{
		Reply:  reply,
		UIType: coretypes.UISpotCards,
		UIData: map[string]any{
			"spots": cleaned,
			"actions": []map[string]any{
				{"label": "➕ Xem thêm địa điểm", "action": "more_spots"},
				{"label": "🏨 Tìm khách sạn gần đây", "action": "find_hotels"},
				{"label": "🗓️ Lên lịch trình", "action": "plan_trip"},
			},
		},
		Status: coretypes.StatusComplete,
	}
}

func formatFood(food []map[string]any, location string) *coretypes.ResponseChunk {
	if len(food) == 0 {
		return &coretypes.ResponseChunk{
			Reply:  fmt.Sprintf("🍜 Mình chưa có nhiều thông tin về quán ăn ở %s", location),
			UIType: coretypes.UINone,
			Status: coretypes.StatusComplete,
		}
	}

	top := truncateRecords(food, 5)
	reply := fmt.Sprintf("🍜 Tìm thấy **%d quán ăn/món ngon** tại %s:\n\n_Chọn để xem chi tiết._", len(top), location)

	return &coretypes.ResponseChunk{
		Reply:  reply,
		UIType: coretypes.UIFoodCards,
		UIData: map[string]any{
			"food": top,
			"actions": []map[string]any{
				{"label": "➕ Xem thêm quán ăn", "action": "more_food"},
				{"label": "📍 Địa điểm gần đây", "action": "find_spots"},
			},
		},
		Status: coretypes.StatusComplete,
	}
}

func formatItinerary(data Data, location string, opts Options) *coretypes.ResponseChunk {
	duration := opts.Duration
	if duration <= 0 {
		duration = 3
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🗓️ **Lịch trình %d ngày %s**\n\n", duration, location)
	b.WriteString(createItinerarySection(data.Itinerary, duration))

	if len(data.Costs) > 0 {
		b.WriteString("\n\n")
		b.WriteString(createCostSection(data.Costs))
	}

	return &coretypes.ResponseChunk{
		Reply:  b.String(),
		UIType: coretypes.UIItinerary,
		UIData: map[string]any{
			"itinerary": data.Itinerary,
			"hotels":    truncateRecords(data.Hotels, 3),
			"spots":     truncateRecords(data.Spots, 5),
			"costs":     data.Costs,
		},
		Status: coretypes.StatusComplete,
	}
}

func formatCost(costs map[string]any, location string) *coretypes.ResponseChunk {
	if len(costs) == 0 {
		return &coretypes.ResponseChunk{
			Reply:  fmt.Sprintf("Mình chưa tính được chi phí cho chuyến đi ở %s.", location),
			UIType: coretypes.UINone,
			Status: coretypes.StatusComplete,
		}
	}

	return &coretypes.ResponseChunk{
		Reply:  createCostSection(costs),
		UIType: coretypes.UICost,
		UIData: map[string]any{"costs": costs},
		Status: coretypes.StatusComplete,
	}
}

func cleanAll(records []map[string]any, clean func(map[string]any) map[string]any, limit int) []map[string]any {
	top := truncateRecords(records, limit)
	out := make([]map[string]any, len(top))
	for i, r := range top {
		out[i] = clean(r)
	}
	return out
}

func truncateRecords(records []map[string]any, limit int) []map[string]any {
	if len(records) <= limit {
		return records
	}
	return records[:limit]
}
