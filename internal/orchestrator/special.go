package orchestrator

import (
	"context"
	"fmt"

	"travelcore/internal/aggregator"
	"travelcore/internal/coretypes"
	"travelcore/internal/geo"
	"travelcore/internal/session"
	"travelcore/internal/workflow"
)

// handleSpecialIntent answers the fixed set of intents §4.1 step 7 routes
// directly, bypassing the planner entirely. Returns handled=false for
// anything the main planning path should take instead.
func (o *Orchestrator) handleSpecialIntent(ctx context.Context, c *coretypes.Context, rec *coretypes.IntentRecord, utterance string) (*coretypes.ResponseChunk, bool) {
	switch rec.PrimaryIntent {
	case coretypes.IntentGreeting:
		return &coretypes.ResponseChunk{Reply: "Chào bạn! Mình có thể giúp bạn lên kế hoạch du lịch, tìm khách sạn, địa điểm hay quán ăn. Bạn muốn đi đâu?", UIType: coretypes.UIGreeting}, true
	case coretypes.IntentFarewell:
		return &coretypes.ResponseChunk{Reply: "Chúc bạn có chuyến đi vui vẻ! Hẹn gặp lại.", UIType: coretypes.UIFarewell}, true
	case coretypes.IntentThanks:
		return &coretypes.ResponseChunk{Reply: "Không có gì, rất vui được giúp bạn!", UIType: coretypes.UIThanks}, true
	case coretypes.IntentChitchat:
		return &coretypes.ResponseChunk{Reply: "Mình là trợ lý du lịch, bạn có câu hỏi gì về chuyến đi sắp tới không?", UIType: coretypes.UIChitchat}, true
	case coretypes.IntentShowItinerary:
		return o.showItinerary(c), true
	case coretypes.IntentCalculateCost:
		return o.calculateCost(ctx, c), true
	case coretypes.IntentBookHotel:
		return o.bookHotel(c, rec), true
	case coretypes.IntentGetDistance, coretypes.IntentGetDirections:
		return o.getDistance(c, rec), true
	case coretypes.IntentGetLocationTips:
		return o.getLocationTips(ctx, c), true
	case coretypes.IntentGetPlaceDetails, coretypes.IntentGetDetail:
		return o.getPlaceDetails(c, utterance), true
	case coretypes.IntentGetWeatherForecast:
		return o.getWeatherForecast(ctx, c), true
	case coretypes.IntentUpdatePeopleCount:
		return o.updatePeopleCount(c, rec), true
	default:
		return nil, false
	}
}

func (o *Orchestrator) showItinerary(c *coretypes.Context) *coretypes.ResponseChunk {
	if c.LastItinerary == nil {
		return &coretypes.ResponseChunk{Reply: "Bạn chưa có lịch trình nào được lập. Hãy cho mình biết điểm đến và số ngày để bắt đầu nhé.", UIType: coretypes.UIText}
	}

	days := make([]map[string]any, 0, len(c.LastItinerary.Days))
	for _, d := range c.LastItinerary.Days {
		activities := make([]map[string]any, 0, len(d.Spots))
		for _, s := range d.Spots {
			activities = append(activities, map[string]any{"activity": s.Name, "type": "spot"})
		}
		days = append(days, map[string]any{"day": d.Day, "activities": activities})
	}

	return aggregator.Aggregate(
		[]coretypes.PrimaryIntent{coretypes.IntentPlanTrip},
		aggregator.Data{Itinerary: days},
		aggregator.Options{Location: c.LastItinerary.Location, Duration: c.LastItinerary.Duration},
	)
}

// calculateCost dispatches an ad hoc cost_calculator task directly (no
// planner round-trip needed — the CostGuard already confirmed a hotel is
// selected), transiently flips the workflow state to COST_ESTIMATION for
// the duration of the computation, then restores the prior state (§4.5's
// "transient" note on COST_ESTIMATION).
func (o *Orchestrator) calculateCost(ctx context.Context, c *coretypes.Context) *coretypes.ResponseChunk {
	prior := c.Workflow.State
	c.Workflow.State = coretypes.StateCostEstimation
	defer func() { c.Workflow.State = prior }()

	task := &coretypes.SubTask{
		TaskID:   "cost_adhoc",
		TaskType: coretypes.TaskCalculateCost,
		Parameters: map[string]any{
			"duration":     c.Slots.Duration,
			"people_count": c.Slots.PeopleCount,
			"budget_level": c.Slots.BudgetLevel,
			"hotel_data":   []map[string]any{c.Selections.SelectedHotel},
		},
	}
	plan := &coretypes.ExecutionPlan{Tasks: []*coretypes.SubTask{task}}
	result := o.Dispatcher.Dispatch(ctx, task, nil, plan)
	if !result.Success || len(result.Data) == 0 {
		return &coretypes.ResponseChunk{Reply: "Mình chưa tính được chi phí lúc này, bạn thử lại sau nhé.", UIType: coretypes.UINone, Status: coretypes.StatusError}
	}

	return aggregator.Aggregate(
		[]coretypes.PrimaryIntent{coretypes.IntentCalculateCost},
		aggregator.Data{Costs: result.Data[0]},
		aggregator.Options{Location: c.Slots.Destination, Duration: c.Slots.Duration, PeopleCount: c.Slots.PeopleCount},
	)
}

// bookHotel resolves the named hotel against the recent-results cache,
// records the selection, and advances the workflow state (§4.4.8).
func (o *Orchestrator) bookHotel(c *coretypes.Context, rec *coretypes.IntentRecord) *coretypes.ResponseChunk {
	candidates := hotelCandidates(c.Recent.LastHotels)
	name := rec.SelectedHotelName
	if name == "" && len(candidates) > 0 {
		name = candidates[0].Name
	}
	match, ok := session.ResolveReference(name, candidates)
	if !ok {
		return &coretypes.ResponseChunk{Reply: "Bạn muốn đặt khách sạn nào? Hãy cho mình biết tên khách sạn nhé.", UIType: coretypes.UIText}
	}

	hotel, found := findByID(c.Recent.LastHotels, match.ID)
	if !found {
		return &coretypes.ResponseChunk{Reply: "Mình không tìm thấy khách sạn đó trong danh sách gần đây.", UIType: coretypes.UIText}
	}

	price, _ := toInt64Cost(hotel["price"])
	c.Selections.SelectedHotel = hotel
	c.Selections.SelectedHotelPrice = price
	workflow.ApplyTransitionTriggers(c, rec, false, false, true)

	return &coretypes.ResponseChunk{
		Reply:  "Đã chọn khách sạn **" + stringFieldOr(hotel, "name", match.Name) + "**. Bạn có muốn mình tính chi phí cho chuyến đi không?",
		UIType: coretypes.UIBookingPrompt,
		UIData: map[string]any{"hotel": hotel},
	}
}

// getDistance requires two named entities already surfaced in this session's
// recent results and reports the haversine distance between them (§4.4.9).
func (o *Orchestrator) getDistance(c *coretypes.Context, rec *coretypes.IntentRecord) *coretypes.ResponseChunk {
	if len(rec.EntityNames) < 2 {
		return &coretypes.ResponseChunk{Reply: "Bạn muốn xem khoảng cách giữa hai địa điểm nào?", UIType: coretypes.UIText}
	}

	pool := append(append([]map[string]any{}, c.Recent.LastSpots...), c.Recent.LastHotels...)
	from, ok1 := findByName(pool, rec.EntityNames[0])
	to, ok2 := findByName(pool, rec.EntityNames[1])
	if !ok1 || !ok2 {
		return &coretypes.ResponseChunk{Reply: "Mình chưa có đủ thông tin vị trí của cả hai địa điểm này.", UIType: coretypes.UIText}
	}

	lat1, lng1, ok1 := latLng(from)
	lat2, lng2, ok2 := latLng(to)
	if !ok1 || !ok2 {
		return &coretypes.ResponseChunk{Reply: "Mình chưa có đủ thông tin vị trí của cả hai địa điểm này.", UIType: coretypes.UIText}
	}

	km := geo.HaversineKm(lat1, lng1, lat2, lng2)
	return &coretypes.ResponseChunk{
		Reply:  "Khoảng cách giữa hai địa điểm khoảng " + formatKm(km) + ".",
		UIType: coretypes.UIDistanceInfo,
		UIData: map[string]any{"distance_km": km, "from": from["name"], "to": to["name"]},
	}
}

func (o *Orchestrator) getLocationTips(ctx context.Context, c *coretypes.Context) *coretypes.ResponseChunk {
	task := &coretypes.SubTask{
		TaskID:     "tips_adhoc",
		TaskType:   coretypes.TaskGeneralInfo,
		Parameters: map[string]any{"location": c.Slots.Destination},
	}
	plan := &coretypes.ExecutionPlan{Tasks: []*coretypes.SubTask{task}}
	result := o.Dispatcher.Dispatch(ctx, task, nil, plan)
	if !result.Success {
		return &coretypes.ResponseChunk{Reply: "Mình chưa có mẹo du lịch cho địa điểm này.", UIType: coretypes.UINone}
	}
	return &coretypes.ResponseChunk{Reply: result.Summary, UIType: coretypes.UITips, UIData: map[string]any{"tips": result.Data}}
}

func (o *Orchestrator) getPlaceDetails(c *coretypes.Context, utterance string) *coretypes.ResponseChunk {
	pool := append(append([]map[string]any{}, c.Recent.LastSpots...), c.Recent.LastHotels...)
	match, ok := session.ResolveReference(utterance, hotelCandidates(pool))
	if !ok {
		return &coretypes.ResponseChunk{Reply: "Bạn muốn xem chi tiết địa điểm hoặc khách sạn nào?", UIType: coretypes.UIText}
	}
	record, found := findByID(pool, match.ID)
	if !found {
		return &coretypes.ResponseChunk{Reply: "Mình không tìm thấy thông tin chi tiết cho lựa chọn đó.", UIType: coretypes.UIText}
	}

	if isHotelRecord(record) {
		cleaned := aggregator.CleanHotel(record)
		return &coretypes.ResponseChunk{Reply: "Chi tiết khách sạn **" + stringFieldOr(cleaned, "name", "") + "**.", UIType: coretypes.UIHotelDetail, UIData: map[string]any{"hotel": cleaned}}
	}
	cleaned := aggregator.CleanSpot(record)
	return &coretypes.ResponseChunk{Reply: "Chi tiết địa điểm **" + stringFieldOr(cleaned, "name", "") + "**.", UIType: coretypes.UISpotDetail, UIData: map[string]any{"spot": cleaned}}
}

func (o *Orchestrator) getWeatherForecast(ctx context.Context, c *coretypes.Context) *coretypes.ResponseChunk {
	if c.Slots.Destination == "" {
		return &coretypes.ResponseChunk{Reply: "Bạn muốn xem dự báo thời tiết ở đâu?", UIType: coretypes.UIText}
	}
	report, err := o.Weather.GetWeather(ctx, c.Slots.Destination, c.Slots.StartDate, 5)
	if err != nil {
		return &coretypes.ResponseChunk{Reply: "Mình chưa lấy được dự báo thời tiết lúc này.", UIType: coretypes.UIText, Status: coretypes.StatusError}
	}
	return &coretypes.ResponseChunk{Reply: o.Weather.BuildWeatherResponse(report), UIType: coretypes.UIText}
}

func (o *Orchestrator) updatePeopleCount(c *coretypes.Context, rec *coretypes.IntentRecord) *coretypes.ResponseChunk {
	if rec.PeopleCount <= 0 {
		return &coretypes.ResponseChunk{Reply: "Chuyến đi của bạn có bao nhiêu người?", UIType: coretypes.UIText}
	}
	c.Slots.PeopleCount = rec.PeopleCount
	if c.Builder != nil {
		c.Builder.PeopleCount = rec.PeopleCount
	}
	return &coretypes.ResponseChunk{Reply: "Đã cập nhật số người trong chuyến đi.", UIType: coretypes.UIText}
}

func isHotelRecord(record map[string]any) bool {
	_, hasPrice := record["price"]
	_, hasPriceFormatted := record["price_formatted"]
	return hasPrice || hasPriceFormatted
}

func formatKm(km float64) string {
	return fmt.Sprintf("%.1f", km) + " km"
}
