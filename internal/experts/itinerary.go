package experts

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"travelcore/internal/coretypes"
	"travelcore/internal/corelog"
	"travelcore/internal/llm"
	"travelcore/internal/weather"
)

const itineraryPromptTemplate = `Bạn là chuyên gia lập kế hoạch du lịch. Hãy tạo lịch trình %d ngày cho chuyến đi đến %s.

Danh sách địa điểm có thể chọn:
%s

Danh sách quán ăn có thể chọn:
%s

Yêu cầu:
- Tất cả địa điểm PHẢI thuộc %s, không được bịa địa điểm ở nơi khác.
- Không lặp lại cùng một địa điểm ở nhiều ngày.
- Mỗi ngày nên có sự kết hợp đa dạng các loại hình (tham quan, ẩm thực, giải trí), không dồn toàn bộ một loại vào một ngày.
- Mỗi hoạt động có "time" (giờ), "activity" (tên hoạt động), "location" (địa điểm), "type" (loại hình).

Trả về CHỈ JSON theo đúng khuôn dạng sau, không kèm giải thích:
{"days": [{"day": 1, "title": "...", "activities": [{"time": "08:00", "activity": "...", "location": "...", "type": "..."}], "meals": ["..."], "hotel": "..."}]}`

// weatherPreambleTemplate is prepended to the prompt whenever a forecast is
// available, so the LLM swaps outdoor activities for indoor ones on rainy
// days instead of ignoring the window's weather entirely (ports
// itinerary_expert.py's weather_block / "Dựa vào thông tin thời tiết..."
// instruction, §4.4.4).
const weatherPreambleTemplate = `Dựa vào thông tin thời tiết sau đây, hãy ưu tiên hoạt động ngoài trời vào ngày nắng và hoạt động trong nhà vào ngày mưa:
%s
`

// ItineraryExpert builds a day-by-day schedule from previously-gathered
// spots/food/hotel data, preferring an LLM-authored plan and falling back to
// a deterministic index-based assignment on any LLM failure
// (itinerary_expert.py's ItineraryExpert, §4.4.4).
type ItineraryExpert struct {
	LLM     llm.Client
	Weather weather.Client
}

func (e *ItineraryExpert) ExpertType() string { return "itinerary_expert" }

func (e *ItineraryExpert) Execute(ctx context.Context, query string, params map[string]any) *coretypes.ExpertResult {
	start := time.Now()

	location := stringParam(params, "location")
	duration := intParam(params, "duration", 3)
	startDate := stringParam(params, "start_date")
	spots := dataRecords(params["spots_data"])
	foods := dataRecords(params["food_data"])
	hotels := dataRecords(params["hotel_data"])

	weatherPreamble := e.fetchWeatherPreamble(ctx, location, startDate, duration)

	if e.LLM != nil {
		if days, ok := e.generateWithLLM(ctx, location, duration, spots, foods, weatherPreamble); ok {
			return &coretypes.ExpertResult{
				ExpertType:      e.ExpertType(),
				Success:         true,
				Data:            []map[string]any{{"days": days}},
				Summary:         fmt.Sprintf("Đã tạo lịch trình %d ngày cho %s", duration, location),
				ExecutionTimeMs: time.Since(start).Milliseconds(),
				Metadata:        map[string]any{"source": "llm"},
			}
		}
	}

	days := generateSimple(duration, location, spots, foods, hotels)
	return &coretypes.ExpertResult{
		ExpertType:      e.ExpertType(),
		Success:         true,
		Data:            []map[string]any{{"days": days}},
		Summary:         fmt.Sprintf("Đã tạo lịch trình %d ngày cho %s", duration, location),
		ExecutionTimeMs: time.Since(start).Milliseconds(),
		Metadata:        map[string]any{"source": "simple_fallback"},
	}
}

func dataRecords(v any) []map[string]any {
	if records, ok := v.([]map[string]any); ok {
		return records
	}
	return nil
}

// fetchWeatherPreamble asks the weather client for the trip window and
// renders it into a prompt preamble, degrading to no preamble at all if no
// client is wired or the forecast comes back degraded — an itinerary must
// never fail to generate for a weather outage.
func (e *ItineraryExpert) fetchWeatherPreamble(ctx context.Context, location, startDate string, duration int) string {
	if e.Weather == nil || location == "" {
		return ""
	}
	report, err := e.Weather.GetWeather(ctx, location, startDate, duration)
	if err != nil {
		corelog.Warn("itinerary_expert: weather lookup failed for %s: %v", location, err)
		return ""
	}
	if report.Degraded || len(report.Days) == 0 {
		return ""
	}
	return fmt.Sprintf(weatherPreambleTemplate, e.Weather.BuildWeatherResponse(report))
}

func (e *ItineraryExpert) generateWithLLM(ctx context.Context, location string, duration int, spots, foods []map[string]any, weatherPreamble string) ([]any, bool) {
	prompt := weatherPreamble + fmt.Sprintf(itineraryPromptTemplate, duration, location, describeRecords(spots), describeRecords(foods), location)

	result, err := e.LLM.ExtractJSON(ctx, prompt, "")
	if err != nil {
		return nil, false
	}

	days, ok := result["days"].([]any)
	if !ok || len(days) == 0 {
		return nil, false
	}
	return days, true
}

func describeRecords(records []map[string]any) string {
	if len(records) == 0 {
		return "(không có)"
	}
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "- %s\n", stringOr(r["name"], "?"))
	}
	return b.String()
}

var simpleActivityTimes = []string{"09:00", "12:00", "14:00", "18:00"}

// generateSimple assigns spots/food to days by position instead of meaning,
// evenly splitting the spot list and rotating through the food list per day
// — ports itinerary_expert.py's _generate_simple fallback used whenever the
// LLM call fails or returns something unusable.
func generateSimple(duration int, location string, spots, foods, hotels []map[string]any) []any {
	if duration < 1 {
		duration = 1
	}

	spotsPerDay := 1
	if len(spots) > 0 {
		spotsPerDay = len(spots) / duration
		if spotsPerDay < 1 {
			spotsPerDay = 1
		}
	}

	var hotelName string
	if len(hotels) > 0 {
		hotelName = stringOr(hotels[0]["name"], "")
	}

	days := make([]any, 0, duration)
	for d := 0; d < duration; d++ {
		daySpots := pageSlice(spots, d, spotsPerDay)

		activities := make([]any, 0, len(daySpots))
		for i, s := range daySpots {
			timeSlot := simpleActivityTimes[i%len(simpleActivityTimes)]
			activities = append(activities, map[string]any{
				"time":     timeSlot,
				"activity": "Tham quan " + stringOr(s["name"], "?"),
				"location": stringOr(s["name"], "?"),
				"type":     stringOr(s["category"], "sightseeing"),
			})
		}

		var meals []any
		if len(foods) > 0 {
			meals = append(meals, stringOr(foods[d%len(foods)]["name"], "?"))
		}

		days = append(days, map[string]any{
			"day":        d + 1,
			"title":      "Ngày " + strconv.Itoa(d+1) + " tại " + location,
			"activities": activities,
			"meals":      meals,
			"hotel":      hotelName,
		})
	}
	return days
}

func pageSlice(items []map[string]any, page, pageSize int) []map[string]any {
	start := page * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
