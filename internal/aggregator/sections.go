package aggregator

import (
	"fmt"
	"strings"

	"travelcore/internal/coretypes"
)

// formatMultiIntent lays out a fixed section order — header, itinerary
// template, spots, hotels, food, detailed cost, footer — skipping header
// and footer while streaming to avoid duplicating them across chunks
// (response_aggregator.py's _format_multi_intent).
func formatMultiIntent(intents []coretypes.PrimaryIntent, data Data, location string, opts Options) *coretypes.ResponseChunk {
	duration := opts.Duration
	if duration <= 0 {
		duration = 3
	}
	peopleCount := opts.PeopleCount
	if peopleCount <= 0 {
		peopleCount = 1
	}

	var sections []string
	uiData := map[string]any{}

	if !opts.Streaming {
		sections = append(sections, createTripHeader(location, duration, opts.Budget, peopleCount))
	}

	hasPlanTrip := containsIntent(intents, coretypes.IntentPlanTrip)
	if hasPlanTrip && len(data.Itinerary) > 0 {
		sections = append(sections, createItinerarySection(data.Itinerary, duration))
		uiData["itinerary"] = data.Itinerary
	}

	if len(data.Spots) > 0 {
		cleanedSpots := cleanAll(data.Spots, CleanSpot, 8)
		sections = append(sections, createSpotSection(cleanedSpots))
		uiData["spots"] = cleanedSpots
		uiData["spots_selectable"] = true
	}

	if len(data.Hotels) > 0 {
		cleanedHotels := cleanAll(data.Hotels, CleanHotel, 5)
		sections = append(sections, createHotelSection(cleanedHotels))
		uiData["hotels"] = cleanedHotels
		uiData["hotels_selectable"] = true
	}

	if len(data.Food) > 0 {
		sections = append(sections, createFoodSection(data.Food))
		uiData["food"] = truncateRecords(data.Food, 5)
	}

	if len(data.Costs) > 0 || (len(data.Hotels) > 0 && duration > 0) {
		costData := calculateDetailedCost(data.Hotels, duration, peopleCount, opts.Budget, data.Costs)
		sections = append(sections, createDetailedCostSection(costData))
		uiData["costs"] = costData
	}

	if !opts.Streaming {
		sections = append(sections, createFooter(intents))
	}

	return &coretypes.ResponseChunk{
		Reply:  strings.Join(sections, "\n\n"),
		UIType: coretypes.UIComprehensive,
		UIData: uiData,
		Status: coretypes.StatusComplete,
	}
}

func containsIntent(intents []coretypes.PrimaryIntent, target coretypes.PrimaryIntent) bool {
	for _, i := range intents {
		if i == target {
			return true
		}
	}
	return false
}

func createTripHeader(location string, duration int, budget string, peopleCount int) string {
	budgetText := map[string]string{
		"budget": "tiết kiệm 💰",
		"mid":    "trung bình 💵💵",
		"luxury": "cao cấp 💎",
	}[normalizeBudgetLevel(budget)]
	if budgetText == "" {
		budgetText = "linh hoạt"
	}

	peopleText := ""
	if peopleCount > 1 {
		peopleText = fmt.Sprintf("%d người", peopleCount)
	}

	return fmt.Sprintf("🌟 **Chuyến du lịch %s**\n📅 %d ngày | 👥 %s | %s", location, duration, peopleText, budgetText)
}

func createFooter(intents []coretypes.PrimaryIntent) string {
	lines := []string{"---", "💡 **Gợi ý tiếp theo:**"}
	if !containsIntent(intents, coretypes.IntentPlanTrip) {
		lines = append(lines, "• Lên lịch trình chi tiết")
	}
	if !containsIntent(intents, coretypes.IntentFindFood) {
		lines = append(lines, "• Tìm quán ăn ngon")
	}
	if !containsIntent(intents, coretypes.IntentFindHotel) {
		lines = append(lines, "• Xem thêm khách sạn")
	}
	return strings.Join(lines, "\n")
}

func createHotelSection(hotels []map[string]any) string {
	lines := []string{"🏨 **Khách sạn đề xuất**\n"}
	for i, hotel := range truncateRecords(hotels, 5) {
		name := stringField(hotel, "name", "N/A")
		price := stringField(hotel, "price_formatted", "N/A")
		address := truncateString(stringField(hotel, "address", ""), 50)
		ratingDisplay := stringField(hotel, "rating_display", "")

		lines = append(lines, fmt.Sprintf("**%d. %s**", i+1, name))
		if ratingDisplay != "" {
			lines = append(lines, fmt.Sprintf("   💵 %s/đêm | %s", price, ratingDisplay))
		} else {
			lines = append(lines, fmt.Sprintf("   💵 %s/đêm", price))
		}
		if address != "" {
			lines = append(lines, fmt.Sprintf("   📍 %s...", address))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func createSpotSection(spots []map[string]any) string {
	lines := []string{"📍 **Địa điểm tham quan**\n"}
	for i, spot := range truncateRecords(spots, 6) {
		name := stringField(spot, "name", "N/A")
		rating, hasRating := toFloat64(spot["rating"])
		desc := stringField(spot, "description", "")
		location := stringField(spot, "location", "")
		tags := stringSliceField(spot["tags"])

		if hasRating && rating > 0 {
			lines = append(lines, fmt.Sprintf("**%d. %s** ⭐ %.1f", i+1, name, rating))
		} else {
			lines = append(lines, fmt.Sprintf("**%d. %s**", i+1, name))
		}

		if location != "" {
			lines = append(lines, fmt.Sprintf("   📍 %s", location))
		}
		if len(tags) > 0 {
			top := tags
			if len(top) > 3 {
				top = top[:3]
			}
			lines = append(lines, fmt.Sprintf("   🏷️ %s", strings.Join(top, " • ")))
		}
		if desc != "" {
			clean := truncateDisplay(desc, 100)
			lines = append(lines, fmt.Sprintf("   %s", clean))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func createFoodSection(foodItems []map[string]any) string {
	lines := []string{"🍜 **Ẩm thực địa phương**\n"}
	for _, item := range truncateRecords(foodItems, 5) {
		if stringField(item, "type", "") == "recommendation" {
			dishes := stringSliceField(item["dishes"])
			if len(dishes) > 5 {
				dishes = dishes[:5]
			}
			lines = append(lines, fmt.Sprintf("🌟 **Món đặc sản:** %s", strings.Join(dishes, ", ")))
		} else {
			name := stringField(item, "name", "N/A")
			rating, _ := toFloat64(item["rating"])
			price := stringField(item, "price_range", "")

			lines = append(lines, fmt.Sprintf("• **%s** ⭐ %.1f", name, rating))
			if price != "" {
				lines = append(lines, fmt.Sprintf("  💵 %s", price))
			}
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func createItinerarySection(itinerary []map[string]any, duration int) string {
	days := truncateRecords(itinerary, duration)
	lines := []string{fmt.Sprintf("🗓️ **Lịch trình %d ngày**\n", duration)}

	for _, dayPlan := range days {
		day := intField(dayPlan, "day", 1)
		activities := activitiesField(dayPlan["activities"])

		lines = append(lines, fmt.Sprintf("**Ngày %d:**", day))
		if len(activities) > 4 {
			activities = activities[:4]
		}
		for _, act := range activities {
			timeStr := stringField(act, "time", "")
			name := stringField(act, "activity", "N/A")
			actType := stringField(act, "type", "")
			icon := activityIcon(actType)
			lines = append(lines, fmt.Sprintf("  %s %s - %s", icon, timeStr, name))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func createCostSection(costs map[string]any) string {
	lines := []string{"💰 **Ước tính chi phí**\n"}

	total, _ := toInt64(costs["total"])
	breakdown, _ := costs["breakdown"].(map[string]any)

	for _, category := range []string{"accommodation", "food", "transport", "activities"} {
		amount, ok := toInt64(breakdown[category])
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s: %s", translateCostCategory(category), formatMoney(amount)))
	}

	lines = append(lines, fmt.Sprintf("\n**Tổng cộng:** %s", formatMoney(total)))
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func activityIcon(actType string) string {
	icons := map[string]string{"spot": "📍", "food": "🍜", "hotel": "🏨", "transport": "🚗"}
	if icon, ok := icons[actType]; ok {
		return icon
	}
	return "•"
}

func translateCostCategory(category string) string {
	translations := map[string]string{
		"accommodation": "Chỗ ở",
		"food":           "Ăn uống",
		"transport":      "Di chuyển",
		"activities":     "Hoạt động",
		"other":          "Khác",
	}
	if v, ok := translations[category]; ok {
		return v
	}
	return category
}

func formatMoney(amount int64) string {
	if amount >= 1_000_000 {
		return fmt.Sprintf("%.1f triệu", float64(amount)/1_000_000)
	}
	return fmt.Sprintf("%sđ", formatThousands(amount))
}

func stringField(record map[string]any, key, fallback string) string {
	if s, ok := record[key].(string); ok {
		return s
	}
	return fallback
}

func intField(record map[string]any, key string, fallback int) int {
	if v, ok := toInt64(record[key]); ok {
		return int(v)
	}
	return fallback
}

func stringSliceField(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func activitiesField(v any) []map[string]any {
	switch t := v.(type) {
	case []map[string]any:
		return t
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, e := range t {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}
