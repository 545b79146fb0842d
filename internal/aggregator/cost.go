package aggregator

import (
	"fmt"
	"strings"
)

// accommodationEstimates/dailyFoodEstimates/etc. are the aggregator's own
// fallback price table, distinct from internal/experts's
// CostCalculatorExpert — it only runs when no upstream cost_calculator
// result exists yet, to keep the detailed cost section populated even for
// a plain spots+hotels multi-intent reply
// (response_aggregator.py's _calculate_detailed_cost).
var accommodationEstimates = map[string]int64{"budget": 400_000, "mid": 800_000, "luxury": 2_000_000}
var dailyFoodEstimates = map[string]int64{"budget": 200_000, "mid": 400_000, "luxury": 800_000}
var dailyActivityEstimates = map[string]int64{"budget": 100_000, "mid": 200_000, "luxury": 500_000}
var dailyTransportEstimates = map[string]int64{"budget": 100_000, "mid": 200_000, "luxury": 400_000}

// normalizeBudgetLevel maps any of the Vietnamese/English budget spellings
// a caller might pass into one of the three canonical keys
// (response_aggregator.py's _normalize_budget_level).
func normalizeBudgetLevel(raw string) string {
	mapping := map[string]string{
		"tiết kiệm": "budget", "tiet kiem": "budget", "bình dân": "budget", "binh dan": "budget",
		"rẻ": "budget", "re": "budget", "thấp": "budget", "low": "budget", "budget": "budget",
		"trung bình": "mid", "trung binh": "mid", "vừa": "mid", "vua": "mid",
		"phổ thông": "mid", "pho thong": "mid", "mid": "mid", "medium": "mid", "standard": "mid",
		"sang trọng": "luxury", "sang trong": "luxury", "cao cấp": "luxury", "cao cap": "luxury",
		"xa xỉ": "luxury", "luxury": "luxury", "high": "luxury", "premium": "luxury",
	}
	if v, ok := mapping[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return v
	}
	return "mid"
}

// calculateDetailedCost reuses an already-computed cost_calculator result
// when present, otherwise derives accommodation from the candidate hotels'
// actual prices (averaged) and falls back to the budget-level estimate
// table for everything else.
func calculateDetailedCost(hotels []map[string]any, duration, peopleCount int, budget string, existing map[string]any) map[string]any {
	if total, ok := toInt64(existing["total"]); ok && total > 0 {
		return existing
	}

	level := normalizeBudgetLevel(budget)

	accommodationPerNight := averageHotelPrice(hotels)
	if accommodationPerNight == 0 {
		accommodationPerNight = estimateOr(accommodationEstimates, level, 600_000)
	}

	dailyFood := estimateOr(dailyFoodEstimates, level, 300_000)
	dailyActivities := estimateOr(dailyActivityEstimates, level, 150_000)
	dailyTransport := estimateOr(dailyTransportEstimates, level, 150_000)

	totalAccommodation := accommodationPerNight * int64(duration)
	totalFood := dailyFood * int64(duration) * int64(peopleCount)
	totalActivities := dailyActivities * int64(duration) * int64(peopleCount)
	totalTransport := dailyTransport * int64(duration)

	grandTotal := totalAccommodation + totalFood + totalActivities + totalTransport

	perPerson := grandTotal
	if peopleCount > 1 {
		perPerson = grandTotal / int64(peopleCount)
	}

	return map[string]any{
		"total":      grandTotal,
		"per_person": perPerson,
		"breakdown": map[string]any{
			"accommodation": totalAccommodation,
			"food":           totalFood,
			"activities":     totalActivities,
			"transport":      totalTransport,
		},
		"daily_estimate": map[string]any{
			"accommodation": accommodationPerNight,
			"food":           dailyFood * int64(peopleCount),
			"activities":     dailyActivities * int64(peopleCount),
			"transport":      dailyTransport,
		},
		"duration":     duration,
		"people_count": peopleCount,
		"budget_level": level,
	}
}

func averageHotelPrice(hotels []map[string]any) int64 {
	top := truncateRecords(hotels, 3)
	var sum int64
	var count int64
	for _, h := range top {
		price, ok := toInt64(h["price_per_night"])
		if !ok || price <= 0 {
			price, ok = toInt64(h["price"])
		}
		if ok && price > 0 {
			sum += price
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / count
}

func estimateOr(table map[string]int64, level string, fallback int64) int64 {
	if v, ok := table[level]; ok {
		return v
	}
	return fallback
}

func createDetailedCostSection(costData map[string]any) string {
	breakdown, _ := costData["breakdown"].(map[string]any)
	daily, _ := costData["daily_estimate"].(map[string]any)
	duration := intField(costData, "duration", 3)
	people := intField(costData, "people_count", 1)

	var lines []string
	lines = append(lines, "💰 **Ước tính chi phí**\n")

	if people > 1 {
		lines = append(lines, fmt.Sprintf("📊 *Chi phí cho %d người, %d ngày*\n", people, duration))
	}

	for _, category := range []string{"accommodation", "food", "transport", "activities"} {
		total, ok := toInt64(breakdown[category])
		if !ok {
			continue
		}
		name := translateCostCategory(category)
		dailyCost, _ := toInt64(daily[category])

		if dailyCost > 0 {
			lines = append(lines, fmt.Sprintf("• **%s:** ~%s/ngày", name, formatMoney(dailyCost)))
			lines = append(lines, fmt.Sprintf("  └ Tổng: %s", formatMoney(total)))
		} else {
			lines = append(lines, fmt.Sprintf("• **%s:** %s", name, formatMoney(total)))
		}
	}

	lines = append(lines, "")

	total, _ := toInt64(costData["total"])
	perPerson, ok := toInt64(costData["per_person"])
	if !ok {
		perPerson = total
	}

	lines = append(lines, fmt.Sprintf("**💵 Tổng chi phí:** %s", formatMoney(total)))
	if people > 1 {
		lines = append(lines, fmt.Sprintf("**👤 Mỗi người:** ~%s", formatMoney(perPerson)))
	}

	budgetNotes := map[string]string{
		"budget": "💡 *Đây là mức chi tiêu tiết kiệm*",
		"mid":    "💡 *Đây là mức chi tiêu trung bình phổ biến*",
		"luxury": "💡 *Đây là mức chi tiêu cao cấp*",
	}
	if note, ok := budgetNotes[stringField(costData, "budget_level", "mid")]; ok {
		lines = append(lines, "\n"+note)
	}

	return joinLines(lines)
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
