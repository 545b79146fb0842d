package experts

import (
	"context"
	"fmt"
	"time"

	"travelcore/internal/coretypes"
)

// costEstimates is the fixed per-level price table (VNĐ), ported verbatim
// from itinerary_expert.py's CostCalculatorExpert.COST_ESTIMATES.
var costEstimates = map[string]map[coretypes.BudgetLevel]int64{
	"accommodation": {
		coretypes.BudgetThrifty: 300_000,
		coretypes.BudgetMid:     800_000,
		coretypes.BudgetLuxury:  2_500_000,
	},
	"food_per_day": {
		coretypes.BudgetThrifty: 200_000,
		coretypes.BudgetMid:     500_000,
		coretypes.BudgetLuxury:  1_000_000,
	},
	"transport_per_day": {
		coretypes.BudgetThrifty: 100_000,
		coretypes.BudgetMid:     300_000,
		coretypes.BudgetLuxury:  800_000,
	},
	"activities_per_day": {
		coretypes.BudgetThrifty: 100_000,
		coretypes.BudgetMid:     300_000,
		coretypes.BudgetLuxury:  500_000,
	},
}

const defaultCostDuration = 2
const defaultCostPeopleCount = 1

// CostCalculatorExpert computes a trip's estimated cost breakdown from a
// per-level price table, scaled by duration/people_count, optionally
// overriding the accommodation line with the actual selected hotel's price
// (§4.4.5).
type CostCalculatorExpert struct{}

func (e *CostCalculatorExpert) ExpertType() string { return "cost_calculator_expert" }

func (e *CostCalculatorExpert) Execute(ctx context.Context, query string, params map[string]any) *coretypes.ExpertResult {
	start := time.Now()

	duration := intParam(params, "duration", defaultCostDuration)
	peopleCount := intParam(params, "people_count", defaultCostPeopleCount)
	level := resolveBudgetLevel(stringParam(params, "budget_level"))
	hotelData := hotelDataFrom(params["hotel_data"])

	costs := calculateCosts(duration, peopleCount, level, hotelData)

	return &coretypes.ExpertResult{
		ExpertType:      e.ExpertType(),
		Success:         true,
		Data:            []map[string]any{costs},
		Summary:         fmt.Sprintf("Tổng chi phí dự kiến: %s VNĐ", formatThousands(costs["total"].(int64))),
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}
}

func resolveBudgetLevel(raw string) coretypes.BudgetLevel {
	level := coretypes.BudgetLevel(raw)
	if _, ok := costEstimates["accommodation"][level]; !ok {
		return coretypes.BudgetMid
	}
	return level
}

func hotelDataFrom(v any) []map[string]any {
	if records, ok := v.([]map[string]any); ok {
		return records
	}
	return nil
}

func calculateCosts(duration, peopleCount int, level coretypes.BudgetLevel, hotelData []map[string]any) map[string]any {
	nights := duration - 1
	if nights < 1 {
		nights = 1
	}

	var accommodation int64
	if len(hotelData) > 0 {
		if price, ok := hotelData[0]["price"].(int64); ok && price > 0 {
			accommodation = price * int64(nights)
		}
	}
	if accommodation == 0 && duration > 1 {
		accommodation = costEstimates["accommodation"][level] * int64(nights)
	}

	food := costEstimates["food_per_day"][level] * int64(duration) * int64(peopleCount)
	transport := costEstimates["transport_per_day"][level] * int64(duration)
	activities := costEstimates["activities_per_day"][level] * int64(duration) * int64(peopleCount)
	total := accommodation + food + transport + activities

	perPerson := total
	if peopleCount > 0 {
		perPerson = total / int64(peopleCount)
	}

	accommodationPerNight := int64(0)
	if accommodation > 0 {
		accommodationPerNight = accommodation / int64(nights)
	}

	return map[string]any{
		"accommodation": accommodation,
		"food":          food,
		"transport":     transport,
		"activities":    activities,
		"total":         total,
		"per_person":    perPerson,
		"budget_level":  level,
		"duration":      duration,
		"people_count":  peopleCount,
		"breakdown": map[string]any{
			"accommodation_per_night":       accommodationPerNight,
			"food_per_person_per_day":       costEstimates["food_per_day"][level],
			"transport_per_day":             costEstimates["transport_per_day"][level],
			"activities_per_person_per_day": costEstimates["activities_per_day"][level],
		},
	}
}
