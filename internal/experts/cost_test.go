package experts

import (
	"testing"

	"travelcore/internal/coretypes"
)

func TestCalculateCostsUsesRealHotelPriceEvenForOneDayTrips(t *testing.T) {
	hotelData := []map[string]any{{"price": int64(1_000_000)}}
	costs := calculateCosts(1, 2, coretypes.BudgetMid, hotelData)
	if costs["accommodation"].(int64) == 0 {
		t.Errorf("expected non-zero accommodation for a 1-day trip with real hotel data, got %+v", costs)
	}
}

func TestCalculateCostsFallsBackToEstimateTableOnlyForMultiDayTrips(t *testing.T) {
	costs := calculateCosts(1, 2, coretypes.BudgetMid, nil)
	if costs["accommodation"].(int64) != 0 {
		t.Errorf("expected zero accommodation for a 1-day trip with no hotel data, got %+v", costs)
	}

	costs = calculateCosts(3, 2, coretypes.BudgetMid, nil)
	if costs["accommodation"].(int64) == 0 {
		t.Errorf("expected estimate-table accommodation for a multi-day trip with no hotel data, got %+v", costs)
	}
}
