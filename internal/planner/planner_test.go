package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"travelcore/internal/coretypes"
)

func TestPlanTripOrdersSpotsFoodHotelBeforeItinerary(t *testing.T) {
	rec := &coretypes.IntentRecord{
		PrimaryIntent: coretypes.IntentPlanTrip,
		Location:      "Đà Nẵng",
		Duration:      3,
		Budget:        5_000_000,
	}
	plan := Plan(rec)

	require.Len(t, plan.Tasks, 5)
	itineraryIdx := indexOf(plan.ExecutionOrder, "itinerary_1")
	costIdx := indexOf(plan.ExecutionOrder, "cost_1")
	for _, dep := range []string{"spots_1", "food_1", "hotel_1"} {
		require.Less(t, indexOf(plan.ExecutionOrder, dep), itineraryIdx)
	}
	require.Less(t, itineraryIdx, costIdx)
}

func TestPlanTripSkipsHotelWhenAccommodationNone(t *testing.T) {
	rec := &coretypes.IntentRecord{
		PrimaryIntent: coretypes.IntentPlanTrip,
		Location:      "Huế",
		Accommodation: "none",
	}
	plan := Plan(rec)

	for _, task := range plan.Tasks {
		require.NotEqual(t, coretypes.TaskFindHotels, task.TaskType)
	}
}

func TestPlanTripOmitsCostTaskWithoutBudget(t *testing.T) {
	rec := &coretypes.IntentRecord{PrimaryIntent: coretypes.IntentPlanTrip, Location: "Hội An"}
	plan := Plan(rec)

	for _, task := range plan.Tasks {
		require.NotEqual(t, coretypes.TaskCalculateCost, task.TaskType)
	}
}

func TestPlanFindHotelProducesSingleTask(t *testing.T) {
	rec := &coretypes.IntentRecord{PrimaryIntent: coretypes.IntentFindHotel, Location: "Nha Trang"}
	plan := Plan(rec)

	require.Len(t, plan.Tasks, 1)
	require.Equal(t, coretypes.TaskFindHotels, plan.Tasks[0].TaskType)
}

func TestPlanIsPureAndReproducible(t *testing.T) {
	rec := &coretypes.IntentRecord{
		PrimaryIntent: coretypes.IntentPlanTrip,
		Location:      "Đà Lạt",
		Duration:      2,
		Budget:        3_000_000,
	}
	first := Plan(rec)
	second := Plan(rec)

	require.Equal(t, first.ExecutionOrder, second.ExecutionOrder)
	require.Equal(t, len(first.Tasks), len(second.Tasks))
}

func TestGetParallelTasksGroupsByPriority(t *testing.T) {
	rec := &coretypes.IntentRecord{
		PrimaryIntent: coretypes.IntentPlanTrip,
		Location:      "Phú Quốc",
		Duration:      4,
		Budget:        10_000_000,
	}
	plan := Plan(rec)
	levels := plan.GetParallelTasks()

	require.Len(t, levels[0], 3) // spots, food, hotel all priority 1
	require.Len(t, levels[1], 1) // itinerary priority 2
	require.Len(t, levels[2], 1) // cost priority 3
}

func indexOf(ids []string, target string) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}
