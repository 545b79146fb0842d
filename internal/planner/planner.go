// Package planner is the Planner (C4): a pure function turning one
// IntentRecord into an ExecutionPlan DAG, topologically sorted with
// Kahn's algorithm — grounded on original_source's PlannerAgent.
package planner

import (
	"strconv"

	"travelcore/internal/coretypes"
)

const defaultDuration = 2

// Plan builds an ExecutionPlan for rec. It never talks to the network or
// the LLM — Plan is a pure function of its input, which is what makes the
// "planner re-run equivalence" property (same intent in, same plan out)
// straightforward to test.
func Plan(rec *coretypes.IntentRecord) *coretypes.ExecutionPlan {
	plan := &coretypes.ExecutionPlan{
		Intent:   rec.PrimaryIntent,
		Location: rec.Location,
	}

	switch rec.PrimaryIntent {
	case coretypes.IntentPlanTrip:
		plan.Tasks = planTrip(rec)
	case coretypes.IntentFindHotel, coretypes.IntentBookHotel:
		plan.Tasks = planHotelSearch(rec)
	case coretypes.IntentFindFood:
		plan.Tasks = planFoodSearch(rec)
	case coretypes.IntentFindSpot:
		plan.Tasks = planSpotSearch(rec)
	default:
		plan.Tasks = planGeneralQA(rec)
	}

	plan.ExecutionOrder = topologicalSort(plan.Tasks)
	return plan
}

func location(rec *coretypes.IntentRecord) string {
	if rec.Location != "" {
		return rec.Location
	}
	return "Việt Nam"
}

func planTrip(rec *coretypes.IntentRecord) []*coretypes.SubTask {
	loc := location(rec)
	duration := rec.Duration
	if duration == 0 {
		duration = defaultDuration
	}

	tasks := []*coretypes.SubTask{
		{
			TaskID:            "spots_1",
			TaskType:          coretypes.TaskFindSpots,
			ReformulatedQuery: "Địa điểm du lịch nổi tiếng ở " + loc,
			Parameters: map[string]any{
				"location":  loc,
				"interests": rec.Interests,
				"limit":     10,
			},
			Priority: 1,
		},
		{
			TaskID:            "food_1",
			TaskType:          coretypes.TaskFindFood,
			ReformulatedQuery: "Quán ăn ngon, món đặc sản ở " + loc,
			Parameters: map[string]any{
				"location":     loc,
				"budget_level": rec.BudgetLevel,
				"limit":        5,
			},
			Priority: 1,
		},
	}

	dependsOn := []string{"spots_1", "food_1"}
	if rec.Accommodation != "none" {
		nights := duration - 1
		if nights < 1 {
			nights = 1
		}
		tasks = append(tasks, &coretypes.SubTask{
			TaskID:            "hotel_1",
			TaskType:          coretypes.TaskFindHotels,
			ReformulatedQuery: "Khách sạn " + budgetLevelOr(rec.BudgetLevel, "tốt") + " ở " + loc,
			Parameters: map[string]any{
				"location":     loc,
				"budget":       rec.Budget,
				"budget_level": rec.BudgetLevel,
				"nights":       nights,
			},
			Priority: 1,
			Optional: rec.Accommodation == "optional",
		})
		dependsOn = append(dependsOn, "hotel_1")
	}

	tasks = append(tasks, &coretypes.SubTask{
		TaskID:            "itinerary_1",
		TaskType:          coretypes.TaskCreateItinerary,
		ReformulatedQuery: "Lịch trình " + strconv.Itoa(duration) + " ngày ở " + loc,
		Parameters: map[string]any{
			"location":     loc,
			"duration":     duration,
			"people_count": rec.PeopleCount,
			"budget":       rec.Budget,
			"interests":    rec.Interests,
		},
		DependsOn: dependsOn,
		Priority:  2,
	})

	if rec.Budget > 0 {
		tasks = append(tasks, &coretypes.SubTask{
			TaskID:            "cost_1",
			TaskType:          coretypes.TaskCalculateCost,
			ReformulatedQuery: "Tính chi phí chuyến đi " + loc,
			Parameters: map[string]any{
				"budget":       rec.Budget,
				"duration":     duration,
				"people_count": rec.PeopleCount,
			},
			DependsOn: []string{"itinerary_1"},
			Priority:  3,
		})
	}

	return tasks
}

func planHotelSearch(rec *coretypes.IntentRecord) []*coretypes.SubTask {
	loc := location(rec)
	return []*coretypes.SubTask{{
		TaskID:            "hotel_1",
		TaskType:          coretypes.TaskFindHotels,
		ReformulatedQuery: "Khách sạn " + budgetLevelOr(rec.BudgetLevel, "") + " ở " + loc,
		Parameters: map[string]any{
			"location":     loc,
			"budget":       rec.Budget,
			"budget_level": rec.BudgetLevel,
			"keywords":     rec.Keywords,
		},
		Priority: 1,
	}}
}

func planFoodSearch(rec *coretypes.IntentRecord) []*coretypes.SubTask {
	loc := location(rec)
	return []*coretypes.SubTask{{
		TaskID:            "food_1",
		TaskType:          coretypes.TaskFindFood,
		ReformulatedQuery: "Quán ăn " + joinOr(rec.Keywords, "ngon") + " ở " + loc,
		Parameters: map[string]any{
			"location":     loc,
			"keywords":     rec.Keywords,
			"budget_level": rec.BudgetLevel,
		},
		Priority: 1,
	}}
}

func planSpotSearch(rec *coretypes.IntentRecord) []*coretypes.SubTask {
	loc := location(rec)
	return []*coretypes.SubTask{{
		TaskID:            "spots_1",
		TaskType:          coretypes.TaskFindSpots,
		ReformulatedQuery: "Địa điểm " + joinOr(rec.Interests, "du lịch") + " ở " + loc,
		Parameters: map[string]any{
			"location":  loc,
			"interests": rec.Interests,
			"keywords":  rec.Keywords,
		},
		Priority: 1,
	}}
}

func planGeneralQA(rec *coretypes.IntentRecord) []*coretypes.SubTask {
	query := "thông tin du lịch"
	if len(rec.Keywords) > 0 {
		query = rec.Keywords[0]
	}
	return []*coretypes.SubTask{{
		TaskID:            "info_1",
		TaskType:          coretypes.TaskGeneralInfo,
		ReformulatedQuery: query,
		Parameters: map[string]any{
			"location": rec.Location,
			"keywords": rec.Keywords,
		},
		Priority: 1,
	}}
}

func budgetLevelOr(lvl coretypes.BudgetLevel, fallback string) string {
	if lvl == "" {
		return fallback
	}
	return string(lvl)
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	out := items[0]
	for _, s := range items[1:] {
		out += " " + s
	}
	return out
}
