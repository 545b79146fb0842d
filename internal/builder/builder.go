package builder

import (
	"strconv"
	"strings"

	"travelcore/internal/coretypes"
)

// StepResult is what one builder turn produces: a reply plus the UI
// envelope the orchestrator attaches to its ResponseChunk.
type StepResult struct {
	Reply        string
	UIType       coretypes.UIType
	UIData       map[string]any
	NeedsVerify  bool // true once total_days is reached: caller should run the Verifier
	Abandoned    bool // true when the user typed "auto" or "huỷ"
	AutoGenerate bool // true when abandoned because of "auto" specifically
}

const maxOffered = 10
const maxCandidatePool = 20

// Init seeds c.Builder for a fresh plan_trip, selecting the start-date step
// (or jumping straight to per_day_select if startDate is already known).
func Init(c *coretypes.Context, location string, totalDays int, budget int64, peopleCount int) {
	c.Builder = &coretypes.ItineraryBuilderState{
		Location:    location,
		TotalDays:   totalDays,
		CurrentDay:  1,
		DaysPlan:    map[int][]coretypes.SelectedSpot{},
		Budget:      budget,
		PeopleCount: peopleCount,
	}
	if c.Slots.StartDate == "" {
		c.Builder.WaitingForStartDate = true
	}
}

// OfferDay builds the spot_selector_table-style offer for the builder's
// current day: up to maxOffered of the first maxCandidatePool candidates,
// filtered to exclude already-selected ids.
func OfferDay(c *coretypes.Context, candidates []map[string]any) StepResult {
	b := c.Builder
	pool := candidates
	if len(pool) > maxCandidatePool {
		pool = pool[:maxCandidatePool]
	}

	offered := make([]map[string]any, 0, maxOffered)
	for _, cand := range pool {
		id, _ := cand["id"].(string)
		if c.Selections.SelectedSpotIDs[id] {
			continue
		}
		offered = append(offered, enrichCandidate(cand))
		if len(offered) >= maxOffered {
			break
		}
	}
	b.AvailableSpots = offered

	rows := make([]map[string]any, 0, len(offered))
	for i, spot := range offered {
		rows = append(rows, map[string]any{
			"index":     i + 1,
			"id":        spot["id"],
			"name":      spot["name"],
			"category":  spot["category"],
			"best_time": spot["best_visit_time"],
		})
	}

	return StepResult{
		Reply: "Ngày " + strconv.Itoa(b.CurrentDay) + "/" + strconv.Itoa(b.TotalDays) +
			": chọn địa điểm (nhập số thứ tự, tên, hoặc \"skip\"/\"done\"/\"xem thêm\"/\"auto\"/\"huỷ\")",
		UIType: coretypes.UIItineraryBuilder,
		UIData: map[string]any{
			"day":   b.CurrentDay,
			"total": b.TotalDays,
			"rows":  rows,
		},
	}
}

func enrichCandidate(cand map[string]any) map[string]any {
	out := map[string]any{}
	for k, v := range cand {
		out[k] = v
	}
	name, _ := out["name"].(string)
	category, _ := out["category"].(string)
	if out["best_visit_time"] == nil {
		out["best_visit_time"] = bestVisitTime(category, name)
	}
	if out["avg_duration_min"] == nil {
		out["avg_duration_min"] = avgDurationMinutes(category)
	}
	return out
}

// HandleInput parses one user turn against the builder's current offer and
// advances state accordingly (§4.6 step 2-4).
func HandleInput(c *coretypes.Context, utterance string) StepResult {
	b := c.Builder
	lower := strings.ToLower(strings.TrimSpace(utterance))

	switch lower {
	case "auto":
		return StepResult{Abandoned: true, AutoGenerate: true}
	case "huỷ", "huy", "cancel":
		return StepResult{Abandoned: true}
	case "xem thêm", "xem them", "more":
		return showAll(b)
	case "skip", "done", "tiếp", "tiep", "ok":
		return advanceDay(c)
	}

	chosen := parseSelection(utterance, b.AvailableSpots)
	if len(chosen) == 0 {
		return StepResult{
			Reply:  "Không nhận diện được lựa chọn. Hãy nhập số thứ tự hoặc tên địa điểm, hoặc \"skip\"/\"done\".",
			UIType: coretypes.UIItineraryBuilder,
		}
	}

	mergeSpots(c, chosen)
	return advanceDay(c)
}

// mergeSpots merges chosen spots into the current day's plan, deduplicating
// by id, recording selected_spot_ids, and appending a copy to selected_spots
// so the selection survives a builder reset (§4.6 step 3).
func mergeSpots(c *coretypes.Context, chosen []map[string]any) {
	b := c.Builder
	day := b.CurrentDay

	existing := map[string]bool{}
	for _, s := range b.DaysPlan[day] {
		existing[s.SpotID] = true
	}

	for _, cand := range chosen {
		id, _ := cand["id"].(string)
		if id == "" || existing[id] {
			continue
		}
		name, _ := cand["name"].(string)
		lat, _ := cand["lat"].(float64)
		lng, _ := cand["lng"].(float64)
		image, _ := cand["image"].(string)
		category, _ := cand["category"].(string)

		spot := coretypes.SelectedSpot{
			SpotID:   id,
			Name:     name,
			Day:      day,
			Lat:      lat,
			Lng:      lng,
			Image:    image,
			Category: category,
		}
		b.DaysPlan[day] = append(b.DaysPlan[day], spot)
		c.Selections.SelectedSpots = append(c.Selections.SelectedSpots, spot)
		c.MarkSpotSelected(id)
		existing[id] = true
	}
}

func advanceDay(c *coretypes.Context) StepResult {
	b := c.Builder
	b.CurrentDay++
	if b.CurrentDay > b.TotalDays {
		return StepResult{NeedsVerify: true}
	}
	return StepResult{
		Reply:  "Đã ghi nhận. Chuyển sang ngày " + strconv.Itoa(b.CurrentDay) + ".",
		UIType: coretypes.UIItineraryBuilder,
	}
}

func showAll(b *coretypes.ItineraryBuilderState) StepResult {
	rows := make([]map[string]any, 0, len(b.AvailableSpots))
	for i, spot := range b.AvailableSpots {
		rows = append(rows, map[string]any{"index": i + 1, "id": spot["id"], "name": spot["name"]})
	}
	return StepResult{
		Reply:  "Tất cả địa điểm gợi ý cho ngày " + strconv.Itoa(b.CurrentDay) + ":",
		UIType: coretypes.UIItineraryBuilder,
		UIData: map[string]any{"rows": rows},
	}
}

// parseSelection accepts a comma/space-separated list of 1-based ordinal
// indices or substring-matched spot names (§4.6 step 2).
func parseSelection(utterance string, available []map[string]any) []map[string]any {
	fields := strings.FieldsFunc(utterance, func(r rune) bool {
		return r == ',' || r == ' ' || r == '、'
	})

	var chosen []map[string]any
	seen := map[int]bool{}

	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if n, err := strconv.Atoi(field); err == nil {
			idx := n - 1
			if idx >= 0 && idx < len(available) && !seen[idx] {
				seen[idx] = true
				chosen = append(chosen, available[idx])
			}
		}
	}
	if len(chosen) > 0 {
		return chosen
	}

	lower := strings.ToLower(utterance)
	for i, spot := range available {
		name, _ := spot["name"].(string)
		if name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(name)) && !seen[i] {
			seen[i] = true
			chosen = append(chosen, spot)
		}
	}
	return chosen
}
