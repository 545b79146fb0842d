package workflow

import "travelcore/internal/coretypes"

// ApplyTransitionTriggers advances c.Workflow.State per §4.5's transition
// table. It is called once per turn, after the Anti-Greedy rules and after
// the builder/dispatcher have had a chance to mutate c.Builder/Selections.
func ApplyTransitionTriggers(c *coretypes.Context, rec *coretypes.IntentRecord, builderJustInitialized, builderFinishedLastDay, hotelSelected bool) {
	switch {
	case c.Workflow.State == coretypes.StateInitial &&
		rec.PrimaryIntent == coretypes.IntentPlanTrip &&
		rec.Location != "" && rec.Duration > 0 &&
		builderJustInitialized:
		c.Workflow.State = coretypes.StateChoosingSpots

	case c.Workflow.State == coretypes.StateChoosingSpots && builderFinishedLastDay:
		c.Workflow.State = coretypes.StateChoosingHotel

	case hotelSelected && c.Workflow.State != coretypes.StateFinalized:
		c.Workflow.State = coretypes.StateReadyToFinalize
	}
}

// Backtrack applies the fourth Anti-Greedy rule's consequence: rebuild the
// builder from the last finalized itinerary and return to CHOOSING_SPOTS.
func Backtrack(c *coretypes.Context) {
	if c.LastItinerary == nil {
		return
	}
	if c.Builder == nil {
		daysPlan := make(map[int][]coretypes.SelectedSpot, len(c.LastItinerary.Days))
		for _, d := range c.LastItinerary.Days {
			daysPlan[d.Day] = d.Spots
		}
		c.Builder = &coretypes.ItineraryBuilderState{
			Location:   c.LastItinerary.Location,
			TotalDays:  c.LastItinerary.Duration,
			CurrentDay: len(c.LastItinerary.Days),
			DaysPlan:   daysPlan,
		}
	}
	c.Workflow.State = coretypes.StateChoosingSpots
}
