package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"travelcore/internal/coretypes"
)

func TestApplyTransitionTriggersInitialToChoosingSpots(t *testing.T) {
	c := coretypes.NewContext("s1")
	rec := &coretypes.IntentRecord{PrimaryIntent: coretypes.IntentPlanTrip, Location: "Đà Lạt", Duration: 3}

	ApplyTransitionTriggers(c, rec, true, false, false)
	require.Equal(t, coretypes.StateChoosingSpots, c.Workflow.State)
}

func TestApplyTransitionTriggersChoosingSpotsToChoosingHotel(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Workflow.State = coretypes.StateChoosingSpots
	rec := &coretypes.IntentRecord{}

	ApplyTransitionTriggers(c, rec, false, true, false)
	require.Equal(t, coretypes.StateChoosingHotel, c.Workflow.State)
}

func TestApplyTransitionTriggersHotelSelectedToReadyToFinalize(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Workflow.State = coretypes.StateChoosingHotel
	rec := &coretypes.IntentRecord{}

	ApplyTransitionTriggers(c, rec, false, false, true)
	require.Equal(t, coretypes.StateReadyToFinalize, c.Workflow.State)
}

func TestBacktrackRebuildsBuilderFromLastItinerary(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Workflow.State = coretypes.StateChoosingHotel
	c.LastItinerary = &coretypes.LastItinerary{
		Location: "Hội An",
		Duration: 2,
		Days: []coretypes.ItineraryDay{
			{Day: 1, Spots: []coretypes.SelectedSpot{{SpotID: "s1", Name: "Chùa Cầu", Day: 1}}},
		},
	}

	Backtrack(c)
	require.Equal(t, coretypes.StateChoosingSpots, c.Workflow.State)
	require.NotNil(t, c.Builder)
	require.Equal(t, "Hội An", c.Builder.Location)
	require.Len(t, c.Builder.DaysPlan[1], 1)
}

func TestBacktrackNoOpWithoutLastItinerary(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Workflow.State = coretypes.StateChoosingHotel

	Backtrack(c)
	require.Equal(t, coretypes.StateChoosingHotel, c.Workflow.State)
	require.Nil(t, c.Builder)
}
