package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"travelcore/internal/coretypes"
)

func TestCheckGuardCalculateCostRequiresHotel(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Workflow.State = coretypes.StateChoosingHotel

	result := CheckGuard(c, coretypes.IntentCalculateCost)
	require.False(t, result.Allowed)
	require.NotEmpty(t, result.Prompt)

	c.Selections.SelectedHotel = map[string]any{"name": "Mường Thanh"}
	result = CheckGuard(c, coretypes.IntentCalculateCost)
	require.True(t, result.Allowed)
}

func TestCheckGuardCalculateCostWrongState(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Workflow.State = coretypes.StateInitial
	c.Selections.SelectedHotel = map[string]any{"name": "x"}

	result := CheckGuard(c, coretypes.IntentCalculateCost)
	require.False(t, result.Allowed)
}

func TestCheckGuardFindHotelRequiresDestination(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Workflow.State = coretypes.StateChoosingSpots

	result := CheckGuard(c, coretypes.IntentFindHotel)
	require.False(t, result.Allowed)

	c.Slots.Destination = "Đà Nẵng"
	result = CheckGuard(c, coretypes.IntentFindHotel)
	require.True(t, result.Allowed)
}

func TestCheckGuardFindFoodAnyNonTerminalState(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Slots.Destination = "Huế"
	c.Workflow.State = coretypes.StateReadyToFinalize

	result := CheckGuard(c, coretypes.IntentFindFood)
	require.True(t, result.Allowed)

	c.Workflow.State = coretypes.StateFinalized
	result = CheckGuard(c, coretypes.IntentFindFood)
	require.False(t, result.Allowed)
}

func TestCheckGuardUnguardedIntentAlwaysAllowed(t *testing.T) {
	c := coretypes.NewContext("s1")
	result := CheckGuard(c, coretypes.IntentGreeting)
	require.True(t, result.Allowed)
}

func TestFinalizedStateAlwaysCarriesLastItinerary(t *testing.T) {
	c := coretypes.NewContext("s1")
	c.Workflow.State = coretypes.StateFinalized
	c.LastItinerary = &coretypes.LastItinerary{Location: "Đà Lạt", Duration: 3}

	require.NotNil(t, c.LastItinerary)
}
