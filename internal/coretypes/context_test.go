package coretypes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextRoundTripsByteIdentically(t *testing.T) {
	c := NewContext("sess-1")
	c.Slots.Destination = "Đà Nẵng"
	c.Slots.Duration = 3
	c.MarkSpotSelected("spot-1")
	c.AppendChatHistory("user", "xin chào")
	c.Extra = map[string]json.RawMessage{"future_field": json.RawMessage(`"kept"`)}

	raw, err := c.Serialize()
	require.NoError(t, err)

	restored, err := RestoreContext("sess-1", raw)
	require.NoError(t, err)

	raw2, err := restored.Serialize()
	require.NoError(t, err)

	require.JSONEq(t, string(raw), string(raw2))
}

func TestContextPreservesUnknownTopLevelKey(t *testing.T) {
	c := NewContext("sess-1")
	c.Slots.Destination = "Hội An"

	raw, err := c.Serialize()
	require.NoError(t, err)

	var withUnknown map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &withUnknown))
	withUnknown["a_field_this_version_has_never_heard_of"] = json.RawMessage(`{"nested":true}`)
	injected, err := json.Marshal(withUnknown)
	require.NoError(t, err)

	restored, err := RestoreContext("sess-1", injected)
	require.NoError(t, err)
	require.Contains(t, restored.Extra, "a_field_this_version_has_never_heard_of")

	roundTripped, err := restored.Serialize()
	require.NoError(t, err)
	require.JSONEq(t, string(injected), string(roundTripped))
}

func TestRestoreContextEmptyPayloadYieldsFreshContext(t *testing.T) {
	c, err := RestoreContext("sess-2", nil)
	require.NoError(t, err)
	require.Equal(t, StateInitial, c.Workflow.State)
	require.Equal(t, "sess-2", c.SessionID)
}

func TestResolvePrecedence(t *testing.T) {
	got := ResolvePrecedence([]PrimaryIntent{IntentFindSpot, IntentCalculateCost, IntentChitchat})
	require.Equal(t, IntentCalculateCost, got)
}

func TestGetParallelTasks(t *testing.T) {
	plan := &ExecutionPlan{Tasks: []*SubTask{
		{TaskID: "spots_1", Priority: 1},
		{TaskID: "food_1", Priority: 1},
		{TaskID: "itinerary_1", Priority: 2},
		{TaskID: "cost_1", Priority: 3},
	}}
	levels := plan.GetParallelTasks()
	require.Len(t, levels, 3)
	require.Len(t, levels[0], 2)
	require.Len(t, levels[1], 1)
	require.Len(t, levels[2], 1)
}
