package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTolerantJSONDirect(t *testing.T) {
	got, err := parseTolerantJSON(`{"intent": "find_spot"}`)
	require.NoError(t, err)
	require.Equal(t, "find_spot", got["intent"])
}

func TestParseTolerantJSONFencedBlock(t *testing.T) {
	raw := "Here you go:\n```json\n{\"intent\": \"plan_trip\", \"duration\": 3}\n```\nLet me know."
	got, err := parseTolerantJSON(raw)
	require.NoError(t, err)
	require.Equal(t, "plan_trip", got["intent"])
	require.Equal(t, float64(3), got["duration"])
}

func TestParseTolerantJSONBraceSlice(t *testing.T) {
	raw := `sure, {"intent": "find_hotel"} hope that helps`
	got, err := parseTolerantJSON(raw)
	require.NoError(t, err)
	require.Equal(t, "find_hotel", got["intent"])
}

func TestParseTolerantJSONBalancedBraceScanSkipsTrailingNoise(t *testing.T) {
	// The naive first-'{'..last-'}' slice would swallow the trailing object
	// too and fail to parse; the balanced-brace scan must stop at the first
	// object's matching close brace instead.
	raw := `{"intent": "chitchat"} unrelated trailing {"other": 1}`
	got, err := parseTolerantJSON(raw)
	require.NoError(t, err)
	require.Equal(t, "chitchat", got["intent"])
}

func TestParseTolerantJSONUnparseable(t *testing.T) {
	_, err := parseTolerantJSON("not json at all")
	require.Error(t, err)
}
