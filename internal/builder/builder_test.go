package builder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"travelcore/internal/coretypes"
)

func sampleCandidates() []map[string]any {
	return []map[string]any{
		{"id": "s1", "name": "Bà Nà Hills", "category": "theme_park"},
		{"id": "s2", "name": "Ngũ Hành Sơn", "category": "landmark"},
		{"id": "s3", "name": "Cầu Rồng", "category": "landmark"},
		{"id": "s4", "name": "Chợ Đêm Sơn Trà", "category": "night_market"},
	}
}

func TestOfferDayExcludesAlreadySelectedSpots(t *testing.T) {
	c := coretypes.NewContext("s1")
	Init(c, "Đà Nẵng", 2, 4_000_000, 2)
	c.Builder.WaitingForStartDate = false
	c.MarkSpotSelected("s1")

	result := OfferDay(c, sampleCandidates())
	rows := result.UIData["rows"].([]map[string]any)
	for _, row := range rows {
		require.NotEqual(t, "s1", row["id"])
	}
}

func TestHandleInputOrdinalSelectionMergesSpotsAndAdvancesDay(t *testing.T) {
	c := coretypes.NewContext("s1")
	Init(c, "Đà Nẵng", 2, 4_000_000, 2)
	c.Builder.WaitingForStartDate = false
	OfferDay(c, sampleCandidates())

	result := HandleInput(c, "1 3")
	require.Equal(t, 2, c.Builder.CurrentDay)
	require.Len(t, c.Builder.DaysPlan[1], 2)
	require.True(t, c.Selections.SelectedSpotIDs["s1"])
	require.True(t, c.Selections.SelectedSpotIDs["s3"])
	require.False(t, result.NeedsVerify)
}

func TestHandleInputNameSubstringMatch(t *testing.T) {
	c := coretypes.NewContext("s1")
	Init(c, "Đà Nẵng", 1, 4_000_000, 2)
	c.Builder.WaitingForStartDate = false
	OfferDay(c, sampleCandidates())

	HandleInput(c, "tôi muốn đi cầu rồng")
	require.Len(t, c.Builder.DaysPlan[1], 1)
	require.Equal(t, "Cầu Rồng", c.Builder.DaysPlan[1][0].Name)
}

func TestHandleInputSkipAdvancesWithoutSelection(t *testing.T) {
	c := coretypes.NewContext("s1")
	Init(c, "Đà Nẵng", 1, 4_000_000, 2)
	c.Builder.WaitingForStartDate = false
	OfferDay(c, sampleCandidates())

	result := HandleInput(c, "skip")
	require.True(t, result.NeedsVerify)
}

func TestHandleInputAutoAbandonsBuilder(t *testing.T) {
	c := coretypes.NewContext("s1")
	Init(c, "Đà Nẵng", 2, 4_000_000, 2)
	c.Builder.WaitingForStartDate = false

	result := HandleInput(c, "auto")
	require.True(t, result.Abandoned)
	require.True(t, result.AutoGenerate)
}

func TestHandleInputCancelAbandonsWithoutAutoGenerate(t *testing.T) {
	c := coretypes.NewContext("s1")
	Init(c, "Đà Nẵng", 2, 4_000_000, 2)

	result := HandleInput(c, "huỷ")
	require.True(t, result.Abandoned)
	require.False(t, result.AutoGenerate)
}

func TestSelectedSpotsSurviveBuilderReset(t *testing.T) {
	c := coretypes.NewContext("s1")
	Init(c, "Đà Nẵng", 1, 4_000_000, 2)
	c.Builder.WaitingForStartDate = false
	OfferDay(c, sampleCandidates())
	HandleInput(c, "1")

	c.Builder = nil
	require.Len(t, c.Selections.SelectedSpots, 1)
	require.True(t, c.Selections.SelectedSpotIDs["s1"])
}
