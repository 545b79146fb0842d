package verifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"travelcore/internal/coretypes"
	"travelcore/internal/llm"
)

type stubCritic struct {
	result map[string]any
	err    error
}

func (s *stubCritic) Chat(ctx context.Context, messages []llm.ChatMessage, opts llm.ChatOptions) (string, error) {
	return "", nil
}
func (s *stubCritic) Complete(ctx context.Context, prompt string, opts llm.ChatOptions) (string, error) {
	return "", nil
}
func (s *stubCritic) ExtractJSON(ctx context.Context, prompt, systemPrompt string) (map[string]any, error) {
	return s.result, s.err
}

func TestTimeToSlotBoundaries(t *testing.T) {
	require.Equal(t, "early_morning", timeToSlot("06:00"))
	require.Equal(t, "morning", timeToSlot("09:00"))
	require.Equal(t, "midday", timeToSlot("12:00"))
	require.Equal(t, "afternoon", timeToSlot("15:00"))
	require.Equal(t, "evening", timeToSlot("18:00"))
	require.Equal(t, "night", timeToSlot("22:00"))
	require.Equal(t, "morning", timeToSlot(""))
}

func TestVerifyFlagsNightMarketScheduledAtMorningSlot(t *testing.T) {
	days := []coretypes.ItineraryDay{
		{Day: 1, Spots: []coretypes.SelectedSpot{
			{SpotID: "s1", Name: "Chợ Đêm Sơn Trà", Category: "night_market"},
		}},
	}

	result := Verify(context.Background(), nil, days)
	require.Equal(t, coretypes.VerdictFail, result.Verdict)
	require.Len(t, result.Issues, 1)
	require.Equal(t, coretypes.SeverityError, result.Issues[0].Severity)
}

func TestVerifyPassesCleanItinerary(t *testing.T) {
	days := []coretypes.ItineraryDay{
		{Day: 1, Spots: []coretypes.SelectedSpot{
			{SpotID: "s1", Name: "Ngũ Hành Sơn", Category: "landmark"},
			{SpotID: "s2", Name: "Cầu Rồng", Category: "landmark"},
		}},
	}

	result := Verify(context.Background(), nil, days)
	require.Equal(t, coretypes.VerdictPass, result.Verdict)
	require.Empty(t, result.Issues)
}

func TestVerifySkipsCriticWhenRuleCleanAndShortTrip(t *testing.T) {
	critic := &stubCritic{result: map[string]any{"issues": []any{
		map[string]any{"day": float64(1), "spot_name": "X", "problem": "should never run", "severity": "warning"},
	}}}
	days := []coretypes.ItineraryDay{
		{Day: 1, Spots: []coretypes.SelectedSpot{{SpotID: "s1", Name: "Cầu Rồng", Category: "landmark"}}},
		{Day: 2, Spots: []coretypes.SelectedSpot{{SpotID: "s2", Name: "Ngũ Hành Sơn", Category: "landmark"}}},
	}

	result := Verify(context.Background(), critic, days)
	require.Equal(t, coretypes.VerdictPass, result.Verdict)
	require.Empty(t, result.Issues)
}

func TestVerifyRunsCriticOnLongerTrip(t *testing.T) {
	critic := &stubCritic{result: map[string]any{"issues": []any{
		map[string]any{"day": float64(3), "spot_name": "X", "problem": "quá nhiều hoạt động", "severity": "warning", "suggested_slot": "afternoon"},
	}}}
	days := []coretypes.ItineraryDay{
		{Day: 1, Spots: []coretypes.SelectedSpot{{SpotID: "s1", Name: "A", Category: "landmark"}}},
		{Day: 2, Spots: []coretypes.SelectedSpot{{SpotID: "s2", Name: "B", Category: "landmark"}}},
		{Day: 3, Spots: []coretypes.SelectedSpot{{SpotID: "s3", Name: "X", Category: "landmark"}}},
	}

	result := Verify(context.Background(), critic, days)
	require.Equal(t, coretypes.VerdictWarning, result.Verdict)
	require.Len(t, result.Issues, 1)
}

func TestAutoFixedItineraryReverifiesCleanOrWarning(t *testing.T) {
	days := []coretypes.ItineraryDay{
		{Day: 1, Spots: []coretypes.SelectedSpot{
			{SpotID: "s1", Name: "Chợ Đêm Sơn Trà", Category: "night_market"},
			{SpotID: "s2", Name: "Ngũ Hành Sơn", Category: "landmark"},
		}},
	}

	first := Verify(context.Background(), nil, days)
	require.Equal(t, coretypes.VerdictFail, first.Verdict)

	fixed, changes := AutoFix(days, first.Issues)
	require.NotEmpty(t, changes)

	second := Verify(context.Background(), nil, fixed)
	require.NotEqual(t, coretypes.VerdictFail, second.Verdict)
}

func TestAutoFixMovesNightMarketToEndOfDay(t *testing.T) {
	days := []coretypes.ItineraryDay{
		{Day: 1, Spots: []coretypes.SelectedSpot{
			{SpotID: "s1", Name: "Chợ Đêm Sơn Trà", Category: "night_market"},
			{SpotID: "s2", Name: "Ngũ Hành Sơn", Category: "landmark"},
		}},
	}
	first := Verify(context.Background(), nil, days)

	fixed, _ := AutoFix(days, first.Issues)
	require.Equal(t, "s2", fixed[0].Spots[0].SpotID)
	require.Equal(t, "s1", fixed[0].Spots[1].SpotID)
}
