package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"travelcore/internal/llm"
)

type stubLLM struct {
	result map[string]any
}

func (s *stubLLM) Chat(ctx context.Context, messages []llm.ChatMessage, opts llm.ChatOptions) (string, error) {
	return "", nil
}
func (s *stubLLM) Complete(ctx context.Context, prompt string, opts llm.ChatOptions) (string, error) {
	return "", nil
}
func (s *stubLLM) ExtractJSON(ctx context.Context, prompt, systemPrompt string) (map[string]any, error) {
	return s.result, nil
}

func TestAutoGenerateMapsKnownSpotNameToCandidate(t *testing.T) {
	client := &stubLLM{result: map[string]any{
		"days": []any{
			map[string]any{
				"day": float64(1),
				"spots": []any{
					map[string]any{"name": "Cầu Rồng", "session": "evening"},
				},
			},
		},
		"total_estimated_cost": float64(2_000_000),
	}}

	state, err := AutoGenerate(context.Background(), client, "Đà Nẵng", 1, 4_000_000, sampleCandidates())
	require.NoError(t, err)
	require.Len(t, state.DaysPlan[1], 1)
	require.Equal(t, "s3", state.DaysPlan[1][0].SpotID)
	require.False(t, state.DaysPlan[1][0].Placeholder)
}

func TestAutoGenerateUnmappedNameBecomesPlaceholder(t *testing.T) {
	client := &stubLLM{result: map[string]any{
		"days": []any{
			map[string]any{
				"day": float64(1),
				"spots": []any{
					map[string]any{"name": "Một nơi hoàn toàn xa lạ", "session": "morning"},
				},
			},
		},
	}}

	state, err := AutoGenerate(context.Background(), client, "Đà Nẵng", 1, 4_000_000, sampleCandidates())
	require.NoError(t, err)
	require.True(t, state.DaysPlan[1][0].Placeholder)
}

func TestChooseHotelWithinBudgetPicksBestFit(t *testing.T) {
	hotels := []map[string]any{
		{"name": "A", "price": float64(500_000)},
		{"name": "B", "price": float64(800_000)},
		{"name": "C", "price": float64(2_000_000)},
	}
	chosen, warning, _ := ChooseHotelWithinBudget(3_000_000, 2, 1_000_000, hotels)
	require.Equal(t, "B", chosen["name"])
	require.Empty(t, warning)
}

func TestChooseHotelWithinBudgetFallsBackToCheapestWithWarning(t *testing.T) {
	hotels := []map[string]any{
		{"name": "A", "price": float64(5_000_000)},
		{"name": "B", "price": float64(6_000_000)},
	}
	chosen, warning, _ := ChooseHotelWithinBudget(3_000_000, 2, 500_000, hotels)
	require.Equal(t, "A", chosen["name"])
	require.NotEmpty(t, warning)
}

func TestChooseHotelWithinBudgetRescalesOtherCostsOverCap(t *testing.T) {
	_, _, scaled := ChooseHotelWithinBudget(10_000_000, 2, 9_000_000, nil)
	require.Less(t, scaled, int64(9_000_000))
	require.InDelta(t, float64(10_000_000)*otherCostBudgetCap, float64(scaled), 1.0)
}
