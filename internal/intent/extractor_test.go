package intent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"travelcore/internal/coretypes"
	"travelcore/internal/llm"
)

type stubLLM struct {
	result map[string]any
	err    error
}

func (s *stubLLM) Chat(ctx context.Context, messages []llm.ChatMessage, opts llm.ChatOptions) (string, error) {
	return "", nil
}

func (s *stubLLM) Complete(ctx context.Context, prompt string, opts llm.ChatOptions) (string, error) {
	return "", nil
}

func (s *stubLLM) ExtractJSON(ctx context.Context, prompt, systemPrompt string) (map[string]any, error) {
	return s.result, s.err
}

func TestExtractBookingRequestShortCircuitsLLM(t *testing.T) {
	e := New(&stubLLM{err: context.DeadlineExceeded})
	rec, err := e.Extract(context.Background(), "tôi muốn đặt phòng khách sạn Mường Thanh", coretypes.Slots{})
	require.NoError(t, err)
	require.Equal(t, coretypes.IntentBookHotel, rec.PrimaryIntent)
	require.Equal(t, "Mường Thanh", rec.SelectedHotelName)
	require.InDelta(t, 0.95, rec.Confidence, 1e-9)
}

func TestExtractBudgetCalculationShortCircuitsLLM(t *testing.T) {
	e := New(nil)
	rec, err := e.Extract(context.Background(), "chuyến đi này tính tiền hết bao nhiêu", coretypes.Slots{Destination: "Đà Nẵng"})
	require.NoError(t, err)
	require.Equal(t, coretypes.IntentCalculateCost, rec.PrimaryIntent)
	require.Equal(t, "Đà Nẵng", rec.Location)
}

func TestExtractPlanCreationIsNotMistakenForBudgetCalculation(t *testing.T) {
	e := New(nil)
	rec, err := e.Extract(context.Background(), "lập lịch trình chi phí tiết kiệm cho Đà Lạt", coretypes.Slots{})
	require.NoError(t, err)
	require.NotEqual(t, coretypes.IntentCalculateCost, rec.PrimaryIntent)
}

func TestExtractUsesLLMWhenConfigured(t *testing.T) {
	e := New(&stubLLM{result: map[string]any{
		"intent":       "find_spot",
		"location":     "Hội An",
		"people_count": float64(2),
		"confidence":   0.88,
	}})
	rec, err := e.Extract(context.Background(), "có chỗ nào chụp ảnh đẹp không", coretypes.Slots{})
	require.NoError(t, err)
	require.Equal(t, coretypes.IntentFindSpot, rec.PrimaryIntent)
	require.Equal(t, "Hội An", rec.Location)
	require.Equal(t, 2, rec.PeopleCount)
}

func TestExtractFallsBackToRegexWhenLLMFails(t *testing.T) {
	e := New(&stubLLM{err: context.DeadlineExceeded})
	rec, err := e.Extract(context.Background(), "khách sạn nào gần biển Đà Nẵng", coretypes.Slots{})
	require.NoError(t, err)
	require.Equal(t, coretypes.IntentFindHotel, rec.PrimaryIntent)
	require.Equal(t, "Đà Nẵng", rec.Location)
}

func TestExtractWithRegexGreeting(t *testing.T) {
	rec := extractWithRegex("xin chào", coretypes.Slots{})
	require.Equal(t, coretypes.IntentGreeting, rec.PrimaryIntent)
}

func TestExtractWithRegexMoreSpots(t *testing.T) {
	rec := extractWithRegex("cho tôi thêm địa điểm nữa", coretypes.Slots{})
	require.Equal(t, coretypes.IntentMoreSpots, rec.PrimaryIntent)
}

func TestExtractWithRegexOfftopicIsChitchat(t *testing.T) {
	rec := extractWithRegex("thời tiết hôm nay thế nào", coretypes.Slots{})
	require.Equal(t, coretypes.IntentChitchat, rec.PrimaryIntent)
}

func TestExtractWithRegexDurationAndBudgetLevel(t *testing.T) {
	rec := extractWithRegex("đi 3 ngày theo kiểu tiết kiệm", coretypes.Slots{})
	require.Equal(t, 3, rec.Duration)
	require.Equal(t, coretypes.BudgetThrifty, rec.BudgetLevel)
}

func TestExtractWithRegexCompanionInfersPeopleCount(t *testing.T) {
	rec := extractWithRegex("đi cùng bạn gái ở Đà Lạt", coretypes.Slots{})
	require.Equal(t, coretypes.CompanionCouple, rec.CompanionType)
	require.Equal(t, 2, rec.PeopleCount)
}
