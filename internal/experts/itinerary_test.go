package experts

import (
	"context"
	"strings"
	"testing"

	"travelcore/internal/llm"
	"travelcore/internal/weather"
)

type fakeWeatherClient struct {
	report weather.WeatherReport
	err    error
}

func (f *fakeWeatherClient) GetWeather(ctx context.Context, location, startDate string, numDays int) (weather.WeatherReport, error) {
	return f.report, f.err
}

func (f *fakeWeatherClient) BuildWeatherResponse(report weather.WeatherReport) string {
	return "mưa to ở " + report.Location
}

func (f *fakeWeatherClient) GetBestTime(ctx context.Context, location string) (weather.BestTime, error) {
	return weather.BestTime{}, nil
}

type capturingLLM struct {
	lastPrompt string
}

func (c *capturingLLM) Chat(ctx context.Context, messages []llm.ChatMessage, opts llm.ChatOptions) (string, error) {
	return "", nil
}

func (c *capturingLLM) Complete(ctx context.Context, prompt string, opts llm.ChatOptions) (string, error) {
	return "", nil
}

func (c *capturingLLM) ExtractJSON(ctx context.Context, prompt, systemPrompt string) (map[string]any, error) {
	c.lastPrompt = prompt
	return map[string]any{"days": []any{map[string]any{"day": float64(1)}}}, nil
}

func TestItineraryExpertComposesWeatherPreambleIntoPrompt(t *testing.T) {
	fakeLLM := &capturingLLM{}
	expert := &ItineraryExpert{
		LLM: fakeLLM,
		Weather: &fakeWeatherClient{report: weather.WeatherReport{
			Location: "Đà Lạt",
			Days:     []weather.DayForecast{{Date: "2026-08-01", Condition: "Mưa"}},
		}},
	}

	result := expert.Execute(context.Background(), "", map[string]any{
		"location": "Đà Lạt",
		"duration": 2,
	})

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.Metadata["source"] != "llm" {
		t.Fatalf("expected llm source, got %+v", result.Metadata)
	}
	if !strings.Contains(fakeLLM.lastPrompt, "mưa to ở Đà Lạt") {
		t.Errorf("expected prompt to include weather preamble, got: %s", fakeLLM.lastPrompt)
	}
}

func TestItineraryExpertSkipsPreambleOnDegradedForecast(t *testing.T) {
	fakeLLM := &capturingLLM{}
	expert := &ItineraryExpert{
		LLM:     fakeLLM,
		Weather: &fakeWeatherClient{report: weather.WeatherReport{Degraded: true}},
	}

	expert.Execute(context.Background(), "", map[string]any{
		"location": "Đà Lạt",
		"duration": 2,
	})

	if strings.Contains(fakeLLM.lastPrompt, "Dựa vào thông tin thời tiết") {
		t.Errorf("expected no weather preamble for a degraded forecast, got: %s", fakeLLM.lastPrompt)
	}
}
