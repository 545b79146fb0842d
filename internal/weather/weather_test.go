package weather

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetBestTimeKnownProvinceUsesStaticTable(t *testing.T) {
	c := NewHTTPClient("https://example.invalid")
	bt, err := c.GetBestTime(context.Background(), "Đà Nẵng")
	require.NoError(t, err)
	require.True(t, bt.FromStatic)
	require.Contains(t, bt.Months, "3-8")
}

func TestGetBestTimeUnknownProvinceFallsBackToDefault(t *testing.T) {
	c := NewHTTPClient("https://example.invalid")
	bt, err := c.GetBestTime(context.Background(), "Atlantis")
	require.NoError(t, err)
	require.True(t, bt.FromStatic)
	require.Equal(t, staticBestTime["default"].months, bt.Months)
}

func TestGetWeatherUnknownLocationDegradesGracefully(t *testing.T) {
	c := NewHTTPClient("https://example.invalid")
	report, err := c.GetWeather(context.Background(), "Atlantis", "2026-08-01", 3)
	require.NoError(t, err)
	require.True(t, report.Degraded)
	require.Contains(t, c.BuildWeatherResponse(report), "chưa lấy được dự báo")
}

func TestWeatherCodeToCondition(t *testing.T) {
	require.Equal(t, "Trời quang", weatherCodeToCondition(0))
	require.Equal(t, "Mưa", weatherCodeToCondition(61))
	require.Equal(t, "Giông bão", weatherCodeToCondition(96))
}
