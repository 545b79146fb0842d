// Package weather is the live-forecast client consumed by the Itinerary
// Expert and General Info Expert (§6 WeatherClient). No pack repo ships a
// weather SDK, so this is the one deliberately stdlib-only boundary in the
// module (see DESIGN.md); the static best-time/season fallback table is
// grounded on original_source's GeneralInfoExpert.TRAVEL_TIPS.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"travelcore/internal/corelog"
)

// DayForecast is one day of the requested window.
type DayForecast struct {
	Date        string  `json:"date"`
	TempMinC    float64 `json:"temp_min_c"`
	TempMaxC    float64 `json:"temp_max_c"`
	PrecipMM    float64 `json:"precip_mm"`
	Condition   string  `json:"condition"`
}

// WeatherReport is the result of GetWeather.
type WeatherReport struct {
	Location string        `json:"location"`
	Days     []DayForecast `json:"days"`
	Degraded bool          `json:"degraded"`
}

// BestTime is the result of GetBestTime: a static seasonal description
// (FromStatic is always true for HTTPClient).
type BestTime struct {
	Location   string `json:"location"`
	Months     string `json:"months"`
	Advice     string `json:"advice"`
	FromStatic bool   `json:"from_static"`
}

// Client is the §6 WeatherClient contract.
type Client interface {
	GetWeather(ctx context.Context, location, startDate string, numDays int) (WeatherReport, error)
	BuildWeatherResponse(report WeatherReport) string
	GetBestTime(ctx context.Context, location string) (BestTime, error)
}

// HTTPClient calls a geocoding+forecast API (Open-Meteo-shaped) over plain
// net/http; GetWeather returns a Degraded report with no days (not an
// error) on any failure so a flaky upstream never blocks itinerary
// generation. GetBestTime answers from the static seasonal table only.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a Client against baseURL (e.g. "https://api.open-meteo.com").
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type forecastResponse struct {
	Daily struct {
		Time          []string  `json:"time"`
		TempMax       []float64 `json:"temperature_2m_max"`
		TempMin       []float64 `json:"temperature_2m_min"`
		PrecipitSum   []float64 `json:"precipitation_sum"`
		WeatherCode   []int     `json:"weathercode"`
	} `json:"daily"`
}

func (c *HTTPClient) GetWeather(ctx context.Context, location, startDate string, numDays int) (WeatherReport, error) {
	lat, lng, ok := geocodeLocation(location)
	if !ok {
		return c.degradedReport(location, numDays), nil
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lng))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,weathercode")
	q.Set("start_date", startDate)
	q.Set("timezone", "Asia/Ho_Chi_Minh")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return c.degradedReport(location, numDays), nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		corelog.Warn("weather: forecast request failed for %s: %v", location, err)
		return c.degradedReport(location, numDays), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		corelog.Warn("weather: forecast request for %s returned status %d", location, resp.StatusCode)
		return c.degradedReport(location, numDays), nil
	}

	var parsed forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return c.degradedReport(location, numDays), nil
	}

	days := make([]DayForecast, 0, numDays)
	for i := 0; i < len(parsed.Daily.Time) && i < numDays; i++ {
		days = append(days, DayForecast{
			Date:      parsed.Daily.Time[i],
			TempMaxC:  valueAt(parsed.Daily.TempMax, i),
			TempMinC:  valueAt(parsed.Daily.TempMin, i),
			PrecipMM:  valueAt(parsed.Daily.PrecipitSum, i),
			Condition: weatherCodeToCondition(intAt(parsed.Daily.WeatherCode, i)),
		})
	}
	if len(days) == 0 {
		return c.degradedReport(location, numDays), nil
	}
	return WeatherReport{Location: location, Days: days}, nil
}

func (c *HTTPClient) degradedReport(location string, numDays int) WeatherReport {
	return WeatherReport{Location: location, Days: nil, Degraded: true}
}

// BuildWeatherResponse renders a report into the emoji-tagged Vietnamese
// copy used elsewhere in the General Info section (§4.4.6 style).
func (c *HTTPClient) BuildWeatherResponse(report WeatherReport) string {
	if report.Degraded || len(report.Days) == 0 {
		return fmt.Sprintf("Hiện chưa lấy được dự báo thời tiết chi tiết cho %s, bạn nên kiểm tra lại gần ngày đi nhé.", report.Location)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🌤️ **Thời tiết %s:**\n", report.Location)
	for _, d := range report.Days {
		fmt.Fprintf(&b, "- %s: %s, %.0f°C - %.0f°C", d.Date, d.Condition, d.TempMinC, d.TempMaxC)
		if d.PrecipMM > 0 {
			fmt.Fprintf(&b, ", mưa %.0fmm", d.PrecipMM)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (c *HTTPClient) GetBestTime(ctx context.Context, location string) (BestTime, error) {
	province := normalizeProvince(location)
	tip, ok := staticBestTime[province]
	if !ok {
		tip = staticBestTime["default"]
	}
	return BestTime{Location: location, Months: tip.months, Advice: tip.advice, FromStatic: true}, nil
}

func valueAt(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

func intAt(xs []int, i int) int {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}

// weatherCodeToCondition maps Open-Meteo's WMO weather codes to a short
// Vietnamese label.
func weatherCodeToCondition(code int) string {
	switch {
	case code == 0:
		return "Trời quang"
	case code <= 3:
		return "Có mây"
	case code >= 51 && code <= 67:
		return "Mưa"
	case code >= 80 && code <= 82:
		return "Mưa rào"
	case code >= 95:
		return "Giông bão"
	default:
		return "Thời tiết thay đổi"
	}
}
