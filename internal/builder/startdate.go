package builder

import (
	"context"
	"strings"
	"time"

	"travelcore/internal/coretypes"
	"travelcore/internal/weather"
)

// HandleStartDate processes the ask_start_date step. If the user says
// "don't know" it consults the weather service for best months and offers a
// month-selector UI; once a month is chosen, start_date becomes the 1st of
// that month in the current year (§4.6 "Start-date handling").
func HandleStartDate(ctx context.Context, c *coretypes.Context, utterance string, weatherClient weather.Client) StepResult {
	b := c.Builder

	if month, ok := parseMonthChoice(utterance); ok {
		year := time.Now().Year()
		c.Slots.StartDate = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		b.WaitingForStartDate = false
		b.WaitingForMonth = false
		return OfferDay(c, nil)
	}

	if isDontKnow(utterance) {
		best, err := weatherClient.GetBestTime(ctx, b.Location)
		b.WaitingForMonth = true
		if err != nil {
			return StepResult{
				Reply:  "Bạn muốn khởi hành vào tháng mấy?",
				UIType: coretypes.UIMonthSelector,
			}
		}
		return StepResult{
			Reply:  "Thời điểm đẹp để đi " + b.Location + ": " + best.Months + ". " + best.Advice,
			UIType: coretypes.UIMonthSelector,
			UIData: map[string]any{"suggested_months": best.Months},
		}
	}

	if date, ok := parseExplicitDate(utterance); ok {
		c.Slots.StartDate = date
		b.WaitingForStartDate = false
		return OfferDay(c, nil)
	}

	return StepResult{
		Reply:  "Bạn dự định khởi hành ngày nào? (hoặc trả lời \"không biết\" để tôi gợi ý)",
		UIType: coretypes.UIText,
	}
}

func isDontKnow(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, phrase := range []string{"không biết", "khong biet", "chưa biết", "chua biet", "tùy", "tuy"} {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func parseMonthChoice(utterance string) (int, bool) {
	lower := strings.ToLower(utterance)
	for _, prefix := range []string{"tháng ", "thang "} {
		if idx := strings.Index(lower, prefix); idx >= 0 {
			rest := lower[idx+len(prefix):]
			n := 0
			for _, r := range rest {
				if r < '0' || r > '9' {
					break
				}
				n = n*10 + int(r-'0')
			}
			if n >= 1 && n <= 12 {
				return n, true
			}
		}
	}
	return 0, false
}

func parseExplicitDate(utterance string) (string, bool) {
	trimmed := utterance
	if len(trimmed) == 10 && trimmed[4] == '-' && trimmed[7] == '-' {
		if _, err := time.Parse("2006-01-02", trimmed); err == nil {
			return trimmed, true
		}
	}
	if len(trimmed) == 10 && trimmed[2] == '/' && trimmed[5] == '/' {
		if t, err := time.Parse("02/01/2006", trimmed); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
