package verifier

import (
	"context"
	"fmt"
	"strings"

	"travelcore/internal/coretypes"
	"travelcore/internal/llm"
)

const criticSystemPrompt = `Bạn là chuyên gia kiểm duyệt lịch trình du lịch Việt Nam.
Trả về JSON: {"issues": [{"day": 1, "spot_name": "...", "problem": "...", "severity": "error|warning", "suggested_slot": "morning|afternoon|evening|night"}]}
Nếu không có vấn đề, trả về {"issues": []}. CHỈ trả về JSON.`

// llmValidation asks the critic model to flag soft-constraint problems the
// rule phase can't express: illogical routing, an overloaded day, a
// sunrise/sunset spot scheduled at the wrong end of the day. Any error from
// the critic call degrades to "no additional issues" rather than failing
// the whole verification.
func llmValidation(ctx context.Context, critic llm.Client, days []coretypes.ItineraryDay) []coretypes.Issue {
	prompt := fmt.Sprintf("LỊCH TRÌNH CẦN KIỂM TRA:\n%s\n\nHÃY KIỂM TRA:\n1. Chợ đêm/night market xếp vào sáng/trưa\n2. Điểm ngắm bình minh xếp vào chiều/tối\n3. Điểm ngắm hoàng hôn xếp vào sáng\n4. Đi xa rồi quay lại cùng khu vực\n5. Quá nhiều hoạt động trong 1 ngày (>4 địa điểm)", formatItineraryForLLM(days))

	result, err := critic.ExtractJSON(ctx, prompt, criticSystemPrompt)
	if err != nil {
		return nil
	}

	rawIssues, _ := result["issues"].([]any)
	var issues []coretypes.Issue
	for _, ri := range rawIssues {
		m, ok := ri.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["spot_name"].(string)
		problem, _ := m["problem"].(string)
		severity, _ := m["severity"].(string)
		suggestedSlot, _ := m["suggested_slot"].(string)
		dayNum := 1
		if d, ok := m["day"].(float64); ok {
			dayNum = int(d)
		}
		sev := coretypes.SeverityWarning
		if severity == string(coretypes.SeverityError) {
			sev = coretypes.SeverityError
		}

		var expected []string
		if suggestedSlot != "" {
			expected = []string{suggestedSlot}
		}

		issues = append(issues, coretypes.Issue{
			Type:          "llm_detected",
			SpotID:        name,
			SpotName:      name,
			ExpectedSlots: expected,
			Day:           dayNum,
			Severity:      sev,
			Reason:        problem,
		})
	}
	return issues
}

func formatItineraryForLLM(days []coretypes.ItineraryDay) string {
	var b strings.Builder
	for _, day := range days {
		fmt.Fprintf(&b, "\nNGÀY %d:\n", day.Day)
		for i, spot := range day.Spots {
			fmt.Fprintf(&b, "  %s - %s\n", defaultTimeForIndex(i, len(day.Spots)), spot.Name)
		}
	}
	return b.String()
}
