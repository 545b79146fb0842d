package verifier

import (
	"context"
	"strings"

	"travelcore/internal/coretypes"
	"travelcore/internal/llm"
)

// defaultActivityTimes assigns a time-of-day to each spot in a day by its
// position, since the builder records order but not a clock time.
var defaultActivityTimes = []string{"08:00", "10:00", "14:00", "16:00", "19:00"}

// defaultTimeForIndex scales a spot's position within its day onto the
// defaultActivityTimes table, so the first spot of any day always lands in
// the first (morning) slot and the last spot always lands in the last
// (evening) slot, regardless of how many spots the day has. A plain
// i%len(...) index would strand short days — a 2-spot day's second spot
// would land on "10:00" (morning) and could never satisfy an evening
// constraint no matter where auto-fix moved it.
func defaultTimeForIndex(i, total int) string {
	if total <= 1 {
		return defaultActivityTimes[0]
	}
	last := len(defaultActivityTimes) - 1
	idx := (i*last + (total-1)/2) / (total - 1)
	if idx > last {
		idx = last
	}
	return defaultActivityTimes[idx]
}

// Verify runs the rule phase, then the critic phase when shouldRunCritic
// says it's warranted, and rolls both into a single verdict (§4.4.7).
// critic may be nil, in which case only the rule phase runs.
func Verify(ctx context.Context, critic llm.Client, days []coretypes.ItineraryDay) *coretypes.VerificationResult {
	issues := ruleBasedValidation(days)

	if shouldRunCritic(critic, days, issues) {
		for _, ci := range llmValidation(ctx, critic, days) {
			if !hasIssueFor(issues, ci.SpotID, ci.Day) {
				issues = append(issues, ci)
			}
		}
	}

	errorCount, warningCount := 0, 0
	for _, iss := range issues {
		switch iss.Severity {
		case coretypes.SeverityError:
			errorCount++
		case coretypes.SeverityWarning:
			warningCount++
		}
	}

	verdict := coretypes.VerdictPass
	switch {
	case errorCount > 0:
		verdict = coretypes.VerdictFail
	case warningCount > 0:
		verdict = coretypes.VerdictWarning
	}

	return &coretypes.VerificationResult{
		Verdict:        verdict,
		Issues:         issues,
		SuggestedMoves: generateSuggestedMoves(issues),
	}
}

// shouldRunCritic gates the LLM critic pass (Open Question 1): skipped when
// the rule phase found nothing AND the itinerary spans 2 days or fewer,
// since a short, rule-clean itinerary has little left for a critic to add.
func shouldRunCritic(critic llm.Client, days []coretypes.ItineraryDay, ruleIssues []coretypes.Issue) bool {
	if critic == nil {
		return false
	}
	return len(ruleIssues) > 0 || len(days) > 2
}

func hasIssueFor(issues []coretypes.Issue, spotID string, day int) bool {
	for _, iss := range issues {
		if iss.SpotID == spotID && iss.Day == day {
			return true
		}
	}
	return false
}

// ruleBasedValidation runs the deterministic category/name time-of-day
// checks against every activity in every day.
func ruleBasedValidation(days []coretypes.ItineraryDay) []coretypes.Issue {
	var issues []coretypes.Issue

	for _, day := range days {
		for i, spot := range day.Spots {
			currentSlot := timeToSlot(defaultTimeForIndex(i, len(day.Spots)))
			spotID := spot.SpotID
			if spotID == "" {
				spotID = spot.Name
			}

			if spot.Category != "" {
				if expected, ok := categoryTimeConstraints[strings.ToLower(spot.Category)]; ok && len(expected) > 0 {
					if !slotContains(expected, currentSlot) {
						issues = append(issues, coretypes.Issue{
							Type:          "time_of_day_mismatch",
							SpotID:        spotID,
							SpotName:      spot.Name,
							CurrentSlot:   currentSlot,
							ExpectedSlots: expected,
							Day:           day.Day,
							Severity:      coretypes.SeverityError,
							Reason:        spot.Name + " (" + spot.Category + ") phù hợp vào " + strings.Join(expected, ", ") + ", không phải " + currentSlot,
						})
						continue
					}
				}
			}

			nameLower := strings.ToLower(spot.Name)
			for _, np := range nameTimePatterns {
				if strings.Contains(nameLower, np.pattern) {
					if !slotContains(np.slots, currentSlot) {
						issues = append(issues, coretypes.Issue{
							Type:          "time_of_day_mismatch",
							SpotID:        spotID,
							SpotName:      spot.Name,
							CurrentSlot:   currentSlot,
							ExpectedSlots: np.slots,
							Day:           day.Day,
							Severity:      coretypes.SeverityError,
							Reason:        "'" + spot.Name + "' có từ khóa '" + np.pattern + "' nên phù hợp vào " + strings.Join(np.slots, ", "),
						})
					}
					break
				}
			}
		}
	}

	return issues
}

func generateSuggestedMoves(issues []coretypes.Issue) []coretypes.SuggestedMove {
	var moves []coretypes.SuggestedMove
	for _, iss := range issues {
		if len(iss.ExpectedSlots) == 0 {
			continue
		}
		moves = append(moves, coretypes.SuggestedMove{
			SpotID: iss.SpotID,
			FromDay: iss.Day,
			ToDay:   iss.Day,
			ToSlot:  iss.ExpectedSlots[0],
		})
	}
	return moves
}
