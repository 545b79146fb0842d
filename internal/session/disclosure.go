package session

import (
	"travelcore/internal/coretypes"
)

// ProgressiveDisclosure splits the sub-intents a turn resolved to into ones
// already answered in this session (skip re-asking/re-fetching) and ones
// still pending, so a multi-intent turn doesn't repeat earlier sections of
// a long conversation (§9 "dict → typed Context" / Conversation Memory).
func ProgressiveDisclosure(c *coretypes.Context, subIntents []coretypes.PrimaryIntent) (answered, unanswered []coretypes.PrimaryIntent) {
	for _, intent := range subIntents {
		if c.Workflow.AnsweredIntents[string(intent)] {
			answered = append(answered, intent)
		} else {
			unanswered = append(unanswered, intent)
		}
	}
	return answered, unanswered
}

// MarkAnswered records that intent has been satisfied for this session so
// future turns can skip redundant disclosure.
func MarkAnswered(c *coretypes.Context, intent coretypes.PrimaryIntent) {
	if c.Workflow.AnsweredIntents == nil {
		c.Workflow.AnsweredIntents = map[string]bool{}
	}
	c.Workflow.AnsweredIntents[string(intent)] = true
}
