package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"travelcore/internal/coretypes"
)

func TestProgressiveDisclosureSplitsAnsweredAndUnanswered(t *testing.T) {
	c := coretypes.NewContext("sess-1")
	MarkAnswered(c, coretypes.IntentFindSpot)

	answered, unanswered := ProgressiveDisclosure(c, []coretypes.PrimaryIntent{
		coretypes.IntentFindSpot,
		coretypes.IntentFindHotel,
	})

	require.Equal(t, []coretypes.PrimaryIntent{coretypes.IntentFindSpot}, answered)
	require.Equal(t, []coretypes.PrimaryIntent{coretypes.IntentFindHotel}, unanswered)
}
