package builder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"travelcore/internal/coretypes"
	"travelcore/internal/weather"
)

func TestHandleStartDateExplicitISODate(t *testing.T) {
	c := coretypes.NewContext("s1")
	Init(c, "Đà Nẵng", 2, 0, 2)

	result := HandleStartDate(context.Background(), c, "2026-08-15", weather.NewHTTPClient(""))
	require.Equal(t, "2026-08-15", c.Slots.StartDate)
	require.False(t, c.Builder.WaitingForStartDate)
	_ = result
}

func TestHandleStartDateDontKnowOffersMonthSelector(t *testing.T) {
	c := coretypes.NewContext("s1")
	Init(c, "Đà Lạt", 2, 0, 2)

	result := HandleStartDate(context.Background(), c, "không biết", weather.NewHTTPClient(""))
	require.Equal(t, coretypes.UIMonthSelector, result.UIType)
	require.True(t, c.Builder.WaitingForMonth)
}

func TestHandleStartDateMonthChoiceSetsFirstOfMonth(t *testing.T) {
	c := coretypes.NewContext("s1")
	Init(c, "Đà Lạt", 2, 0, 2)
	c.Builder.WaitingForMonth = true

	HandleStartDate(context.Background(), c, "tháng 3", weather.NewHTTPClient(""))
	parsed, err := time.Parse("2006-01-02", c.Slots.StartDate)
	require.NoError(t, err)
	require.Equal(t, time.March, parsed.Month())
	require.Equal(t, 1, parsed.Day())
}
