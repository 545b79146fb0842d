package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func candidates() []Candidate {
	return []Candidate{
		{ID: "spot-1", Name: "Bà Nà Hills"},
		{ID: "spot-2", Name: "Ngũ Hành Sơn"},
		{ID: "spot-3", Name: "Cầu Rồng"},
	}
}

func TestResolveReferenceOrdinal(t *testing.T) {
	got, ok := ResolveReference("tôi muốn chọn cái thứ hai", candidates())
	require.True(t, ok)
	require.Equal(t, "spot-2", got.ID)
}

func TestResolveReferenceLastOrdinal(t *testing.T) {
	got, ok := ResolveReference("cho tôi cái cuối cùng", candidates())
	require.True(t, ok)
	require.Equal(t, "spot-3", got.ID)
}

func TestResolveReferenceSubstring(t *testing.T) {
	got, ok := ResolveReference("đi cầu rồng lúc mấy giờ", candidates())
	require.True(t, ok)
	require.Equal(t, "spot-3", got.ID)
}

func TestResolveReferenceFuzzyBelowThresholdFails(t *testing.T) {
	_, ok := ResolveReference("thời tiết hôm nay thế nào", candidates())
	require.False(t, ok)
}

func TestResolveReferenceNoCandidates(t *testing.T) {
	_, ok := ResolveReference("cái thứ hai", nil)
	require.False(t, ok)
}
