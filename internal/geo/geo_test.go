package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHaversineKm(t *testing.T) {
	cases := []struct {
		name               string
		lat1, lng1         float64
		lat2, lng2         float64
		wantKm             float64
		tolerance          float64
	}{
		{"same point", 21.0278, 105.8342, 21.0278, 105.8342, 0, 0.01},
		{"hanoi to ha long", 21.0278, 105.8342, 20.9101, 107.1839, 141, 5},
		{"ny to la", 40.7128, -74.0060, 34.0522, -118.2437, 3936, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineKm(tc.lat1, tc.lng1, tc.lat2, tc.lng2)
			require.InDelta(t, tc.wantKm, got, tc.tolerance)
		})
	}
}

func TestHaversineKmSymmetric(t *testing.T) {
	a := HaversineKm(21.0278, 105.8342, 16.0544, 108.2022)
	b := HaversineKm(16.0544, 108.2022, 21.0278, 105.8342)
	require.InDelta(t, a, b, 0.0001)
}

func TestBoundingBoxContainsCenter(t *testing.T) {
	minLat, maxLat, minLng, maxLng := BoundingBox(16.0544, 108.2022, 30)
	require.Less(t, minLat, 16.0544)
	require.Greater(t, maxLat, 16.0544)
	require.Less(t, minLng, 108.2022)
	require.Greater(t, maxLng, 108.2022)
}

type distPoint struct {
	id  string
	d   float64
}

func TestSortByDistance(t *testing.T) {
	pts := []distPoint{{"c", 30}, {"a", 5}, {"b", 12}}
	SortByDistance(pts, func(p distPoint) float64 { return p.d })
	require.Equal(t, []string{"a", "b", "c"}, []string{pts[0].id, pts[1].id, pts[2].id})
}
