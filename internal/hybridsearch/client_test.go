package hybridsearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchSpotsParsesQueryAndResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/search/spots", r.URL.Path)
		require.Equal(t, "biển Đà Nẵng", r.URL.Query().Get("query"))
		require.Equal(t, "da-nang", r.URL.Query().Get("province_id"))
		require.Equal(t, "5", r.URL.Query().Get("limit"))

		json.NewEncoder(w).Encode(searchResponse{Results: []ScoredRecord{
			{Score: 0.82, Data: map[string]any{"name": "Bãi biển Mỹ Khê"}},
		}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	results, err := c.SearchSpots(context.Background(), "biển Đà Nẵng", "da-nang", 5, 0.3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Bãi biển Mỹ Khê", results[0].Data["name"])
}

func TestSearchHotelsPassesPriceBounds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "500000", r.URL.Query().Get("min_price"))
		require.Equal(t, "2500000", r.URL.Query().Get("max_price"))
		json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.SearchHotels(context.Background(), "view biển", "da-nang", 10, 0.3, 500000, 2500000)
	require.NoError(t, err)
}

func TestSearchSpotsNon200ReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.SearchSpots(context.Background(), "x", "y", 5, 0.3)
	require.Error(t, err)
}
