package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trip-planner/internal/config"
	"github.com/trip-planner/internal/domain"
)

func TestClient_Search(t *testing.T) {
	logger := zap.NewNop()
	point := domain.GeoPoint{Lat: 27.5, Lng: 76.3}

	t.Run("parses nodes and ways with center", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, r.ParseForm())
			query := r.Form.Get("data")
			assert.Contains(t, query, `"amenity"="restaurant"`)
			assert.Contains(t, query, "around:3000")

			w.Write([]byte(`{
				"elements": [
					{"id": 1, "lat": 27.51, "lon": 76.31, "tags": {"name": "Highway Dhaba", "cuisine": "indian"}},
					{"id": 2, "center": {"lat": 27.52, "lon": 76.32}, "tags": {"name": "Food Court"}},
					{"id": 3, "lat": 27.53, "lon": 76.33},
					{"id": 4, "lat": 27.54, "lon": 76.34, "tags": {"amenity": "restaurant"}}
				]
			}`))
		}))
		defer server.Close()

		c := NewOverpassClient(&config.OverpassConfig{URL: server.URL, RequestTimeout: 5}, logger)
		places, err := c.Search(context.Background(), point, 3000, "restaurant")

		require.NoError(t, err)
		// Элемент без тегов отброшен
		require.Len(t, places, 3)
		assert.Equal(t, "1", places[0].ID)
		assert.Equal(t, "Highway Dhaba", places[0].Name)
		assert.Equal(t, "indian", places[0].Cuisine())
		// Way без координат берёт центр
		assert.Equal(t, domain.GeoPoint{Lat: 27.52, Lng: 76.32}, places[1].Location)
		// Безымянное заведение получает заглушку
		assert.Equal(t, "Unknown", places[2].Name)
	})

	t.Run("empty result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"elements": []}`))
		}))
		defer server.Close()

		c := NewOverpassClient(&config.OverpassConfig{URL: server.URL, RequestTimeout: 5}, logger)
		places, err := c.Search(context.Background(), point, 3000, "restaurant")

		require.NoError(t, err)
		assert.Empty(t, places)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusGatewayTimeout)
		}))
		defer server.Close()

		c := NewOverpassClient(&config.OverpassConfig{URL: server.URL, RequestTimeout: 5}, logger)
		_, err := c.Search(context.Background(), point, 3000, "restaurant")

		assert.Error(t, err)
	})
}
