package osrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trip-planner/internal/config"
	"github.com/trip-planner/internal/domain"
)

func newTestClient(baseURL string, maxRetries int) *client {
	return NewOSRMClient(&config.OSRMConfig{
		BaseURL:        baseURL,
		Profile:        "driving",
		RequestTimeout: 5,
		MaxRetries:     maxRetries,
	}, zap.NewNop()).(*client)
}

func TestClient_Route(t *testing.T) {
	t.Run("successful request flattens legs and steps", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "/route/v1/driving/")
			assert.Equal(t, "true", r.URL.Query().Get("steps"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"code": "Ok",
				"routes": [{
					"distance": 360000,
					"duration": 18000,
					"legs": [{
						"steps": [
							{"duration": 3000, "maneuver": {"location": [77.0, 28.4]}},
							{"duration": 3000, "maneuver": {"location": [76.8, 28.1]}}
						]
					}]
				}]
			}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL, 0)
		route, err := c.Route(context.Background(),
			domain.GeoPoint{Lat: 28.6139, Lng: 77.2090},
			domain.GeoPoint{Lat: 26.9124, Lng: 75.7873},
			nil,
		)

		require.NoError(t, err)
		assert.Equal(t, 360000.0, route.DistanceMeters)
		assert.Equal(t, 18000.0, route.DurationSeconds)
		require.Len(t, route.Legs, 1)
		require.Len(t, route.Legs[0].Steps, 2)
		// OSRM отдаёт [lng, lat]
		assert.Equal(t, domain.GeoPoint{Lat: 28.4, Lng: 77.0}, route.Legs[0].Steps[0].EndPoint)
	})

	t.Run("non-Ok code is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL, 0)
		_, err := c.Route(context.Background(),
			domain.GeoPoint{Lat: 28.6, Lng: 77.2},
			domain.GeoPoint{Lat: 26.9, Lng: 75.8},
			nil,
		)

		assert.Error(t, err)
	})
}

func TestClient_DurationMatrix(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "/table/v1/driving/")
			assert.Equal(t, "duration", r.URL.Query().Get("annotations"))
			w.Write([]byte(`{"code": "Ok", "durations": [[0, 100], [100, 0]]}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL, 0)
		matrix, err := c.DurationMatrix(context.Background(), []domain.GeoPoint{
			{Lat: 28.6, Lng: 77.2},
			{Lat: 26.9, Lng: 75.8},
		})

		require.NoError(t, err)
		require.Len(t, matrix, 2)
		assert.Equal(t, 100.0, matrix[0][1])
	})

	t.Run("empty points rejected without request", func(t *testing.T) {
		c := newTestClient("http://127.0.0.1:0", 0)
		_, err := c.DurationMatrix(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestClient_Retry(t *testing.T) {
	t.Run("retries on 5xx then succeeds", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`{"code": "Ok", "durations": [[0]]}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL, 3)
		matrix, err := c.DurationMatrix(context.Background(), []domain.GeoPoint{{Lat: 28.6, Lng: 77.2}})

		require.NoError(t, err)
		assert.Len(t, matrix, 1)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("does not retry on 4xx", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		c := newTestClient(server.URL, 3)
		_, err := c.DurationMatrix(context.Background(), []domain.GeoPoint{{Lat: 28.6, Lng: 77.2}})

		assert.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := newTestClient(server.URL, 2)
		_, err := c.DurationMatrix(context.Background(), []domain.GeoPoint{{Lat: 28.6, Lng: 77.2}})

		assert.Error(t, err)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})
}
