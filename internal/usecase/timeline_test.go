package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/usecase"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

// routeWithSteps строит маршрут из одной ноги с шагами равной длительности
func routeWithSteps(stepSeconds float64, points ...domain.GeoPoint) *domain.Route {
	steps := make([]domain.RouteStep, 0, len(points))
	for _, p := range points {
		steps = append(steps, domain.RouteStep{EndPoint: p, DurationSeconds: stepSeconds})
	}
	return &domain.Route{
		DurationSeconds: stepSeconds * float64(len(points)),
		Legs:            []domain.RouteLeg{{Steps: steps}},
	}
}

func TestBuildCheckpoints(t *testing.T) {
	t.Run("accumulates durations across legs", func(t *testing.T) {
		route := &domain.Route{
			Legs: []domain.RouteLeg{
				{Steps: []domain.RouteStep{
					{EndPoint: domain.GeoPoint{Lat: 1, Lng: 1}, DurationSeconds: 100},
					{EndPoint: domain.GeoPoint{Lat: 2, Lng: 2}, DurationSeconds: 200},
				}},
				{Steps: []domain.RouteStep{
					{EndPoint: domain.GeoPoint{Lat: 3, Lng: 3}, DurationSeconds: 300},
				}},
			},
		}

		checkpoints := usecase.BuildCheckpoints(route)

		require.Len(t, checkpoints, 3)
		assert.Equal(t, 100.0, checkpoints[0].CumulativeSeconds)
		assert.Equal(t, 300.0, checkpoints[1].CumulativeSeconds)
		assert.Equal(t, 600.0, checkpoints[2].CumulativeSeconds)
		assert.Equal(t, domain.GeoPoint{Lat: 3, Lng: 3}, checkpoints[2].Point)
	})

	t.Run("empty route yields no checkpoints", func(t *testing.T) {
		assert.Empty(t, usecase.BuildCheckpoints(&domain.Route{}))
		assert.Empty(t, usecase.BuildCheckpoints(nil))
	})
}

func TestAnchorWindow(t *testing.T) {
	ref := mustTime(t, "2025-03-10T09:00:00Z")

	t.Run("same day window", func(t *testing.T) {
		start, end, err := usecase.AnchorWindow(ref, domain.TimeWindow{Start: "13:00", End: "14:30"})
		require.NoError(t, err)
		assert.Equal(t, mustTime(t, "2025-03-10T13:00:00Z"), start)
		assert.Equal(t, mustTime(t, "2025-03-10T14:30:00Z"), end)
	})

	t.Run("midnight rollover when end not after start", func(t *testing.T) {
		start, end, err := usecase.AnchorWindow(ref, domain.TimeWindow{Start: "22:00", End: "01:00"})
		require.NoError(t, err)
		assert.Equal(t, mustTime(t, "2025-03-10T22:00:00Z"), start)
		assert.Equal(t, mustTime(t, "2025-03-11T01:00:00Z"), end)
	})

	t.Run("rejects malformed clock", func(t *testing.T) {
		_, _, err := usecase.AnchorWindow(ref, domain.TimeWindow{Start: "25:00", End: "26:00"})
		assert.Error(t, err)
	})
}

func TestFindPointForWindow(t *testing.T) {
	departure := mustTime(t, "2025-03-10T09:00:00Z")

	t.Run("returns first checkpoint inside window", func(t *testing.T) {
		// Чекпоинты в 10:30, 12:00 и 13:30
		route := routeWithSteps(5400,
			domain.GeoPoint{Lat: 1, Lng: 1},
			domain.GeoPoint{Lat: 2, Lng: 2},
			domain.GeoPoint{Lat: 3, Lng: 3},
		)
		checkpoints := usecase.BuildCheckpoints(route)

		match, err := usecase.FindPointForWindow(checkpoints, departure, domain.TimeWindow{Start: "13:00", End: "14:00"})

		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, domain.GeoPoint{Lat: 3, Lng: 3}, match.Point)
		assert.Equal(t, mustTime(t, "2025-03-10T13:30:00Z"), match.ETA)
	})

	t.Run("falls back to checkpoint nearest window midpoint", func(t *testing.T) {
		checkpoints := []domain.Checkpoint{
			{Point: domain.GeoPoint{Lat: 1, Lng: 1}, CumulativeSeconds: 3600},  // 10:00
			{Point: domain.GeoPoint{Lat: 2, Lng: 2}, CumulativeSeconds: 10800}, // 12:00
		}

		// Окно 13:00-14:00, середина 13:30; ближе чекпоинт 12:00
		match, err := usecase.FindPointForWindow(checkpoints, departure, domain.TimeWindow{Start: "13:00", End: "14:00"})

		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, domain.GeoPoint{Lat: 2, Lng: 2}, match.Point)
	})

	t.Run("nil for empty checkpoint list", func(t *testing.T) {
		match, err := usecase.FindPointForWindow(nil, departure, domain.TimeWindow{Start: "13:00", End: "14:00"})
		require.NoError(t, err)
		assert.Nil(t, match)
	})
}

func TestETAWithinTolerance(t *testing.T) {
	window := domain.TimeWindow{Start: "13:00", End: "14:00"}
	tolerance := 30 * time.Minute

	t.Run("inside window", func(t *testing.T) {
		assert.True(t, usecase.ETAWithinTolerance(mustTime(t, "2025-03-10T13:30:00Z"), window, tolerance))
	})

	t.Run("inside tolerance margin", func(t *testing.T) {
		assert.True(t, usecase.ETAWithinTolerance(mustTime(t, "2025-03-10T12:35:00Z"), window, tolerance))
		assert.True(t, usecase.ETAWithinTolerance(mustTime(t, "2025-03-10T14:25:00Z"), window, tolerance))
	})

	t.Run("outside tolerance margin", func(t *testing.T) {
		assert.False(t, usecase.ETAWithinTolerance(mustTime(t, "2025-03-10T12:15:00Z"), window, tolerance))
		assert.False(t, usecase.ETAWithinTolerance(mustTime(t, "2025-03-10T14:45:00Z"), window, tolerance))
	})
}

func TestWindowOverlapsTrip(t *testing.T) {
	departure := mustTime(t, "2025-03-10T09:00:00Z")
	arrival := mustTime(t, "2025-03-10T15:00:00Z")

	t.Run("window inside trip", func(t *testing.T) {
		assert.True(t, usecase.WindowOverlapsTrip(domain.TimeWindow{Start: "12:00", End: "13:00"}, departure, arrival))
	})

	t.Run("window partially overlaps trip end", func(t *testing.T) {
		assert.True(t, usecase.WindowOverlapsTrip(domain.TimeWindow{Start: "14:30", End: "16:00"}, departure, arrival))
	})

	t.Run("window entirely after arrival", func(t *testing.T) {
		assert.False(t, usecase.WindowOverlapsTrip(domain.TimeWindow{Start: "20:00", End: "21:00"}, departure, arrival))
	})

	t.Run("overnight window starting before arrival", func(t *testing.T) {
		lateArrival := mustTime(t, "2025-03-10T23:30:00Z")
		assert.True(t, usecase.WindowOverlapsTrip(domain.TimeWindow{Start: "23:00", End: "00:30"}, departure, lateArrival))
	})
}
