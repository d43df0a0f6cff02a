package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trip-planner/internal/domain"
)

func TestBaselineKey(t *testing.T) {
	origin := domain.GeoPoint{Lat: 28.6139391, Lng: 77.2090212}
	destination := domain.GeoPoint{Lat: 26.9124337, Lng: 75.7872709}

	t.Run("rounds coordinates to six decimals", func(t *testing.T) {
		key := BaselineKey(origin, destination)
		assert.Equal(t, "baseline:28.613939_77.209021_26.912434_75.787271", key)
	})

	t.Run("sub-precision jitter maps to the same key", func(t *testing.T) {
		jittered := domain.GeoPoint{Lat: 28.6139392, Lng: 77.2090209}
		assert.Equal(t, BaselineKey(origin, destination), BaselineKey(jittered, destination))
	})

	t.Run("direction matters", func(t *testing.T) {
		assert.NotEqual(t, BaselineKey(origin, destination), BaselineKey(destination, origin))
	})
}
