package repository

import (
	"context"

	"github.com/trip-planner/internal/domain"
)

// RoutingRepository определяет методы для работы с внешним роутером
type RoutingRepository interface {
	// Route возвращает маршрут от origin до destination через stops
	Route(
		ctx context.Context,
		origin domain.GeoPoint,
		destination domain.GeoPoint,
		stops []domain.GeoPoint,
	) (*domain.Route, error)

	// DurationMatrix возвращает NxN матрицу времени в пути (секунды)
	// между всеми парами точек
	DurationMatrix(ctx context.Context, points []domain.GeoPoint) ([][]float64, error)
}
