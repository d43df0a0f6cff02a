package repository

import (
	"context"

	"github.com/trip-planner/internal/domain"
)

// PlacesRepository определяет методы для поиска заведений вокруг точки
type PlacesRepository interface {
	// Search возвращает заведения категории category в радиусе radiusMeters
	Search(
		ctx context.Context,
		point domain.GeoPoint,
		radiusMeters int,
		category string,
	) ([]domain.Place, error)
}
