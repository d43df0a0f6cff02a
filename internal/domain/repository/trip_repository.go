package repository

import (
	"context"

	"github.com/trip-planner/internal/domain"
)

// TripRepository определяет методы для архива построенных планов
type TripRepository interface {
	// Save сохраняет план поездки
	Save(ctx context.Context, plan *domain.TripPlan) error

	// GetByID возвращает план по идентификатору или nil, если план не найден
	GetByID(ctx context.Context, tripID string) (*domain.TripPlan, error)
}
