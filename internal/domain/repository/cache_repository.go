package repository

import (
	"context"
	"time"

	"github.com/trip-planner/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetBaselineDuration получает закешированное время базового маршрута
	// origin->destination в секундах. Ключ строится из координат,
	// округленных до 6 знаков. Возвращает (0, false, nil) при промахе.
	GetBaselineDuration(ctx context.Context, origin, destination domain.GeoPoint) (float64, bool, error)

	// SetBaselineDuration сохраняет время базового маршрута.
	// Конкурентные записи по одному ключу безопасны: значение для ключа
	// детерминировано, последняя запись побеждает.
	SetBaselineDuration(ctx context.Context, origin, destination domain.GeoPoint, seconds float64) error
}
