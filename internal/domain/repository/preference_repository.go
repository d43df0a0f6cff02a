package repository

import (
	"context"

	"github.com/trip-planner/internal/domain"
)

// PreferenceRepository определяет методы для хранилища профилей персонализации
type PreferenceRepository interface {
	// GetByUserID возвращает профиль пользователя или nil, если профиля нет
	GetByUserID(ctx context.Context, userID string) (*domain.PersonalizationProfile, error)

	// Upsert создает или обновляет профиль
	Upsert(ctx context.Context, profile *domain.PersonalizationProfile) error
}
