package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/pkg/errors"
	"github.com/trip-planner/internal/usecase/dto"
)

// PreferenceUseCase - use case профилей персонализации
type PreferenceUseCase struct {
	preferenceRepo repository.PreferenceRepository
	logger         *zap.Logger
}

// NewPreferenceUseCase - создание нового PreferenceUseCase
func NewPreferenceUseCase(preferenceRepo repository.PreferenceRepository, logger *zap.Logger) *PreferenceUseCase {
	return &PreferenceUseCase{
		preferenceRepo: preferenceRepo,
		logger:         logger,
	}
}

// GetProfile возвращает профиль персонализации пользователя
func (uc *PreferenceUseCase) GetProfile(ctx context.Context, userID string) (*dto.PreferencesResponse, error) {
	profile, err := uc.preferenceRepo.GetByUserID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to load preferences", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if profile == nil {
		return nil, errors.ErrProfileNotFound
	}
	return dto.ConvertProfile(profile), nil
}

// UpsertProfile создает или обновляет профиль персонализации
func (uc *PreferenceUseCase) UpsertProfile(ctx context.Context, userID string, req dto.UpsertPreferencesRequest) (*dto.PreferencesResponse, error) {
	profile := &domain.PersonalizationProfile{
		UserID:         userID,
		FoodPreference: defaultString(req.FoodPreference, domain.FoodPrefAny),
		Budget:         defaultString(req.Budget, domain.BudgetMid),
		Pace:           defaultString(req.Pace, domain.PaceBalanced),
		Mood:           req.Mood,
		Activities:     req.Activities,
		Accessibility:  defaultString(req.Accessibility, domain.AccessibilityNone),
		UpdatedAt:      time.Now().UTC(),
	}
	if err := uc.preferenceRepo.Upsert(ctx, profile); err != nil {
		uc.logger.Error("Failed to save preferences", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return dto.ConvertProfile(profile), nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
