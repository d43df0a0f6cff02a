package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"go.uber.org/zap"
)

type preferenceRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewPreferenceRepository создает репозиторий профилей персонализации
func NewPreferenceRepository(db *DB) repository.PreferenceRepository {
	return &preferenceRepository{
		db:     db,
		logger: db.logger,
	}
}

// profileRow - строка таблицы personalization_profiles.
// Activities хранятся как comma-separated text.
type profileRow struct {
	UserID         string    `db:"user_id"`
	FoodPreference string    `db:"food_preference"`
	Budget         string    `db:"budget"`
	Pace           string    `db:"pace"`
	Mood           string    `db:"mood"`
	Activities     string    `db:"activities"`
	Accessibility  string    `db:"accessibility"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// GetByUserID возвращает профиль пользователя или nil, если профиля нет
func (r *preferenceRepository) GetByUserID(ctx context.Context, userID string) (*domain.PersonalizationProfile, error) {
	const query = `
		SELECT user_id, food_preference, budget, pace, mood, activities, accessibility, updated_at
		FROM personalization_profiles
		WHERE user_id = $1`

	var row profileRow
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // no profile - not an error
		}
		r.logger.Error("Failed to get personalization profile",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return rowToProfile(row), nil
}

// Upsert создает или обновляет профиль
func (r *preferenceRepository) Upsert(ctx context.Context, profile *domain.PersonalizationProfile) error {
	const query = `
		INSERT INTO personalization_profiles
			(user_id, food_preference, budget, pace, mood, activities, accessibility, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			food_preference = EXCLUDED.food_preference,
			budget          = EXCLUDED.budget,
			pace            = EXCLUDED.pace,
			mood            = EXCLUDED.mood,
			activities      = EXCLUDED.activities,
			accessibility   = EXCLUDED.accessibility,
			updated_at      = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		profile.UserID,
		profile.FoodPreference,
		profile.Budget,
		profile.Pace,
		profile.Mood,
		strings.Join(profile.Activities, ","),
		profile.Accessibility,
		time.Now().UTC(),
	)
	if err != nil {
		r.logger.Error("Failed to upsert personalization profile",
			zap.String("user_id", profile.UserID),
			zap.Error(err))
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}

func rowToProfile(row profileRow) *domain.PersonalizationProfile {
	var activities []string
	if row.Activities != "" {
		activities = strings.Split(row.Activities, ",")
	}

	return &domain.PersonalizationProfile{
		UserID:         row.UserID,
		FoodPreference: row.FoodPreference,
		Budget:         row.Budget,
		Pace:           row.Pace,
		Mood:           row.Mood,
		Activities:     activities,
		Accessibility:  row.Accessibility,
		UpdatedAt:      row.UpdatedAt,
	}
}
