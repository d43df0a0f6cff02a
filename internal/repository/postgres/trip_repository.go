package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"go.uber.org/zap"
)

type tripRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewTripRepository создает репозиторий архива планов поездок
func NewTripRepository(db *DB) repository.TripRepository {
	return &tripRepository{
		db:     db,
		logger: db.logger,
	}
}

// Save сохраняет план поездки (план целиком как JSONB)
func (r *tripRepository) Save(ctx context.Context, plan *domain.TripPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal trip plan: %w", err)
	}

	const query = `
		INSERT INTO trip_plans (trip_id, departure, plan, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (trip_id) DO NOTHING`

	_, err = r.db.ExecContext(ctx, query,
		plan.TripID, plan.Departure, data, time.Now().UTC())
	if err != nil {
		r.logger.Error("Failed to save trip plan",
			zap.String("trip_id", plan.TripID),
			zap.Error(err))
		return fmt.Errorf("save trip plan: %w", err)
	}

	r.logger.Debug("Trip plan saved", zap.String("trip_id", plan.TripID))
	return nil
}

// GetByID возвращает план по идентификатору или nil, если план не найден
func (r *tripRepository) GetByID(ctx context.Context, tripID string) (*domain.TripPlan, error) {
	const query = `SELECT plan FROM trip_plans WHERE trip_id = $1`

	var data []byte
	if err := r.db.GetContext(ctx, &data, query, tripID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get trip plan",
			zap.String("trip_id", tripID),
			zap.Error(err))
		return nil, fmt.Errorf("get trip plan: %w", err)
	}

	var plan domain.TripPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("unmarshal trip plan: %w", err)
	}
	return &plan, nil
}
