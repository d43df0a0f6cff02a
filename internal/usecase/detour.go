package usecase

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/pkg/utils"
)

// estimateAttempt - одна стратегия оценки крюка
type estimateAttempt func(ctx context.Context, origin, destination, via domain.GeoPoint) (domain.DetourEstimate, error)

// DetourEstimator оценивает дополнительное время заезда через промежуточную точку
type DetourEstimator struct {
	routingRepo      repository.RoutingRepository
	cacheRepo        repository.CacheRepository
	logger           *zap.Logger
	fallbackSpeedKmh float64
}

// NewDetourEstimator создает новый оценщик крюков
func NewDetourEstimator(
	routingRepo repository.RoutingRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	fallbackSpeedKmh float64,
) *DetourEstimator {
	if fallbackSpeedKmh <= 0 {
		fallbackSpeedKmh = 40
	}
	return &DetourEstimator{
		routingRepo:      routingRepo,
		cacheRepo:        cacheRepo,
		logger:           logger,
		fallbackSpeedKmh: fallbackSpeedKmh,
	}
}

// Estimate возвращает оценку крюка в минутах.
// Сначала пробует матрицу длительностей роутера, при ошибке падает на эвристику по прямой.
func (e *DetourEstimator) Estimate(ctx context.Context, origin, destination, via domain.GeoPoint) (domain.DetourEstimate, error) {
	attempt := fallbackChain(e.estimateMatrix, e.estimateHeuristic)
	return attempt(ctx, origin, destination, via)
}

// fallbackChain пробует стратегии по порядку, пока одна не вернёт результат
func fallbackChain(attempts ...estimateAttempt) estimateAttempt {
	return func(ctx context.Context, origin, destination, via domain.GeoPoint) (domain.DetourEstimate, error) {
		var lastErr error
		for _, attempt := range attempts {
			est, err := attempt(ctx, origin, destination, via)
			if err == nil {
				return est, nil
			}
			lastErr = err
		}
		return domain.DetourEstimate{}, lastErr
	}
}

func (e *DetourEstimator) estimateMatrix(ctx context.Context, origin, destination, via domain.GeoPoint) (domain.DetourEstimate, error) {
	matrix, err := e.routingRepo.DurationMatrix(ctx, []domain.GeoPoint{origin, via, destination})
	if err != nil {
		e.logger.Debug("duration matrix request failed, falling back",
			zap.Float64("via_lat", via.Lat),
			zap.Float64("via_lng", via.Lng),
			zap.Error(err))
		return domain.DetourEstimate{}, err
	}
	if len(matrix) < 3 || len(matrix[0]) < 3 || len(matrix[1]) < 3 {
		return domain.DetourEstimate{}, fmt.Errorf("unexpected duration matrix shape: %dx?", len(matrix))
	}

	originVia := matrix[0][1]
	viaDest := matrix[1][2]
	originDest := matrix[0][2]

	if e.cacheRepo != nil {
		if cached, found, err := e.cacheRepo.GetBaselineDuration(ctx, origin, destination); err == nil && found {
			originDest = cached
		} else {
			if err := e.cacheRepo.SetBaselineDuration(ctx, origin, destination, originDest); err != nil {
				e.logger.Warn("failed to cache baseline duration", zap.Error(err))
			}
		}
	}

	extra := originVia + viaDest - originDest
	if extra < 0 {
		extra = 0
	}
	return domain.DetourEstimate{
		Minutes: int(math.Ceil(extra / 60)),
		Method:  domain.DetourMethodMatrix,
	}, nil
}

// estimateHeuristic оценивает крюк по расстоянию по прямой и средней скорости
func (e *DetourEstimator) estimateHeuristic(_ context.Context, origin, destination, via domain.GeoPoint) (domain.DetourEstimate, error) {
	direct := utils.HaversineDistance(origin.Lat, origin.Lng, destination.Lat, destination.Lng)
	detour := utils.HaversineDistance(origin.Lat, origin.Lng, via.Lat, via.Lng) +
		utils.HaversineDistance(via.Lat, via.Lng, destination.Lat, destination.Lng)

	extraKm := detour - direct
	// Отбрасываем шум плавающей точки для точек на прямой
	if extraKm < 1e-9 {
		extraKm = 0
	}
	extraMinutes := extraKm / e.fallbackSpeedKmh * 60
	return domain.DetourEstimate{
		Minutes: int(math.Ceil(extraMinutes)),
		Method:  domain.DetourMethodHeuristic,
	}, nil
}
