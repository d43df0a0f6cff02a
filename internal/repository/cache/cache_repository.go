package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client      *redis.Client
	logger      *zap.Logger
	baselineTTL time.Duration
}

func NewCacheRepository(redis *Redis, baselineTTL time.Duration) repository.CacheRepository {
	return &cacheRepository{
		client:      redis.Client(),
		logger:      redis.logger,
		baselineTTL: baselineTTL,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetBaselineDuration получает закешированное время базового маршрута
func (r *cacheRepository) GetBaselineDuration(
	ctx context.Context,
	origin, destination domain.GeoPoint,
) (float64, bool, error) {
	data, err := r.Get(ctx, BaselineKey(origin, destination))
	if err != nil {
		return 0, false, err
	}
	if data == nil {
		return 0, false, nil // Cache miss
	}

	seconds, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		r.logger.Warn("Malformed baseline duration in cache", zap.Error(err))
		return 0, false, nil
	}
	return seconds, true, nil
}

// SetBaselineDuration сохраняет время базового маршрута.
// Значение детерминировано для ключа, гонка записей безобидна.
func (r *cacheRepository) SetBaselineDuration(
	ctx context.Context,
	origin, destination domain.GeoPoint,
	seconds float64,
) error {
	value := strconv.FormatFloat(seconds, 'f', -1, 64)
	return r.Set(ctx, BaselineKey(origin, destination), []byte(value), r.baselineTTL)
}

// BaselineKey строит ключ кеша из координат, округленных до 6 знаков
func BaselineKey(origin, destination domain.GeoPoint) string {
	return fmt.Sprintf("baseline:%.6f_%.6f_%.6f_%.6f",
		origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}
