package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/trip-planner/internal/domain"
)

// MockRoutingRepository is a mock of RoutingRepository
type MockRoutingRepository struct {
	mock.Mock
}

func (m *MockRoutingRepository) Route(ctx context.Context, origin, destination domain.GeoPoint, stops []domain.GeoPoint) (*domain.Route, error) {
	args := m.Called(ctx, origin, destination, stops)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRoutingRepository) DurationMatrix(ctx context.Context, points []domain.GeoPoint) ([][]float64, error) {
	args := m.Called(ctx, points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float64), args.Error(1)
}

// MockPlacesRepository is a mock of PlacesRepository
type MockPlacesRepository struct {
	mock.Mock
}

func (m *MockPlacesRepository) Search(ctx context.Context, point domain.GeoPoint, radiusMeters int, category string) ([]domain.Place, error) {
	args := m.Called(ctx, point, radiusMeters, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Place), args.Error(1)
}

// MockPreferenceRepository is a mock of PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) GetByUserID(ctx context.Context, userID string) (*domain.PersonalizationProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PersonalizationProfile), args.Error(1)
}

func (m *MockPreferenceRepository) Upsert(ctx context.Context, profile *domain.PersonalizationProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetBaselineDuration(ctx context.Context, origin, destination domain.GeoPoint) (float64, bool, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

func (m *MockCacheRepository) SetBaselineDuration(ctx context.Context, origin, destination domain.GeoPoint, seconds float64) error {
	args := m.Called(ctx, origin, destination, seconds)
	return args.Error(0)
}

// MockTripRepository is a mock of TripRepository
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) Save(ctx context.Context, plan *domain.TripPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockTripRepository) GetByID(ctx context.Context, tripID string) (*domain.TripPlan, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripPlan), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}
