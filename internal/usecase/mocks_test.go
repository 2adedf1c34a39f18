package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/accessibility-map/internal/domain"
)

// MockGeodataRepository is a mock of GeodataRepository
type MockGeodataRepository struct {
	mock.Mock
}

func (m *MockGeodataRepository) FetchElements(ctx context.Context, bounds domain.GeoBounds) ([]domain.OverpassElement, error) {
	args := m.Called(ctx, bounds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverpassElement), args.Error(1)
}

// MockNotificationSink is a mock of NotificationSink
type MockNotificationSink struct {
	mock.Mock
}

func (m *MockNotificationSink) Notify(ctx context.Context, n *domain.Notification) {
	m.Called(ctx, n)
}

// MockLocalPointRepository is a mock of LocalPointRepository
type MockLocalPointRepository struct {
	mock.Mock
}

func (m *MockLocalPointRepository) GetInBounds(ctx context.Context, bounds domain.GeoBounds, categories []domain.FeatureCategory) ([]*domain.LocalPoint, error) {
	args := m.Called(ctx, bounds, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LocalPoint), args.Error(1)
}

func (m *MockLocalPointRepository) GetByID(ctx context.Context, id string) (*domain.LocalPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LocalPoint), args.Error(1)
}

func (m *MockLocalPointRepository) Create(ctx context.Context, point *domain.LocalPoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

// MockMapboxRepository is a mock of MapboxRepository
type MockMapboxRepository struct {
	mock.Mock
}

func (m *MockMapboxRepository) GetWalkingMatrix(ctx context.Context, origins []domain.Coordinate, destinations []domain.Coordinate) (*domain.MatrixResponse, error) {
	args := m.Called(ctx, origins, destinations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatrixResponse), args.Error(1)
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

func (m *MockCacheRepository) GetMatrix(ctx context.Context, key string) (*domain.MatrixResponse, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatrixResponse), args.Error(1)
}

func (m *MockCacheRepository) SetMatrix(ctx context.Context, key string, matrix *domain.MatrixResponse, ttl time.Duration) error {
	args := m.Called(ctx, key, matrix, ttl)
	return args.Error(0)
}

// MockNotificationRepository is a mock of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Publish(ctx context.Context, stream string, n *domain.Notification) (string, error) {
	args := m.Called(ctx, stream, n)
	return args.String(0), args.Error(1)
}

// fakeClock - управляемое время для кеша
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func node(id int64, lat, lon float64, tags map[string]string) domain.OverpassElement {
	return domain.OverpassElement{
		Type: "node",
		ID:   id,
		Lat:  &lat,
		Lon:  &lon,
		Tags: tags,
	}
}
