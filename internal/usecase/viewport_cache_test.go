package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/accessibility-map/internal/domain"
	"github.com/accessibility-map/internal/usecase"
)

var errOverpassDown = errors.New("overpass API error: status 504, body: gateway timeout")

func newTestCache(geodata *MockGeodataRepository, sink *MockNotificationSink, clock *fakeClock) *usecase.ViewportCache {
	return usecase.NewViewportCache(geodata, sink, zap.NewNop(),
		usecase.WithClock(clock.Now),
		usecase.WithSessionID("test-session"))
}

func manhattan() domain.GeoBounds {
	return domain.GeoBounds{North: 40.71, South: 40.70, East: -73.99, West: -74.00}
}

func featureIDs(features []domain.AccessibilityFeature) []string {
	ids := make([]string, 0, len(features))
	for _, f := range features {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestViewportCache_EndToEnd(t *testing.T) {
	geodata := &MockGeodataRepository{}
	sink := &MockNotificationSink{}
	cache := newTestCache(geodata, sink, newFakeClock())
	ctx := context.Background()

	elements := []domain.OverpassElement{
		node(1, 40.705, -73.995, map[string]string{"amenity": "toilets", "wheelchair": "yes"}),
		node(2, 40.706, -73.994, map[string]string{"wheelchair": "no"}),
	}

	var requested domain.GeoBounds
	geodata.On("FetchElements", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			requested = args.Get(1).(domain.GeoBounds)
		}).
		Return(elements, nil).Once()

	features, outcome := cache.Lookup(ctx, manhattan())

	assert.Equal(t, usecase.OutcomeMiss, outcome)
	assert.InDelta(t, 40.711, requested.North, 1e-9)
	assert.InDelta(t, 40.699, requested.South, 1e-9)
	assert.InDelta(t, -73.989, requested.East, 1e-9)
	assert.InDelta(t, -74.001, requested.West, 1e-9)

	// обе точки внутри исходных границ
	require.Len(t, features, 2)

	assert.Equal(t, "osm-node-1", features[0].ID)
	assert.Equal(t, domain.CategoryAccessibleBathroom, features[0].Category)
	assert.True(t, features[0].IsOperational)
	assert.Equal(t, domain.SourceOpenStreetMap, features[0].Source)
	assert.False(t, features[0].Verified)

	assert.Equal(t, "osm-node-2", features[1].ID)
	assert.Equal(t, domain.CategoryAccessibleEntrance, features[1].Category)
	assert.False(t, features[1].IsOperational)

	geodata.AssertExpectations(t)
	sink.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestViewportCache_ContainmentReuse(t *testing.T) {
	ctx := context.Background()

	t.Run("same viewport is served from cache", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		cache := newTestCache(geodata, &MockNotificationSink{}, newFakeClock())

		geodata.On("FetchElements", ctx, mock.Anything).
			Return([]domain.OverpassElement{
				node(1, 40.705, -73.995, map[string]string{"wheelchair": "yes"}),
			}, nil).Once()

		_, outcome := cache.Lookup(ctx, manhattan())
		assert.Equal(t, usecase.OutcomeMiss, outcome)

		features, outcome := cache.Lookup(ctx, manhattan())
		assert.Equal(t, usecase.OutcomeHit, outcome)
		assert.Equal(t, []string{"osm-node-1"}, featureIDs(features))

		geodata.AssertNumberOfCalls(t, "FetchElements", 1)
	})

	t.Run("small pan within threshold is served from cache", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		cache := newTestCache(geodata, &MockNotificationSink{}, newFakeClock())

		geodata.On("FetchElements", ctx, mock.Anything).
			Return([]domain.OverpassElement{
				node(1, 40.705, -73.995, map[string]string{"wheelchair": "yes"}),
				node(2, 40.7105, -73.9895, map[string]string{"wheelchair": "yes"}),
			}, nil).Once()

		_, _ = cache.Lookup(ctx, manhattan())

		panned := domain.GeoBounds{North: 40.715, South: 40.705, East: -73.985, West: -73.995}
		features, outcome := cache.Lookup(ctx, panned)

		assert.Equal(t, usecase.OutcomeHit, outcome)
		// точка 2 пришла из расширенной области и теперь видна
		assert.ElementsMatch(t, []string{"osm-node-1", "osm-node-2"}, featureIDs(features))
		geodata.AssertNumberOfCalls(t, "FetchElements", 1)
	})

	t.Run("pan beyond threshold triggers fetch", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		cache := newTestCache(geodata, &MockNotificationSink{}, newFakeClock())

		geodata.On("FetchElements", ctx, mock.Anything).
			Return([]domain.OverpassElement{}, nil).Twice()

		_, _ = cache.Lookup(ctx, manhattan())

		panned := domain.GeoBounds{North: 40.73, South: 40.72, East: -73.99, West: -74.00}
		_, outcome := cache.Lookup(ctx, panned)

		assert.Equal(t, usecase.OutcomeMiss, outcome)
		geodata.AssertNumberOfCalls(t, "FetchElements", 2)
	})

	t.Run("identical large viewport refetches because padding exceeds threshold", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		cache := newTestCache(geodata, &MockNotificationSink{}, newFakeClock())

		geodata.On("FetchElements", ctx, mock.Anything).
			Return([]domain.OverpassElement{}, nil).Twice()

		large := domain.GeoBounds{North: 41.0, South: 40.5, East: -73.5, West: -74.0}
		_, _ = cache.Lookup(ctx, large)
		_, outcome := cache.Lookup(ctx, large)

		assert.Equal(t, usecase.OutcomeMiss, outcome)
		geodata.AssertNumberOfCalls(t, "FetchElements", 2)
	})
}

func TestViewportCache_Expiry(t *testing.T) {
	geodata := &MockGeodataRepository{}
	clock := newFakeClock()
	cache := newTestCache(geodata, &MockNotificationSink{}, clock)
	ctx := context.Background()

	geodata.On("FetchElements", ctx, mock.Anything).
		Return([]domain.OverpassElement{}, nil).Twice()

	_, _ = cache.Lookup(ctx, manhattan())

	clock.Advance(usecase.ViewportCacheTTL - time.Second)
	_, outcome := cache.Lookup(ctx, manhattan())
	assert.Equal(t, usecase.OutcomeHit, outcome)

	clock.Advance(2 * time.Second)
	_, outcome = cache.Lookup(ctx, manhattan())
	assert.Equal(t, usecase.OutcomeMiss, outcome)

	geodata.AssertNumberOfCalls(t, "FetchElements", 2)
}

func TestViewportCache_ResultFiltering(t *testing.T) {
	geodata := &MockGeodataRepository{}
	cache := newTestCache(geodata, &MockNotificationSink{}, newFakeClock())
	ctx := context.Background()

	geodata.On("FetchElements", ctx, mock.Anything).
		Return([]domain.OverpassElement{
			node(1, 40.705, -73.995, map[string]string{"wheelchair": "yes"}),
			// в расширенной области, но за пределами запроса
			node(2, 40.7105, -73.995, map[string]string{"wheelchair": "yes"}),
			node(3, 40.705, -74.0005, map[string]string{"wheelchair": "yes"}),
			// ровно на границе - включается
			node(4, 40.71, -73.99, map[string]string{"wheelchair": "yes"}),
			// без координат - отбрасывается
			{Type: "way", ID: 5, Tags: map[string]string{"wheelchair": "yes"}},
		}, nil).Once()

	bounds := manhattan()
	features := cache.GetFeatures(ctx, bounds)

	assert.ElementsMatch(t, []string{"osm-node-1", "osm-node-4"}, featureIDs(features))
	for _, f := range features {
		assert.True(t, bounds.Contains(f.Latitude, f.Longitude))
	}

	features = cache.GetFeatures(ctx, bounds)
	assert.ElementsMatch(t, []string{"osm-node-1", "osm-node-4"}, featureIDs(features))
}

func TestViewportCache_SingleSlotEviction(t *testing.T) {
	geodata := &MockGeodataRepository{}
	cache := newTestCache(geodata, &MockNotificationSink{}, newFakeClock())
	ctx := context.Background()

	brooklyn := domain.GeoBounds{North: 40.65, South: 40.64, East: -73.94, West: -73.95}

	geodata.On("FetchElements", ctx, mock.Anything).
		Return([]domain.OverpassElement{}, nil).Times(3)

	_, _ = cache.Lookup(ctx, manhattan())
	_, _ = cache.Lookup(ctx, brooklyn)

	_, outcome := cache.Lookup(ctx, manhattan())
	assert.Equal(t, usecase.OutcomeMiss, outcome)
	geodata.AssertNumberOfCalls(t, "FetchElements", 3)
}

func TestViewportCache_FailureFallback(t *testing.T) {
	ctx := context.Background()

	isLoadFailure := mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Level == domain.NotificationError &&
			n.Message == "Unable to load accessibility data" &&
			n.SessionID == "test-session"
	})

	t.Run("cold cache returns empty list", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		sink := &MockNotificationSink{}
		cache := newTestCache(geodata, sink, newFakeClock())

		geodata.On("FetchElements", ctx, mock.Anything).Return(nil, errOverpassDown).Once()
		sink.On("Notify", ctx, isLoadFailure).Once()

		features, outcome := cache.Lookup(ctx, manhattan())

		assert.Equal(t, usecase.OutcomeCold, outcome)
		assert.NotNil(t, features)
		assert.Empty(t, features)
		sink.AssertExpectations(t)
	})

	t.Run("expired entry is served after failure", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		sink := &MockNotificationSink{}
		clock := newFakeClock()
		cache := newTestCache(geodata, sink, clock)

		geodata.On("FetchElements", ctx, mock.Anything).
			Return([]domain.OverpassElement{
				node(1, 40.705, -73.995, map[string]string{"wheelchair": "yes"}),
				node(2, 40.7105, -73.995, map[string]string{"wheelchair": "yes"}),
			}, nil).Once()
		geodata.On("FetchElements", ctx, mock.Anything).Return(nil, errOverpassDown)
		sink.On("Notify", ctx, isLoadFailure)

		_, _ = cache.Lookup(ctx, manhattan())
		clock.Advance(usecase.ViewportCacheTTL + time.Minute)

		features, outcome := cache.Lookup(ctx, manhattan())
		assert.Equal(t, usecase.OutcomeStale, outcome)
		assert.Equal(t, []string{"osm-node-1"}, featureIDs(features))

		// кеш не очищается после ошибки
		features, outcome = cache.Lookup(ctx, manhattan())
		assert.Equal(t, usecase.OutcomeStale, outcome)
		assert.Equal(t, []string{"osm-node-1"}, featureIDs(features))

		geodata.AssertNumberOfCalls(t, "FetchElements", 3)
		sink.AssertNumberOfCalls(t, "Notify", 2)
	})

	t.Run("stale entry for another region filters to nothing", func(t *testing.T) {
		geodata := &MockGeodataRepository{}
		sink := &MockNotificationSink{}
		cache := newTestCache(geodata, sink, newFakeClock())

		geodata.On("FetchElements", ctx, mock.Anything).
			Return([]domain.OverpassElement{
				node(1, 40.705, -73.995, map[string]string{"wheelchair": "yes"}),
			}, nil).Once()
		geodata.On("FetchElements", ctx, mock.Anything).Return(nil, errOverpassDown).Once()
		sink.On("Notify", ctx, isLoadFailure).Once()

		_, _ = cache.Lookup(ctx, manhattan())

		brooklyn := domain.GeoBounds{North: 40.65, South: 40.64, East: -73.94, West: -73.95}
		features, outcome := cache.Lookup(ctx, brooklyn)

		assert.Equal(t, usecase.OutcomeStale, outcome)
		assert.Empty(t, features)
		sink.AssertExpectations(t)
	})
}

func TestViewportCache_SupersededFetchDoesNotCommit(t *testing.T) {
	geodata := &MockGeodataRepository{}
	cache := newTestCache(geodata, &MockNotificationSink{}, newFakeClock())
	ctx := context.Background()

	brooklyn := domain.GeoBounds{North: 40.65, South: 40.64, East: -73.94, West: -73.95}
	inManhattan := mock.MatchedBy(func(b domain.GeoBounds) bool { return b.North > 40.7 })
	inBrooklyn := mock.MatchedBy(func(b domain.GeoBounds) bool { return b.North < 40.7 })

	started := make(chan struct{})
	release := make(chan struct{})

	geodata.On("FetchElements", ctx, inManhattan).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]domain.OverpassElement{
			node(1, 40.705, -73.995, map[string]string{"wheelchair": "yes"}),
		}, nil).Once()
	geodata.On("FetchElements", ctx, inBrooklyn).
		Return([]domain.OverpassElement{
			node(2, 40.645, -73.945, map[string]string{"wheelchair": "yes"}),
		}, nil).Once()

	type result struct {
		features []domain.AccessibilityFeature
		outcome  usecase.CacheOutcome
	}
	done := make(chan result, 1)

	go func() {
		features, outcome := cache.Lookup(ctx, manhattan())
		done <- result{features, outcome}
	}()
	<-started

	features, outcome := cache.Lookup(ctx, brooklyn)
	assert.Equal(t, usecase.OutcomeMiss, outcome)
	assert.Equal(t, []string{"osm-node-2"}, featureIDs(features))

	close(release)
	slow := <-done
	assert.Equal(t, usecase.OutcomeSuperseded, slow.outcome)
	assert.Equal(t, []string{"osm-node-1"}, featureIDs(slow.features))

	// в слоте остался более новый регион
	features, outcome = cache.Lookup(ctx, brooklyn)
	assert.Equal(t, usecase.OutcomeHit, outcome)
	assert.Equal(t, []string{"osm-node-2"}, featureIDs(features))

	geodata.AssertExpectations(t)
}

func TestViewportCache_Reset(t *testing.T) {
	geodata := &MockGeodataRepository{}
	cache := newTestCache(geodata, &MockNotificationSink{}, newFakeClock())
	ctx := context.Background()

	geodata.On("FetchElements", ctx, mock.Anything).
		Return([]domain.OverpassElement{}, nil).Twice()

	_, _ = cache.Lookup(ctx, manhattan())
	cache.Reset()

	_, outcome := cache.Lookup(ctx, manhattan())
	assert.Equal(t, usecase.OutcomeMiss, outcome)
	geodata.AssertNumberOfCalls(t, "FetchElements", 2)
}
