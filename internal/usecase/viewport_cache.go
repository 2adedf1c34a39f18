package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/accessibility-map/internal/domain"
	"github.com/accessibility-map/internal/domain/repository"
	"github.com/accessibility-map/internal/pkg/metrics"
	"go.uber.org/zap"
)

const (
	// ViewportCacheTTL - время жизни закешированного региона
	ViewportCacheTTL = 5 * time.Minute

	// BoundsPaddingRatio - доля размаха, добавляемая с каждой стороны при запросе
	BoundsPaddingRatio = 0.1

	// ContainmentThreshold - допуск по каждой стороне при проверке попадания в кеш (~1 км)
	ContainmentThreshold = 0.01

	loadFailedMessage = "Unable to load accessibility data"
)

// CacheOutcome - чем закончилось обращение к кешу
type CacheOutcome string

const (
	OutcomeHit        CacheOutcome = metrics.ResultHit
	OutcomeMiss       CacheOutcome = metrics.ResultMiss
	OutcomeStale      CacheOutcome = metrics.ResultStale
	OutcomeCold       CacheOutcome = metrics.ResultCold
	OutcomeSuperseded CacheOutcome = metrics.ResultSuperseded
)

// cacheEntry неизменяем после создания; заменяется целиком
type cacheEntry struct {
	features  []domain.AccessibilityFeature
	bounds    domain.GeoBounds // расширенные границы
	fetchedAt time.Time
}

// ViewportCache - однослотовый кеш внешних данных о доступности для одной сессии карты.
//
// Запрос, попадающий в закешированный регион (с допуском ContainmentThreshold по каждой
// стороне) и моложе ViewportCacheTTL, обслуживается без сети. Иначе загружается регион,
// расширенный на BoundsPaddingRatio, и он целиком заменяет предыдущий. При ошибке загрузки
// отправляется уведомление и возвращаются старые данные (даже просроченные) или пустой список.
//
// Каждый промах получает номер поколения; результат сохраняется только если за время
// загрузки не стартовал более новый промах или Reset.
type ViewportCache struct {
	geodata   repository.GeodataRepository
	sink      NotificationSink
	logger    *zap.Logger
	now       func() time.Time
	sessionID string

	mu         sync.Mutex
	entry      *cacheEntry
	generation uint64
}

// ViewportCacheOption настраивает ViewportCache
type ViewportCacheOption func(*ViewportCache)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) ViewportCacheOption {
	return func(c *ViewportCache) {
		c.now = now
	}
}

// WithSessionID привязывает кеш к сессии карты (попадает в логи и уведомления)
func WithSessionID(id string) ViewportCacheOption {
	return func(c *ViewportCache) {
		c.sessionID = id
	}
}

// NewViewportCache создаёт пустой кеш
func NewViewportCache(
	geodata repository.GeodataRepository,
	sink NotificationSink,
	logger *zap.Logger,
	opts ...ViewportCacheOption,
) *ViewportCache {
	c := &ViewportCache{
		geodata: geodata,
		sink:    sink,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessionID != "" {
		c.logger = c.logger.With(zap.String("session_id", c.sessionID))
	}
	return c
}

// GetFeatures возвращает точки доступности внутри bounds. Никогда не возвращает ошибку.
func (c *ViewportCache) GetFeatures(ctx context.Context, bounds domain.GeoBounds) []domain.AccessibilityFeature {
	features, _ := c.Lookup(ctx, bounds)
	return features
}

// Lookup - то же, что GetFeatures, но дополнительно сообщает, как был получен результат
func (c *ViewportCache) Lookup(ctx context.Context, bounds domain.GeoBounds) ([]domain.AccessibilityFeature, CacheOutcome) {
	features, outcome := c.lookup(ctx, bounds)
	metrics.ViewportCacheRequests.WithLabelValues(string(outcome)).Inc()
	return features, outcome
}

func (c *ViewportCache) lookup(ctx context.Context, bounds domain.GeoBounds) ([]domain.AccessibilityFeature, CacheOutcome) {
	now := c.now()

	c.mu.Lock()
	entry := c.entry
	if entry != nil &&
		now.Sub(entry.fetchedAt) < ViewportCacheTTL &&
		entry.bounds.ApproxContains(bounds, ContainmentThreshold) {
		c.mu.Unlock()

		c.logger.Debug("Viewport cache hit", zap.String("bounds", bounds.String()))
		return domain.FilterInBounds(entry.features, bounds), OutcomeHit
	}
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	expanded := bounds.Expand(BoundsPaddingRatio)

	elements, err := c.geodata.FetchElements(ctx, expanded)
	if err != nil {
		return c.fallback(ctx, bounds, err)
	}

	features := domain.NormalizeElements(elements)

	c.mu.Lock()
	current := gen == c.generation
	if current {
		c.entry = &cacheEntry{
			features:  features,
			bounds:    expanded,
			fetchedAt: c.now(),
		}
	}
	c.mu.Unlock()

	if !current {
		c.logger.Debug("Discarding superseded viewport fetch",
			zap.Uint64("generation", gen),
			zap.String("bounds", bounds.String()))
		return domain.FilterInBounds(features, bounds), OutcomeSuperseded
	}

	c.logger.Debug("Viewport cache refreshed",
		zap.String("bounds", expanded.String()),
		zap.Int("elements", len(elements)),
		zap.Int("features", len(features)))

	return domain.FilterInBounds(features, bounds), OutcomeMiss
}

// fallback отдаёт предыдущую запись (даже просроченную) и не очищает кеш
func (c *ViewportCache) fallback(ctx context.Context, bounds domain.GeoBounds, fetchErr error) ([]domain.AccessibilityFeature, CacheOutcome) {
	c.logger.Warn("Failed to fetch accessibility data",
		zap.String("bounds", bounds.String()),
		zap.Error(fetchErr))

	c.sink.Notify(ctx, &domain.Notification{
		Level:     domain.NotificationError,
		Message:   loadFailedMessage,
		SessionID: c.sessionID,
		Details: map[string]string{
			"bounds": bounds.String(),
		},
		CreatedAt: c.now(),
	})

	c.mu.Lock()
	prev := c.entry
	c.mu.Unlock()

	if prev == nil {
		return []domain.AccessibilityFeature{}, OutcomeCold
	}
	return domain.FilterInBounds(prev.features, bounds), OutcomeStale
}

// Reset очищает слот; загрузки, начатые до сброса, результат не сохранят
func (c *ViewportCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = nil
	c.generation++
}
