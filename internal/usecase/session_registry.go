package usecase

import (
	"time"

	"github.com/accessibility-map/internal/pkg/metrics"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// ViewportCacheFactory создаёт кеш для новой сессии
type ViewportCacheFactory func(sessionID string) *ViewportCache

// SessionRegistry хранит по одному ViewportCache на сессию карты.
// Сессия удаляется после idleTTL без обращений.
type SessionRegistry struct {
	sessions *gocache.Cache
	factory  ViewportCacheFactory
	logger   *zap.Logger
}

// NewSessionRegistry создаёт реестр; janitor go-cache чистит просроченные сессии раз в cleanupInterval
func NewSessionRegistry(
	idleTTL, cleanupInterval time.Duration,
	factory ViewportCacheFactory,
	logger *zap.Logger,
) *SessionRegistry {
	sessions := gocache.New(idleTTL, cleanupInterval)
	sessions.OnEvicted(func(id string, _ interface{}) {
		metrics.ActiveSessions.Dec()
		logger.Debug("Map session evicted", zap.String("session_id", id))
	})

	return &SessionRegistry{
		sessions: sessions,
		factory:  factory,
		logger:   logger,
	}
}

// Create заводит новую сессию с пустым кешем
func (r *SessionRegistry) Create() (string, *ViewportCache) {
	id := uuid.NewString()
	cache := r.factory(id)

	r.sessions.Set(id, cache, gocache.DefaultExpiration)
	metrics.ActiveSessions.Inc()

	r.logger.Info("Map session created", zap.String("session_id", id))
	return id, cache
}

// Get возвращает кеш сессии и продлевает её время жизни
func (r *SessionRegistry) Get(id string) (*ViewportCache, bool) {
	v, ok := r.sessions.Get(id)
	if !ok {
		return nil, false
	}
	cache := v.(*ViewportCache)

	// Replace не воскрешает сессию, удалённую между Get и продлением
	if err := r.sessions.Replace(id, cache, gocache.DefaultExpiration); err != nil {
		return nil, false
	}
	return cache, true
}

// Delete удаляет сессию; false если её не было
func (r *SessionRegistry) Delete(id string) bool {
	if _, ok := r.sessions.Get(id); !ok {
		return false
	}
	r.sessions.Delete(id)
	return true
}

// Count - количество сессий (включая ещё не вычищенные просроченные)
func (r *SessionRegistry) Count() int {
	return r.sessions.ItemCount()
}
