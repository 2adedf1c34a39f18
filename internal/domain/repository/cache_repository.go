package repository

import (
	"context"
	"time"

	"github.com/accessibility-map/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; (nil, nil) при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetMatrix получает ответ Matrix API из кеша
	GetMatrix(ctx context.Context, key string) (*domain.MatrixResponse, error)

	// SetMatrix сохраняет ответ Matrix API в кеше
	SetMatrix(ctx context.Context, key string, matrix *domain.MatrixResponse, ttl time.Duration) error
}
