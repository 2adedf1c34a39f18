package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/accessibility-map/internal/domain"
	"github.com/accessibility-map/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const matrixKeyPrefix = "matrix:walking:"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
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

	return nil
}

// GetMatrix получает ответ Matrix API из кеша; (nil, nil) при промахе
func (r *cacheRepository) GetMatrix(ctx context.Context, key string) (*domain.MatrixResponse, error) {
	data, err := r.Get(ctx, matrixKeyPrefix+key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var matrix domain.MatrixResponse
	if err := json.Unmarshal(data, &matrix); err != nil {
		r.logger.Error("Failed to unmarshal matrix from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal matrix: %w", err)
	}

	return &matrix, nil
}

// SetMatrix сохраняет ответ Matrix API в кеше
func (r *cacheRepository) SetMatrix(ctx context.Context, key string, matrix *domain.MatrixResponse, ttl time.Duration) error {
	data, err := json.Marshal(matrix)
	if err != nil {
		return fmt.Errorf("marshal matrix: %w", err)
	}

	return r.Set(ctx, matrixKeyPrefix+key, data, ttl)
}
