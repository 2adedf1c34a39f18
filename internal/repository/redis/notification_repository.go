package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/accessibility-map/internal/domain"
	"github.com/accessibility-map/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type notificationRepository struct {
	client *redis.Client
	maxLen int64
	logger *zap.Logger
}

// NewNotificationRepository создает репозиторий уведомлений поверх Redis Streams.
// maxLen ограничивает длину стрима (приблизительно, MAXLEN ~).
func NewNotificationRepository(client *redis.Client, maxLen int64, logger *zap.Logger) repository.NotificationRepository {
	return &notificationRepository{
		client: client,
		maxLen: maxLen,
		logger: logger,
	}
}

// Publish публикует уведомление в стрим
func (r *notificationRepository) Publish(ctx context.Context, stream string, n *domain.Notification) (string, error) {
	jsonData, err := json.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"level": string(n.Level),
			"data":  string(jsonData),
		},
	}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}

	id, err := r.client.XAdd(ctx, args).Result()
	if err != nil {
		r.logger.Error("Failed to publish notification",
			zap.String("stream", stream),
			zap.Error(err))
		return "", fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Notification published",
		zap.String("stream", stream),
		zap.String("message_id", id))

	return id, nil
}
