package repository

import (
	"context"

	"github.com/accessibility-map/internal/domain"
)

// NotificationRepository - доставка уведомлений во фронтенд через Redis Streams
type NotificationRepository interface {
	// Publish публикует уведомление в стрим и возвращает ID сообщения
	Publish(ctx context.Context, stream string, n *domain.Notification) (string, error)
}
