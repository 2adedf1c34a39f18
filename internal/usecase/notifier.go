package usecase

import (
	"context"
	"time"

	"github.com/accessibility-map/internal/domain"
	"github.com/accessibility-map/internal/domain/repository"
	"github.com/accessibility-map/internal/pkg/metrics"
	"go.uber.org/zap"
)

// publishTimeout - сколько ждём Redis при публикации уведомления
const publishTimeout = 2 * time.Second

// NotificationSink принимает уведомления для пользователя. Ошибки доставки не возвращаются.
type NotificationSink interface {
	Notify(ctx context.Context, n *domain.Notification)
}

// LogNotifier пишет уведомления в лог
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, notification *domain.Notification) {
	n.logger.Warn("User notification",
		zap.String("level", string(notification.Level)),
		zap.String("message", notification.Message),
		zap.String("session_id", notification.SessionID),
		zap.Any("details", notification.Details))
	metrics.NotificationsPublished.WithLabelValues("log", "ok").Inc()
}

// StreamNotifier публикует уведомления в Redis stream, откуда их забирает фронтенд
type StreamNotifier struct {
	repo   repository.NotificationRepository
	stream string
	logger *zap.Logger
}

func NewStreamNotifier(repo repository.NotificationRepository, stream string, logger *zap.Logger) *StreamNotifier {
	return &StreamNotifier{
		repo:   repo,
		stream: stream,
		logger: logger,
	}
}

func (n *StreamNotifier) Notify(ctx context.Context, notification *domain.Notification) {
	// уведомление должно уйти даже если клиент уже отменил запрос
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if _, err := n.repo.Publish(pubCtx, n.stream, notification); err != nil {
		n.logger.Error("Failed to publish notification", zap.Error(err))
		metrics.NotificationsPublished.WithLabelValues("stream", "error").Inc()
		return
	}
	metrics.NotificationsPublished.WithLabelValues("stream", "ok").Inc()
}

// MultiNotifier рассылает уведомление во все sink по порядку
type MultiNotifier []NotificationSink

func (m MultiNotifier) Notify(ctx context.Context, notification *domain.Notification) {
	for _, sink := range m {
		sink.Notify(ctx, notification)
	}
}
