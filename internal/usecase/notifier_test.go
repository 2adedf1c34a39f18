package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/accessibility-map/internal/domain"
	"github.com/accessibility-map/internal/usecase"
)

func testNotification() *domain.Notification {
	return &domain.Notification{
		Level:     domain.NotificationError,
		Message:   "Unable to load accessibility data",
		SessionID: "s-1",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStreamNotifier_Notify(t *testing.T) {
	t.Run("publishes to configured stream", func(t *testing.T) {
		repo := &MockNotificationRepository{}
		n := testNotification()
		repo.On("Publish", mock.Anything, domain.StreamNotificationsToast, n).Return("1-0", nil).Once()

		notifier := usecase.NewStreamNotifier(repo, domain.StreamNotificationsToast, zap.NewNop())
		notifier.Notify(context.Background(), n)

		repo.AssertExpectations(t)
	})

	t.Run("publishes even when request context is cancelled", func(t *testing.T) {
		repo := &MockNotificationRepository{}
		n := testNotification()
		repo.On("Publish", mock.MatchedBy(func(ctx context.Context) bool {
			return ctx.Err() == nil
		}), domain.StreamNotificationsToast, n).Return("1-0", nil).Once()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		notifier := usecase.NewStreamNotifier(repo, domain.StreamNotificationsToast, zap.NewNop())
		notifier.Notify(ctx, n)

		repo.AssertExpectations(t)
	})

	t.Run("publish error is swallowed", func(t *testing.T) {
		repo := &MockNotificationRepository{}
		n := testNotification()
		repo.On("Publish", mock.Anything, domain.StreamNotificationsToast, n).
			Return("", errors.New("connection refused")).Once()

		notifier := usecase.NewStreamNotifier(repo, domain.StreamNotificationsToast, zap.NewNop())
		notifier.Notify(context.Background(), n)

		repo.AssertExpectations(t)
	})
}

func TestMultiNotifier_Notify(t *testing.T) {
	first := &MockNotificationSink{}
	second := &MockNotificationSink{}
	n := testNotification()
	ctx := context.Background()

	first.On("Notify", ctx, n).Once()
	second.On("Notify", ctx, n).Once()

	multi := usecase.MultiNotifier{first, usecase.NewLogNotifier(zap.NewNop()), second}
	multi.Notify(ctx, n)

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}
