package domain

import "time"

// NotificationLevel - уровень уведомления для тоста в интерфейсе
type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)

// StreamNotificationsToast - Redis stream, из которого фронтенд читает тосты
const StreamNotificationsToast = "stream:notifications:toast"

// Notification - сообщение для пользователя о сбое загрузки данных
type Notification struct {
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	SessionID string            `json:"session_id,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
