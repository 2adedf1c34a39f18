package repository

import (
	"context"

	"github.com/accessibility-map/internal/domain"
)

// LocalPointRepository определяет методы для работы с точками пользователей
type LocalPointRepository interface {
	// GetInBounds возвращает точки внутри bounds; пустой categories - без фильтра
	GetInBounds(ctx context.Context, bounds domain.GeoBounds, categories []domain.FeatureCategory) ([]*domain.LocalPoint, error)

	// GetByID возвращает точку по идентификатору
	GetByID(ctx context.Context, id string) (*domain.LocalPoint, error)

	// Create сохраняет новую точку, заполняя ID и CreatedAt
	Create(ctx context.Context, point *domain.LocalPoint) error
}
