package repository

import (
	"context"

	"github.com/accessibility-map/internal/domain"
)

// GeodataRepository - внешний источник геоданных (Overpass API)
type GeodataRepository interface {
	// FetchElements возвращает сырые элементы OSM в пределах bounds
	FetchElements(ctx context.Context, bounds domain.GeoBounds) ([]domain.OverpassElement, error)
}
