package dto

import (
	"strings"

	"github.com/accessibility-map/internal/domain"
	"github.com/accessibility-map/internal/pkg/errors"
)

// ViewportFeaturesRequest - видимая область карты (query параметры)
type ViewportFeaturesRequest struct {
	North      float64 `query:"north" validate:"latitude"`
	South      float64 `query:"south" validate:"latitude"`
	East       float64 `query:"east" validate:"longitude"`
	West       float64 `query:"west" validate:"longitude"`
	Categories string  `query:"categories"`
}

// Bounds возвращает проверенный GeoBounds
func (r ViewportFeaturesRequest) Bounds() (domain.GeoBounds, error) {
	return parseBounds(r.North, r.South, r.East, r.West)
}

// CategoryList разбирает categories=ramp,elevator
func (r ViewportFeaturesRequest) CategoryList() ([]domain.FeatureCategory, error) {
	return ParseCategories(r.Categories)
}

// NearestFeaturesRequest - ближайшие точки к пользователю в пределах вьюпорта
type NearestFeaturesRequest struct {
	Origin     domain.Coordinate `json:"origin"`
	North      float64           `json:"north" validate:"latitude"`
	South      float64           `json:"south" validate:"latitude"`
	East       float64           `json:"east" validate:"longitude"`
	West       float64           `json:"west" validate:"longitude"`
	Categories []string          `json:"categories,omitempty" validate:"omitempty,dive,category"`
	Limit      int               `json:"limit,omitempty" validate:"omitempty,min=1,max=24"`
}

func (r NearestFeaturesRequest) Bounds() (domain.GeoBounds, error) {
	return parseBounds(r.North, r.South, r.East, r.West)
}

// ReportPointRequest - новая точка от пользователя
type ReportPointRequest struct {
	Category      string  `json:"category" validate:"required,category"`
	Name          string  `json:"name" validate:"required,max=200"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Latitude      float64 `json:"latitude" validate:"latitude"`
	Longitude     float64 `json:"longitude" validate:"longitude"`
	IsOperational *bool   `json:"is_operational,omitempty"`
}

// ToLocalPoint собирает доменную точку; пользовательские точки не верифицированы
func (r ReportPointRequest) ToLocalPoint() *domain.LocalPoint {
	operational := true
	if r.IsOperational != nil {
		operational = *r.IsOperational
	}
	return &domain.LocalPoint{
		Category:      domain.FeatureCategory(r.Category),
		Name:          strings.TrimSpace(r.Name),
		Description:   r.Description,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		IsOperational: operational,
		Verified:      false,
	}
}

// ParseCategories разбирает список категорий через запятую
func ParseCategories(s string) ([]domain.FeatureCategory, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return ToCategories(strings.Split(s, ","))
}

// ToCategories проверяет и приводит строки к FeatureCategory
func ToCategories(values []string) ([]domain.FeatureCategory, error) {
	result := make([]domain.FeatureCategory, 0, len(values))
	for _, v := range values {
		c := domain.FeatureCategory(strings.TrimSpace(v))
		if c == "" {
			continue
		}
		if !c.IsValid() {
			return nil, errors.ErrInvalidCategory.WithDetails(map[string]interface{}{
				"category": string(c),
			})
		}
		result = append(result, c)
	}
	return result, nil
}

func parseBounds(north, south, east, west float64) (domain.GeoBounds, error) {
	b, err := domain.NewGeoBounds(north, south, east, west)
	if err != nil {
		return domain.GeoBounds{}, errors.ErrInvalidBounds.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}
	return b, nil
}
