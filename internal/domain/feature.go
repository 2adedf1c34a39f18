package domain

import (
	"fmt"
	"time"
)

// FeatureCategory - тип точки доступности
type FeatureCategory string

const (
	CategoryElevator           FeatureCategory = "elevator"
	CategoryRamp               FeatureCategory = "ramp"
	CategoryAccessibleEntrance FeatureCategory = "accessible_entrance"
	CategoryAccessibleBathroom FeatureCategory = "accessible_bathroom"
	CategoryTactilePaving      FeatureCategory = "tactile_paving"
	CategoryHandicapParking    FeatureCategory = "handicap_parking"
)

// AllCategories - фиксированный список категорий
var AllCategories = []FeatureCategory{
	CategoryElevator,
	CategoryRamp,
	CategoryAccessibleEntrance,
	CategoryAccessibleBathroom,
	CategoryTactilePaving,
	CategoryHandicapParking,
}

// IsValid проверяет, что категория входит в фиксированный список
func (c FeatureCategory) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Label - человекочитаемое название категории (используется как имя по умолчанию)
func (c FeatureCategory) Label() string {
	switch c {
	case CategoryElevator:
		return "Elevator"
	case CategoryRamp:
		return "Ramp"
	case CategoryAccessibleEntrance:
		return "Accessible Entrance"
	case CategoryAccessibleBathroom:
		return "Accessible Bathroom"
	case CategoryTactilePaving:
		return "Tactile Paving"
	case CategoryHandicapParking:
		return "Handicap Parking"
	default:
		return string(c)
	}
}

// FeatureSource - происхождение точки
type FeatureSource string

const (
	SourceOpenStreetMap FeatureSource = "openstreetmap"
	SourceCommunity     FeatureSource = "community"
)

// AccessibilityFeature - нормализованная точка доступности.
// Создаётся один раз при загрузке и дальше не изменяется.
type AccessibilityFeature struct {
	ID            string          `json:"id"`
	Category      FeatureCategory `json:"category"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	IsOperational bool            `json:"is_operational"`
	Verified      bool            `json:"verified"`
	Source        FeatureSource   `json:"source"`
}

// LocalPoint - точка, добавленная пользователями приложения
type LocalPoint struct {
	ID            string          `json:"id" db:"id"`
	Category      FeatureCategory `json:"category" db:"category"`
	Name          string          `json:"name" db:"name"`
	Description   *string         `json:"description,omitempty" db:"description"`
	Latitude      float64         `json:"latitude" db:"latitude"`
	Longitude     float64         `json:"longitude" db:"longitude"`
	IsOperational bool            `json:"is_operational" db:"is_operational"`
	Verified      bool            `json:"verified" db:"verified"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// ToFeature приводит локальную точку к общему виду
func (p *LocalPoint) ToFeature() AccessibilityFeature {
	return AccessibilityFeature{
		ID:            fmt.Sprintf("local-%s", p.ID),
		Category:      p.Category,
		Name:          p.Name,
		Description:   p.Description,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		IsOperational: p.IsOperational,
		Verified:      p.Verified,
		Source:        SourceCommunity,
	}
}

// FilterInBounds оставляет только точки внутри bounds
func FilterInBounds(features []AccessibilityFeature, bounds GeoBounds) []AccessibilityFeature {
	result := make([]AccessibilityFeature, 0, len(features))
	for _, f := range features {
		if bounds.Contains(f.Latitude, f.Longitude) {
			result = append(result, f)
		}
	}
	return result
}
