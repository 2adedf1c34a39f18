package domain

import (
	"fmt"
	"strings"
)

// OverpassResponse - JSON конверт ответа Overpass API
type OverpassResponse struct {
	Version   float64           `json:"version"`
	Generator string            `json:"generator"`
	Elements  []OverpassElement `json:"elements"`
}

// OverpassElement - сырой объект OSM (node/way) с тегами
type OverpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *OverpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// OverpassCenter - центр way при запросе с "out center"
type OverpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Position возвращает координаты элемента; ok=false если координат нет
func (e *OverpassElement) Position() (lat, lon float64, ok bool) {
	if e.Lat != nil && e.Lon != nil {
		return *e.Lat, *e.Lon, true
	}
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}

// Значения тега wheelchair
const (
	wheelchairYes     = "yes"
	wheelchairLimited = "limited"
)

// ClassifyTags определяет категорию по тегам.
// Порядок правил фиксирован, срабатывает первое подходящее.
func ClassifyTags(tags map[string]string) FeatureCategory {
	affirmed := tags["wheelchair"] == wheelchairYes

	if tags["amenity"] == "toilets" && (affirmed || tags["toilets:wheelchair"] == wheelchairYes) {
		return CategoryAccessibleBathroom
	}

	if tags["highway"] == "elevator" || tags["elevator"] == "yes" {
		return CategoryElevator
	}

	if tags["ramp"] == "yes" || tags["ramp:wheelchair"] == "yes" ||
		strings.Contains(strings.ToLower(tags["wheelchair:description"]), "ramp") {
		return CategoryRamp
	}

	if door, ok := tags["automatic_door"]; ok && door != "no" && affirmed {
		return CategoryAccessibleEntrance
	}

	return CategoryAccessibleEntrance
}

// IsOperationalTag - точка считается рабочей при wheelchair=yes|limited
func IsOperationalTag(tags map[string]string) bool {
	v := tags["wheelchair"]
	return v == wheelchairYes || v == wheelchairLimited
}

// ToFeature нормализует элемент Overpass. ok=false если у элемента нет координат.
func (e *OverpassElement) ToFeature() (AccessibilityFeature, bool) {
	lat, lon, ok := e.Position()
	if !ok {
		return AccessibilityFeature{}, false
	}

	category := ClassifyTags(e.Tags)

	name := e.Tags["name"]
	if name == "" {
		name = category.Label()
	}

	var description *string
	if d := e.Tags["wheelchair:description"]; d != "" {
		description = &d
	}

	elementType := e.Type
	if elementType == "" {
		elementType = "node"
	}

	return AccessibilityFeature{
		ID:            fmt.Sprintf("osm-%s-%d", elementType, e.ID),
		Category:      category,
		Name:          name,
		Description:   description,
		Latitude:      lat,
		Longitude:     lon,
		IsOperational: IsOperationalTag(e.Tags),
		Verified:      false,
		Source:        SourceOpenStreetMap,
	}, true
}

// NormalizeElements отбрасывает элементы без координат и классифицирует остальные
func NormalizeElements(elements []OverpassElement) []AccessibilityFeature {
	features := make([]AccessibilityFeature, 0, len(elements))
	for i := range elements {
		if f, ok := elements[i].ToFeature(); ok {
			features = append(features, f)
		}
	}
	return features
}
