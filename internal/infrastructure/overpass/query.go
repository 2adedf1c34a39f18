package overpass

import (
	"fmt"
	"math"
	"strings"

	"github.com/accessibility-map/internal/domain"
)

// selectors - фильтры Overpass QL для объектов, связанных с доступностью
var selectors = []string{
	`node["wheelchair"]`,
	`way["wheelchair"]`,
	`node["amenity"="toilets"]["toilets:wheelchair"]`,
	`node["highway"="elevator"]`,
	`node["ramp:wheelchair"]`,
	`node["automatic_door"]`,
}

// BuildQuery строит Overpass QL запрос для bbox.
// Overpass ожидает bbox в порядке (south,west,north,east).
// Расширенный вьюпорт может выйти за пределы координат, поэтому bbox обрезается.
func BuildQuery(bounds domain.GeoBounds, timeoutSec int) string {
	bbox := fmt.Sprintf("(%f,%f,%f,%f)",
		clamp(bounds.South, -90, 90),
		clamp(bounds.West, -180, 180),
		clamp(bounds.North, -90, 90),
		clamp(bounds.East, -180, 180),
	)

	var sb strings.Builder
	fmt.Fprintf(&sb, "[out:json][timeout:%d];\n(\n", timeoutSec)
	for _, sel := range selectors {
		sb.WriteString("  ")
		sb.WriteString(sel)
		sb.WriteString(bbox)
		sb.WriteString(";\n")
	}
	sb.WriteString(");\nout center;")
	return sb.String()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
