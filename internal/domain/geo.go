package domain

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// GeoBounds - прямоугольник видимой области карты в градусах.
// Переход через антимеридиан не поддерживается: North > South, East > West.
type GeoBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// NewGeoBounds создаёт GeoBounds и проверяет порядок сторон
func NewGeoBounds(north, south, east, west float64) (GeoBounds, error) {
	b := GeoBounds{North: north, South: south, East: east, West: west}
	if err := b.Validate(); err != nil {
		return GeoBounds{}, err
	}
	return b, nil
}

// Validate проверяет диапазоны координат и порядок сторон
func (b GeoBounds) Validate() error {
	for _, lat := range []float64{b.North, b.South} {
		if math.IsNaN(lat) || lat < -90 || lat > 90 {
			return fmt.Errorf("latitude %v out of range", lat)
		}
	}
	for _, lon := range []float64{b.East, b.West} {
		if math.IsNaN(lon) || lon < -180 || lon > 180 {
			return fmt.Errorf("longitude %v out of range", lon)
		}
	}
	if b.North <= b.South {
		return fmt.Errorf("north (%v) must be greater than south (%v)", b.North, b.South)
	}
	if b.East <= b.West {
		return fmt.Errorf("east (%v) must be greater than west (%v)", b.East, b.West)
	}
	return nil
}

// Bound возвращает прямоугольник в представлении orb ([lon, lat])
func (b GeoBounds) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.West, b.South},
		Max: orb.Point{b.East, b.North},
	}
}

// Contains проверяет, что точка лежит внутри прямоугольника (границы включительно)
func (b GeoBounds) Contains(lat, lon float64) bool {
	return b.Bound().Contains(orb.Point{lon, lat})
}

// Expand расширяет прямоугольник на ratio от размаха по каждой оси с каждой стороны
func (b GeoBounds) Expand(ratio float64) GeoBounds {
	latPad := (b.North - b.South) * ratio
	lonPad := (b.East - b.West) * ratio
	return GeoBounds{
		North: b.North + latPad,
		South: b.South - latPad,
		East:  b.East + lonPad,
		West:  b.West - lonPad,
	}
}

// ApproxContains - приближённая проверка "вложенности": все четыре стороны запроса
// отличаются от сторон b меньше чем на threshold градусов.
// Это не геометрическое вложение: чуть больший запрос может пройти, а заметно меньший - нет.
func (b GeoBounds) ApproxContains(req GeoBounds, threshold float64) bool {
	return math.Abs(req.North-b.North) < threshold &&
		math.Abs(req.South-b.South) < threshold &&
		math.Abs(req.East-b.East) < threshold &&
		math.Abs(req.West-b.West) < threshold
}

// String - для логов и ключей кеша
func (b GeoBounds) String() string {
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", b.South, b.West, b.North, b.East)
}

// Coordinate - координата для Mapbox
type Coordinate struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lon float64 `json:"lon" validate:"longitude"`
}
