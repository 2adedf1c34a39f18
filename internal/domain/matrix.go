package domain

// MatrixResponse - ответ Mapbox Matrix API
type MatrixResponse struct {
	Code         string           `json:"code"`
	Distances    [][]float64      `json:"distances"` // в метрах
	Durations    [][]float64      `json:"durations"` // в секундах
	Destinations []MatrixWaypoint `json:"destinations"`
	Sources      []MatrixWaypoint `json:"sources"`
}

// MatrixWaypoint - точка в ответе Mapbox
type MatrixWaypoint struct {
	Name     string    `json:"name"`
	Location []float64 `json:"location"` // [lon, lat]
}
