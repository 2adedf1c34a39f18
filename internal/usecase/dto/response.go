package dto

import "github.com/accessibility-map/internal/domain"

// SessionResponse - созданная сессия карты
type SessionResponse struct {
	SessionID string `json:"session_id"`
	ExpiresIn int    `json:"expires_in_sec"`
}

// ViewportFeaturesResponse - точки во вьюпорте (внешние + пользовательские)
type ViewportFeaturesResponse struct {
	Features []domain.AccessibilityFeature `json:"features"`
	Total    int                           `json:"total"`
	BySource map[string]int                `json:"by_source"`
	Cache    string                        `json:"cache"`
}

// NearestFeature - точка с расстоянием от пользователя
type NearestFeature struct {
	domain.AccessibilityFeature
	DistanceM        float64  `json:"distance_m"`
	WalkingDistanceM *float64 `json:"walking_distance_m,omitempty"`
	WalkingDurationS *float64 `json:"walking_duration_s,omitempty"`
}

// NearestFeaturesResponse - ближайшие точки, отсортированные по пешей доступности
type NearestFeaturesResponse struct {
	Features   []NearestFeature `json:"features"`
	Total      int              `json:"total"`
	WalkingETA bool             `json:"walking_eta"`
}
