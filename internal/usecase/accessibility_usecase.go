package usecase

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/accessibility-map/internal/domain"
	"github.com/accessibility-map/internal/domain/repository"
	"github.com/accessibility-map/internal/pkg/errors"
	"github.com/accessibility-map/internal/pkg/utils"
	"github.com/accessibility-map/internal/usecase/dto"
	"go.uber.org/zap"
)

const (
	defaultNearestLimit = 10
	// maxNearestLimit - 1 origin + 24 destinations = лимит Matrix API
	maxNearestLimit = 24
)

// AccessibilityUseCase - use case для карты доступности
type AccessibilityUseCase struct {
	sessions   *SessionRegistry
	localRepo  repository.LocalPointRepository
	mapboxRepo repository.MapboxRepository
	cacheRepo  repository.CacheRepository
	logger     *zap.Logger
	sessionTTL time.Duration
	matrixTTL  time.Duration
}

// NewAccessibilityUseCase - создание нового AccessibilityUseCase.
// mapboxRepo и cacheRepo могут быть nil: тогда ближайшие точки считаются только по прямой.
func NewAccessibilityUseCase(
	sessions *SessionRegistry,
	localRepo repository.LocalPointRepository,
	mapboxRepo repository.MapboxRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	sessionTTL time.Duration,
	matrixTTL time.Duration,
) *AccessibilityUseCase {
	return &AccessibilityUseCase{
		sessions:   sessions,
		localRepo:  localRepo,
		mapboxRepo: mapboxRepo,
		cacheRepo:  cacheRepo,
		logger:     logger,
		sessionTTL: sessionTTL,
		matrixTTL:  matrixTTL,
	}
}

// CreateSession заводит сессию карты со своим кешем вьюпорта
func (uc *AccessibilityUseCase) CreateSession(_ context.Context) *dto.SessionResponse {
	id, _ := uc.sessions.Create()
	return &dto.SessionResponse{
		SessionID: id,
		ExpiresIn: int(uc.sessionTTL.Seconds()),
	}
}

// DeleteSession удаляет сессию вместе с кешем
func (uc *AccessibilityUseCase) DeleteSession(_ context.Context, sessionID string) error {
	if !uc.sessions.Delete(sessionID) {
		return errors.ErrSessionNotFound
	}
	return nil
}

// ResetSession очищает кеш вьюпорта сессии
func (uc *AccessibilityUseCase) ResetSession(_ context.Context, sessionID string) error {
	cache, ok := uc.sessions.Get(sessionID)
	if !ok {
		return errors.ErrSessionNotFound
	}
	cache.Reset()
	return nil
}

// GetViewportFeatures - точки во вьюпорте: данные OSM через кеш сессии плюс точки пользователей.
// Ошибки внешних источников не пробрасываются: карта должна получить хотя бы часть данных.
func (uc *AccessibilityUseCase) GetViewportFeatures(
	ctx context.Context,
	sessionID string,
	req dto.ViewportFeaturesRequest,
) (*dto.ViewportFeaturesResponse, error) {
	bounds, err := req.Bounds()
	if err != nil {
		return nil, err
	}

	categories, err := req.CategoryList()
	if err != nil {
		return nil, err
	}

	cache, ok := uc.sessions.Get(sessionID)
	if !ok {
		return nil, errors.ErrSessionNotFound
	}

	external, outcome := cache.Lookup(ctx, bounds)
	external = filterByCategory(external, categories)

	local := uc.localFeatures(ctx, bounds, categories)

	features := make([]domain.AccessibilityFeature, 0, len(local)+len(external))
	features = append(features, local...)
	features = append(features, external...)
	sortFeatures(features)

	return &dto.ViewportFeaturesResponse{
		Features: features,
		Total:    len(features),
		BySource: map[string]int{
			string(domain.SourceCommunity):     len(local),
			string(domain.SourceOpenStreetMap): len(external),
		},
		Cache: string(outcome),
	}, nil
}

// localFeatures - точки пользователей; при ошибке БД возвращает пустой список
func (uc *AccessibilityUseCase) localFeatures(
	ctx context.Context,
	bounds domain.GeoBounds,
	categories []domain.FeatureCategory,
) []domain.AccessibilityFeature {
	if uc.localRepo == nil {
		return nil
	}

	points, err := uc.localRepo.GetInBounds(ctx, bounds, categories)
	if err != nil {
		uc.logger.Warn("Local points unavailable, serving external data only",
			zap.String("bounds", bounds.String()),
			zap.Error(err))
		return nil
	}

	features := make([]domain.AccessibilityFeature, 0, len(points))
	for _, p := range points {
		features = append(features, p.ToFeature())
	}
	return features
}

// sortFeatures - сначала точки пользователей, затем по ID
func sortFeatures(features []domain.AccessibilityFeature) {
	sort.SliceStable(features, func(i, j int) bool {
		ci := features[i].Source == domain.SourceCommunity
		cj := features[j].Source == domain.SourceCommunity
		if ci != cj {
			return ci
		}
		return features[i].ID < features[j].ID
	})
}

// ReportPoint сохраняет точку, отмеченную пользователем
func (uc *AccessibilityUseCase) ReportPoint(ctx context.Context, req dto.ReportPointRequest) (*domain.LocalPoint, error) {
	if !utils.ValidateCoordinates(req.Latitude, req.Longitude) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !domain.FeatureCategory(req.Category).IsValid() {
		return nil, errors.ErrInvalidCategory
	}

	point := req.ToLocalPoint()
	if err := uc.localRepo.Create(ctx, point); err != nil {
		return nil, err
	}
	return point, nil
}

// GetPoint возвращает точку пользователя по ID
func (uc *AccessibilityUseCase) GetPoint(ctx context.Context, id string) (*domain.LocalPoint, error) {
	return uc.localRepo.GetByID(ctx, id)
}

// GetNearestFeatures - ближайшие к пользователю точки вьюпорта.
// Кандидаты выбираются по прямой, затем для них запрашивается пешая матрица Mapbox.
// Если Mapbox недоступен, ответ остаётся отсортированным по прямому расстоянию.
func (uc *AccessibilityUseCase) GetNearestFeatures(
	ctx context.Context,
	sessionID string,
	req dto.NearestFeaturesRequest,
) (*dto.NearestFeaturesResponse, error) {
	if !utils.ValidateCoordinates(req.Origin.Lat, req.Origin.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	categories, err := dto.ToCategories(req.Categories)
	if err != nil {
		return nil, err
	}

	viewport, err := uc.GetViewportFeatures(ctx, sessionID, dto.ViewportFeaturesRequest{
		North: req.North,
		South: req.South,
		East:  req.East,
		West:  req.West,
	})
	if err != nil {
		return nil, err
	}
	candidates := filterByCategory(viewport.Features, categories)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultNearestLimit
	}
	if limit > maxNearestLimit {
		limit = maxNearestLimit
	}

	nearest := make([]dto.NearestFeature, 0, len(candidates))
	for _, f := range candidates {
		nearest = append(nearest, dto.NearestFeature{
			AccessibilityFeature: f,
			DistanceM:            utils.HaversineDistance(req.Origin.Lat, req.Origin.Lon, f.Latitude, f.Longitude) * 1000,
		})
	}
	sort.SliceStable(nearest, func(i, j int) bool {
		return nearest[i].DistanceM < nearest[j].DistanceM
	})
	if len(nearest) > limit {
		nearest = nearest[:limit]
	}

	resp := &dto.NearestFeaturesResponse{
		Features: nearest,
		Total:    len(nearest),
	}

	if len(nearest) == 0 || uc.mapboxRepo == nil {
		return resp, nil
	}

	matrix := uc.walkingMatrix(ctx, req.Origin, nearest)
	if matrix == nil {
		return resp, nil
	}

	applyWalkingMatrix(nearest, matrix)
	sort.SliceStable(nearest, func(i, j int) bool {
		return walkingDuration(nearest[i]) < walkingDuration(nearest[j])
	})
	resp.WalkingETA = true

	return resp, nil
}

// walkingMatrix берёт матрицу из Redis или запрашивает у Mapbox; nil при ошибке
func (uc *AccessibilityUseCase) walkingMatrix(
	ctx context.Context,
	origin domain.Coordinate,
	features []dto.NearestFeature,
) *domain.MatrixResponse {
	destinations := make([]domain.Coordinate, len(features))
	for i, f := range features {
		destinations[i] = domain.Coordinate{Lat: f.Latitude, Lon: f.Longitude}
	}
	key := matrixCacheKey(origin, destinations)

	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetMatrix(ctx, key)
		if err != nil {
			uc.logger.Warn("Matrix cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached
		}
	}

	matrix, err := uc.mapboxRepo.GetWalkingMatrix(ctx, []domain.Coordinate{origin}, destinations)
	if err != nil {
		uc.logger.Warn("Walking matrix unavailable, using straight-line distance", zap.Error(err))
		return nil
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetMatrix(ctx, key, matrix, uc.matrixTTL); err != nil {
			uc.logger.Warn("Matrix cache write failed", zap.Error(err))
		}
	}

	return matrix
}

func applyWalkingMatrix(features []dto.NearestFeature, matrix *domain.MatrixResponse) {
	if len(matrix.Distances) == 0 || len(matrix.Durations) == 0 {
		return
	}
	distances, durations := matrix.Distances[0], matrix.Durations[0]
	for i := range features {
		if i < len(distances) {
			d := distances[i]
			features[i].WalkingDistanceM = &d
		}
		if i < len(durations) {
			d := durations[i]
			features[i].WalkingDurationS = &d
		}
	}
}

// walkingDuration - точки без маршрута уходят в конец
func walkingDuration(f dto.NearestFeature) float64 {
	if f.WalkingDurationS == nil {
		return 1<<53 - 1
	}
	return *f.WalkingDurationS
}

func matrixCacheKey(origin domain.Coordinate, destinations []domain.Coordinate) string {
	parts := make([]string, 0, len(destinations)+1)
	parts = append(parts, fmt.Sprintf("%.6f,%.6f", origin.Lat, origin.Lon))
	for _, d := range destinations {
		parts = append(parts, fmt.Sprintf("%.6f,%.6f", d.Lat, d.Lon))
	}
	sum := sha1.Sum([]byte(strings.Join(parts, ";")))
	return hex.EncodeToString(sum[:])
}

func filterByCategory(features []domain.AccessibilityFeature, categories []domain.FeatureCategory) []domain.AccessibilityFeature {
	if len(categories) == 0 {
		return features
	}
	allowed := make(map[domain.FeatureCategory]struct{}, len(categories))
	for _, c := range categories {
		allowed[c] = struct{}{}
	}

	result := make([]domain.AccessibilityFeature, 0, len(features))
	for _, f := range features {
		if _, ok := allowed[f.Category]; ok {
			result = append(result, f)
		}
	}
	return result
}
