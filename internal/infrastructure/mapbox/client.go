package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/accessibility-map/internal/config"
	"github.com/accessibility-map/internal/domain"
	"github.com/accessibility-map/internal/domain/repository"
	"go.uber.org/zap"
)

// defaultMaxPoints - лимит координат Matrix API
const defaultMaxPoints = 25

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	profile     string
	maxPoints   int
	logger      *zap.Logger
}

// NewMapboxClient создает новый клиент для Mapbox API
func NewMapboxClient(cfg *config.MapboxConfig, logger *zap.Logger) repository.MapboxRepository {
	maxPoints := cfg.MaxMatrixPoints
	if maxPoints <= 0 || maxPoints > defaultMaxPoints {
		maxPoints = defaultMaxPoints
	}

	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		profile:     cfg.WalkingProfile,
		maxPoints:   maxPoints,
		logger:      logger,
	}
}

// GetWalkingMatrix возвращает матрицу пешеходных расстояний и времени
func (c *client) GetWalkingMatrix(
	ctx context.Context,
	origins []domain.Coordinate,
	destinations []domain.Coordinate,
) (*domain.MatrixResponse, error) {
	if len(origins) == 0 || len(destinations) == 0 {
		return nil, fmt.Errorf("origins and destinations cannot be empty")
	}

	if len(origins)+len(destinations) > c.maxPoints {
		return nil, fmt.Errorf("total coordinates exceed Mapbox limit of %d points", c.maxPoints)
	}

	// Сначала origins, потом destinations; индексы sources/destinations ссылаются на этот список
	coordinates := make([]string, 0, len(origins)+len(destinations))
	for _, coord := range origins {
		coordinates = append(coordinates, fmt.Sprintf("%f,%f", coord.Lon, coord.Lat))
	}
	for _, coord := range destinations {
		coordinates = append(coordinates, fmt.Sprintf("%f,%f", coord.Lon, coord.Lat))
	}

	sources := make([]string, len(origins))
	for i := range origins {
		sources[i] = strconv.Itoa(i)
	}
	targets := make([]string, len(destinations))
	for i := range destinations {
		targets[i] = strconv.Itoa(i + len(origins))
	}

	params := url.Values{}
	params.Set("sources", strings.Join(sources, ";"))
	params.Set("destinations", strings.Join(targets, ";"))
	params.Set("annotations", "distance,duration")
	params.Set("access_token", c.accessToken)

	endpoint := fmt.Sprintf("%s/directions-matrix/v1/%s/%s?%s",
		c.baseURL,
		c.profile,
		strings.Join(coordinates, ";"),
		params.Encode(),
	)

	c.logger.Debug("Calling Mapbox Matrix API",
		zap.String("profile", c.profile),
		zap.Int("origins_count", len(origins)),
		zap.Int("destinations_count", len(destinations)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var matrixResp domain.MatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&matrixResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if matrixResp.Code != "Ok" {
		c.logger.Error("Mapbox API returned non-OK code",
			zap.String("code", matrixResp.Code))
		return nil, fmt.Errorf("mapbox API returned code: %s", matrixResp.Code)
	}

	return &matrixResp, nil
}
