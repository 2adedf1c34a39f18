package overpass

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
	"github.com/accessibility-map/internal/pkg/metrics"
	"go.uber.org/zap"
)

// maxErrorBody - сколько байт тела ошибки попадает в лог и текст ошибки
const maxErrorBody = 512

type client struct {
	httpClient   *http.Client
	baseURL      string
	queryTimeout int
	logger       *zap.Logger
}

// NewOverpassClient создает клиент для публичного Overpass API
func NewOverpassClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.GeodataRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:      cfg.BaseURL,
		queryTimeout: cfg.QueryTimeout,
		logger:       logger,
	}
}

// FetchElements выполняет пространственный запрос и возвращает сырые элементы
func (c *client) FetchElements(ctx context.Context, bounds domain.GeoBounds) ([]domain.OverpassElement, error) {
	query := BuildQuery(bounds, c.queryTimeout)
	form := url.Values{"data": {query}}

	c.logger.Debug("Calling Overpass API",
		zap.String("url", c.baseURL),
		zap.String("bounds", bounds.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.OverpassRequestDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		c.logger.Warn("Overpass request failed", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	metrics.OverpassRequestDuration.WithLabelValues(strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("Overpass API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("overpass API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var overpassResp domain.OverpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&overpassResp); err != nil {
		c.logger.Warn("Failed to decode Overpass response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("Overpass API call successful",
		zap.Int("elements", len(overpassResp.Elements)),
		zap.Duration("took", time.Since(start)))

	return overpassResp.Elements, nil
}
