package handler

import (
	"time"

	"github.com/accessibility-map/internal/pkg/errors"
	"github.com/accessibility-map/internal/pkg/utils"
	"github.com/accessibility-map/internal/pkg/validator"
	"github.com/accessibility-map/internal/usecase"
	"github.com/accessibility-map/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FeatureHandler - точки доступности в видимой области карты
type FeatureHandler struct {
	accessibilityUC *usecase.AccessibilityUseCase
	logger          *zap.Logger
}

// NewFeatureHandler создаёт новый FeatureHandler
func NewFeatureHandler(accessibilityUC *usecase.AccessibilityUseCase, logger *zap.Logger) *FeatureHandler {
	return &FeatureHandler{
		accessibilityUC: accessibilityUC,
		logger:          logger,
	}
}

// GetViewportFeatures godoc
// @Summary Точки доступности во вьюпорте
// @Description Возвращает точки OpenStreetMap (через кеш сессии) и точки пользователей внутри видимой области.
// @Description Ошибка внешнего источника не приводит к ошибке запроса: отдаются старые данные или пустой список.
// @Tags Features
// @Produce json
// @Param id path string true "ID сессии"
// @Param north query number true "Северная граница"
// @Param south query number true "Южная граница"
// @Param east query number true "Восточная граница"
// @Param west query number true "Западная граница"
// @Param categories query string false "Категории через запятую (elevator,ramp,...)"
// @Success 200 {object} utils.SuccessResponse{data=dto.ViewportFeaturesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/features [get]
func (h *FeatureHandler) GetViewportFeatures(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.ViewportFeaturesRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidBounds)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	sessionID := c.Params("id")
	result, err := h.accessibilityUC.GetViewportFeatures(c.UserContext(), sessionID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	cacheHit := result.Cache == string(usecase.OutcomeHit)
	return utils.SendSuccess(c, result, &utils.Meta{
		Total:     result.Total,
		BySource:  result.BySource,
		CacheHit:  &cacheHit,
		TimeMSec:  float64(time.Since(start).Microseconds()) / 1000,
		SessionID: sessionID,
	})
}

// GetNearestFeatures godoc
// @Summary Ближайшие точки доступности
// @Description Сортирует точки вьюпорта по пешеходному времени Mapbox; без Mapbox - по расстоянию по прямой.
// @Tags Features
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.NearestFeaturesRequest true "Положение пользователя и вьюпорт"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearestFeaturesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/features/nearest [post]
func (h *FeatureHandler) GetNearestFeatures(c *fiber.Ctx) error {
	var req dto.NearestFeaturesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	sessionID := c.Params("id")
	result, err := h.accessibilityUC.GetNearestFeatures(c.UserContext(), sessionID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:     result.Total,
		SessionID: sessionID,
	})
}
