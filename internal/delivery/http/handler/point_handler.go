package handler

import (
	"github.com/accessibility-map/internal/pkg/errors"
	"github.com/accessibility-map/internal/pkg/utils"
	"github.com/accessibility-map/internal/pkg/validator"
	"github.com/accessibility-map/internal/usecase"
	"github.com/accessibility-map/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PointHandler - точки, которые добавляют пользователи
type PointHandler struct {
	accessibilityUC *usecase.AccessibilityUseCase
	logger          *zap.Logger
}

// NewPointHandler - создание нового PointHandler
func NewPointHandler(accessibilityUC *usecase.AccessibilityUseCase, logger *zap.Logger) *PointHandler {
	return &PointHandler{
		accessibilityUC: accessibilityUC,
		logger:          logger,
	}
}

// ReportPoint godoc
// @Summary Добавить точку доступности
// @Description Сохраняет точку от пользователя. Такие точки не верифицированы.
// @Tags Points
// @Accept json
// @Produce json
// @Param request body dto.ReportPointRequest true "Новая точка"
// @Success 201 {object} utils.SuccessResponse{data=domain.LocalPoint}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/points [post]
func (h *PointHandler) ReportPoint(c *fiber.Ctx) error {
	var req dto.ReportPointRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	point, err := h.accessibilityUC.ReportPoint(c.UserContext(), req)
	if err != nil {
		h.logger.Error("Failed to save reported point", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, point)
}

// GetPoint godoc
// @Summary Получить точку пользователя
// @Tags Points
// @Produce json
// @Param id path string true "UUID точки"
// @Success 200 {object} utils.SuccessResponse{data=domain.LocalPoint}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/points/{id} [get]
func (h *PointHandler) GetPoint(c *fiber.Ctx) error {
	point, err := h.accessibilityUC.GetPoint(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, point, nil)
}
