package handler

import (
	"github.com/accessibility-map/internal/pkg/utils"
	"github.com/accessibility-map/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler - обработчик сессий карты
type SessionHandler struct {
	accessibilityUC *usecase.AccessibilityUseCase
	logger          *zap.Logger
}

// NewSessionHandler - создание нового SessionHandler
func NewSessionHandler(accessibilityUC *usecase.AccessibilityUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		accessibilityUC: accessibilityUC,
		logger:          logger,
	}
}

// CreateSession godoc
// @Summary Создать сессию карты
// @Description Создаёт сессию с собственным кешем вьюпорта. Сессия удаляется после периода бездействия.
// @Tags Sessions
// @Produce json
// @Success 201 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Router /api/v1/sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	session := h.accessibilityUC.CreateSession(c.UserContext())
	return utils.SendCreated(c, session)
}

// DeleteSession godoc
// @Summary Удалить сессию карты
// @Tags Sessions
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.accessibilityUC.DeleteSession(c.UserContext(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResetSession godoc
// @Summary Очистить кеш вьюпорта сессии
// @Description Следующий запрос точек гарантированно пойдёт во внешний источник
// @Tags Sessions
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/reset [post]
func (h *SessionHandler) ResetSession(c *fiber.Ctx) error {
	if err := h.accessibilityUC.ResetSession(c.UserContext(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
