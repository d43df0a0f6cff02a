package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/trip-planner/internal/pkg/errors"
	"github.com/trip-planner/internal/pkg/utils"
	"github.com/trip-planner/internal/pkg/validator"
	"github.com/trip-planner/internal/usecase"
	"github.com/trip-planner/internal/usecase/dto"
)

// PreferenceHandler - обработчик профилей персонализации
type PreferenceHandler struct {
	preferenceUC *usecase.PreferenceUseCase
	logger       *zap.Logger
}

// NewPreferenceHandler - создание нового PreferenceHandler
func NewPreferenceHandler(preferenceUC *usecase.PreferenceUseCase, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceUC: preferenceUC,
		logger:       logger,
	}
}

// GetPreferences godoc
// @Summary Получение профиля персонализации
// @Description Возвращает сохранённые предпочтения пользователя: еда, бюджет, темп, настроение, интересы и доступность
// @Tags Preferences
// @Produce json
// @Param user_id path string true "Идентификатор пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.PreferencesResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/preferences/{user_id} [get]
func (h *PreferenceHandler) GetPreferences(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	profile, err := h.preferenceUC.GetProfile(c.Context(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, profile, nil)
}

// UpsertPreferences godoc
// @Summary Сохранение профиля персонализации
// @Description Создаёт или обновляет предпочтения пользователя, влияющие на ранжирование заведений
// @Tags Preferences
// @Accept json
// @Produce json
// @Param user_id path string true "Идентификатор пользователя"
// @Param request body dto.UpsertPreferencesRequest true "Предпочтения"
// @Success 200 {object} utils.SuccessResponse{data=dto.PreferencesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/preferences/{user_id} [put]
func (h *PreferenceHandler) UpsertPreferences(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpsertPreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"error": err.Error(),
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"error": err.Error(),
		}))
	}

	profile, err := h.preferenceUC.UpsertProfile(c.Context(), userID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, profile, nil)
}
