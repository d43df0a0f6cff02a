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

// TripHandler - обработчик запросов планирования поездок
type TripHandler struct {
	tripUC *usecase.TripUseCase
	logger *zap.Logger
}

// NewTripHandler - создание нового TripHandler
func NewTripHandler(tripUC *usecase.TripUseCase, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		tripUC: tripUC,
		logger: logger,
	}
}

// PlanTrip godoc
// @Summary Планирование поездки с остановками на еду
// @Description Строит план поездки: рекомендованное время выезда, точки маршрута для каждого окна приёма пищи и ранжированные заведения рядом с ними. Выезд считается назад от желаемого времени прибытия с учётом крюков до лучших кандидатов.
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body dto.PlanTripRequest true "Параметры поездки"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlanTripResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/trips/plan [post]
func (h *TripHandler) PlanTrip(c *fiber.Ctx) error {
	var req dto.PlanTripRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"error": err.Error(),
		}))
	}

	// Валидация
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"error": err.Error(),
		}))
	}

	// Выполнение use case
	result, err := h.tripUC.PlanTrip(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// GetTrip godoc
// @Summary Получение заархивированного плана поездки
// @Description Возвращает ранее построенный план поездки по идентификатору
// @Tags Trips
// @Produce json
// @Param id path string true "Идентификатор поездки"
// @Success 200 {object} utils.SuccessResponse{data=domain.TripPlan}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/{id} [get]
func (h *TripHandler) GetTrip(c *fiber.Ctx) error {
	tripID := c.Params("id")
	if tripID == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	plan, err := h.tripUC.GetTrip(c.Context(), tripID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, plan, nil)
}
