package controllers

import (
	"net/http"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type WarrantyController struct {
	warrantyService *services.WarrantyService
	logger          *zap.Logger
}

func NewWarrantyController(warrantyService *services.WarrantyService, logger *zap.Logger) *WarrantyController {
	return &WarrantyController{warrantyService: warrantyService, logger: logger}
}

func (c *WarrantyController) GetAlerts(ctx echo.Context) error {
	alerts, err := c.warrantyService.ListAlerts(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, alerts, "Гарантийные уведомления получены", http.StatusOK, uint64(len(alerts)))
}

func (c *WarrantyController) SendAlerts(ctx echo.Context) error {
	var payload dto.SendWarrantyAlertsDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.warrantyService.SendAlerts(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Гарантийная рассылка выполнена", http.StatusOK)
}
