package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runWarrantyRouter(
	secureGroup *echo.Group,
	warrantyService *services.WarrantyService,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	warrantyController := controllers.NewWarrantyController(warrantyService, logger)

	secureGroup.GET("/warranty-alerts", warrantyController.GetAlerts, authMW.Require(authz.EquipmentView))
	secureGroup.POST("/warranty-alerts/send", warrantyController.SendAlerts, authMW.Require(authz.WarrantySend))
}
