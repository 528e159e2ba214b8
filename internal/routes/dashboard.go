package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runDashboardRouter(
	secureGroup *echo.Group,
	dashboardService services.DashboardServiceInterface,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	dashboardController := controllers.NewDashboardController(dashboardService, logger)

	secureGroup.GET("/dashboard", dashboardController.GetDashboard, authMW.Require(authz.DashboardView))
}
