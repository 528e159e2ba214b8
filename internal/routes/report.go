package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runReportRouter(
	secureGroup *echo.Group,
	reportService services.ReportServiceInterface,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	reportController := controllers.NewReportController(reportService, logger)

	secureGroup.GET("/reports/maintenance", reportController.GetReport, authMW.Require(authz.ReportsView))
	secureGroup.GET("/reports/maintenance/summary", reportController.GetSummary, authMW.Require(authz.ReportsView))
}
