package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/services"
)

func runAuthRouter(
	api *echo.Group,
	secureGroup *echo.Group,
	authService *services.AuthService,
	logger *zap.Logger,
) {
	authController := controllers.NewAuthController(authService, logger)

	api.POST("/auth/login", authController.Login)
	api.POST("/auth/refresh", authController.Refresh)
	secureGroup.GET("/auth/me", authController.GetProfile)
}
