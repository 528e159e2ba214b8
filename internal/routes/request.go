package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runRequestRouter(
	secureGroup *echo.Group,
	requestService *services.RequestService,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	requestController := controllers.NewRequestController(requestService, logger)

	secureGroup.GET("/requests", requestController.GetRequests, authMW.Require(authz.RequestsView))
	secureGroup.GET("/requests/:id", requestController.FindRequest, authMW.Require(authz.RequestsView))
	secureGroup.POST("/requests", requestController.CreateRequest, authMW.Require(authz.RequestsCreate))
	secureGroup.PUT("/requests/:id", requestController.UpdateRequest, authMW.Require(authz.RequestsUpdate))
	secureGroup.PATCH("/requests/:id/stage", requestController.ChangeStage, authMW.Require(authz.RequestsUpdate))
	secureGroup.DELETE("/requests/:id", requestController.DeleteRequest, authMW.Require(authz.RequestsDelete))
}
