package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runUserRouter(
	secureGroup *echo.Group,
	userService *services.UserService,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	userController := controllers.NewUserController(userService, logger)

	secureGroup.GET("/users", userController.GetUsers, authMW.Require(authz.UsersView))
	secureGroup.GET("/users/:id", userController.FindUser, authMW.Require(authz.UsersView))
	secureGroup.POST("/users", userController.CreateUser, authMW.Require(authz.UsersCreate))
	secureGroup.PUT("/users/:id", userController.UpdateUser, authMW.Require(authz.UsersUpdate))
	secureGroup.DELETE("/users/:id", userController.DeleteUser, authMW.Require(authz.UsersDelete))
}
