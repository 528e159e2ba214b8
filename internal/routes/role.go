package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runRoleRouter(
	secureGroup *echo.Group,
	roleRepo repositories.RoleRepositoryInterface,
	permissionRepo repositories.PermissionRepositoryInterface,
	authPermissionService services.AuthPermissionServiceInterface,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	roleController := controllers.NewRoleController(roleRepo, permissionRepo, authPermissionService, logger)

	secureGroup.GET("/roles", roleController.GetRoles, authMW.Require(authz.RolesView))
	secureGroup.GET("/permissions", roleController.GetPermissions, authMW.Require(authz.PermissionsView))
}
