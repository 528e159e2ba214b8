package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/repositories"
	"gearguard/pkg/middleware"
)

func runDepartmentRouter(
	secureGroup *echo.Group,
	departmentRepo repositories.DepartmentRepositoryInterface,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	departmentController := controllers.NewDepartmentController(departmentRepo, logger)

	secureGroup.GET("/departments", departmentController.GetDepartments, authMW.Require(authz.CatalogsView))
	secureGroup.GET("/departments/:id", departmentController.FindDepartment, authMW.Require(authz.CatalogsView))
}
