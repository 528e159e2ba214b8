package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runCategoryRouter(
	secureGroup *echo.Group,
	categoryService *services.CategoryService,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	categoryController := controllers.NewCategoryController(categoryService, logger)

	secureGroup.GET("/categories", categoryController.GetCategories, authMW.Require(authz.CatalogsView))
	secureGroup.GET("/categories/:id", categoryController.FindCategory, authMW.Require(authz.CatalogsView))
	secureGroup.POST("/categories", categoryController.CreateCategory, authMW.Require(authz.CatalogsCreate))
	secureGroup.PUT("/categories/:id", categoryController.UpdateCategory, authMW.Require(authz.CatalogsUpdate))
	secureGroup.DELETE("/categories/:id", categoryController.DeleteCategory, authMW.Require(authz.CatalogsDelete))
}
