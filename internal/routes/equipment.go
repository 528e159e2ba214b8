package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/services"
	"gearguard/pkg/middleware"
)

func runEquipmentRouter(
	secureGroup *echo.Group,
	equipmentService *services.EquipmentService,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	equipmentController := controllers.NewEquipmentController(equipmentService, logger)

	secureGroup.GET("/equipment", equipmentController.GetEquipments, authMW.Require(authz.EquipmentView))
	secureGroup.GET("/equipment/:id", equipmentController.FindEquipment, authMW.Require(authz.EquipmentView))
	secureGroup.POST("/equipment", equipmentController.CreateEquipment, authMW.Require(authz.EquipmentCreate))
	secureGroup.PUT("/equipment/:id", equipmentController.UpdateEquipment, authMW.Require(authz.EquipmentUpdate))
	secureGroup.POST("/equipment/:id/photo", equipmentController.UploadPhoto, authMW.Require(authz.EquipmentUpdate))
	secureGroup.DELETE("/equipment/:id", equipmentController.DeleteEquipment, authMW.Require(authz.EquipmentDelete))
}
