package controllers

import (
	"net/http"

	"gearguard/internal/dto"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Роли и привилегии справочные, правятся только сидером и миграциями.
type RoleController struct {
	roleRepo        repositories.RoleRepositoryInterface
	permissionRepo  repositories.PermissionRepositoryInterface
	permissionsAuth services.AuthPermissionServiceInterface
	logger          *zap.Logger
}

func NewRoleController(
	roleRepo repositories.RoleRepositoryInterface,
	permissionRepo repositories.PermissionRepositoryInterface,
	permissionsAuth services.AuthPermissionServiceInterface,
	logger *zap.Logger,
) *RoleController {
	return &RoleController{
		roleRepo:        roleRepo,
		permissionRepo:  permissionRepo,
		permissionsAuth: permissionsAuth,
		logger:          logger,
	}
}

func (c *RoleController) GetRoles(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	roles, err := c.roleRepo.GetRoles(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result := make([]dto.RoleDTO, 0, len(roles))
	for _, role := range roles {
		names, err := c.permissionsAuth.GetRolePermissionsNames(reqCtx, role.ID)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		result = append(result, dto.RoleDTO{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
			Permissions: names,
		})
	}
	return utils.SuccessResponse(ctx, result, "Роли успешно получены", http.StatusOK)
}

func (c *RoleController) GetPermissions(ctx echo.Context) error {
	permissions, err := c.permissionRepo.GetPermissions(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result := make([]dto.PermissionDTO, 0, len(permissions))
	for _, p := range permissions {
		result = append(result, dto.PermissionDTO{ID: p.ID, Name: p.Name, Description: p.Description})
	}
	return utils.SuccessResponse(ctx, result, "Привилегии успешно получены", http.StatusOK)
}
