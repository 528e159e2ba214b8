package controllers

import (
	"net/http"
	"strconv"

	"gearguard/internal/repositories"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Отделы - плоский справочник, наполняется сидером и миграциями.
type DepartmentController struct {
	departmentRepo repositories.DepartmentRepositoryInterface
	logger         *zap.Logger
}

func NewDepartmentController(departmentRepo repositories.DepartmentRepositoryInterface, logger *zap.Logger) *DepartmentController {
	return &DepartmentController{departmentRepo: departmentRepo, logger: logger}
}

func (c *DepartmentController) GetDepartments(ctx echo.Context) error {
	departments, err := c.departmentRepo.GetDepartments(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, departments, "Отделы успешно получены", http.StatusOK)
}

func (c *DepartmentController) FindDepartment(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "Неверный формат ID"), c.logger)
	}
	department, err := c.departmentRepo.FindDepartment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, department, "Отдел успешно найден", http.StatusOK)
}
