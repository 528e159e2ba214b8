package middleware

import (
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/contextkeys"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const superuserPermission = "superuser"

// Require возвращает middleware, пропускающий только пользователей с
// указанной привилегией. Superuser проходит всегда.
func (m *AuthMiddleware) Require(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			perms, ok := c.Request().Context().Value(contextkeys.UserPermissionsKey).(map[string]bool)
			if !ok {
				m.logger.Error("PermissionMiddleware: привилегии не найдены в контексте, Require вызван без Auth")
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
			}

			if perms[superuserPermission] || perms[permission] {
				return next(c)
			}

			m.logger.Warn("PermissionMiddleware: доступ запрещён",
				zap.String("permission", permission),
			)
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}
	}
}
