package middleware

import (
	"net/http"

	"cafepos/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// contextのroleがwantの操作を許可されているか確認します。
func RequireCapability(want model.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if !model.Role(role).Can(want) {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}

			return next(c)
		}
	}
}
