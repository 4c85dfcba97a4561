package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "not authorized as an admin"})
			}
			return next(c)
		}
	}
}

// AdminOnly is RBAC restricted to administrators.
func AdminOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}
