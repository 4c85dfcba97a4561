package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
	"github.com/y-sudharshan/SheetWise/internal/core/ports"
)

// Context keys set by Auth.
const (
	ContextUser   = "user"
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Auth validates the bearer token and loads its user on every request, so a
// deleted account is rejected even while its token is unexpired.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := auth.Authenticate(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err == domain.ErrInvalidCredentials {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token failed")
			}
			if err != nil {
				return err
			}

			c.Set(ContextUser, user)
			c.Set(ContextUserID, user.ID)
			c.Set(ContextRole, user.Role())

			return next(c)
		}
	}
}
