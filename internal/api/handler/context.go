package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/y-sudharshan/SheetWise/internal/api/middleware"
	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

// currentUser returns the user loaded by the Auth middleware. A missing user
// means the route was registered without Auth.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextUser).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// bindAndValidate binds the request body into req and runs the echo validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
