package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Detail
// and RequestID are only filled in development.
type errorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors and answers them with 500 and the error message.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
//
// With debug set the envelope also carries the full error chain.
func NewHTTPErrorHandler(log zerolog.Logger, debug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		resp := errorResponse{Error: msg}
		if debug {
			resp.Detail = err.Error()
			resp.RequestID = c.Response().Header().Get(echo.HeaderXRequestID)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrFileNotFound),
		errors.Is(err, domain.ErrDataNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrNoFileUploaded),
		errors.Is(err, domain.ErrUnsupportedFileType),
		errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrInvalidChartConfig),
		errors.Is(err, domain.ErrUnsupportedChartType),
		errors.Is(err, domain.ErrNoData):
		return http.StatusBadRequest, err.Error()
	}

	// Operation failures carry a message meant for the client; the cause is
	// still logged.
	var pe *domain.ParseError
	var se *domain.StorageError
	if errors.As(err, &pe) || errors.As(err, &se) {
		logUnhandled(log, c, err, "operation failed")
		return http.StatusInternalServerError, err.Error()
	}

	logUnhandled(log, c, err, "unhandled error")
	return http.StatusInternalServerError, err.Error()
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error, msg string) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg(msg)
}
