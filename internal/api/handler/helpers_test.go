package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/y-sudharshan/SheetWise/internal/api/middleware"
	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

var (
	alice = &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}
	root  = &domain.User{ID: "u0", Name: "Root", Email: "root@example.com", IsAdmin: true}
)

// newJSONContext builds a context for a JSON request. user may be nil.
func newJSONContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return newContext(req, user)
}

func newContext(req *http.Request, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUser, user)
		c.Set(middleware.ContextUserID, user.ID)
		c.Set(middleware.ContextRole, user.Role())
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func wantHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
}
