package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
	"github.com/y-sudharshan/SheetWise/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	issued     []string
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) IssueToken(user *domain.User) (string, error) {
	s.issued = append(s.issued, user.ID)
	return "token-" + user.ID, nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (string, *domain.User, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.IsAdmin {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "token123", &domain.User{ID: "u1", Name: in.Name, Email: in.Email}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`, nil)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	decode(t, rec, &resp)
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["name"] != "Alice" || user["isAdmin"] != false {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash must not be serialised")
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/api/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"secret1"}`, nil)
	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	for name, body := range map[string]string{
		"malformed":      "not-json",
		"missing name":   `{"email":"bob@example.com","password":"secret1"}`,
		"bad email":      `{"name":"Bob","email":"bob","password":"secret1"}`,
		"short password": `{"name":"Bob","email":"bob@example.com","password":"123"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := newJSONContext(http.MethodPost, "/api/auth/register", body, nil)
			wantHTTPError(t, handler.Register(c), http.StatusBadRequest)
		})
	}
}

func TestAuthHandler_RegisterAdmin(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (string, *domain.User, error) {
			if !in.IsAdmin {
				t.Fatalf("admin flag not set")
			}
			return "admin-token", &domain.User{ID: "u9", Name: in.Name, Email: in.Email, IsAdmin: true}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register/admin",
		`{"name":"Ops","email":"ops@example.com","password":"secret1"}`, root)
	if err := handler.RegisterAdmin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	decode(t, rec, &resp)
	if _, ok := resp["token"]; ok {
		t.Fatalf("admin registration must not return the new account's token")
	}
	if user := resp["user"].(map[string]any); user["isAdmin"] != true {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", alice, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret"}`, nil)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	decode(t, rec, &resp)
	if resp.Token != "token123" || resp.User == nil || resp.User.Email != "alice@example.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"bad"}`, nil)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/api/auth/login", "{", nil)
	wantHTTPError(t, handler.Login(c), http.StatusBadRequest)
}

func TestAuthHandler_Profile(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(http.MethodGet, "/api/auth/profile", "", alice)
	if err := handler.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var user domain.User
	decode(t, rec, &user)
	if user.ID != "u1" || user.Name != "Alice" {
		t.Fatalf("unexpected profile: %+v", user)
	}

	c, _ = newJSONContext(http.MethodGet, "/api/auth/profile", "", nil)
	wantHTTPError(t, handler.Profile(c), http.StatusUnauthorized)
}
