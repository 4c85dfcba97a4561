package ports

import (
	"context"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Authenticate validates a bearer token and re-resolves its user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	IssueToken(user *domain.User) (string, error)
}

// UpdateUserInput carries a partial account update. Nil fields are kept.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	IsAdmin  *bool
}

// UserService covers profile self-service and admin account management.
type UserService interface {
	UpdateProfile(ctx context.Context, userID string, in UpdateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
