package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
	"github.com/y-sudharshan/SheetWise/internal/core/ports"
)

type userService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(repo ports.UserRepository, log zerolog.Logger) ports.UserService {
	return &userService{repo: repo, log: log}
}

// UpdateProfile lets a user change their own name, email and password. The
// admin flag cannot be changed through this path.
func (s *userService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateUserInput) (*domain.User, error) {
	in.IsAdmin = nil
	return s.update(ctx, userID, in)
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update is the admin edit: name, email and the admin flag. Passwords are
// only changed by their owner.
func (s *userService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	in.Password = nil
	return s.update(ctx, id, in)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// update applies the non-empty fields of in. Empty strings keep the stored
// value.
func (s *userService) update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil && normalizeEmail(*in.Email) != "" {
		user.Email = normalizeEmail(*in.Email)
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}
