package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
	"github.com/y-sudharshan/SheetWise/internal/core/ports"
	"github.com/y-sudharshan/SheetWise/internal/core/service"
	"github.com/y-sudharshan/SheetWise/internal/infrastructure/db/mongo"
	"github.com/y-sudharshan/SheetWise/internal/pkg/config"
)

func (a *app) seedAdmin(ctx context.Context) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	users := mongo.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}
	auth := service.NewAuthService(users, a.cfg.JWTSecret, a.cfg.JWTTTL)
	return ensureAdmin(ctx, auth, a.cfg.Admin, a.log)
}

// ensureAdmin registers the configured admin. An existing account with the
// same email is left untouched.
func ensureAdmin(ctx context.Context, auth ports.AuthService, admin config.AdminConfig, log zerolog.Logger) error {
	if admin.Email == "" || admin.Password == "" {
		return errors.New("seed-admin: ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	_, user, err := auth.Register(ctx, ports.RegisterInput{
		Name:     admin.Name,
		Email:    admin.Email,
		Password: admin.Password,
		IsAdmin:  true,
	})
	switch {
	case errors.Is(err, domain.ErrUserExists):
		log.Info().Str("email", admin.Email).Msg("admin user already exists")
		return nil
	case err != nil:
		return fmt.Errorf("seed-admin: %w", err)
	}

	log.Info().Str("email", user.Email).Str("user_id", user.ID).Msg("admin user created")
	return nil
}
