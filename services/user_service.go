package services

import (
	"buysell_server/lib"
	"buysell_server/repository"
	"buysell_server/structs/tables"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

// WelcomeMailer notifies a freshly registered user.
type WelcomeMailer interface {
	SendWelcomeEmail(ctx context.Context, user *tables.User) error
}

type UserService struct {
	logger *gecho.Logger
	users  repository.UserRepository
	tx     repository.Transactor
	hasher PasswordHasher
	mailer WelcomeMailer
}

// NewUserService builds the service. mailer may be nil.
func NewUserService(logger *gecho.Logger, users repository.UserRepository, tx repository.Transactor, hasher PasswordHasher, mailer WelcomeMailer) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
		tx:     tx,
		hasher: hasher,
		mailer: mailer,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser registers user with plainPassword. It returns false without
// writing anything when the email is already taken.
func (us *UserService) CreateUser(ctx context.Context, user *tables.User, plainPassword string) (bool, error) {
	user.Email = normalizeEmail(user.Email)

	created := false
	err := us.tx.RunInTx(ctx, func(ctx context.Context, tx bun.IDB) error {
		users := us.users.WithTx(tx)

		existing, err := users.FindByEmail(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("failed to look up email: %w", err)
		}
		if existing != nil {
			return nil
		}

		hash, err := us.hasher.Encode(plainPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user.PasswordHash = hash
		user.Active = true
		if !slices.Contains(user.Roles, tables.RoleUser) {
			user.Roles = append(user.Roles, tables.RoleUser)
		}

		if err := users.Save(ctx, user); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, lib.ErrConflict) {
			us.logger.Warn("Registration failed - duplicate user", gecho.Field("email", user.Email))
			return false, nil
		}
		us.logger.Error("Failed to register user", gecho.Field("error", err), gecho.Field("email", user.Email))
		return false, err
	}

	if !created {
		us.logger.Warn("Registration failed - duplicate user", gecho.Field("email", user.Email))
		return false, nil
	}

	UsersRegistered.Inc()
	us.logger.Info("User registered", gecho.Field("user_id", user.ID))

	if us.mailer != nil {
		if err := us.mailer.SendWelcomeEmail(ctx, user); err != nil {
			us.logger.Warn("Failed to send welcome email", gecho.Field("error", err), gecho.Field("user_id", user.ID))
		}
	}

	return true, nil
}

// GetUserByPrincipal resolves the caller identity carried in the access token.
func (us *UserService) GetUserByPrincipal(ctx context.Context, principal string) (*tables.User, error) {
	email := normalizeEmail(principal)
	if email == "" {
		return nil, lib.ErrUnauthorized
	}

	user, err := us.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve principal: %w", err)
	}
	if user == nil || !user.Active {
		return nil, lib.ErrUnauthorized
	}
	return user, nil
}

// Authenticate checks email and password. Every mismatch, including an
// unknown email, yields lib.ErrInvalidCredentials.
func (us *UserService) Authenticate(ctx context.Context, email, password string) (*tables.User, error) {
	user, err := us.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		us.logger.Error("Unexpected database error during login", gecho.Field("error", err))
		return nil, err
	}
	if user == nil || !user.Active {
		us.logger.Debug("User not found during login attempt", gecho.Field("email", email))
		return nil, lib.ErrInvalidCredentials
	}

	ok, err := us.hasher.Matches(password, user.PasswordHash)
	if err != nil {
		us.logger.Error("Failed to verify password hash", gecho.Field("error", err), gecho.Field("user_id", user.ID))
		return nil, err
	}
	if !ok {
		us.logger.Debug("Invalid password attempt", gecho.Field("user_id", user.ID))
		return nil, lib.ErrInvalidCredentials
	}

	return user, nil
}
