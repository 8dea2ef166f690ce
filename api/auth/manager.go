package auth

import (
	"buysell_server/api/middleware"
	"buysell_server/structs"
	"buysell_server/structs/tables"
	"context"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// UserService registers and authenticates accounts.
type UserService interface {
	CreateUser(ctx context.Context, user *tables.User, plainPassword string) (bool, error)
	Authenticate(ctx context.Context, email, password string) (*tables.User, error)
	GetUserByPrincipal(ctx context.Context, principal string) (*tables.User, error)
}

// TokenService issues and revokes access tokens.
type TokenService interface {
	GenerateAccessToken(user *tables.User) (string, time.Time, error)
	RevokeToken(ctx context.Context, claims *structs.AuthClaims) error
	GetAccessTokenSecret() string
}

type AuthRoutesManager struct {
	logger      *gecho.Logger
	userService UserService
	tokens      TokenService
	mw          *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	userService UserService,
	tokens TokenService,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:      logger,
		userService: userService,
		tokens:      tokens,
		mw:          mw,
	}
}

func (arm *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		// CSRF token endpoint (must be called before protected routes)
		r.Get("/csrf", arm.HandleCSRF)

		r.Group(func(r chi.Router) {
			r.Use(arm.mw.CSRFMiddleware())
			r.Post("/register", arm.HandleRegister)
			r.Post("/login", arm.HandleLogin)
			r.Post("/logout", arm.HandleLogout)
		})

		r.Group(func(r chi.Router) {
			r.Use(arm.mw.UserAuthMiddleware)
			r.Get("/me", arm.HandleMe)
		})
	})
}
