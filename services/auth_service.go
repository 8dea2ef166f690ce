package services

import (
	"buysell_server/lib"
	"buysell_server/structs"
	"buysell_server/structs/tables"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenBlacklist remembers revoked access tokens by jti.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti uuid.UUID, exp time.Time) error
	IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) (bool, error)
}

type AuthService struct {
	logger    *gecho.Logger
	cfg       *structs.Config
	blacklist TokenBlacklist
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, blacklist TokenBlacklist) *AuthService {
	return &AuthService{
		logger:    logger,
		cfg:       cfg,
		blacklist: blacklist,
	}
}

// GenerateAccessToken signs an access token for user. The email is the
// principal the rest of the API resolves callers by.
func (as *AuthService) GenerateAccessToken(user *tables.User) (string, time.Time, error) {
	now := time.Now()
	exp := as.GetAccessTokenExpiration()

	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
		"jti":   uuid.New().String(),
	})

	signed, err := token.SignedString([]byte(as.cfg.Auth.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, exp, nil
}

// GetAccessTokenExpiration returns the expiration time for access tokens
func (as *AuthService) GetAccessTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.AccessTokenExpiry)
}

func (as *AuthService) GetAccessTokenSecret() string {
	return as.cfg.Auth.AccessTokenSecret
}

// ValidateAccessToken parses tokenStr and rejects revoked tokens. When the
// blacklist cannot be reached the token is accepted and a warning logged.
func (as *AuthService) ValidateAccessToken(ctx context.Context, tokenStr string) (*structs.AuthClaims, error) {
	claims, err := lib.ParseToken(tokenStr, as.cfg.Auth.AccessTokenSecret)
	if err != nil {
		return nil, err
	}

	if as.blacklist == nil {
		return claims, nil
	}

	revoked, err := as.blacklist.IsTokenBlacklisted(ctx, claims.Jti)
	if err != nil {
		as.logger.Warn("Failed to check token blacklist", gecho.Field("error", err), gecho.Field("jti", claims.Jti.String()))
		return claims, nil
	}
	if revoked {
		as.logger.Debug("Rejected blacklisted token", gecho.Field("jti", claims.Jti.String()))
		return nil, lib.ErrInvalidToken
	}
	return claims, nil
}

// RevokeToken blacklists the token until it would have expired anyway.
func (as *AuthService) RevokeToken(ctx context.Context, claims *structs.AuthClaims) error {
	if as.blacklist == nil {
		return nil
	}
	if err := as.blacklist.BlacklistToken(ctx, claims.Jti, claims.Exp); err != nil {
		as.logger.Error("Failed to blacklist token", gecho.Field("error", err), gecho.Field("jti", claims.Jti.String()))
		return err
	}
	return nil
}
