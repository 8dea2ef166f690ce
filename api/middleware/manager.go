package middleware

import (
	"buysell_server/structs"
	"context"
	"time"

	"github.com/MonkyMars/gecho"
)

// TokenValidator turns a raw access token into claims, rejecting revoked ones.
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (*structs.AuthClaims, error)
}

// RateLimiter counts hits per client and bucket inside a window.
type RateLimiter interface {
	IncrementRateLimit(ctx context.Context, ip, bucket string, window time.Duration) (int, error)
	RateLimitTTL(ctx context.Context, ip, bucket string) (time.Duration, error)
}

type Middleware struct {
	logger  *gecho.Logger
	cfg     *structs.Config
	tokens  TokenValidator
	limiter RateLimiter
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, tokens TokenValidator, limiter RateLimiter) *Middleware {
	return &Middleware{
		logger:  logger,
		cfg:     cfg,
		tokens:  tokens,
		limiter: limiter,
	}
}
