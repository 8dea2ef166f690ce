package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

// Rate limit buckets. Each bucket has its own limit and window.
const (
	bucketAuth    = "auth"
	bucketWrite   = "write"
	bucketGeneral = "general"
)

// getRateLimitForEndpoint determines which rate limit to apply based on config
func (mw *Middleware) getRateLimitForEndpoint(path, method string) (string, int, time.Duration) {
	rl := mw.cfg.RateLimit

	// Auth endpoints - strictest limits
	if strings.HasPrefix(path, "/auth/login") ||
		strings.HasPrefix(path, "/auth/register") ||
		strings.HasPrefix(path, "/auth/logout") {
		return bucketAuth, rl.AuthLimit, rl.AuthWindow
	}

	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return bucketWrite, rl.WriteLimit, rl.WriteWindow
	}

	return bucketGeneral, rl.GeneralLimit, rl.GeneralWindow
}

// getClientIP extracts the real client IP from request headers
func getClientIP(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs, take the first one
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func skipRateLimit(path string) bool {
	return path == "/" || path == "/metrics" || strings.HasPrefix(path, "/health")
}

// RateLimitMiddleware counts requests per client IP in fixed windows. Cache
// errors let the request through.
func (mw *Middleware) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mw.cfg.RateLimit.Enabled || mw.limiter == nil || skipRateLimit(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := getClientIP(r)
			bucket, limit, window := mw.getRateLimitForEndpoint(r.URL.Path, r.Method)

			count, err := mw.limiter.IncrementRateLimit(r.Context(), clientIP, bucket, window)
			if err != nil {
				mw.logger.Warn("Rate limit cache error, allowing request",
					gecho.Field("error", err),
					gecho.Field("ip", clientIP),
					gecho.Field("bucket", bucket),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, limit-count)))

			if count > limit {
				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", clientIP),
					gecho.Field("bucket", bucket),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)

				retryAfter := window
				if ttl, err := mw.limiter.RateLimitTTL(r.Context(), clientIP, bucket); err == nil && ttl > 0 {
					retryAfter = ttl
				}
				seconds := int(math.Ceil(retryAfter.Seconds()))

				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				gecho.TooManyRequests(w,
					gecho.WithMessage("Rate limit exceeded. Please try again later."),
					gecho.WithData(map[string]any{
						"limit":       limit,
						"window":      window.String(),
						"retry_after": seconds,
					}),
					gecho.Send(),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
