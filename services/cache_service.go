package services

import (
	"buysell_server/structs"
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

const cacheMaxRetries = 3

// CacheService keeps short-lived state in Redis: revoked token ids and rate
// limit counters.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(cfg.Cache),
	}
}

// getRedisClient returns the process-wide client so every service shares one pool.
func getRedisClient(cfg *structs.CacheConfig) *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,

			PoolSize:        cfg.PoolSize,
			MinIdleConns:    cfg.MinIdleConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			PoolTimeout:     cfg.PoolTimeout,
			ConnMaxIdleTime: cfg.IdleTimeout,

			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,

			MaxRetries:      cfg.MaxRetries,
			MinRetryBackoff: cfg.MinRetryBackoff,
			MaxRetryBackoff: cfg.MaxRetryBackoff,
		})
	})
	return redisClient
}

// Close closes the shared Redis connection pool
func (cs *CacheService) Close() error {
	if cs.client != nil {
		return cs.client.Close()
	}
	return nil
}

// withRetry runs operation with jittered exponential backoff. Only network
// level failures are retried.
func (cs *CacheService) withRetry(ctx context.Context, operation func() error) error {
	var lastErr error

	for attempt := 0; attempt <= cacheMaxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == cacheMaxRetries || !isRetryableRedisError(err) {
			break
		}

		timer := time.NewTimer(backoffWithJitter(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	if !isRetryableRedisError(lastErr) {
		return lastErr
	}
	return fmt.Errorf("redis operation failed after %d retries: %w", cacheMaxRetries, lastErr)
}

// backoffWithJitter returns a delay between half and the full exponential
// step for attempt, capped at two seconds.
func backoffWithJitter(attempt int) time.Duration {
	const (
		base       = 100
		maxBackoff = 2000
	)
	backoff := min(base*(1<<attempt), maxBackoff)

	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Duration(backoff) * time.Millisecond
	}
	jitter := int(binary.BigEndian.Uint32(buf[:]) % uint32(backoff/2+1))
	return time.Duration(backoff/2+jitter) * time.Millisecond
}

func isRetryableRedisError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	errStr := err.Error()
	for _, retryable := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	} {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}
	return false
}

func (cs *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return cs.withRetry(ctx, func() error {
		return cs.client.Set(ctx, key, value, ttl).Err()
	})
}

func (cs *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	var result bool
	err := cs.withRetry(ctx, func() error {
		count, err := cs.client.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		result = count > 0
		return nil
	})
	return result, err
}

func blacklistKey(jti uuid.UUID) string {
	return "blacklist:" + jti.String()
}

func rateLimitKey(ip, bucket string) string {
	return fmt.Sprintf("ratelimit:%s:%s", bucket, ip)
}

// blacklistTTL keeps the entry until the token expires on its own. Tokens
// without a future expiry fall back to the configured TTL.
func (cs *CacheService) blacklistTTL(exp time.Time) time.Duration {
	if until := time.Until(exp); until > 0 {
		return until
	}
	return cs.config.Auth.BlacklistCacheTTL
}

// BlacklistToken marks jti as revoked until exp.
func (cs *CacheService) BlacklistToken(ctx context.Context, jti uuid.UUID, exp time.Time) error {
	return cs.Set(ctx, blacklistKey(jti), "true", cs.blacklistTTL(exp))
}

func (cs *CacheService) IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) (bool, error) {
	return cs.Exists(ctx, blacklistKey(jti))
}

// IncrementRateLimit bumps the counter for ip in bucket and returns the new
// value. The window starts with the first hit.
func (cs *CacheService) IncrementRateLimit(ctx context.Context, ip, bucket string, window time.Duration) (int, error) {
	key := rateLimitKey(ip, bucket)

	var result int64
	err := cs.withRetry(ctx, func() error {
		pipe := cs.client.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
		result = incr.Val()
		return nil
	})
	return int(result), err
}

// RateLimitTTL reports how long until the counter for ip in bucket resets.
func (cs *CacheService) RateLimitTTL(ctx context.Context, ip, bucket string) (time.Duration, error) {
	var ttl time.Duration
	err := cs.withRetry(ctx, func() error {
		d, err := cs.client.TTL(ctx, rateLimitKey(ip, bucket)).Result()
		if err != nil {
			return err
		}
		ttl = max(d, 0)
		return nil
	})
	return ttl, err
}

func (cs *CacheService) Ping(ctx context.Context) error {
	return cs.withRetry(ctx, func() error {
		return cs.client.Ping(ctx).Err()
	})
}

// GetConnectionStats returns Redis connection pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	stats := cs.client.PoolStats()

	return map[string]any{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}
