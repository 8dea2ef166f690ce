package structs

import (
	"fmt"
	"net/url"
	"time"
)

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Auth      *AuthConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
	Email     *EmailConfig
	Upload    *UploadConfig
}

type ServerConfig struct {
	AppName         string        // BuySell
	Environment     string        // development, production
	Port            string        // :8082
	ReadTimeout     time.Duration // in seconds
	WriteTimeout    time.Duration // in seconds
	IdleTimeout     time.Duration // in seconds
	ShutdownTimeout time.Duration
	MaxHeaderBytes  int    // in bytes
	CookieDomain    string // empty means host-only cookies
	FrontendURL     string
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // in seconds
}

type DatabaseConfig struct {
	Host               string
	Port               int
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxConns           int
	MinConns           int
	MaxLifetime        time.Duration
	MaxIdleTime        time.Duration
	SlowQueryThreshold time.Duration
	RunMigrations      bool
}

// DSN renders the connection string understood by the pgx stdlib driver.
func (dc *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dc.User, dc.Password),
		Host:     fmt.Sprintf("%s:%d", dc.Host, dc.Port),
		Path:     "/" + dc.Name,
		RawQuery: url.Values{"sslmode": []string{dc.SSLMode}}.Encode(),
	}
	return u.String()
}

type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	BlacklistCacheTTL time.Duration
}

type CacheConfig struct {
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	AuthLimit     int
	AuthWindow    time.Duration
	WriteLimit    int
	WriteWindow   time.Duration
	GeneralLimit  int
	GeneralWindow time.Duration
}

type EmailConfig struct {
	ApiKey string // empty disables outgoing mail
	From   string
}

type UploadConfig struct {
	MaxRequestBytes int64 // whole multipart body
	MaxFileBytes    int64 // single image
	MaxFiles        int
}
