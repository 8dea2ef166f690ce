package config

import (
	"buysell_server/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = Load()
	})
	return configInstance
}

// Load reads a fresh configuration from the environment.
func Load() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{
			AppName:         getEnvAsString("APP_NAME", "BuySell_no_env"),
			Environment:     getEnvAsString("APP_ENV", "development"),
			Port:            getEnvAsString("APP_PORT", ":8082"),
			ReadTimeout:     getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
			WriteTimeout:    getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
			IdleTimeout:     getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
			ShutdownTimeout: getEnvAsTimeDuration("SERVER_SHUTDOWN_TIME_OUT", 10*time.Second),
			MaxHeaderBytes:  getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			CookieDomain:    getEnvAsString("COOKIE_DOMAIN", ""),
			FrontendURL:     getEnvAsString("FRONTEND_URL", "http://localhost:3000"),
		},
		Cors: &structs.CorsConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "X-CSRF-Token"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
			ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "X-RateLimit-Remaining"}),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
		},
		Database: &structs.DatabaseConfig{
			Host:               getEnvAsString("DB_HOST", "localhost"),
			Port:               getEnvAsInt("DB_PORT", 5432),
			User:               getEnvAsString("DB_USER", "postgres"),
			Password:           getEnvAsString("DB_PASSWORD", "password"),
			Name:               getEnvAsString("DB_NAME", "buysell_db"),
			SSLMode:            getEnvAsString("DB_SSLMODE", "disable"),
			MaxConns:           getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:           getEnvAsInt("DB_MIN_CONNS", 2),
			MaxLifetime:        getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
			MaxIdleTime:        getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
			SlowQueryThreshold: getEnvAsTimeDuration("DB_SLOW_QUERY_THRESHOLD", time.Second),
			RunMigrations:      getEnvAsBool("DB_RUN_MIGRATIONS", true),
		},
		Auth: &structs.AuthConfig{
			AccessTokenSecret: getEnvAsString("AUTH_ACCESS_TOKEN_SECRET", "default_access_secret"),
			AccessTokenExpiry: getEnvAsTimeDuration("AUTH_ACCESS_TOKEN_EXPIRY", 24*time.Hour),
			BlacklistCacheTTL: getEnvAsTimeDuration("AUTH_BLACKLIST_CACHE_TTL", 24*time.Hour),
		},
		Cache: &structs.CacheConfig{
			Address:         getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
			Username:        getEnvAsString("REDIS_USERNAME", ""),
			Password:        getEnvAsString("REDIS_PASSWORD", ""),
			DB:              getEnvAsInt("REDIS_DB", 0),
			PoolSize:        getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns:    getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
			MaxIdleConns:    getEnvAsInt("REDIS_MAX_IDLE_CONNS", 5),
			PoolTimeout:     getEnvAsTimeDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:     getEnvAsTimeDuration("REDIS_IDLE_TIMEOUT", 5*time.Minute),
			DialTimeout:     getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:     getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:    getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
			MinRetryBackoff: getEnvAsTimeDuration("REDIS_MIN_RETRY_BACKOFF", 8*time.Millisecond),
			MaxRetryBackoff: getEnvAsTimeDuration("REDIS_MAX_RETRY_BACKOFF", 512*time.Millisecond),
		},
		RateLimit: &structs.RateLimitConfig{
			Enabled:       getEnvAsBool("RATE_LIMIT_ENABLED", true),
			AuthLimit:     getEnvAsInt("RATE_LIMIT_AUTH", 10),
			AuthWindow:    getEnvAsTimeDuration("RATE_LIMIT_AUTH_WINDOW", time.Minute),
			WriteLimit:    getEnvAsInt("RATE_LIMIT_WRITE", 30),
			WriteWindow:   getEnvAsTimeDuration("RATE_LIMIT_WRITE_WINDOW", time.Minute),
			GeneralLimit:  getEnvAsInt("RATE_LIMIT_GENERAL", 120),
			GeneralWindow: getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
		},
		Email: &structs.EmailConfig{
			ApiKey: getEnvAsString("RESEND_API_KEY", ""),
			From:   getEnvAsString("EMAIL_FROM", "BuySell <no-reply@example.com>"),
		},
		Upload: &structs.UploadConfig{
			MaxRequestBytes: int64(getEnvAsInt("UPLOAD_MAX_REQUEST_BYTES", 32<<20)),
			MaxFileBytes:    int64(getEnvAsInt("UPLOAD_MAX_FILE_BYTES", 5<<20)),
			MaxFiles:        getEnvAsInt("UPLOAD_MAX_FILES", 10),
		},
	}
}

func GetLogLevel() string {
	if level, ok := lookupEnv("LOG_LEVEL"); ok && level != "" {
		return level
	}
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
