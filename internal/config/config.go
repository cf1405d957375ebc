package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// ErrMissingSecret is returned when JWT_SECRET is not configured.
var ErrMissingSecret = errors.New("JWT_SECRET must be set")

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort         string
	ReadHeaderTimeout  time.Duration
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	DBDriver           string
	DBDSN              string
	ResetDB            bool
	RedisAddr          string
	RedisDB            int
	RedisPass          string
	JWTSecret          string
	JWTIssuer          string
	JWTTTL             time.Duration
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
	SummaryCacheTTL    time.Duration
	SwaggerHost        string
}

// Load builds Config from environment with sensible defaults. The signing
// secret has no default.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		ReadHeaderTimeout:  getEnvDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:        getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:       getEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:        getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		DBDriver:           getEnv("DB_DRIVER", "mysql"),
		DBDSN:              getEnv("DB_DSN", "user:password@tcp(localhost:3306)/wastewise?charset=utf8mb4&parseTime=True&loc=Local"),
		ResetDB:            getEnvBool("RESET_DB", false),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTIssuer:          getEnv("JWT_ISSUER", "wastewise"),
		JWTTTL:             getEnvDuration("JWT_TTL", time.Hour),
		AuthRateLimitRPS:   getEnvFloat("AUTH_RATE_LIMIT_RPS", 5),
		AuthRateLimitBurst: getEnvInt("AUTH_RATE_LIMIT_BURST", 10),
		SummaryCacheTTL:    getEnvDuration("SUMMARY_CACHE_TTL", time.Minute),
		SwaggerHost:        os.Getenv("SWAGGER_HOST"),
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
