package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, "wastewise", cfg.JWTIssuer)
	assert.Equal(t, 10, cfg.AuthRateLimitBurst)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.ResetDB)
	assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.WriteTimeout)
	assert.Equal(t, time.Minute, cfg.IdleTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file:wastewise.db")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("AUTH_RATE_LIMIT_RPS", "0.5")
	t.Setenv("RESET_DB", "true")
	t.Setenv("SUMMARY_CACHE_TTL", "not-a-duration")
	t.Setenv("HTTP_READ_TIMEOUT", "3s")
	t.Setenv("HTTP_IDLE_TIMEOUT", "2m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "file:wastewise.db", cfg.DBDSN)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 0.5, cfg.AuthRateLimitRPS)
	assert.True(t, cfg.ResetDB)
	assert.Equal(t, time.Minute, cfg.SummaryCacheTTL)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 2*time.Minute, cfg.IdleTimeout)
}
