package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DB_DRIVER", "SERVER_PORT", "DB_MAX_OPEN_CONNS", "IMAGE_HOST", "IMGBB_API_KEY",
		"S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_BUCKET", "S3_PUBLIC_BASE_URL",
		"CORS_ALLOWED_ORIGINS", "CACHE_TTL", "ENFORCE_ADMIN_AUTH", "AUTO_MIGRATE", "LOGIN_RATE_LIMIT",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("DATABASE_URL", "postgres://courts@localhost/courts?sslmode=disable")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 5, cfg.DBMaxOpenConns)
	assert.Equal(t, ImageHostNone, cfg.ImageHost)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.EnforceAdminAuth)
	assert.Equal(t, 10, cfg.LoginRateLimit)
}

func TestLoadImgBBFromKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("IMGBB_API_KEY", "k")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ImageHostImgBB, cfg.ImageHost)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing database url": {"DATABASE_URL": ""},
		"missing jwt secret":   {"JWT_SECRET_KEY": ""},
		"unknown driver":       {"DB_DRIVER": "mongodb"},
		"bad port":             {"SERVER_PORT": "99999"},
		"port not a number":    {"SERVER_PORT": "http"},
		"zero pool":            {"DB_MAX_OPEN_CONNS": "0"},
		"s3 without bucket":    {"IMAGE_HOST": "s3", "S3_ENDPOINT": "https://s3"},
		"imgbb without key":    {"IMAGE_HOST": "imgbb"},
		"bad bool":             {"ENFORCE_ADMIN_AUTH": "maybe"},
		"bad duration":         {"CACHE_TTL": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadCORSList(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://courts.hk, http://localhost:3000,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://courts.hk", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestNewRedisClient(t *testing.T) {
	t.Run("empty url disables redis", func(t *testing.T) {
		client, err := NewRedisClient(context.Background(), "")
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := NewRedisClient(context.Background(), "http://localhost:6379")
		assert.ErrorContains(t, err, "invalid REDIS_URL")
	})

	t.Run("unreachable server", func(t *testing.T) {
		_, err := NewRedisClient(context.Background(), "redis://127.0.0.1:1/0")
		assert.ErrorContains(t, err, "redis ping")
	})
}
