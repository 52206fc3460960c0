package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ALLOWED_ORIGIN", "DATABASE_URL", "REDIS_ADDR", "REDIS_DB", "SALES_CACHE_TTL_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, ":4000", cfg.Address())
	assert.Equal(t, "http://127.0.0.1:3000", cfg.AllowedOrigin)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 60, cfg.SalesCacheTTLSeconds)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ALLOWED_ORIGIN", "https://app.example.com")
	t.Setenv("DATABASE_URL", "postgres://localhost/inventory")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SALES_CACHE_TTL_SECONDS", "120")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Address())
	assert.Equal(t, "https://app.example.com", cfg.AllowedOrigin)
	assert.Equal(t, "postgres://localhost/inventory", cfg.DatabaseURL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 120, cfg.SalesCacheTTLSeconds)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("SALES_CACHE_TTL_SECONDS", "zero")
	assert.Equal(t, 60, Load().SalesCacheTTLSeconds)

	t.Setenv("SALES_CACHE_TTL_SECONDS", "0")
	assert.Equal(t, 60, Load().SalesCacheTTLSeconds)
}
