package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("DELIVERY_FEE", "")
	t.Setenv("REDIRECT_DELAY", "")

	cfg := Load()

	assert.Equal(t, "http://localhost:5000", cfg.BackendURL)
	assert.Equal(t, SessionStoreRedis, cfg.SessionStore)
	assert.Equal(t, "2.99", cfg.DeliveryFee.StringFixed(2))
	assert.Equal(t, 2*time.Second, cfg.RedirectDelay)
	assert.Zero(t, cfg.BackendTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://api:9000")
	t.Setenv("SESSION_STORE", SessionStoreMemory)
	t.Setenv("DELIVERY_FEE", "4.50")
	t.Setenv("REDIRECT_DELAY", "500ms")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "http://api:9000", cfg.BackendURL)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Equal(t, "4.50", cfg.DeliveryFee.StringFixed(2))
	assert.Equal(t, 500*time.Millisecond, cfg.RedirectDelay)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DELIVERY_FEE", "-1")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("SESSION_TTL", "forever")

	cfg := Load()

	assert.Equal(t, "2.99", cfg.DeliveryFee.StringFixed(2))
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
}
