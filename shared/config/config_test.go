package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("ACCESS_TOKEN", "")

	cfg := LoadConfig()

	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "sellerBD", cfg.Database.Name)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.ExpiryHours)
	assert.Equal(t, time.Hour, cfg.Redis.CategoriesTTL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("ACCESS_TOKEN", "s3cret")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_ADVERTISED_TTL", "30s")

	cfg := LoadConfig()

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Redis.AdvertisedTTL)
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("REDIS_DB", "three")
	t.Setenv("REDIS_ENABLED", "maybe")
	t.Setenv("DB_TIMEOUT", "soon")

	cfg := LoadConfig()

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Database.Timeout)
}
