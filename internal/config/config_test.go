package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "taskboard", cfg.AppName)
	assert.Equal(t, DriverMongo, cfg.Storage.Driver)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, time.Duration(0), cfg.JWT.TTL)
	assert.Equal(t, 10, cfg.JWT.BcryptCost)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.False(t, cfg.IsProduction())
	assert.Contains(t, cfg.Database.URL, "postgres://")
}

func TestLoadFallbackKeys(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "legacy")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("PORT", "5000")
	t.Setenv("JWT_TTL", "3600")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "legacy", cfg.JWT.Secret)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "0.0.0.0:5000", cfg.Address())
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestValidateDriverAndZone(t *testing.T) {
	cfg := &Config{Timezone: "UTC", Storage: StorageConfig{Driver: "sqlite"}, JWT: JWTConfig{Secret: "x"}}
	require.Error(t, cfg.Validate())

	cfg.Storage.Driver = DriverBolt
	require.NoError(t, cfg.Validate())

	cfg.Timezone = "Mars/Olympus"
	require.Error(t, cfg.Validate())
}
