package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 30*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, DriverStatic, cfg.CatalogDriver)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.NeedsMySQL())
	assert.False(t, cfg.EventsEnabled)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("STORE_DRIVER", "MySQL")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "compare")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("EVENTS_ENABLED", "yes")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, DriverMySQL, cfg.StoreDriver)
	assert.True(t, cfg.NeedsMySQL())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.EventsEnabled)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad ttl", "TOKEN_TTL", "forever"},
		{"negative ttl", "TOKEN_TTL", "-1h"},
		{"bad cost", "BCRYPT_COST", "ten"},
		{"cost above bcrypt max", "BCRYPT_COST", "40"},
		{"cost below bcrypt min", "BCRYPT_COST", "2"},
		{"negative cost", "BCRYPT_COST", "-5"},
		{"unknown store", "STORE_DRIVER", "postgres"},
		{"unknown catalog", "CATALOG_DRIVER", "mongo"},
		{"mysql without credentials", "CATALOG_DRIVER", "mysql"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "k")
			t.Setenv("DB_USER", "")
			t.Setenv("DB_NAME", "")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "off")
	t.Setenv("CACHE_TTL", "bogus")

	cc := LoadCacheConfig()
	assert.False(t, cc.Enabled)
	assert.Equal(t, 5*time.Minute, cc.TTL)
	assert.Equal(t, "catalog", cc.Prefix)
	assert.Equal(t, 1<<20, cc.MaxBodyBytes)
}
