package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO", "STORE_DRIVER", "REQUIRE_AUTH", "AUTH_RATE_LIMIT", "TIMEZONE", "JWT_EXPIRES_IN"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.False(t, cfg.RequireAuth)
	assert.Equal(t, 5.0, cfg.AuthRateLimit)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpirationDur)
	assert.Equal(t, time.Local, cfg.Location)
}

func TestLoad_MongoSelectedWhenConnectionStringSet(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("MONGO", "mongodb://localhost:27017")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "finace", cfg.MongoDB)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "mongo_without_uri", env: map[string]string{"STORE_DRIVER": "mongo", "MONGO": ""}},
		{name: "unknown_driver", env: map[string]string{"STORE_DRIVER": "redis"}},
		{name: "bad_require_auth", env: map[string]string{"REQUIRE_AUTH": "maybe"}},
		{name: "negative_rate_limit", env: map[string]string{"AUTH_RATE_LIMIT": "-1"}},
		{name: "bad_rate_limit", env: map[string]string{"AUTH_RATE_LIMIT": "fast"}},
		{name: "bad_timezone", env: map[string]string{"TIMEZONE": "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_ZeroRateLimitDisables(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("AUTH_RATE_LIMIT", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.AuthRateLimit)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SUMMARY_CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.SummaryCacheTTL)
}

func TestPostgresURL(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "finace", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/finace?sslmode=disable", cfg.PostgresURL())
}
