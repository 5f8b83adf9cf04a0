package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "PORT", "CORS_ORIGIN", "FRONTEND_URL", "KAFKA_BROKERS", "REDIS_DB", "TICKET_CACHE_TTL_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "http://localhost:5173", cfg.CORS.Origin)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, time.Minute, cfg.Cache.TicketTTL())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("APP_PORT", "")
	t.Setenv("CORS_ORIGIN", "")
	t.Setenv("FRONTEND_URL", "https://dash.example.com")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, "https://dash.example.com", cfg.CORS.Origin)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Postgres.RunMigrations)
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsWildcardCORSOrigin(t *testing.T) {
	for _, origin := range []string{"*", "http://localhost:5173, *"} {
		t.Setenv("CORS_ORIGIN", origin)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CORS_ORIGIN")
	}
}

func TestLoadAcceptsOriginList(t *testing.T) {
	t.Setenv("CORS_ORIGIN", "http://localhost:5173,https://*.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173,https://*.example.com", cfg.CORS.Origin)
}
