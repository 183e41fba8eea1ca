package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "analytics",
		Password: "secret",
		DBName:   "stayfinder",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=analytics password=secret dbname=stayfinder sslmode=require",
		cfg.DSN(),
	)
}

func TestRedisConfig_RedisAddr(t *testing.T) {
	tests := []struct {
		name     string
		cfg      RedisConfig
		expected string
	}{
		{
			name:     "default localhost",
			cfg:      RedisConfig{Host: "localhost", Port: "6379"},
			expected: "localhost:6379",
		},
		{
			name:     "custom host and port",
			cfg:      RedisConfig{Host: "redis.example.com", Port: "6380"},
			expected: "redis.example.com:6380",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.RedisAddr())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("DASHBOARD_WINDOW_DAYS")
	os.Unsetenv("DASHBOARD_CACHE_TTL")
	os.Unsetenv("DASHBOARD_RANKING_SIZE")

	cfg, err := Load("admin-analytics")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "admin-analytics", cfg.Server.ServiceName)
	assert.Equal(t, 30, cfg.Dashboard.WindowDays)
	assert.Equal(t, 60, cfg.Dashboard.CacheTTL)
	assert.Equal(t, 5, cfg.Dashboard.RankingSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DASHBOARD_WINDOW_DAYS", "7")
	t.Setenv("DASHBOARD_CACHE_TTL", "0")
	t.Setenv("DB_MAX_CONNS", "50")

	cfg, err := Load("admin-analytics")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Dashboard.WindowDays)
	assert.Equal(t, 0, cfg.Dashboard.CacheTTL)
	assert.Equal(t, 50, cfg.Database.MaxConns)
}

func TestGetEnvAsInt_Malformed(t *testing.T) {
	t.Setenv("DASHBOARD_RANKING_SIZE", "five")

	cfg, err := Load("admin-analytics")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Dashboard.RankingSize)
}
