package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "protrack-pcp", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverMemory, cfg.Database.Driver)
		assert.False(t, cfg.Database.IsPersistent())
		assert.Equal(t, 5*time.Second, cfg.Ticker.Interval)
		assert.True(t, cfg.Ticker.Enabled)
		assert.True(t, cfg.Idempotency.Enabled)
		assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
		assert.Equal(t, StorageNone, cfg.Storage.Driver)
		assert.Equal(t, "gemini-3-pro-preview", cfg.AI.OptimizationModel)
		assert.Equal(t, "gemini-3-flash-preview", cfg.AI.ChatModel)
		assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
		assert.Equal(t, 5, cfg.AI.HistorySize)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
	})

	t.Run("loads values from environment variables with PCP prefix", func(t *testing.T) {
		t.Setenv("PCP_APP_PORT", "9000")
		t.Setenv("PCP_DATABASE_DRIVER", "SQLite")
		t.Setenv("PCP_DATABASE_PATH", "/tmp/pcp.db")
		t.Setenv("PCP_TICKER_INTERVAL", "2s")
		t.Setenv("PCP_TICKER_ENABLED", "false")
		t.Setenv("PCP_AI_API_KEY", "secret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "/tmp/pcp.db", cfg.Database.DSN())
		assert.Equal(t, 2*time.Second, cfg.Ticker.Interval)
		assert.False(t, cfg.Ticker.Enabled)
		assert.Equal(t, "secret", cfg.AI.APIKey)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		t.Setenv("PCP_DATABASE_DRIVER", "oracle")

		_, err := Load()
		assert.ErrorContains(t, err, "database.driver")
	})

	t.Run("object storage needs credentials", func(t *testing.T) {
		t.Setenv("PCP_STORAGE_DRIVER", "minio")

		_, err := Load()
		assert.ErrorContains(t, err, "storage.access_key")
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 50
		assert.Error(t, cfg.validate())
	})

	t.Run("ticker interval lower bound", func(t *testing.T) {
		cfg := base()
		cfg.Ticker.Interval = time.Millisecond
		assert.ErrorContains(t, cfg.validate(), "ticker.interval")
	})

	t.Run("production forbids wildcard CORS", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})

	t.Run("sampling ratio range", func(t *testing.T) {
		cfg := base()
		cfg.Telemetry.SamplingRatio = 1.5
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("postgres escapes credentials", func(t *testing.T) {
		d := DatabaseConfig{Driver: DriverPostgres, User: "pcp", Password: "p@ss word", Host: "db", Port: 5432, DBName: "protrack", SSLMode: "require"}
		assert.Equal(t, "postgres://pcp:p%40ss%20word@db:5432/protrack?sslmode=require", d.DSN())
	})

	t.Run("mysql", func(t *testing.T) {
		d := DatabaseConfig{Driver: DriverMySQL, User: "root", Password: "pw", Host: "db", Port: 3306, DBName: "protrack"}
		assert.Equal(t, "root:pw@tcp(db:3306)/protrack?charset=utf8mb4&parseTime=True&loc=UTC", d.DSN())
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
