//go:build integration

package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/protrack/backend/internal/infrastructure/config"
	"github.com/protrack/backend/internal/infrastructure/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
)

func TestGormStateStore_Postgres(t *testing.T) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("protrack_test"),
		tcpostgres.WithUsername("protrack"),
		tcpostgres.WithPassword("protrack"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.New(sqlDB, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	cfg := &config.DatabaseConfig{Driver: config.DriverPostgres, LogLevel: "silent"}
	db, err := NewDatabase(cfg, WithDialector(postgres.Open(dsn)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewGormStateStore(db)
	require.NoError(t, store.Save(ctx, sampleState()))
	require.NoError(t, store.Save(ctx, sampleState()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Orders, 2)
	assert.Len(t, got.Processes[0].RawMaterials, 2)
	assert.True(t, got.Inventory[1].Quantity.IsNegative())
}
