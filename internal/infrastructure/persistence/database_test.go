package persistence

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/protrack/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database instance with a mocked SQL connection
func newMockDatabase(t *testing.T, opts ...sqlmock.Option) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New(opts...)
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB, Driver: config.DriverPostgres}, mock, mockDB
}

func newSQLiteDatabase(t *testing.T) *Database {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		Path:        filepath.Join(t.TempDir(), "protrack.db"),
		LogLevel:    "silent",
		AutoMigrate: true,
	}
	db, err := NewDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDialector(t *testing.T) {
	tests := []struct {
		driver string
		name   string
	}{
		{config.DriverPostgres, "postgres"},
		{config.DriverMySQL, "mysql"},
		{config.DriverSQLite, "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg := &config.DatabaseConfig{Driver: tt.driver, Host: "localhost", Port: 5432, Path: "x.db"}
			d, err := Dialector(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name())
		})
	}

	t.Run("rejects unknown drivers", func(t *testing.T) {
		_, err := Dialector(&config.DatabaseConfig{Driver: "oracle"})
		assert.ErrorContains(t, err, `unsupported database driver "oracle"`)
	})
}

func TestNewDatabase_AppliesPoolSettings(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	cfg := &config.DatabaseConfig{Driver: config.DriverPostgres, MaxOpenConns: 7, MaxIdleConns: 2, LogLevel: "silent"}
	db, err := NewDatabase(cfg, WithDialector(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"})))
	require.NoError(t, err)

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 7, stats.MaxOpenConnections)
	assert.Equal(t, config.DriverPostgres, db.Driver)
}

func TestNewDatabase_SQLiteAutoMigrate(t *testing.T) {
	db := newSQLiteDatabase(t)

	for _, table := range []string{"state_meta", "production_orders", "process_materials", "inventory_items", "attendance_records"} {
		assert.True(t, db.DB.Migrator().HasTable(table), table)
	}
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("successful ping", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t, sqlmock.MonitorPingsOption(true))
		defer mockDB.Close()

		mock.ExpectPing()

		require.NoError(t, db.Ping())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed ping", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t, sqlmock.MonitorPingsOption(true))
		defer mockDB.Close()

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		assert.ErrorContains(t, db.Ping(), "connection refused")
	})
}

func TestDatabase_Transaction(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.Transaction(func(tx *gorm.DB) error {
		return errors.New("abort")
	})

	assert.EqualError(t, err, "abort")
	assert.NoError(t, mock.ExpectationsWereMet())
}
