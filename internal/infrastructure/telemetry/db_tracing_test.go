package telemetry_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/carhive/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTracingTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := telemetry.DefaultDBTracingConfig()

	assert.False(t, cfg.RecordSQLVariables)
	assert.Equal(t, "carhive", cfg.DBName)
	assert.Positive(t, cfg.SlowQueryThreshold)
}

func TestRegisterDBTracing(t *testing.T) {
	t.Run("installs callbacks for every operation", func(t *testing.T) {
		db, _ := newTracingTestDB(t)

		err := telemetry.RegisterDBTracing(db, telemetry.DefaultDBTracingConfig(), zaptest.NewLogger(t))

		require.NoError(t, err)
		assert.NotNil(t, db.Callback().Query().Get("carhive_trace:start_query"))
		assert.NotNil(t, db.Callback().Query().Get("carhive_trace:finish_query"))
		assert.NotNil(t, db.Callback().Create().Get("carhive_trace:start_create"))
		assert.NotNil(t, db.Callback().Update().Get("carhive_trace:finish_update"))
		assert.NotNil(t, db.Callback().Delete().Get("carhive_trace:finish_delete"))
	})

	t.Run("queries still run with tracing installed", func(t *testing.T) {
		db, mock := newTracingTestDB(t)
		require.NoError(t, telemetry.RegisterDBTracing(db, telemetry.DefaultDBTracingConfig(), zaptest.NewLogger(t)))

		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		var count int64
		err := db.Raw("SELECT count(*) FROM cars").Scan(&count).Error

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
