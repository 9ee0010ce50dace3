package database_test

import (
	"testing"

	"boardsync/internal/config"
	"boardsync/internal/database"
	"boardsync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteAutoMigrates(t *testing.T) {
	cfg := &config.Config{
		DBDriver:      config.DriverSQLite,
		SQLitePath:    "file:open_sqlite?mode=memory&cache=shared",
		RunMigrations: true,
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)

	for _, m := range model.All() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := database.Open(&config.Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
