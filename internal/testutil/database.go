// Package testutil holds the shared fixtures of the store, service and
// router tests: an isolated SQLite database per test and a few assertions.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Gangulr/finace/internal/models"
	"github.com/Gangulr/finace/internal/uuid"
)

var tables = []interface{}{
	&models.User{},
	&models.Budget{},
	&models.Expense{},
	&models.Income{},
}

// SetupTestDB opens a fresh in-memory SQLite database with every record
// table created. Databases are named per call so tests never share rows.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open test database")
	require.NoError(t, db.AutoMigrate(tables...), "migrate test database")
	return db
}

// TeardownTestDB closes the connection behind db.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("teardown: close test database: %v", err)
	}
}
