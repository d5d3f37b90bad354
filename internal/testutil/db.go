// Package testutil builds throwaway stores for package tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/medstore/internal/models"
)

// NewDB opens a private in-memory SQLite database with every model migrated.
// The pool is pinned to one connection since each SQLite memory connection
// is its own database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// SQLX wraps the same connection for reporting queries.
func SQLX(t testing.TB, db *gorm.DB) *sqlx.DB {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	return sqlx.NewDb(sqlDB, "sqlite")
}
