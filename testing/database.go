// Package testing provides database helpers and fixtures for integration
// tests. Tests that use it skip automatically when Postgres is unavailable.
package testing

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fixitlab/buyback-api/models"
)

const testDBName = "buyback_test"

func adminDSN() string {
	host := envOr("TEST_DB_HOST", "localhost")
	port := envOr("TEST_DB_PORT", "5432")
	user := envOr("TEST_DB_USER", "postgres")
	password := envOr("TEST_DB_PASSWORD", "postgres")
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=disable",
		host, port, user, password)
}

func testDSN() string {
	host := envOr("TEST_DB_HOST", "localhost")
	port := envOr("TEST_DB_PORT", "5432")
	user := envOr("TEST_DB_USER", "postgres")
	password := envOr("TEST_DB_PASSWORD", "postgres")
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, testDBName)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// SetupTestDB creates (or reuses) the test database, runs migrations and
// returns a connection with empty tables.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	adminDB, err := sql.Open("postgres", adminDSN())
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	defer adminDB.Close()
	if err := adminDB.Ping(); err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}

	var exists bool
	err = adminDB.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", testDBName).Scan(&exists)
	if err != nil {
		t.Fatalf("failed to check test database: %v", err)
	}
	if !exists {
		if _, err := adminDB.Exec("CREATE DATABASE " + testDBName); err != nil {
			t.Fatalf("failed to create test database: %v", err)
		}
	}

	db, err := gorm.Open(postgres.Open(testDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.PricingRecord{},
		&models.SyncLog{},
		&models.Admin{},
		&models.InventoryItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	CleanupTables(t, db)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CleanupTables empties every table between tests.
func CleanupTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, table := range []string{"pricing_records", "pricing_sync_log", "admins", "inventory_items"} {
		if err := db.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}
