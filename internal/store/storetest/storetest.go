// Package storetest opens throwaway stores for tests.
package storetest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jobsheet-service/internal/db"
	"jobsheet-service/internal/store/gormstore"
)

// PostgresDSNEnv names a postgres database the tests may wipe. Postgres
// tests are skipped when it is unset.
const PostgresDSNEnv = "JOBSHEET_TEST_POSTGRES_DSN"

var counter atomic.Int64

// NewDB opens a private in-memory sqlite database with the documents
// table in place.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, counter.Add(1))
	// A single connection keeps the shared in-memory database alive and
	// serialises transactions.
	return open(t, sqlite.Open(dsn), func(sqlDB *sql.DB) {
		sqlDB.SetMaxOpenConns(1)
	})
}

// NewFileDB opens a sqlite database file in a temp dir with a pool of
// connections, so transactions from different goroutines really overlap.
// Writers take the lock on BEGIN and wait for each other.
func NewFileDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "store.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_txlock=immediate", path)
	return open(t, sqlite.Open(dsn), func(sqlDB *sql.DB) {
		sqlDB.SetMaxOpenConns(8)
	})
}

// NewPostgresDB connects to the database named by PostgresDSNEnv and
// empties the documents table, or skips the test.
func NewPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}
	database := open(t, postgres.Open(dsn), func(sqlDB *sql.DB) {
		sqlDB.SetMaxOpenConns(8)
	})
	if err := database.Exec("DELETE FROM documents").Error; err != nil {
		t.Fatalf("reset documents: %v", err)
	}
	return database
}

func New(t *testing.T) *gormstore.Store {
	t.Helper()
	return gormstore.New(NewDB(t))
}

func open(t *testing.T, dialector gorm.Dialector, configure func(*sql.DB)) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	configure(sqlDB)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}
