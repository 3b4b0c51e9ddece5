// Package dbtest boots a throwaway sqlite database for package tests and
// installs it as database.C.
package dbtest

import (
	"path/filepath"
	"testing"

	"git.solsynth.dev/hypernet/polls/pkg/internal/database"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func Setup(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "polls.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), database.NewGormConfig())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// sqlite has a single writer, concurrent transactions queue on one connection.
	if conn, err := db.DB(); err == nil {
		conn.SetMaxOpenConns(1)
	}
	if err := database.RunMigration(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	previous := database.C
	database.C = db
	t.Cleanup(func() {
		database.C = previous
		if conn, err := db.DB(); err == nil {
			conn.Close()
		}
	})

	return db
}
