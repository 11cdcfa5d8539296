// Package testutil provides shared test helpers.
package testutil

import (
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"workorder-service/internal/db"
	"workorder-service/internal/model"
)

// NewDB opens a private in-memory SQLite database with the server table
// migrated. The database is closed when the test completes.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("testutil.NewDB: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("testutil.NewDB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("testutil.NewDB: %v", err)
	}
	return gormDB
}

// SeedServers inserts the given rows and returns them with their assigned ids.
func SeedServers(t *testing.T, gormDB *gorm.DB, servers ...model.Server) []model.Server {
	t.Helper()
	for i := range servers {
		if err := gormDB.Create(&servers[i]).Error; err != nil {
			t.Fatalf("testutil.SeedServers: %v", err)
		}
	}
	return servers
}

// Logger returns a logrus logger that discards its output.
func Logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
