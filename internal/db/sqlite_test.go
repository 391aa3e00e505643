package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestOpenSQLiteAppliesMigrations(t *testing.T) {
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "lunaria-db-test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	var applied int64
	if err := database.Raw(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied).Error; err != nil {
		t.Fatalf("read schema_migrations: %v", err)
	}
	if applied == 0 {
		t.Fatalf("expected at least one applied migration")
	}

	for _, table := range []string{"users", "cycles", "cycle_days"} {
		var count int64
		err := database.Raw(
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count).Error
		if err != nil {
			t.Fatalf("inspect table %s: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}
}

func TestGormLoggerRoutesQueriesThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	gl := newGormLogger(zap.New(core))

	statement := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), statement, errors.New("disk I/O error"))
	if logs.Len() != 1 {
		t.Fatalf("expected a failed query to be logged, got %d entries", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Level != zapcore.ErrorLevel || entry.Message != "query failed" {
		t.Fatalf("unexpected log entry: %s %s", entry.Level, entry.Message)
	}

	gl.Trace(context.Background(), time.Now(), statement, gorm.ErrRecordNotFound)
	if logs.Len() != 1 {
		t.Fatalf("record-not-found should not be logged, got %d entries", logs.Len())
	}

	gl.Trace(context.Background(), time.Now().Add(-2*slowQueryThreshold), statement, nil)
	if logs.Len() != 2 {
		t.Fatalf("expected a slow query warning, got %d entries", logs.Len())
	}
	if logs.All()[1].Message != "slow query" {
		t.Fatalf("unexpected log entry: %s", logs.All()[1].Message)
	}

	silenced := gl.LogMode(gormlogger.Silent)
	silenced.Trace(context.Background(), time.Now(), statement, errors.New("disk I/O error"))
	if logs.Len() != 2 {
		t.Fatalf("silent mode should not log, got %d entries", logs.Len())
	}
}
