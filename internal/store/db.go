// Package store persists jobs and their analyzed candidates. SQLite is the
// default backend; a postgres DSN switches the driver without touching the
// repositories.
package store

import (
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hireflow/resume-ranker/internal/common"
)

// Open connects to the configured database and runs migrations.
func Open(cfg common.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var dialector gorm.Dialector
	switch {
	case cfg.DSN != "":
		dialector = postgres.Open(cfg.DSN)
	case cfg.Path != "":
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
	default:
		dialector = sqlite.Open(sqliteDSN("resumes.db"))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, common.StepError(common.ErrPersistence, fmt.Errorf("open database: %w", err))
	}

	if err := db.AutoMigrate(&jobRecord{}, &candidateRecord{}); err != nil {
		return nil, common.StepError(common.ErrPersistence, fmt.Errorf("migrate database: %w", err))
	}

	logger.Info("store.open.ok", "dialect", dialector.Name())
	return db, nil
}

// sqliteDSN enables foreign key enforcement on file-backed connections.
func sqliteDSN(path string) string {
	if path == ":memory:" {
		return path
	}
	return path + "?_pragma=foreign_keys(1)"
}
