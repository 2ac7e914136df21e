package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupSessionDB opens the sqlite database that backs the session store,
// creating the parent directory if needed. The GORM log level follows the
// slog level: debug logs all SQL, otherwise only slow queries and errors.
func SetupSessionDB(cfg *SessionConfig, logger *slog.Logger) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("session config is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create session directory %q: %w", dir, err)
		}
	}

	logMode := gormlogger.Warn
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	logger.Debug("session database opened", slog.String("path", cfg.Path))
	return db, nil
}

// CloseSessionDB closes the underlying sql connection of the session store.
func CloseSessionDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
