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

// SetupStore opens the local SQLite store used for session persistence,
// creating the containing directory when needed. The GORM logger mode
// follows the slog level: debug logs all SQL, otherwise only slow SQL and
// errors.
func SetupStore(cfg *StoreConfig, logger *slog.Logger) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("store config is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	dir := filepath.Dir(cfg.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory %q: %w", dir, err)
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
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	logger.Info("local store opened", slog.String("path", cfg.Path))

	return db, nil
}
