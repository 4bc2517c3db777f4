package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSetupStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "aula.db")

	db, err := SetupStore(&StoreConfig{Path: path}, discardLogger())
	if err != nil {
		t.Fatalf("SetupStore error: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		t.Errorf("ping: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("store directory not created: %v", err)
	}
}

func TestSetupStore_NilArgs(t *testing.T) {
	if _, err := SetupStore(nil, discardLogger()); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := SetupStore(&StoreConfig{Path: "x.db"}, nil); err == nil {
		t.Error("expected error for nil logger")
	}
}
