package shared

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// NewDatabase opens the SQLite database holding the persisted session.
//
// The path can be ":memory:" for an in-memory database. The parent directory
// of a file path is created when missing.
func NewDatabase(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// ConfigureDatabase applies the pool limits from [DatabaseConfig].
func ConfigureDatabase(db *sql.DB, conf DatabaseConfig) {
	if conf.MaxOpenConns > 0 {
		db.SetMaxOpenConns(conf.MaxOpenConns)
	}
	if conf.MaxIdleConns > 0 {
		db.SetMaxIdleConns(conf.MaxIdleConns)
	}
}

// OpenDatabase opens, configures and migrates the database described by conf.
func OpenDatabase(conf DatabaseConfig) (*sql.DB, error) {
	db, err := NewDatabase(conf.Path)
	if err != nil {
		return nil, err
	}
	ConfigureDatabase(db, conf)

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
