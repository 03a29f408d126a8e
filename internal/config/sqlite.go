package config

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"streamsource/internal/log"

	_ "modernc.org/sqlite"
)

const settingsSchema = `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL DEFAULT '',
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

// SQLiteStore keeps settings in a SQLite database. Every lookup reads the
// database, so edits made by other programs are seen without a reload.
type SQLiteStore struct {
	db       *sql.DB
	filename string
	defaults map[string]string
}

// OpenSQLiteStore opens or creates the settings database at filename
func OpenSQLiteStore(filename string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping settings database: %w", err)
	}

	if _, err = db.Exec(settingsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings schema: %w", err)
	}

	return &SQLiteStore{
		db:       db,
		filename: filename,
		defaults: Defaults(),
	}, nil
}

// GetString returns the stored value, falling back to the environment and
// then to the defaults.
func (s *SQLiteStore) GetString(key string) (string, bool) {
	if key == KeyOutputDir {
		if v := os.Getenv(EnvOutputDir); v != "" {
			return v, true
		}
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?;`, key).Scan(&value)
	if err == nil {
		return value, true
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to read setting", "key", key, "database", s.filename, "error", err)
	}

	v, ok := s.defaults[key]
	return v, ok
}

// Set stores value under key
func (s *SQLiteStore) Set(key, value string) error {
	query := `
	INSERT OR REPLACE INTO settings (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP);`

	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

// Delete removes key so that the default applies again
func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM settings WHERE key = ?;`, key); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// Reload is a no-op; lookups always read the database.
func (s *SQLiteStore) Reload() error {
	return s.db.Ping()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
