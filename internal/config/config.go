package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Setting keys understood by the plugin and its host
const (
	KeyOutputDir  = "outdir"
	KeyLanguage   = "language"
	KeyJournalDir = "journal_dir"
	KeyLogLevel   = "log_level"
)

// EnvOutputDir overrides the configured output directory when set
const EnvOutputDir = "STREAMSOURCE_OUTDIR"

// Store is a reloadable settings source
type Store interface {
	// GetString returns the value stored under key and whether it was set.
	GetString(key string) (string, bool)

	// Reload re-reads the backing source. On failure the previous values stay in effect.
	Reload() error

	Close() error
}

// Load opens the settings source at path. The format is chosen by extension:
// .toml, .yaml/.yml, or .db/.sqlite for a SQLite settings database. An empty
// path yields the defaults only.
func Load(path string) (Store, error) {
	if path == "" {
		return NewMemoryStore(Defaults()), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return OpenFileStore(path)
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unsupported settings file %s", path)
	}
}

// Defaults returns the settings used when a key is not configured.
func Defaults() map[string]string {
	home, _ := os.UserHomeDir()
	return map[string]string{
		KeyOutputDir:  home,
		KeyLanguage:   "en",
		KeyJournalDir: defaultJournalDir(home),
		KeyLogLevel:   "info",
	}
}

func defaultJournalDir(home string) string {
	if home == "" {
		return ""
	}
	return filepath.Join(home, "Saved Games", "Frontier Developments", "Elite Dangerous")
}

// applyEnvOverrides replaces values set through the environment
func applyEnvOverrides(values map[string]string) {
	if v := os.Getenv(EnvOutputDir); v != "" {
		values[KeyOutputDir] = v
	}
}

// MemoryStore holds a fixed set of settings
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore copies values into a new store and applies environment overrides
func NewMemoryStore(values map[string]string) *MemoryStore {
	s := &MemoryStore{values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	applyEnvOverrides(s.values)
	return s
}

func (s *MemoryStore) GetString(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Reload() error { return nil }

func (s *MemoryStore) Close() error { return nil }
