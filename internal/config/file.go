package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileStore reads flat key/value settings from a TOML or YAML file.
//
// Example settings.toml:
//
//	outdir = "C:/Users/cmdr/Documents/obs"
//	language = "de"
//
// Non-string scalars are converted with fmt's %v formatting. Tables and lists
// are ignored.
type FileStore struct {
	path string

	mu     sync.RWMutex
	values map[string]string
}

// OpenFileStore loads path. A missing file yields the defaults.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the settings file location
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) GetString(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Reload re-reads the settings file
func (s *FileStore) Reload() error {
	values := Defaults()

	data, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return fmt.Errorf("read settings %s: %w", s.path, err)
	default:
		raw, err := decode(s.path, data)
		if err != nil {
			return fmt.Errorf("parse settings %s: %w", s.path, err)
		}
		for k, v := range raw {
			switch v.(type) {
			case map[string]any, []any:
				continue
			case nil:
				continue
			}
			values[k] = fmt.Sprintf("%v", v)
		}
	}
	applyEnvOverrides(values)

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

func (s *FileStore) Close() error { return nil }

func decode(path string, data []byte) (map[string]any, error) {
	raw := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}
