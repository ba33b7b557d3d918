// Package prefs is a file-backed key/value store standing in for the
// browser's localStorage. Keys keep their original names; values are
// strings. One server serves many browsers, so entries are namespaced
// per owner.
package prefs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

const (
	darkModeKey     = "todo-dark-mode"
	populatedPrefix = "daily-tasks-populated-"
)

type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]map[string]string
}

// Open loads the store from path, starting empty if the file is absent.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: map[string]map[string]string{}}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, err
	}
	return s, nil
}

// DarkMode reports the owner's dark-mode flag.
func (s *Store) DarkMode(ownerID string) bool {
	return s.get(ownerID, darkModeKey) == "true"
}

// ToggleDarkMode flips the owner's dark-mode flag and persists its
// string form.
func (s *Store) ToggleDarkMode(ownerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.values[ownerID][darkModeKey] != "true"
	if err := s.setLocked(ownerID, darkModeKey, strconv.FormatBool(next)); err != nil {
		return false, err
	}
	return next, nil
}

// IsMaterialized reports whether daily tasks were already materialized
// for the owner on the given date.
func (s *Store) IsMaterialized(ownerID, date string) bool {
	return s.get(ownerID, populatedPrefix+date) == "true"
}

// MarkMaterialized records that daily tasks were materialized for the
// owner on the given date. Stale date keys are never cleaned up.
func (s *Store) MarkMaterialized(ownerID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(ownerID, populatedPrefix+date, "true")
}

func (s *Store) get(ownerID, key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[ownerID][key]
}

func (s *Store) setLocked(ownerID, key, value string) error {
	if s.values[ownerID] == nil {
		s.values[ownerID] = map[string]string{}
	}
	s.values[ownerID][key] = value
	return s.save()
}

func (s *Store) save() error {
	bs, err := json.Marshal(s.values)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, bs, 0o660)
}
