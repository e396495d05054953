// Package store is the persistence gateway: typed, whole-value accessors for
// every persisted key, each with one canonical default.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sadopc/focusflow/internal/logging"
)

// Key names one persisted value.
type Key string

const (
	KeySessions  Key = "ff_sessions"
	KeySubjects  Key = "ff_subjects"
	KeyTasks     Key = "ff_tasks"
	KeyDailyGoal Key = "ff_daily_goal"
	KeyThemeID   Key = "ff_theme_id"
	KeyWallpaper Key = "ff_wallpaper_data"
)

// Keys lists the whole persisted key space.
var Keys = []Key{KeySessions, KeySubjects, KeyTasks, KeyDailyGoal, KeyThemeID, KeyWallpaper}

type Store struct {
	kv  Backend
	log *slog.Logger
}

// New opens (or creates) the SQLite database at dbPath.
func New(dbPath string) (*Store, error) {
	b, err := openSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	return NewWithBackend(b), nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

// NewDiskv opens a file-per-key store rooted at dir.
func NewDiskv(dir string) (*Store, error) {
	b, err := openDiskv(dir)
	if err != nil {
		return nil, err
	}
	return NewWithBackend(b), nil
}

func NewWithBackend(b Backend) *Store {
	return &Store{kv: b, log: logging.For("store")}
}

func (s *Store) Close() error {
	return s.kv.Close()
}

// get decodes the value at key into a T. Missing keys and undecodable
// values both yield def; the latter is logged.
func get[T any](s *Store, key Key, def T) T {
	raw, err := s.kv.Read(string(key))
	if errors.Is(err, ErrNotFound) {
		return def
	}
	if err != nil {
		s.log.Warn("read failed, using default", "key", key, "err", err)
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn("corrupt value, using default", "key", key, "err", err)
		return def
	}
	return v
}

func set[T any](s *Store, key Key, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Write(string(key), raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// ClearAll wipes every key. Callers reload their state afterwards.
func (s *Store) ClearAll() error {
	if err := s.kv.EraseAll(); err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	s.log.Info("cleared all data")
	return nil
}
