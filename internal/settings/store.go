// Package settings persists local UI preferences in a small SQLite file.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// Known keys, kept compatible with the names the web UI stored.
const (
	KeyToasts    = "archboard_toasts"
	KeyAutosave  = "archboard_autosave"
	KeyActiveTab = "hyprland_active_tab"
)

// Settings are the typed preferences.
type Settings struct {
	ToastsEnabled   bool   `json:"toasts_enabled"`
	AutosaveEnabled bool   `json:"autosave_enabled"`
	ActiveTab       string `json:"active_tab"`
}

// Defaults apply to keys that were never written.
func Defaults() Settings {
	return Settings{ToastsEnabled: true, AutosaveEnabled: false, ActiveTab: "general"}
}

// Store is the SQLite-backed key/value table.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and migrates it.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create settings directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the raw value of key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}

// Set writes the raw value of key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Clear deletes every key.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings`); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}
	return nil
}

// All returns every stored key and value.
func (s *Store) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Load reads the typed settings, falling back to Defaults per key.
// Toasts stay on unless explicitly "false"; autosave is on only when
// explicitly "true".
func (s *Store) Load(ctx context.Context) (Settings, error) {
	all, err := s.All(ctx)
	if err != nil {
		return Settings{}, err
	}
	out := Defaults()
	if v, ok := all[KeyToasts]; ok {
		out.ToastsEnabled = v != "false"
	}
	if v, ok := all[KeyAutosave]; ok {
		out.AutosaveEnabled = v == "true"
	}
	if v, ok := all[KeyActiveTab]; ok && v != "" {
		out.ActiveTab = v
	}
	return out, nil
}

// Update writes one typed setting by its JSON name (toasts_enabled,
// autosave_enabled, active_tab).
func (s *Store) Update(ctx context.Context, name, value string) error {
	switch name {
	case "toasts_enabled", "autosave_enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", name, err)
		}
		key := KeyToasts
		if name == "autosave_enabled" {
			key = KeyAutosave
		}
		return s.Set(ctx, key, strconv.FormatBool(b))
	case "active_tab":
		return s.Set(ctx, KeyActiveTab, value)
	}
	return fmt.Errorf("%w: %s", ErrUnknownKey, name)
}
