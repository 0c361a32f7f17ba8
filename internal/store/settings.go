package store

import (
	"database/sql"
	"errors"
	"strconv"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Well-known setting keys.
const (
	SettingCameraID      = "camera_id"
	SettingMotionThresh  = "motion_threshold"
	SettingMinConfidence = "min_confidence"
	SettingDetectionOn   = "detection_enabled"
	SettingListenAddr    = "listen_addr"
	SettingStaticDir     = "static_dir"
)

// SettingsRepository provides access to the key-value settings table.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves the value for a key. Returns ErrNotFound if the key is unset.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores a value for a key, overwriting any previous value.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now(),
	)
	return err
}

// Delete removes a key. Deleting an absent key is not an error.
func (r *SettingsRepository) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}

// All returns every stored setting.
func (r *SettingsRepository) All() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

// GetInt retrieves an integer setting, falling back to def when the key is
// unset or does not parse.
func (r *SettingsRepository) GetInt(key string, def int) int {
	value, err := r.Get(key)
	if err != nil {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

// GetFloat retrieves a float setting, falling back to def when the key is
// unset or does not parse.
func (r *SettingsRepository) GetFloat(key string, def float64) float64 {
	value, err := r.Get(key)
	if err != nil {
		return def
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return f
}

// GetBool retrieves a boolean setting, falling back to def when the key is
// unset or does not parse.
func (r *SettingsRepository) GetBool(key string, def bool) bool {
	value, err := r.Get(key)
	if err != nil {
		return def
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return b
}
