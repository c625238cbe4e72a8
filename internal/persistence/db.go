// Package persistence provides SQLite-backed save slots. Each slot holds
// one versioned JSON snapshot of the whole world.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/MarcinGorn/businesssuite/internal/world"
)

// SnapshotVersion is the payload format version. A slot written with a
// different version is treated as unreadable, not an error.
const SnapshotVersion = 1

// DB wraps a SQLite connection holding save slots.
type DB struct {
	conn *sqlx.DB
}

// SlotInfo describes one occupied save slot.
type SlotInfo struct {
	Slot     int       `db:"slot" json:"slot"`
	Version  int       `db:"version" json:"version"`
	SavedAt  time.Time `db:"saved_at" json:"saved_at"`
	Autosave bool      `db:"autosave" json:"autosave"`
}

// Open opens or creates a save database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot INTEGER PRIMARY KEY,
		version INTEGER NOT NULL,
		saved_at TIMESTAMP NOT NULL,
		autosave INTEGER NOT NULL,
		payload TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Save writes the full world snapshot into a slot, replacing any previous
// save there.
func (db *DB) Save(state *world.State, slot int, autosave bool) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	flag := 0
	if autosave {
		flag = 1
	}
	_, err = db.conn.Exec(
		`INSERT OR REPLACE INTO saves (slot, version, saved_at, autosave, payload)
		 VALUES (?, ?, ?, ?, ?)`,
		slot, SnapshotVersion, time.Now().UTC(), flag, string(payload),
	)
	if err != nil {
		return fmt.Errorf("save slot %d: %w", slot, err)
	}

	slog.Info("world saved", "slot", slot, "autosave", autosave,
		"tick", state.Clock.Tick, "bytes", len(payload))
	return nil
}

// Load reads a slot. A missing slot, an unknown snapshot version, or an
// unreadable payload returns (nil, nil): there is no state available, and
// the caller keeps whatever world it already has.
func (db *DB) Load(slot int) (*world.State, error) {
	var row struct {
		Version int    `db:"version"`
		Payload string `db:"payload"`
	}
	err := db.conn.Get(&row, "SELECT version, payload FROM saves WHERE slot = ?", slot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %d: %w", slot, err)
	}

	if row.Version != SnapshotVersion {
		slog.Warn("save slot has unknown version, ignoring",
			"slot", slot, "version", row.Version)
		return nil, nil
	}

	var state world.State
	if err := json.Unmarshal([]byte(row.Payload), &state); err != nil {
		slog.Warn("save slot payload unreadable, ignoring",
			"slot", slot, "error", err)
		return nil, nil
	}

	slog.Info("world loaded", "slot", slot, "tick", state.Clock.Tick)
	return &state, nil
}

// ListSlots returns every occupied slot in ascending order.
func (db *DB) ListSlots() ([]SlotInfo, error) {
	var slots []SlotInfo
	err := db.conn.Select(&slots,
		"SELECT slot, version, saved_at, autosave FROM saves ORDER BY slot")
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", key, value)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
