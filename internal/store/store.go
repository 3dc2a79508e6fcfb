// Package store keeps saved games in a sqlite file. Each slot holds a gob
// encoded [session.Snapshot].
package store

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"sync"
	"unicode"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vancomm/minesweeper/internal/session"
)

const (
	DefaultTable = "saves"
	MaxSlotLen   = 64
)

var (
	ErrBadTable = errors.New("bad table name")
	ErrBadSlot  = errors.New("bad slot name")
	ErrNotFound = errors.New("save slot not found")
)

type Saves struct {
	mu    sync.Mutex
	table string
	db    *sql.DB
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

// ValidSlot reports whether name can be used as a save slot: 1 to
// [MaxSlotLen] printable characters without spaces.
func ValidSlot(name string) bool {
	if name == "" || len(name) > MaxSlotLen {
		return false
	}
	for _, c := range name {
		if !unicode.IsPrint(c) || unicode.IsSpace(c) {
			return false
		}
	}
	return true
}

// Open connects to the sqlite file at path, creating it if missing.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	return db, nil
}

// New prepares table in db for saved games. table may only contain upper- or
// lowercase Latin letters since it is spliced into the queries.
func New(db *sql.DB, table string) (*Saves, error) {
	if !isLetters(table) {
		return nil, ErrBadTable
	}

	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS ` + table + ` (
	slot		TEXT PRIMARY KEY,
	snapshot	BLOB NOT NULL,
	saved_at	TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`)
	if err != nil {
		return nil, err
	}
	return &Saves{table: table, db: db}, nil
}

// Put writes snap into slot, overwriting any previous save there.
func (s *Saves) Put(slot string, snap session.Snapshot) error {
	if !ValidSlot(slot) {
		return ErrBadSlot
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
INSERT INTO `+s.table+` (slot, snapshot)
VALUES(?, ?)
ON CONFLICT(slot)
DO UPDATE SET snapshot=excluded.snapshot, saved_at=CURRENT_TIMESTAMP;`,
		slot, buf.Bytes())
	return err
}

// Get reads the snapshot stored in slot. A missing slot yields [ErrNotFound].
func (s *Saves) Get(slot string) (session.Snapshot, error) {
	var (
		snap session.Snapshot
		raw  []byte
	)
	err := s.db.QueryRow(
		`SELECT snapshot FROM `+s.table+` WHERE slot = ?;`, slot,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, ErrNotFound
	} else if err != nil {
		return snap, err
	}
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decode slot %q: %w", slot, err)
	}
	return snap, nil
}

// Delete removes slot without checking if it existed.
func (s *Saves) Delete(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM `+s.table+` WHERE slot = ?;`, slot)
	return err
}

func (s *Saves) Count() (count int, err error) {
	err = s.db.QueryRow(`SELECT COUNT(*) FROM ` + s.table + `;`).Scan(&count)
	return
}

// Slots lists every slot name in ascending order.
func (s *Saves) Slots() ([]string, error) {
	rows, err := s.db.Query(`SELECT slot FROM ` + s.table + ` ORDER BY slot;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]string, 0)
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}
