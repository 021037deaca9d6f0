// Package sqlitestore is the host-side slot store, one SQLite row per slot.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"azaymonitor/errcode"
)

// Store implements reminder.Store on SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens the database at path. Use ":memory:" in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		slot INTEGER PRIMARY KEY,
		record BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// Load returns the slot's record or errcode.NoRecord.
func (s *Store) Load(ctx context.Context, slot uint8) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec []byte
	err := s.db.QueryRowContext(ctx, "SELECT record FROM slots WHERE slot = ?", int(slot)).Scan(&rec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errcode.NoRecord
	}
	if err != nil {
		return nil, errcode.Wrap(errcode.StoreRead, "sqlitestore.load", err)
	}
	return rec, nil
}

func (s *Store) Save(ctx context.Context, slot uint8, rec []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (slot, record, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		int(slot), rec, time.Now().Unix(),
	)
	if err != nil {
		return errcode.Wrap(errcode.StoreWrite, "sqlitestore.save", err)
	}
	return nil
}

// Delete forgets a slot so the next Load reports errcode.NoRecord.
func (s *Store) Delete(ctx context.Context, slot uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM slots WHERE slot = ?", int(slot)); err != nil {
		return errcode.Wrap(errcode.StoreWrite, "sqlitestore.delete", err)
	}
	return nil
}

// UpdatedAt reports when a slot was last written.
func (s *Store) UpdatedAt(ctx context.Context, slot uint8) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ts int64
	err := s.db.QueryRowContext(ctx, "SELECT updated_at FROM slots WHERE slot = ?", int(slot)).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, errcode.NoRecord
	}
	if err != nil {
		return time.Time{}, errcode.Wrap(errcode.StoreRead, "sqlitestore.updated_at", err)
	}
	return time.Unix(ts, 0), nil
}
