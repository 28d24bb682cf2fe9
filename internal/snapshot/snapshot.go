// Package snapshot stores point-in-time copies of the expense list in a
// SQLite file, for backup and restore.
package snapshot

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/xpense/internal/expense"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DB is an open snapshot file.
type DB struct {
	db *sql.DB
}

// Info describes the snapshot currently held in a DB.
type Info struct {
	Count   int
	TakenAt time.Time
	Source  string
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// OpenExisting opens a snapshot that must already exist on disk.
func OpenExisting(dbPath string) (*DB, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", dbPath, err)
	}
	return Open(dbPath)
}

// Close closes the snapshot database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Write replaces the stored snapshot with items, in order.
func (d *DB) Write(items []expense.Expense, source string, takenAt time.Time) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM expenses"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO expenses (id, position, amount, category, date, notes)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, e := range items {
		_, err = stmt.Exec(e.ID, i, e.Amount, e.Category, e.Date.Format(time.RFC3339Nano), e.Notes)
		if err != nil {
			return fmt.Errorf("inserting expense %d: %w", e.ID, err)
		}
	}

	meta := map[string]string{
		"taken_at": takenAt.UTC().Format(time.RFC3339),
		"source":   source,
	}
	for k, v := range meta {
		_, err = tx.Exec("INSERT OR REPLACE INTO snapshot_meta (key, value) VALUES (?, ?)", k, v)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ReadAll returns the stored expenses in the order they were written.
func (d *DB) ReadAll() ([]expense.Expense, error) {
	rows, err := d.db.Query(`SELECT id, amount, category, date, notes
		FROM expenses ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []expense.Expense
	for rows.Next() {
		var e expense.Expense
		var date string
		if err := rows.Scan(&e.ID, &e.Amount, &e.Category, &date, &e.Notes); err != nil {
			return nil, err
		}
		e.Date, err = time.Parse(time.RFC3339Nano, date)
		if err != nil {
			return nil, fmt.Errorf("expense %d: bad date %q: %w", e.ID, date, err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// Info returns the size and metadata of the stored snapshot.
func (d *DB) Info() (Info, error) {
	var info Info
	if err := d.db.QueryRow("SELECT COUNT(*) FROM expenses").Scan(&info.Count); err != nil {
		return info, err
	}

	var takenAt string
	err := d.db.QueryRow("SELECT value FROM snapshot_meta WHERE key = 'taken_at'").Scan(&takenAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return info, nil
	case err != nil:
		return info, err
	}
	info.TakenAt, _ = time.Parse(time.RFC3339, takenAt)

	err = d.db.QueryRow("SELECT value FROM snapshot_meta WHERE key = 'source'").Scan(&info.Source)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return info, err
	}
	return info, nil
}
