// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger persists which products have already been entered into
// CvLAC, so repeated runs skip them instead of creating duplicates.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "submissions.db"

// Entry is one recorded submission.
type Entry struct {
	ProductID   string
	Title       string
	Status      string
	SubmittedAt time.Time
}

// Store is the sqlite-backed submission ledger.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database under dataDir, creating the
// schema when missing.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = ".autocvlac"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS submissions (
			product_id   TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			status       TEXT NOT NULL,
			submitted_at TIMESTAMP NOT NULL
		)`)
	return err
}

// Record stores (or refreshes) a submission outcome for a product.
func (s *Store) Record(productID, title, status string) error {
	_, err := s.db.Exec(`
		INSERT INTO submissions (product_id, title, status, submitted_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(product_id) DO UPDATE SET
			title = excluded.title,
			status = excluded.status,
			submitted_at = excluded.submitted_at`,
		productID, title, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("recording submission %s: %w", productID, err)
	}
	return nil
}

// Seen reports whether a product was already submitted.
func (s *Store) Seen(productID string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM submissions WHERE product_id = ?`, productID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying ledger for %s: %w", productID, err)
	}
	return true, nil
}

// List returns all entries, newest first.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT product_id, title, status, submitted_at
		FROM submissions ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ProductID, &e.Title, &e.Status, &e.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
