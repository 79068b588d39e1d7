// Package store persists the conversion catalog: which decks have been
// converted, their content hashes, and per-run outcome counts.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Deck represents a row in the decks table.
type Deck struct {
	ID          int64  `json:"id"`
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	ContentHash string `json:"content_hash"`
	Status      string `json:"status"`
	Summary     string `json:"summary,omitempty"` // JSON summary of the last completed run
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Run represents a row in the runs table.
type Run struct {
	ID         int64  `json:"id"`
	DeckID     int64  `json:"deck_id"`
	Status     string `json:"status"`
	Clues      int    `json:"clues"`
	Dropped    int    `json:"dropped"`
	Images     int    `json:"images"`
	AudioClips int    `json:"audio_clips"`
	OutputPath string `json:"output_path"`
	CreatedAt  string `json:"created_at"`
}

// Catalog wraps the SQLite database for conversion history.
type Catalog struct {
	db *sql.DB
}

// Open opens (or creates) the catalog database at the given path and
// initialises the schema.
func Open(dbPath string) (*Catalog, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging catalog: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	// Connection pool settings for SQLite.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Catalog{db: db}, nil
}

// Close closes the underlying database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// DB returns the underlying *sql.DB for advanced queries.
func (c *Catalog) DB() *sql.DB {
	return c.db
}

// UpsertDeck inserts or updates a deck record keyed by path. Returns the
// deck ID.
func (c *Catalog) UpsertDeck(ctx context.Context, d Deck) (int64, error) {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO decks (path, filename, content_hash, status, summary)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			filename = excluded.filename,
			content_hash = excluded.content_hash,
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP
	`, d.Path, d.Filename, d.ContentHash, d.Status, d.Summary)
	if err != nil {
		return 0, err
	}

	// On the UPDATE branch LastInsertId reports the connection's last insert
	// rowid, which can belong to another table entirely. The path is the
	// identity, so look the id up by it unconditionally.
	var id int64
	row := c.db.QueryRowContext(ctx, "SELECT id FROM decks WHERE path = ?", d.Path)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetDeckByPath retrieves a deck by its file path.
func (c *Catalog) GetDeckByPath(ctx context.Context, path string) (*Deck, error) {
	d := &Deck{}
	var summary sql.NullString
	err := c.db.QueryRowContext(ctx, `
		SELECT id, path, filename, content_hash, status, summary, created_at, updated_at
		FROM decks WHERE path = ?
	`, path).Scan(&d.ID, &d.Path, &d.Filename, &d.ContentHash, &d.Status,
		&summary, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.Summary = summary.String
	return d, nil
}

// ListDecks returns all decks ordered by last update, newest first.
func (c *Catalog) ListDecks(ctx context.Context) ([]Deck, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, path, filename, content_hash, status, summary, created_at, updated_at
		FROM decks ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []Deck
	for rows.Next() {
		var d Deck
		var summary sql.NullString
		if err := rows.Scan(&d.ID, &d.Path, &d.Filename, &d.ContentHash, &d.Status,
			&summary, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.Summary = summary.String
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// UpdateDeckStatus updates just the status field.
func (c *Catalog) UpdateDeckStatus(ctx context.Context, id int64, status string) error {
	_, err := c.db.ExecContext(ctx,
		"UPDATE decks SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id)
	return err
}

// CompleteDeck marks a deck complete and stores its run summary JSON.
func (c *Catalog) CompleteDeck(ctx context.Context, id int64, summary string) error {
	_, err := c.db.ExecContext(ctx,
		"UPDATE decks SET status = 'complete', summary = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		summary, id)
	return err
}

// DeleteDeck removes a deck and cascades to its runs.
func (c *Catalog) DeleteDeck(ctx context.Context, id int64) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM decks WHERE id = ?", id)
	return err
}

// RecordRun appends one run to a deck's history. Returns the run ID.
func (c *Catalog) RecordRun(ctx context.Context, r Run) (int64, error) {
	res, err := c.db.ExecContext(ctx, `
		INSERT INTO runs (deck_id, status, clues, dropped, images, audio_clips, output_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.DeckID, r.Status, r.Clues, r.Dropped, r.Images, r.AudioClips, r.OutputPath)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RunsForDeck returns a deck's run history, newest first.
func (c *Catalog) RunsForDeck(ctx context.Context, deckID int64) ([]Run, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, deck_id, status, clues, dropped, images, audio_clips, output_path, created_at
		FROM runs WHERE deck_id = ? ORDER BY created_at DESC, id DESC
	`, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var out sql.NullString
		if err := rows.Scan(&r.ID, &r.DeckID, &r.Status, &r.Clues, &r.Dropped,
			&r.Images, &r.AudioClips, &out, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.OutputPath = out.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
