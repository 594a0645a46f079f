package form

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const createDraftTable = `CREATE TABLE IF NOT EXISTS drafts (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteDraftCache stores the draft in a local SQLite file
type SQLiteDraftCache struct {
	db *sql.DB
}

// OpenSQLiteDraftCache opens (creating if needed) the draft database at path
func OpenSQLiteDraftCache(path string) (*SQLiteDraftCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create draft directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open draft database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createDraftTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create drafts table: %w", err)
	}

	return &SQLiteDraftCache{db: db}, nil
}

func (c *SQLiteDraftCache) Load() (*Draft, error) {
	var raw string
	err := c.db.QueryRow(`SELECT value FROM drafts WHERE key = ?`, DraftKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoDraft
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return decodeDraft([]byte(raw))
}

func (c *SQLiteDraftCache) Save(d *Draft) error {
	raw, err := encodeDraft(d)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(
		`INSERT INTO drafts (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		DraftKey, string(raw), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (c *SQLiteDraftCache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM drafts WHERE key = ?`, DraftKey); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

func (c *SQLiteDraftCache) Close() error {
	return c.db.Close()
}
