package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS web_storage (
	origin     TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (origin, key)
)`

// OriginStorage is persistent origin-scoped storage: every process that
// opens the same file with the same origin sees the same entries.
type OriginStorage struct {
	db     *sql.DB
	origin string
}

func Open(path, origin string) (*OriginStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if origin == "" {
		return nil, fmt.Errorf("storage origin is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite storage: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite storage: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create storage schema: %w", err)
	}

	return &OriginStorage{db: db, origin: origin}, nil
}

func (s *OriginStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM web_storage WHERE origin = ? AND key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, query, s.origin, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item %s: %w", key, err)
	}
	return value, true, nil
}

func (s *OriginStorage) SetItem(ctx context.Context, key, value string) error {
	query := `INSERT INTO web_storage (origin, key, value) VALUES (?, ?, ?)
		ON CONFLICT (origin, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := s.db.ExecContext(ctx, query, s.origin, key, value); err != nil {
		return fmt.Errorf("set item %s: %w", key, err)
	}
	return nil
}

func (s *OriginStorage) RemoveItem(ctx context.Context, key string) error {
	query := `DELETE FROM web_storage WHERE origin = ? AND key = ?`

	if _, err := s.db.ExecContext(ctx, query, s.origin, key); err != nil {
		return fmt.Errorf("remove item %s: %w", key, err)
	}
	return nil
}

func (s *OriginStorage) Close() error {
	return s.db.Close()
}
