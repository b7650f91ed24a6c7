package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"getthetext/internal/extractor"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// sqlite allows one writer; workers share a single connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS extractions (
			key TEXT PRIMARY KEY,
			filepath TEXT,
			result JSON,
			updated_at INTEGER
		);`,
		`CREATE INDEX IF NOT EXISTS idx_extractions_file ON extractions(filepath);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// CacheKey derives the cache key of one file. Records embed the path as
// given and diagnostics its absolute form, so both take part in the key.
func CacheKey(path string, content []byte, markers extractor.Markers) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	h := sha256.New()
	h.Write([]byte(markers.Fingerprint()))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write([]byte(abs))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// --- ResultCache Implementation ---

func (s *SQLiteStore) Get(ctx context.Context, key string) (*extractor.FileResult, bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT result FROM extractions WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query extraction: %w", err)
	}

	var res extractor.FileResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false, fmt.Errorf("failed to decode extraction: %w", err)
	}
	return &res, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, key string, res *extractor.FileResult) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode extraction: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO extractions (key, filepath, result, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			filepath=excluded.filepath,
			result=excluded.result,
			updated_at=excluded.updated_at
	`, key, res.File, raw, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save extraction: %w", err)
	}
	return nil
}

// PruneFile drops every entry of a file except keep. Entries for older
// contents of a file are never read again once it changes.
func (s *SQLiteStore) PruneFile(ctx context.Context, path, keep string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM extractions WHERE filepath = ? AND key != ?`, path, keep)
	return err
}

var _ ResultCache = (*SQLiteStore)(nil)
