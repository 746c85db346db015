package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/atrium-legal/jurisync-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
)

var _ driven.DocumentStore = (*Store)(nil)

// Store is a SQLite-backed document store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.jurisync/data/cases.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".jurisync", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cases.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Get retrieves the document stored under key.
func (s *Store) Get(ctx context.Context, key string) (*driven.StoredDocument, error) {
	var fieldsJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT fields FROM documents WHERE key = ?", key).Scan(&fieldsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return &driven.StoredDocument{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying document: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
		return nil, fmt.Errorf("unmarshaling fields: %w", err)
	}

	return &driven.StoredDocument{Exists: true, Fields: fields}, nil
}

// SetMerge overlays fields onto the stored document inside a
// transaction. Nested maps merge recursively; everything else
// replaces.
func (s *Store) SetMerge(ctx context.Context, key string, fields map[string]any) error {
	incoming, err := normaliseFields(fields)
	if err != nil {
		return fmt.Errorf("normalising fields: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	merged := incoming
	var storedJSON string
	err = tx.QueryRowContext(ctx,
		"SELECT fields FROM documents WHERE key = ?", key).Scan(&storedJSON)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// First write under this key.
	case err != nil:
		return fmt.Errorf("querying document: %w", err)
	default:
		var stored map[string]any
		if err := json.Unmarshal([]byte(storedJSON), &stored); err != nil {
			return fmt.Errorf("unmarshaling stored fields: %w", err)
		}
		merged = mergeFields(stored, incoming)
	}

	mergedJSON, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("marshalling fields: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (key, fields, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			fields = excluded.fields,
			updated_at = excluded.updated_at
	`, key, string(mergedJSON), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

func normaliseFields(fields map[string]any) (map[string]any, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func mergeFields(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if prev, ok := out[k].(map[string]any); ok {
				out[k] = mergeFields(prev, sub)
				continue
			}
		}
		out[k] = v
	}
	return out
}
