package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/orbit-labs/gazer-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
)

// Store is the SQLite-backed run store.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.RunStore = (*Store)(nil)

// NewStore creates the run store at the specified data directory.
// If dataDir is empty, defaults to ~/.gazer/data/runs.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".gazer", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "runs.db")

	// WAL mode so a crashed run never corrupts the resume state.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// EnsureRun creates the run row for a target if absent and returns its
// run ID.
func (s *Store) EnsureRun(ctx context.Context, target string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM runs WHERE target = ?", target).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("looking up run for %s: %w", target, err)
	}

	id = uuid.New().String()
	_, err = s.db.ExecContext(ctx, "INSERT INTO runs (id, target) VALUES (?, ?)", id, target)
	if err != nil {
		return "", fmt.Errorf("creating run for %s: %w", target, err)
	}
	return id, nil
}

// Keys returns every key recorded for the target. An unknown target
// yields an empty set.
func (s *Store) Keys(ctx context.Context, target string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT k.key FROM run_keys k
		JOIN runs r ON r.id = k.run_id
		WHERE r.target = ?
	`, target)
	if err != nil {
		return nil, fmt.Errorf("querying keys for %s: %w", target, err)
	}
	defer rows.Close()

	keys := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys[key] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating keys: %w", err)
	}
	return keys, nil
}

// Record marks a key as processed for the target. Recording the same
// key twice is a no-op.
func (s *Store) Record(ctx context.Context, target, key string) error {
	runID, err := s.EnsureRun(ctx, target)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO run_keys (run_id, key) VALUES (?, ?)
		ON CONFLICT(run_id, key) DO NOTHING
	`, runID, key)
	if err != nil {
		return fmt.Errorf("recording key %s: %w", key, err)
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
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
