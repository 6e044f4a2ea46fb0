// File: catalog.go
// Title: Command Definition Catalog
// Description: SQLite store for command definitions imported from
//              manifests. Catalog entries are registered as dynamic
//              commands when the CLI starts with the catalog enabled.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-11
// Modified: 2025-11-11
//
// Change History:
// - 2025-11-11 v0.1.0: Initial implementation

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	ulerror "github.com/msto63/unilang/core/error"
	ullog "github.com/msto63/unilang/core/log"
	"github.com/msto63/unilang/unilang/command"
	"github.com/msto63/unilang/unilang/validation"
)

// Entry is one stored command definition
type Entry struct {
	ID         string                     `json:"id"`
	Name       string                     `json:"name"`
	Version    string                     `json:"version"`
	Source     string                     `json:"source"`
	Definition *command.CommandDefinition `json:"definition"`
	CreatedAt  time.Time                  `json:"created_at"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

// Config holds configuration for the catalog
type Config struct {
	Path   string
	Logger *ullog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{Path: "./data/unilang.db"}
}

// Store is a SQLite-backed definition catalog
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *ullog.Logger
}

// Open opens or creates the catalog database at cfg.Path
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		cfg.Path = DefaultConfig().Path
	}
	if cfg.Logger == nil {
		cfg.Logger = ullog.GetDefault()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, dbError(err, "failed to create catalog directory", "catalog.Open").
			WithDetail("path", cfg.Path)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, dbError(err, "failed to open catalog", "catalog.Open").WithDetail("path", cfg.Path)
	}

	s := &Store{db: db, logger: cfg.Logger.WithField("component", "unilang-catalog")}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize catalog schema", "catalog.Open").WithDetail("path", cfg.Path)
	}

	s.logger.Debug("Catalog opened", ullog.Fields{"path": cfg.Path})
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS commands (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		version TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		definition TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_commands_source ON commands(source);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Put validates def and stores it under its full name, replacing an
// existing entry of the same name
func (s *Store) Put(ctx context.Context, def *command.CommandDefinition, source string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, dbError(err, "failed to begin transaction", "catalog.Put")
	}
	defer tx.Rollback()

	entry, err := put(ctx, tx, def, source)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, dbError(err, "failed to commit definition", "catalog.Put")
	}
	return entry, nil
}

// Import stores all definitions in one transaction. Nothing is stored when
// one of them is invalid.
func (s *Store) Import(ctx context.Context, defs []*command.CommandDefinition, source string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, dbError(err, "failed to begin transaction", "catalog.Import")
	}
	defer tx.Rollback()

	for _, def := range defs {
		if _, err := put(ctx, tx, def, source); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, dbError(err, "failed to commit import", "catalog.Import")
	}

	s.logger.Info("Definitions imported", ullog.Fields{"count": len(defs), "source": source})
	return len(defs), nil
}

func put(ctx context.Context, tx *sql.Tx, def *command.CommandDefinition, source string) (*Entry, error) {
	if err := validation.ValidateDefinition(def); err != nil {
		return nil, ulerror.Wrap(err, "refusing to store invalid definition").
			WithOperation("catalog.Put")
	}
	data, err := json.Marshal(def)
	if err != nil {
		return nil, ulerror.Wrap(err, "failed to encode definition").
			WithCode(ulerror.CodeInternal).
			WithOperation("catalog.Put")
	}

	now := time.Now().UTC()
	entry := &Entry{
		ID:         uuid.New().String(),
		Name:       def.FullName(),
		Version:    def.Version,
		Source:     source,
		Definition: def.Clone(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = tx.QueryRowContext(ctx, `SELECT id, created_at FROM commands WHERE name = ?`, entry.Name).
		Scan(&entry.ID, &entry.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
			INSERT INTO commands (id, name, version, source, definition, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, entry.ID, entry.Name, entry.Version, entry.Source, string(data), entry.CreatedAt, entry.UpdatedAt)
	case err == nil:
		_, err = tx.ExecContext(ctx, `
			UPDATE commands SET version = ?, source = ?, definition = ?, updated_at = ?
			WHERE id = ?
		`, entry.Version, entry.Source, string(data), entry.UpdatedAt, entry.ID)
	}
	if err != nil {
		return nil, dbError(err, "failed to store definition", "catalog.Put").WithDetail("command", entry.Name)
	}
	return entry, nil
}

// Get returns the entry stored under the full name
func (s *Store) Get(ctx context.Context, name string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = validation.NormalizeName(name)
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, version, source, definition, created_at, updated_at
		FROM commands WHERE name = ?
	`, name)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ulerror.Newf("command '%s' is not in the catalog", name).
			WithCode(ulerror.CodeNotFound).
			WithOperation("catalog.Get")
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns all entries ordered by name
func (s *Store) List(ctx context.Context) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, version, source, definition, created_at, updated_at
		FROM commands ORDER BY name
	`)
	if err != nil {
		return nil, dbError(err, "failed to list catalog", "catalog.List")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to list catalog", "catalog.List")
	}
	return entries, nil
}

// Definitions returns the stored definitions ordered by name
func (s *Store) Definitions(ctx context.Context) ([]*command.CommandDefinition, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	defs := make([]*command.CommandDefinition, len(entries))
	for i, e := range entries {
		defs[i] = e.Definition
	}
	return defs, nil
}

// Remove deletes the entry stored under the full name
func (s *Store) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = validation.NormalizeName(name)
	result, err := s.db.ExecContext(ctx, `DELETE FROM commands WHERE name = ?`, name)
	if err != nil {
		return dbError(err, "failed to remove definition", "catalog.Remove").WithDetail("command", name)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ulerror.Newf("command '%s' is not in the catalog", name).
			WithCode(ulerror.CodeNotFound).
			WithOperation("catalog.Remove")
	}
	s.logger.Info("Definition removed", ullog.Fields{"command": name})
	return nil
}

// Count returns the number of stored definitions
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM commands`).Scan(&n); err != nil {
		return 0, dbError(err, "failed to count catalog", "catalog.Count")
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*Entry, error) {
	var entry Entry
	var data string
	err := row.Scan(&entry.ID, &entry.Name, &entry.Version, &entry.Source, &data, &entry.CreatedAt, &entry.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, dbError(err, "failed to read catalog entry", "catalog.scan")
	}

	var def command.CommandDefinition
	if err := json.Unmarshal([]byte(data), &def); err != nil {
		return nil, ulerror.Wrap(err, "stored definition is corrupt").
			WithCode(ulerror.CodeDatabaseError).
			WithOperation("catalog.scan").
			WithDetail("command", entry.Name)
	}
	entry.Definition = &def
	return &entry, nil
}

func dbError(err error, msg, op string) *ulerror.Error {
	return ulerror.Wrap(err, msg).
		WithCode(ulerror.CodeDatabaseError).
		WithOperation(op)
}
