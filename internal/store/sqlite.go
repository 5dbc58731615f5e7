package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	sqliteFile     = "questnotes.sqlite"
	legacyFile     = "save.json"
	legacyMetaKey  = "legacy_save_imported"
	migrationsRoot = "migrations"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite is a Backend storing one row per key in Dir/questnotes.sqlite.
//
// When a key has never been written and Dir holds a legacy save.json, the
// file is imported once and left in place.
type SQLite struct {
	Dir string
}

func (s *SQLite) Path() string { return filepath.Join(s.Dir, sqliteFile) }

func (s *SQLite) legacyPath() string { return filepath.Join(s.Dir, legacyFile) }

func (s *SQLite) openSQLite(ctx context.Context) (*sql.DB, error) {
	if s.Dir == "" {
		return nil, errors.New("sqlite: missing data dir")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.Path())
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI and a CLI invocation share the file; busy_timeout
	// rides out short write locks.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := applyMigrations(ctx, db, migrationsFS, migrationsRoot); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	b, err := getEnvelope(ctx, db, key)
	if err != nil || b != nil {
		return b, err
	}
	return s.importLegacy(ctx, db, key)
}

func getEnvelope(ctx context.Context, db *sql.DB, key string) ([]byte, error) {
	var env string
	err := db.QueryRowContext(ctx, `SELECT envelope FROM saves WHERE key = ?`, key).Scan(&env)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(env), nil
}

func (s *SQLite) Put(ctx context.Context, key string, rec Record) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return putEnvelope(ctx, db, key, rec)
}

func putEnvelope(ctx context.Context, db *sql.DB, key string, rec Record) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO saves(key, envelope, version, saved_at_unixms) VALUES(?, ?, ?, ?)`,
		key, string(rec.Envelope), rec.Version, rec.SavedAt.UTC().UnixMilli())
	return err
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM saves WHERE key = ?`, key); err != nil {
		return err
	}
	// A cleared save must not be resurrected from save.json.
	if err := markLegacyImported(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// importLegacy copies save.json into the saves table the first time a key
// is read and nothing is stored yet.
func (s *SQLite) importLegacy(ctx context.Context, db *sql.DB, key string) ([]byte, error) {
	var done string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, legacyMetaKey).Scan(&done)
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	b, err := os.ReadFile(s.legacyPath())
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(b) == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec := Record{Envelope: b, Version: SaveVersion, SavedAt: time.Now().UTC()}
	var env Envelope
	if json.Unmarshal(b, &env) == nil {
		rec.Version = env.Version
		rec.SavedAt = env.savedAtOr(rec.SavedAt)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO saves(key, envelope, version, saved_at_unixms) VALUES(?, ?, ?, ?)`,
		key, string(rec.Envelope), rec.Version, rec.SavedAt.UnixMilli()); err != nil {
		return nil, err
	}
	if err := markLegacyImported(ctx, tx); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}

func markLegacyImported(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`,
		legacyMetaKey, time.Now().UTC().Format(time.RFC3339))
	return err
}
