package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sqlitemigrate "github.com/abroxchat/abrox/internal/platform/storage/sqlitemigrate"
	"github.com/abroxchat/abrox/internal/services/fingerprint/storage"
	"github.com/abroxchat/abrox/internal/services/fingerprint/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// SchemaVersion is the only schema version this store knows how to open.
const SchemaVersion = 1

// Store persists fingerprint records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating on first use) a fingerprint database file and applies
// the embedded schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(FULL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	version, err := sqlitemigrate.SchemaVersion(ctx, sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	if version != SchemaVersion {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("unsupported schema version %d, want %d", version, SchemaVersion)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// InsertFingerprint adds one record in a read-write transaction and returns
// once the transaction has committed.
func (s *Store) InsertFingerprint(ctx context.Context, fp storage.Fingerprint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(fp.ID) == "" {
		return fmt.Errorf("fingerprint id is required")
	}
	attributes, err := encodeAttributes(fp.Attributes)
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert fingerprint: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO fingerprints (id, device, time_ms, attributes) VALUES (?, ?, ?, ?)`,
		fp.ID,
		fp.Device,
		fp.Time,
		attributes,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert fingerprint %s: %w: %w", fp.ID, storage.ErrAlreadyExists, err)
		}
		return fmt.Errorf("insert fingerprint %s: %w", fp.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fingerprint %s: %w", fp.ID, err)
	}
	return nil
}

// ListFingerprints returns every record, ascending by id, from a read-only
// transaction. An empty store yields an empty slice.
func (s *Store) ListFingerprints(ctx context.Context) ([]storage.Fingerprint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin list fingerprints: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx,
		`SELECT id, device, time_ms, attributes
		   FROM fingerprints
		  ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list fingerprints: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	fingerprints := make([]storage.Fingerprint, 0)
	for rows.Next() {
		var fp storage.Fingerprint
		var attributes []byte
		if err := rows.Scan(&fp.ID, &fp.Device, &fp.Time, &attributes); err != nil {
			return nil, fmt.Errorf("scan fingerprint: %w", err)
		}
		fp.Attributes, err = decodeAttributes(attributes)
		if err != nil {
			return nil, fmt.Errorf("decode fingerprint %s: %w", fp.ID, err)
		}
		fingerprints = append(fingerprints, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fingerprints: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("finish list fingerprints: %w", err)
	}
	return fingerprints, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "fingerprints.id")
}

var _ storage.Store = (*Store)(nil)
