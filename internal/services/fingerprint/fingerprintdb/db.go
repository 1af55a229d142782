package fingerprintdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	apperrors "github.com/abroxchat/abrox/internal/platform/errors"
	"github.com/abroxchat/abrox/internal/platform/logging"
	"github.com/abroxchat/abrox/internal/services/fingerprint/storage"
	"github.com/abroxchat/abrox/internal/services/fingerprint/storage/sqlite"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/abroxchat/abrox/internal/services/fingerprint/fingerprintdb"

// DefaultPath is the database file used when Config.Path is empty.
const DefaultPath = "data/abrox-fingerprints.db"

// ErrUninitialized is returned by every operation invoked before Init succeeds.
var ErrUninitialized = apperrors.New(apperrors.CodeStoreUninitialized, "fingerprint db not initialized")

// Opener opens the storage engine behind a DB.
type Opener func(ctx context.Context, path string) (storage.Store, error)

// Config names the local database.
type Config struct {
	Path string
}

// Option customizes a DB.
type Option func(*DB)

// WithOpener replaces the SQLite engine.
func WithOpener(opener Opener) Option {
	return func(db *DB) {
		if opener != nil {
			db.open = opener
		}
	}
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *zap.Logger) Option {
	return func(db *DB) {
		db.logger = logging.OrNop(logger)
	}
}

// WithTracerProvider sets the tracer provider; the global provider is used otherwise.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(db *DB) {
		if provider != nil {
			db.tracer = provider.Tracer(tracerName)
		}
	}
}

// DB is the fingerprint persistence helper.
type DB struct {
	path   string
	open   Opener
	logger *zap.Logger
	tracer trace.Tracer

	mu    sync.RWMutex
	store storage.Store
}

// New returns an uninitialized DB. Call Init before Save or GetAll.
func New(cfg Config, opts ...Option) *DB {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = DefaultPath
	}
	db := &DB{
		path:   path,
		open:   openSQLite,
		logger: zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func openSQLite(ctx context.Context, path string) (storage.Store, error) {
	return sqlite.Open(ctx, path)
}

// Init opens the database, creating the record store on first use.
//
// Init on an initialized DB is a no-op. Concurrent callers are serialized so
// only one connection is ever opened. Open failures are returned, not retried.
func (db *DB) Init(ctx context.Context) (err error) {
	ctx, span := db.tracer.Start(ctx, "fingerprintdb.Init", trace.WithAttributes(
		attribute.String("fingerprintdb.path", db.path),
	))
	defer func() { endSpan(span, err) }()

	db.mu.Lock()
	defer db.mu.Unlock()
	if db.store != nil {
		return nil
	}

	store, err := db.open(ctx, db.path)
	if err != nil {
		db.logger.Error("fingerprint db open failed", zap.String("path", db.path), zap.Error(err))
		return apperrors.Wrap(apperrors.CodeStorageEngine, "open fingerprint db", err)
	}
	db.store = store
	db.logger.Info("fingerprint db initialized", zap.String("path", db.path))
	return nil
}

// Initialized reports whether Init has succeeded and Close has not been called.
func (db *DB) Initialized() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.store != nil
}

// Save inserts one fingerprint and returns once its transaction has committed.
//
// A duplicate id fails with an error matching storage.ErrAlreadyExists and the
// first record is kept.
func (db *DB) Save(ctx context.Context, fp storage.Fingerprint) (err error) {
	ctx, span := db.tracer.Start(ctx, "fingerprintdb.Save", trace.WithAttributes(
		attribute.String("fingerprint.id", fp.ID),
	))
	defer func() { endSpan(span, err) }()

	store, err := db.current()
	if err != nil {
		return err
	}
	if strings.TrimSpace(fp.ID) == "" {
		return apperrors.New(apperrors.CodeFingerprintInvalid, "fingerprint id is required")
	}
	if err := store.InsertFingerprint(ctx, fp); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return apperrors.Wrap(apperrors.CodeFingerprintExists, "fingerprint "+fp.ID+" already exists", err)
		}
		return err
	}
	db.logger.Debug("fingerprint saved", zap.String("id", fp.ID))
	return nil
}

// GetAll returns every stored fingerprint in ascending id order.
func (db *DB) GetAll(ctx context.Context) (fingerprints []storage.Fingerprint, err error) {
	ctx, span := db.tracer.Start(ctx, "fingerprintdb.GetAll")
	defer func() {
		span.SetAttributes(attribute.Int("fingerprint.count", len(fingerprints)))
		endSpan(span, err)
	}()

	store, err := db.current()
	if err != nil {
		return nil, err
	}
	return store.ListFingerprints(ctx)
}

// Close releases the connection. The DB reports ErrUninitialized afterwards
// until Init is called again.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.store == nil {
		return nil
	}
	err := db.store.Close()
	db.store = nil
	if err != nil {
		return fmt.Errorf("close fingerprint db: %w", err)
	}
	return nil
}

func (db *DB) current() (storage.Store, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.store == nil {
		return nil, ErrUninitialized
	}
	return db.store, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
