package fingerprintdb

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	apperrors "github.com/abroxchat/abrox/internal/platform/errors"
	"github.com/abroxchat/abrox/internal/services/fingerprint/storage"
	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestInitSaveGetAllScenario(t *testing.T) {
	db := openTempDB(t)
	ctx := context.Background()

	fp := storage.Fingerprint{ID: "fp_abc12345", Device: "UA-string", Time: 1700000000000}
	if err := db.Save(ctx, fp); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if diff := cmp.Diff([]storage.Fingerprint{fp}, got); diff != "" {
		t.Fatalf("get all mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveThenGetAllReturnsEachRecordOnce(t *testing.T) {
	db := openTempDB(t)
	ctx := context.Background()

	saved := []storage.Fingerprint{
		{ID: "fp_00000003", Device: "c", Time: 3},
		{ID: "fp_00000001", Device: "a", Time: 1},
		{ID: "fp_00000002", Device: "b", Time: 2},
	}
	for _, fp := range saved {
		if err := db.Save(ctx, fp); err != nil {
			t.Fatalf("save %s: %v", fp.ID, err)
		}
	}

	got, err := db.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	want := []storage.Fingerprint{saved[1], saved[2], saved[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records should come back once each in id order (-want +got):\n%s", diff)
	}
}

func TestSaveDuplicateKeepsFirstRecord(t *testing.T) {
	db := openTempDB(t)
	ctx := context.Background()

	first := storage.Fingerprint{ID: "fp_same0001", Device: "first", Time: 10}
	if err := db.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	err := db.Save(ctx, storage.Fingerprint{ID: "fp_same0001", Device: "second", Time: 20})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if code := apperrors.CodeOf(err); code != apperrors.CodeFingerprintExists {
		t.Fatalf("code = %q, want %q", code, apperrors.CodeFingerprintExists)
	}

	got, err := db.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if diff := cmp.Diff([]storage.Fingerprint{first}, got); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestGetAllOnEmptyStore(t *testing.T) {
	db := openTempDB(t)
	got, err := db.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
}

func TestOperationsBeforeInitFailWithoutTouchingEngine(t *testing.T) {
	engine := &fakeStore{}
	var opens atomic.Int32
	db := New(Config{Path: "unused.db"}, WithOpener(func(context.Context, string) (storage.Store, error) {
		opens.Add(1)
		return engine, nil
	}))

	err := db.Save(context.Background(), storage.Fingerprint{ID: "fp_early001"})
	if !errors.Is(err, ErrUninitialized) {
		t.Fatalf("save error = %v, want ErrUninitialized", err)
	}
	if apperrors.CodeOf(err) != apperrors.CodeStoreUninitialized {
		t.Fatalf("save error code = %q", apperrors.CodeOf(err))
	}
	if _, err := db.GetAll(context.Background()); !errors.Is(err, ErrUninitialized) {
		t.Fatalf("get all error = %v, want ErrUninitialized", err)
	}
	if opens.Load() != 0 {
		t.Fatalf("expected no engine open, got %d", opens.Load())
	}
	if engine.inserts.Load() != 0 || engine.lists.Load() != 0 {
		t.Fatalf("expected no engine calls, got %d inserts and %d lists", engine.inserts.Load(), engine.lists.Load())
	}
	if db.Initialized() {
		t.Fatal("expected db to report uninitialized")
	}
}

func TestInitIsIdempotentAndRaceFree(t *testing.T) {
	var opens atomic.Int32
	db := New(Config{}, WithOpener(func(context.Context, string) (storage.Store, error) {
		opens.Add(1)
		return &fakeStore{}, nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := db.Init(context.Background()); err != nil {
				t.Errorf("init: %v", err)
			}
		}()
	}
	wg.Wait()

	if opens.Load() != 1 {
		t.Fatalf("expected exactly one open, got %d", opens.Load())
	}
	if !db.Initialized() {
		t.Fatal("expected db to be initialized")
	}
}

func TestInitPropagatesOpenError(t *testing.T) {
	openErr := errors.New("quota exceeded")
	db := New(Config{}, WithOpener(func(context.Context, string) (storage.Store, error) {
		return nil, openErr
	}))

	err := db.Init(context.Background())
	if !errors.Is(err, openErr) {
		t.Fatalf("init error = %v, want %v", err, openErr)
	}
	if code := apperrors.CodeOf(err); code != apperrors.CodeStorageEngine {
		t.Fatalf("code = %q, want %q", code, apperrors.CodeStorageEngine)
	}
	if _, err := db.GetAll(context.Background()); !errors.Is(err, ErrUninitialized) {
		t.Fatalf("get all after failed init = %v, want ErrUninitialized", err)
	}
}

func TestInitUsesDefaultPath(t *testing.T) {
	var gotPath string
	db := New(Config{Path: "  "}, WithOpener(func(_ context.Context, path string) (storage.Store, error) {
		gotPath = path
		return &fakeStore{}, nil
	}))
	if err := db.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if gotPath != DefaultPath {
		t.Fatalf("path = %q, want %q", gotPath, DefaultPath)
	}
}

func TestSaveRejectsEmptyID(t *testing.T) {
	engine := &fakeStore{}
	db := initFake(t, engine)

	err := db.Save(context.Background(), storage.Fingerprint{Device: "no id"})
	if apperrors.CodeOf(err) != apperrors.CodeFingerprintInvalid {
		t.Fatalf("save error = %v, want %s", err, apperrors.CodeFingerprintInvalid)
	}
	if engine.inserts.Load() != 0 {
		t.Fatal("expected invalid fingerprint to skip the engine")
	}
}

func TestEngineErrorsPropagateVerbatim(t *testing.T) {
	engineErr := errors.New("transaction aborted")
	engine := &fakeStore{insertErr: engineErr, listErr: engineErr}
	db := initFake(t, engine)

	if err := db.Save(context.Background(), storage.Fingerprint{ID: "fp_abort001"}); !errors.Is(err, engineErr) {
		t.Fatalf("save error = %v, want %v", err, engineErr)
	}
	if _, err := db.GetAll(context.Background()); !errors.Is(err, engineErr) {
		t.Fatalf("get all error = %v, want %v", err, engineErr)
	}
}

func TestCloseReturnsToUninitialized(t *testing.T) {
	engine := &fakeStore{}
	db := initFake(t, engine)

	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !engine.closed.Load() {
		t.Fatal("expected engine to be closed")
	}
	if err := db.Save(context.Background(), storage.Fingerprint{ID: "fp_closed01"}); !errors.Is(err, ErrUninitialized) {
		t.Fatalf("save after close = %v, want ErrUninitialized", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestOperationsRecordSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	db := New(Config{}, WithTracerProvider(provider), WithOpener(func(context.Context, string) (storage.Store, error) {
		return &fakeStore{}, nil
	}))
	if err := db.Save(context.Background(), storage.Fingerprint{ID: "fp_early001"}); err == nil {
		t.Fatal("expected uninitialized error")
	}
	if err := db.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := db.GetAll(context.Background()); err != nil {
		t.Fatalf("get all: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	wantNames := []string{"fingerprintdb.Save", "fingerprintdb.Init", "fingerprintdb.GetAll"}
	for i, span := range spans {
		if span.Name() != wantNames[i] {
			t.Fatalf("span %d = %q, want %q", i, span.Name(), wantNames[i])
		}
	}
	if spans[0].Status().Code != codes.Error {
		t.Fatalf("expected failed save span to carry error status, got %v", spans[0].Status().Code)
	}
}

func openTempDB(t *testing.T) *DB {
	t.Helper()
	db := New(Config{Path: filepath.Join(t.TempDir(), "fingerprints.db")})
	if err := db.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return db
}

func initFake(t *testing.T, engine *fakeStore) *DB {
	t.Helper()
	db := New(Config{}, WithOpener(func(context.Context, string) (storage.Store, error) {
		return engine, nil
	}))
	if err := db.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return db
}

type fakeStore struct {
	insertErr error
	listErr   error
	inserts   atomic.Int32
	lists     atomic.Int32
	closed    atomic.Bool
}

func (f *fakeStore) InsertFingerprint(context.Context, storage.Fingerprint) error {
	f.inserts.Add(1)
	return f.insertErr
}

func (f *fakeStore) ListFingerprints(context.Context) ([]storage.Fingerprint, error) {
	f.lists.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []storage.Fingerprint{}, nil
}

func (f *fakeStore) Close() error {
	f.closed.Store(true)
	return nil
}
