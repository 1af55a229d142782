package storage

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyExists indicates a fingerprint with the same id is already stored.
var ErrAlreadyExists = errors.New("record already exists")

// Fingerprint is one persisted identifying payload.
type Fingerprint struct {
	// ID is the caller-generated unique key, e.g. "fp_abc12345".
	ID string
	// Device is an opaque device descriptor such as a user agent.
	Device string
	// Time is the capture instant in milliseconds since the Unix epoch.
	Time int64
	// Attributes carries any extra JSON-compatible fields of the record.
	// Integers are read back as int64 (uint64 above math.MaxInt64) and other
	// numbers as float64.
	Attributes map[string]any
}

// CapturedAt returns Time as a UTC time.Time.
func (f Fingerprint) CapturedAt() time.Time {
	return time.UnixMilli(f.Time).UTC()
}

// Store is the storage engine contract behind the fingerprint helper.
//
// InsertFingerprint runs one read-write transaction and returns only after it
// commits. ListFingerprints runs one read-only transaction and returns every
// record in ascending id order.
type Store interface {
	InsertFingerprint(ctx context.Context, fp Fingerprint) error
	ListFingerprints(ctx context.Context) ([]Fingerprint, error)
	Close() error
}
