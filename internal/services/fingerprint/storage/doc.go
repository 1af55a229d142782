// Package storage declares the persistence contract for fingerprint records.
//
// Records are insert-only: the store never updates or deletes a fingerprint,
// and the caller-supplied id is the only identity a record has.
package storage
