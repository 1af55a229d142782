// Package sqlite provides the fingerprint record store backed by SQLite.
//
// The schema is created by embedded migrations on first open and is never
// migrated further; the single fingerprints table is keyed by id.
package sqlite
