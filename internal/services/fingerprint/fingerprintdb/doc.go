// Package fingerprintdb is the fingerprint persistence helper.
//
// A DB owns at most one open connection to the local fingerprint database.
// Init opens it (creating the record store on first use), Save inserts one
// record per call and GetAll returns every stored record. Save and GetAll
// fail immediately with ErrUninitialized until Init has succeeded; nothing is
// queued or opened lazily.
package fingerprintdb
