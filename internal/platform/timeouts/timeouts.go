// Package timeouts defines shared timeout constants used across services.
// Centralizing these values prevents drift between service boundaries and
// makes the durations discoverable.
package timeouts

import "time"

// StorageOpen caps how long opening and migrating the fingerprint database
// may take during startup.
const StorageOpen = 10 * time.Second

// StorageOperation caps one fingerprint save or list issued by a command.
const StorageOperation = 5 * time.Second

// AvatarProbe caps the server-side check that an avatar image loads.
const AvatarProbe = 2 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
