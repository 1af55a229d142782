// Package app serves the fingerprint roster and UI fragments over HTTP.
package app
