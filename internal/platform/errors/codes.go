// Package errors provides structured error handling for Abrox services.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Fingerprint store errors
	CodeStoreUninitialized Code = "FINGERPRINT_STORE_UNINITIALIZED"
	CodeFingerprintInvalid Code = "FINGERPRINT_INVALID"
	CodeFingerprintExists  Code = "FINGERPRINT_ALREADY_EXISTS"
	CodeStorageEngine      Code = "STORAGE_ENGINE_FAILURE"

	// Rendering errors
	CodeIconUnavailable Code = "ICON_UNAVAILABLE"
	CodeInvalidRequest  Code = "INVALID_REQUEST"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeFingerprintInvalid,
		CodeInvalidRequest:
		return http.StatusBadRequest

	case CodeStoreUninitialized:
		return http.StatusServiceUnavailable

	case CodeFingerprintExists:
		return http.StatusConflict

	case CodeIconUnavailable:
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}
