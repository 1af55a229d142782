// Package id generates opaque identifiers for persisted records.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FingerprintPrefix marks identifiers minted for fingerprint records.
const FingerprintPrefix = "fp_"

const fingerprintSuffixLen = 8

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a random UUIDv4 encoded as 26 lowercase base32 characters.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(value[:])), nil
}

// NewFingerprintID returns a short fingerprint id such as "fp_k3q9zr2m".
func NewFingerprintID() (string, error) {
	value, err := NewID()
	if err != nil {
		return "", err
	}
	return FingerprintPrefix + value[:fingerprintSuffixLen], nil
}
