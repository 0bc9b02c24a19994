// Package id provides identifier generation for all platform entities.
// Entities use UUIDv7 (time-ordered); orders additionally carry a short
// human-readable code used on labels and as movement reference.
package id

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// ID is a type alias for UUID, used across all entities.
type ID = uuid.UUID

// New generates a new UUIDv7 (time-ordered UUID).
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to V4 if V7 fails (should never happen)
		return uuid.New()
	}
	return id
}

// Parse converts string to ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse converts string to ID, panics on error.
// Use only for constants and tests.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns zero-value UUID.
func Nil() ID {
	return uuid.Nil
}

// IsNil checks if ID is zero-value.
func IsNil(id ID) bool {
	return id == uuid.Nil
}

// orderCodeAlphabet excludes nothing: codes are matched case-sensitively
// and always emitted upper-case.
const orderCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// OrderCodeLength is the length of generated order codes.
const OrderCodeLength = 6

// NewOrderCode generates a short upper-case alphanumeric order code.
// Uniqueness is not guaranteed by construction; callers must retry on a
// duplicate-key conflict when persisting.
func NewOrderCode() string {
	buf := make([]byte, OrderCodeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	for i, b := range buf {
		buf[i] = orderCodeAlphabet[int(b)%len(orderCodeAlphabet)]
	}
	return string(buf)
}
