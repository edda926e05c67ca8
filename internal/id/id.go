// Package id generates session identifiers for log sinks.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator produces session identifiers.
type Generator interface {
	NewSessionID() (string, error)
}

// UUIDGenerator creates time-ordered UUIDv7 session IDs.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewSessionID returns a UUIDv7 string.
func (UUIDGenerator) NewSessionID() (string, error) {
	sid, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate session uuid7: %w", err)
	}
	return sid.String(), nil
}

// Static hands out the same ID every time.
type Static string

// NewSessionID returns the static value.
func (s Static) NewSessionID() (string, error) {
	return string(s), nil
}
