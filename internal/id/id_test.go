// Package id includes tests for the session ID generators.
package id

import (
	"testing"

	"github.com/google/uuid"
)

// TestUUIDGeneratorNewSessionID ensures generated IDs are unique UUIDv7 values.
func TestUUIDGeneratorNewSessionID(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator()
	id1, err := gen.NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID() error = %v", err)
	}
	id2, err := gen.NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID() error = %v", err)
	}
	if id1 == id2 {
		t.Fatalf("expected unique IDs, got %s and %s", id1, id2)
	}
	parsed, err := uuid.Parse(id1)
	if err != nil {
		t.Fatalf("id1 not valid UUID: %v", err)
	}
	if parsed.Version() != 7 {
		t.Fatalf("expected version 7, got %d", parsed.Version())
	}
}

// TestStatic checks the fixed generator.
func TestStatic(t *testing.T) {
	t.Parallel()

	var gen Generator = Static("session-1")
	got, err := gen.NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID() error = %v", err)
	}
	if got != "session-1" {
		t.Fatalf("expected session-1, got %s", got)
	}
}
