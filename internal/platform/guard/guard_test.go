package guard

import (
	"errors"
	"testing"
)

func TestBeginEnd(t *testing.T) {
	g := New()
	if err := g.Begin("patient.save"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.Begin("patient.save"); !errors.Is(err, ErrInFlight) {
		t.Errorf("expected ErrInFlight for duplicate submit, got %v", err)
	}
	// A different operation is not blocked.
	if err := g.Begin("appointment.save"); err != nil {
		t.Errorf("unexpected error for unrelated key: %v", err)
	}
	g.End("patient.save")
	if err := g.Begin("patient.save"); err != nil {
		t.Errorf("expected key to be reusable after End, got %v", err)
	}
}

func TestEnd_UnknownKey(t *testing.T) {
	g := New()
	g.End("never-started")
	if err := g.Begin("never-started"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
