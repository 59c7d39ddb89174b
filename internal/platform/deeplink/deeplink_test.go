package deeplink

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestBuildURL_StripsNonDigits(t *testing.T) {
	n := NewNotifier("whatsapp", OpenerFunc(func(string) error { return nil }), zerolog.Nop())
	got, err := n.BuildURL("+52 (555) 123-4567", "Hola")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "whatsapp:send?phone=525551234567&") {
		t.Errorf("unexpected URL %q", got)
	}
	for _, r := range strings.TrimPrefix(strings.Split(got, "&")[0], "whatsapp:send?phone=") {
		if r < '0' || r > '9' {
			t.Errorf("phone part contains non-digit %q in %q", r, got)
		}
	}
}

func TestBuildURL_EncodesMessage(t *testing.T) {
	n := NewNotifier("whatsapp", OpenerFunc(func(string) error { return nil }), zerolog.Nop())
	got, err := n.BuildURL("5551234567", "Hola Ana, le recuerdo su cita el 2024-03-15 a las 09:30.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("built URL does not parse: %v", err)
	}
	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		t.Fatalf("query does not parse: %v", err)
	}
	if !strings.Contains(q.Get("text"), "2024-03-15") {
		t.Errorf("message did not round-trip: %q", q.Get("text"))
	}
}

func TestBuildURL_NoContact(t *testing.T) {
	n := NewNotifier("whatsapp", OpenerFunc(func(string) error { return nil }), zerolog.Nop())
	if _, err := n.BuildURL("  --  ", "hi"); !errors.Is(err, ErrNoContact) {
		t.Errorf("expected ErrNoContact, got %v", err)
	}
}

func TestSend_HandlerUnavailable(t *testing.T) {
	boom := errors.New("no handler registered")
	n := NewNotifier("whatsapp", OpenerFunc(func(string) error { return boom }), zerolog.Nop())
	err := n.Send("5551234567", "hi")
	if !errors.Is(err, ErrHandlerUnavailable) {
		t.Errorf("expected ErrHandlerUnavailable, got %v", err)
	}
}

func TestSend_PassesBuiltURL(t *testing.T) {
	var opened string
	n := NewNotifier("whatsapp", OpenerFunc(func(u string) error {
		opened = u
		return nil
	}), zerolog.Nop())
	if err := n.Send("5551234567", "checkup"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opened != "whatsapp:send?phone=5551234567&text=checkup" {
		t.Errorf("unexpected URL %q", opened)
	}
}
