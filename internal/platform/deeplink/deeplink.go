// Package deeplink hands appointment reminders and ad-hoc messages to the
// external messaging application through its protocol URL. The handler is a
// collaborator: this package builds the URL and reports whether the handoff
// worked, nothing more. A failed handoff never affects already-saved data.
package deeplink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNoContact reports that the patient has no contact number to message.
var ErrNoContact = errors.New("no contact number")

// ErrHandlerUnavailable reports that the messaging handler could not be
// opened. It is distinct from any remote API error.
var ErrHandlerUnavailable = errors.New("messaging handler unavailable")

// Opener launches a protocol URL in the external handler.
type Opener interface {
	Open(rawURL string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(rawURL string) error

func (f OpenerFunc) Open(rawURL string) error { return f(rawURL) }

type Notifier struct {
	scheme string
	opener Opener
	log    zerolog.Logger
}

func NewNotifier(scheme string, opener Opener, logger zerolog.Logger) *Notifier {
	return &Notifier{scheme: scheme, opener: opener, log: logger}
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildURL constructs "<scheme>:send?phone=<digits>&text=<encoded>". All
// non-digit characters are stripped from the phone number.
func (n *Notifier) BuildURL(phone, message string) (string, error) {
	digits := onlyDigits(phone)
	if digits == "" {
		return "", ErrNoContact
	}
	return fmt.Sprintf("%s:send?phone=%s&text=%s", n.scheme, digits, url.QueryEscape(message)), nil
}

// Send builds the deep link and hands it to the external handler.
func (n *Notifier) Send(phone, message string) error {
	target, err := n.BuildURL(phone, message)
	if err != nil {
		return err
	}
	if err := n.opener.Open(target); err != nil {
		n.log.Error().Err(err).Str("scheme", n.scheme).Msg("messaging handler failed to open")
		return fmt.Errorf("%w: %v", ErrHandlerUnavailable, err)
	}
	return nil
}
