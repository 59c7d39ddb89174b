// Package workflow is the navigation state machine of the client. It owns
// the screen stack, gates authenticated screens on the session, re-runs view
// refreshes whenever a screen regains focus, and drives the two interactive
// detours: destructive-action confirmation and the post-save reminder offer.
package workflow

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/medisystem/medisystem/internal/platform/deeplink"
	"github.com/medisystem/medisystem/internal/session"
)

// Screen identifies a navigation destination.
type Screen string

const (
	ScreenLogin           Screen = "login"
	ScreenRegisterDoctor  Screen = "register_doctor"
	ScreenPatients        Screen = "patients"
	ScreenPatientDetail   Screen = "patient_detail"
	ScreenSavePatient     Screen = "save_patient"
	ScreenSaveRecord      Screen = "save_record"
	ScreenSaveAppointment Screen = "save_appointment"
	ScreenProfile         Screen = "profile"
)

// ErrNotAuthenticated reports an attempt to reach an authenticated screen
// without an active session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Refresher refetches a screen's data. Registered per screen and run on
// every focus transition, including returning from a deeper screen.
type Refresher func(ctx context.Context) error

// Machine is the screen stack. It is single-owner: one goroutine drives it.
type Machine struct {
	sess     *session.Session
	notifier *deeplink.Notifier
	log      zerolog.Logger
	stack    []Screen
	onFocus  map[Screen][]Refresher
}

func New(sess *session.Session, notifier *deeplink.Notifier, logger zerolog.Logger) *Machine {
	return &Machine{
		sess:     sess,
		notifier: notifier,
		log:      logger,
		stack:    []Screen{ScreenLogin},
		onFocus:  map[Screen][]Refresher{},
	}
}

// Current returns the focused screen.
func (m *Machine) Current() Screen {
	return m.stack[len(m.stack)-1]
}

// Depth returns how many screens are stacked.
func (m *Machine) Depth() int {
	return len(m.stack)
}

// OnFocus registers a refresher to run whenever the screen gains focus.
func (m *Machine) OnFocus(s Screen, r Refresher) {
	m.onFocus[s] = append(m.onFocus[s], r)
}

func (m *Machine) gate(s Screen) error {
	if s == ScreenLogin {
		return nil
	}
	if !m.sess.Active() {
		return ErrNotAuthenticated
	}
	return nil
}

// fireFocus runs the screen's refreshers. A failed refresh is reported and
// logged but never blocks the navigation itself; the screen shows stale data
// until the next focus.
func (m *Machine) fireFocus(ctx context.Context, s Screen) {
	for _, r := range m.onFocus[s] {
		if err := r(ctx); err != nil {
			m.log.Warn().Err(err).Str("screen", string(s)).Msg("focus refresh failed")
		}
	}
}

// Push navigates deeper. Authenticated screens are rejected outright when
// the session is missing or expired.
func (m *Machine) Push(ctx context.Context, s Screen) error {
	if err := m.gate(s); err != nil {
		return err
	}
	m.stack = append(m.stack, s)
	m.log.Debug().Str("screen", string(s)).Int("depth", len(m.stack)).Msg("pushed")
	m.fireFocus(ctx, s)
	return nil
}

// Pop returns to the previous screen and refreshes it, so edits made deeper
// in the stack are always visible on return. At the root it is a no-op.
func (m *Machine) Pop(ctx context.Context) error {
	if len(m.stack) == 1 {
		return nil
	}
	m.stack = m.stack[:len(m.stack)-1]
	top := m.Current()
	m.log.Debug().Str("screen", string(top)).Int("depth", len(m.stack)).Msg("popped")
	m.fireFocus(ctx, top)
	return nil
}

// Replace swaps the focused screen without growing the stack. Used for the
// login-to-roster transition.
func (m *Machine) Replace(ctx context.Context, s Screen) error {
	if err := m.gate(s); err != nil {
		return err
	}
	m.stack[len(m.stack)-1] = s
	m.log.Debug().Str("screen", string(s)).Msg("replaced")
	m.fireFocus(ctx, s)
	return nil
}

// Logout ends the session and collapses the stack back to the login screen.
// It always succeeds.
func (m *Machine) Logout() {
	m.sess.Logout()
	m.stack = []Screen{ScreenLogin}
	m.log.Info().Msg("returned to login")
}
