// Package session holds the two process-scoped contexts of the client: the
// authenticated identity and the visual preference flag. Both have explicit
// lifecycles and are passed into consumers rather than reached for globally.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/medisystem/medisystem/internal/domain/identity"
)

// Session holds at most one current account. It is cleared on logout and
// never persisted; a process restart always starts unauthenticated.
type Session struct {
	mu      sync.RWMutex
	account *identity.Account
	expiry  time.Time // zero when the token carries no exp claim
	log     zerolog.Logger
}

func New(logger zerolog.Logger) *Session {
	return &Session{log: logger}
}

// Login installs a server-issued account snapshot. If the payload carries a
// bearer token with an exp claim, the claim is read without verification —
// the server enforces it; the client only uses it to know when to force a
// re-login.
func (s *Session) Login(acct identity.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = &acct
	s.expiry = time.Time{}
	if acct.Token != "" {
		if tok, _, err := jwt.NewParser().ParseUnverified(acct.Token, jwt.MapClaims{}); err == nil {
			if exp, err := tok.Claims.GetExpirationTime(); err == nil && exp != nil {
				s.expiry = exp.Time
			}
		}
	}
	s.log.Info().Str("account_id", acct.ID).Msg("session started")
}

// Logout clears the current account. It is idempotent and always succeeds.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account != nil {
		s.log.Info().Str("account_id", s.account.ID).Msg("session ended")
	}
	s.account = nil
	s.expiry = time.Time{}
}

// Current returns the account snapshot and whether one is present.
func (s *Session) Current() (identity.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return identity.Account{}, false
	}
	return *s.account, true
}

// Active reports whether an account is present and its token, if any, has
// not expired.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return false
	}
	if !s.expiry.IsZero() && time.Now().After(s.expiry) {
		return false
	}
	return true
}

// Token returns the session's bearer token, or "" when absent. Wired into
// the API transport as its TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return ""
	}
	return s.account.Token
}

// IsAdmin reports whether the current account has the admin role.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account != nil && s.account.IsAdmin()
}

// Preferences is the process-scoped visual preference context. It resets to
// the configured default on every start; there is no persistence.
type Preferences struct {
	mu   sync.Mutex
	dark bool
}

func NewPreferences(dark bool) *Preferences {
	return &Preferences{dark: dark}
}

// Toggle flips the theme flag, independent of any session.
func (p *Preferences) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dark = !p.dark
}

func (p *Preferences) Dark() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark
}
